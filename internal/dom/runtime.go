//go:build js && wasm

// Package dom binds the site behaviour to the browser: the contact form
// controller, smooth scrolling, reveal animations, the navbar, mobile
// affordances, press feedback, lazy images and error reporting.
package dom

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"syscall/js"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-hafriyat/internal/logging"
	"github.com/goliatone/go-hafriyat/pkg/controller"
	"github.com/goliatone/go-hafriyat/pkg/effects"
	"github.com/goliatone/go-hafriyat/pkg/ratelimit"
)

// reportWindow mutes repeats of the same browser error.
const reportWindow = 10 * time.Second

// Runtime owns every listener registered on the page.
type Runtime struct {
	win     js.Value
	doc     js.Value
	console js.Value
	cfg     effects.RuntimeConfig
	logger  *zap.Logger
	reports *ratelimit.KeyedThrottle

	mu         sync.Mutex
	funcs      []js.Func
	ignore     js.Func
	controller *controller.Controller
}

// Run wires the page and blocks until ctx is cancelled.
func Run(ctx context.Context) error {
	win := js.Global()
	doc := win.Get("document")
	if missing(doc) {
		return fmt.Errorf("dom: no document")
	}

	rt := &Runtime{
		win:     win,
		doc:     doc,
		console: win.Get("console"),
		reports: ratelimit.NewKeyedThrottle(reportWindow, nil),
	}
	rt.ignore = js.FuncOf(func(js.Value, []js.Value) any { return nil })

	cfg, cfgErr := loadRuntimeConfig(doc)
	rt.cfg = cfg

	level := "info"
	if cfg.Debug {
		level = "debug"
	}
	logger, _, err := logging.New(level, cfg.Debug)
	if err != nil {
		return fmt.Errorf("dom: %w", err)
	}
	rt.logger = logger
	defer func() { _ = logger.Sync() }()
	if cfgErr != nil {
		logger.Warn("runtime config unavailable, using defaults", zap.Error(cfgErr))
	}

	rt.installErrorReporting()

	if doc.Get("readyState").String() == "loading" {
		rt.listen(doc, "DOMContentLoaded", false, "start", func(js.Value) { rt.start() })
	} else {
		rt.start()
	}
	if doc.Get("readyState").String() == "complete" {
		rt.safely("lazy-images", rt.initLazyImages)
	} else {
		rt.listen(win, "load", false, "load", func(js.Value) {
			rt.console.Call("log", "Sayfa tamamen yüklendi")
			rt.initLazyImages()
		})
	}

	<-ctx.Done()
	rt.release()
	return nil
}

func (rt *Runtime) start() {
	rt.console.Call("log", "Ayaz Hafriyat sitesi yüklendi")

	rt.safely("form", rt.initForm)
	rt.safely("smooth-scroll", rt.initSmoothScroll)
	rt.safely("reveal", rt.initReveal)
	rt.safely("navbar", rt.initNavbar)
	rt.safely("mobile", rt.initMobile)
	rt.safely("feedback", rt.initFeedback)
	rt.safely("whatsapp", rt.initWhatsApp)
	if rt.cfg.Debug {
		rt.safely("debug", rt.initDebug)
	}
}

func (rt *Runtime) initForm() {
	c := controller.New(
		controller.WithFormID(rt.cfg.FormID),
		controller.WithDialogID(rt.cfg.DialogID),
		controller.WithSubmitter(controller.NewSimulatedSubmitter(rt.cfg.SubmitDelay(), nil)),
		controller.WithLogger(rt.logger),
	)
	if err := c.Init(&surface{rt: rt}); err != nil {
		return
	}
	rt.mu.Lock()
	rt.controller = c
	rt.mu.Unlock()
}

// listen registers handler for event on target. A panic inside handler is
// recovered and reported so other listeners keep working.
func (rt *Runtime) listen(target js.Value, event string, passive bool, name string, handler func(js.Value)) {
	fn := rt.callback(name, func(args []js.Value) {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		handler(ev)
	})
	if passive {
		target.Call("addEventListener", event, fn, map[string]any{"passive": true})
		return
	}
	target.Call("addEventListener", event, fn)
}

// callback wraps fn as a JavaScript function with panic isolation.
func (rt *Runtime) callback(name string, fn func(args []js.Value)) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		defer rt.recoverListener(name)
		fn(args)
		return nil
	})
	rt.mu.Lock()
	rt.funcs = append(rt.funcs, f)
	rt.mu.Unlock()
	return f
}

// safely runs an initialiser with the same isolation as listeners.
func (rt *Runtime) safely(name string, fn func()) {
	defer rt.recoverListener(name)
	fn()
}

func (rt *Runtime) recoverListener(name string) {
	rec := recover()
	if rec == nil {
		return
	}
	message := fmt.Sprint(rec)
	rt.console.Call("error", "JavaScript hatası:", message)
	rt.logger.Error("listener failed", zap.String("listener", name), zap.String("panic", message))
	rt.report(effects.ErrorReport{
		Message: message,
		Source:  "go:" + name,
		Stack:   string(debug.Stack()),
	})
}

func (rt *Runtime) installErrorReporting() {
	rt.listen(rt.win, "error", false, "error", func(ev js.Value) {
		errValue := ev.Get("error")
		rt.console.Call("error", "JavaScript hatası:", errValue)
		report := effects.ErrorReport{
			Message: stringProp(ev, "message"),
			Source:  stringProp(ev, "filename"),
			Line:    intProp(ev, "lineno"),
			Column:  intProp(ev, "colno"),
		}
		if !missing(errValue) {
			report.Stack = stringProp(errValue, "stack")
		}
		rt.report(report)
	})
}

// report posts r to the error endpoint unless the same error was sent
// recently.
func (rt *Runtime) report(r effects.ErrorReport) {
	if rt.cfg.ErrorEndpoint == "" || strings.TrimSpace(r.Message) == "" {
		return
	}
	if !rt.reports.Allow(r.Key()) {
		return
	}
	body, err := json.Marshal(r)
	if err != nil {
		return
	}
	fetch := rt.win.Get("fetch")
	if missing(fetch) {
		return
	}
	promise := rt.win.Call("fetch", rt.cfg.ErrorEndpoint, map[string]any{
		"method":    "POST",
		"headers":   map[string]any{"Content-Type": "application/json"},
		"body":      string(body),
		"keepalive": true,
	})
	promise.Call("catch", rt.ignore)
}

func (rt *Runtime) release() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	for _, f := range rt.funcs {
		f.Release()
	}
	rt.funcs = nil
	rt.ignore.Release()
}

func loadRuntimeConfig(doc js.Value) (effects.RuntimeConfig, error) {
	el := doc.Call("getElementById", effects.RuntimeConfigElementID)
	if missing(el) {
		return effects.DefaultRuntimeConfig(), fmt.Errorf("dom: element #%s not found", effects.RuntimeConfigElementID)
	}
	cfg, err := effects.DecodeRuntimeConfig([]byte(el.Get("textContent").String()))
	if err != nil {
		return effects.DefaultRuntimeConfig(), err
	}
	return cfg, nil
}

func missing(v js.Value) bool {
	return v.IsUndefined() || v.IsNull()
}

func stringProp(v js.Value, name string) string {
	p := v.Get(name)
	if p.Type() != js.TypeString {
		return ""
	}
	return p.String()
}

func intProp(v js.Value, name string) int {
	p := v.Get(name)
	if p.Type() != js.TypeNumber {
		return 0
	}
	return p.Int()
}

// each calls fn for every element of a NodeList.
func each(list js.Value, fn func(el js.Value)) {
	if missing(list) {
		return
	}
	n := list.Length()
	for i := 0; i < n; i++ {
		fn(list.Index(i))
	}
}
