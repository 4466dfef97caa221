//go:build js && wasm

package dom

import (
	"strings"
	"syscall/js"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-hafriyat/pkg/effects"
	"github.com/goliatone/go-hafriyat/pkg/ratelimit"
)

func (rt *Runtime) initSmoothScroll() {
	each(rt.doc.Call("querySelectorAll", effects.AnchorSelector), func(link js.Value) {
		rt.listen(link, "click", false, "smooth-scroll", func(ev js.Value) {
			ev.Call("preventDefault")

			href := link.Call("getAttribute", "href").String()
			if href == "#" {
				return
			}
			target := rt.doc.Call("querySelector", href)
			if missing(target) {
				return
			}
			rt.win.Call("scrollTo", map[string]any{
				"top":      rt.cfg.ScrollTarget(target.Get("offsetTop").Float()),
				"behavior": "smooth",
			})
		})
	})
}

func (rt *Runtime) initReveal() {
	if missing(rt.win.Get("IntersectionObserver")) {
		rt.logger.Warn("IntersectionObserver unavailable, reveal animations disabled")
		return
	}
	for _, group := range rt.cfg.Reveal {
		group := group
		cb := rt.callback("reveal-"+group.Name, func(args []js.Value) {
			each(args[0], func(entry js.Value) {
				if entry.Get("isIntersecting").Bool() {
					entry.Get("target").Get("classList").Call("add", group.VisibleClass)
				}
			})
		})
		observer := rt.win.Get("IntersectionObserver").New(cb, observerInit(group.Options))
		each(rt.doc.Call("querySelectorAll", strings.Join(group.Selectors, ", ")), func(el js.Value) {
			if group.InitialClass != "" {
				el.Get("classList").Call("add", group.InitialClass)
			}
			observer.Call("observe", el)
		})
	}
}

func (rt *Runtime) initNavbar() {
	navbar := rt.doc.Call("querySelector", effects.NavbarSelector)
	if missing(navbar) {
		rt.logger.Debug("navbar not found, scroll styling inactive")
		return
	}

	apply := func(struct{}) {
		top := rt.win.Get("pageYOffset").Float()
		if top == 0 {
			top = rt.doc.Get("documentElement").Get("scrollTop").Float()
		}
		style := rt.cfg.NavbarStyleFor(top)
		s := navbar.Get("style")
		s.Set("background", style.Background)
		s.Set("boxShadow", style.BoxShadow)
	}

	handler := func(js.Value) { apply(struct{}{}) }
	if rt.cfg.NavbarThrottle > 0 {
		throttled := ratelimit.Throttle(apply, time.Duration(rt.cfg.NavbarThrottle)*time.Millisecond, nil)
		handler = func(js.Value) { throttled.Call(struct{}{}) }
	}
	rt.listen(rt.win, "scroll", true, "navbar", handler)
}

func (rt *Runtime) initMobile() {
	if rt.win.Get("Reflect").Call("has", rt.win, "ontouchstart").Bool() {
		rt.doc.Get("body").Get("classList").Call("add", effects.TouchDeviceClass)
	}

	setViewport := func(js.Value) {
		unit := effects.ViewportUnit(rt.win.Get("innerHeight").Float())
		rt.doc.Get("documentElement").Get("style").Call("setProperty", effects.ViewportProperty, unit)
	}
	setViewport(js.Undefined())
	rt.listen(rt.win, "resize", true, "viewport", setViewport)

	collapse := rt.doc.Call("querySelector", effects.CollapseSelector)
	if missing(collapse) {
		rt.logger.Debug("navbar collapse not found, menu auto-close inactive")
		return
	}
	each(rt.doc.Call("querySelectorAll", effects.NavLinkSelector), func(link js.Value) {
		rt.listen(link, "click", false, "nav-collapse", func(js.Value) {
			if collapse.Get("classList").Call("contains", effects.CollapseShownClass).Bool() {
				rt.hideCollapse(collapse)
			}
		})
	})
}

func (rt *Runtime) hideCollapse(collapse js.Value) {
	bootstrap := rt.win.Get("bootstrap")
	if !missing(bootstrap) {
		bootstrap.Get("Collapse").Call("getOrCreateInstance", collapse).Call("hide")
		return
	}
	collapse.Get("classList").Call("remove", effects.CollapseShownClass)
}

// initFeedback binds press and hover transforms on each matching element.
func (rt *Runtime) initFeedback() {
	for _, press := range rt.cfg.Press {
		press := press
		each(rt.doc.Call("querySelectorAll", press.Selector), func(el js.Value) {
			rt.listen(el, "click", false, "press", func(js.Value) {
				style := el.Get("style")
				style.Set("transform", press.Transform)
				time.AfterFunc(press.Duration, func() {
					style.Set("transform", "")
				})
			})
		})
	}
	for _, hover := range rt.cfg.Hover {
		hover := hover
		each(rt.doc.Call("querySelectorAll", hover.Selector), func(el js.Value) {
			rt.listen(el, "mouseenter", false, "hover", func(js.Value) {
				el.Get("style").Set("transform", hover.Enter)
			})
			rt.listen(el, "mouseleave", false, "hover", func(js.Value) {
				el.Get("style").Set("transform", hover.Leave)
			})
		})
	}
}

// initWhatsApp exposes openWhatsApp for inline handlers.
func (rt *Runtime) initWhatsApp() {
	if rt.cfg.WhatsAppURL == "" {
		return
	}
	rt.win.Set("openWhatsApp", rt.callback("whatsapp", func([]js.Value) {
		rt.win.Call("open", rt.cfg.WhatsAppURL, "_blank")
		rt.logger.Info("WhatsApp açıldı", zap.String("url", rt.cfg.WhatsAppURL))
	}))
}

func (rt *Runtime) initLazyImages() {
	if missing(rt.win.Get("IntersectionObserver")) {
		return
	}
	cb := rt.callback("lazy-images", func(args []js.Value) {
		observer := args[1]
		each(args[0], func(entry js.Value) {
			if !entry.Get("isIntersecting").Bool() {
				return
			}
			img := entry.Get("target")
			img.Set("src", effects.LazySource(stringProp(img, "src"), stringProp(img.Get("dataset"), "src")))
			img.Get("classList").Call("remove", effects.LazyClass)
			observer.Call("unobserve", img)
		})
	})
	observer := rt.win.Get("IntersectionObserver").New(cb)
	each(rt.doc.Call("querySelectorAll", effects.LazyImageSelector), func(img js.Value) {
		observer.Call("observe", img)
	})
}

func observerInit(opts effects.ObserverOptions) map[string]any {
	return map[string]any{
		"threshold":  opts.Threshold,
		"rootMargin": opts.RootMargin,
	}
}
