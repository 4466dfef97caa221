// Package hafriyat assembles the Ayaz Hafriyat site from configuration: the
// contact form definition, the site copy, the theme and the page renderer.
package hafriyat

import (
	"context"
	"fmt"
	"sync"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-hafriyat/internal/config"
	"github.com/goliatone/go-hafriyat/pkg/content"
	"github.com/goliatone/go-hafriyat/pkg/deeplink"
	"github.com/goliatone/go-hafriyat/pkg/effects"
	"github.com/goliatone/go-hafriyat/pkg/formdef"
	"github.com/goliatone/go-hafriyat/pkg/model"
	"github.com/goliatone/go-hafriyat/pkg/render"
	"github.com/goliatone/go-hafriyat/pkg/renderers/vanilla"
	"github.com/goliatone/go-hafriyat/pkg/sitetheme"
)

// PageRenderer is the name of the renderer producing the HTML page.
const PageRenderer = "vanilla"

// SiteOption customises a Site.
type SiteOption func(*Site)

// WithLogger sets the logger used for reload failures.
func WithLogger(logger *zap.Logger) SiteOption {
	return func(s *Site) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderer registers an extra renderer, e.g. the terminal form.
func WithRenderer(renderer render.Renderer) SiteOption {
	return func(s *Site) {
		if renderer != nil {
			s.extra = append(s.extra, renderer)
		}
	}
}

// Site is the configured site, ready to render.
type Site struct {
	cfg      config.Config
	logger   *zap.Logger
	registry *render.Registry
	page     *vanilla.Renderer
	extra    []render.Renderer

	mu    sync.RWMutex
	data  render.Page
	theme *theme.RendererConfig
}

// NewSite loads everything cfg points at. cfg is not validated here.
func NewSite(ctx context.Context, cfg config.Config, opts ...SiteOption) (*Site, error) {
	s := &Site{
		cfg:      cfg,
		logger:   zap.NewNop(),
		registry: render.NewRegistry(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	form, err := loadForm(ctx, cfg.Form.Definition)
	if err != nil {
		return nil, err
	}
	site, err := content.LoadDir(cfg.Content.Dir)
	if err != nil {
		return nil, fmt.Errorf("hafriyat: load content: %w", err)
	}
	link, err := deeplink.WhatsApp(cfg.WhatsApp.Recipient, cfg.WhatsApp.Message)
	if err != nil {
		return nil, fmt.Errorf("hafriyat: whatsapp link: %w", err)
	}
	themeCfg, err := sitetheme.NewCatalog().Resolve(cfg.Theme.Name, cfg.Theme.Variant)
	if err != nil {
		return nil, fmt.Errorf("hafriyat: resolve theme: %w", err)
	}

	runtime := effects.DefaultRuntimeConfig()
	runtime.Debug = cfg.Debug
	if cfg.Form.SubmitDelay > 0 {
		runtime.SubmitDelayMS = cfg.Form.SubmitDelay.Milliseconds()
	}
	runtime.WhatsAppURL = link

	s.data = render.Page{
		Title:       site.Company.Name,
		Form:        form,
		Site:        site,
		Runtime:     runtime,
		WhatsAppURL: link,
	}
	s.theme = themeCfg

	page, err := vanilla.New(vanilla.WithTemplatesDir(cfg.Templates.Dir))
	if err != nil {
		return nil, fmt.Errorf("hafriyat: %w", err)
	}
	s.page = page
	if err := s.registry.Register(page); err != nil {
		return nil, fmt.Errorf("hafriyat: %w", err)
	}
	for _, r := range s.extra {
		if err := s.registry.Register(r); err != nil {
			return nil, fmt.Errorf("hafriyat: %w", err)
		}
	}
	return s, nil
}

func loadForm(ctx context.Context, path string) (model.FormModel, error) {
	var (
		form model.FormModel
		err  error
	)
	if path == "" {
		form, err = formdef.LoadDefault(ctx)
	} else {
		form, err = formdef.LoadFile(ctx, path)
	}
	if err != nil {
		return model.FormModel{}, fmt.Errorf("hafriyat: load form: %w", err)
	}
	return form, nil
}

// Page returns a copy of the assembled page.
func (s *Site) Page() render.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Theme returns the resolved theme configuration.
func (s *Site) Theme() *theme.RendererConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Renderers lists the registered renderer names.
func (s *Site) Renderers() []string {
	return s.registry.List()
}

// Render renders the page with the named renderer. The site theme is applied
// when options carry none.
func (s *Site) Render(ctx context.Context, name string, options render.RenderOptions) ([]byte, error) {
	s.mu.RLock()
	page := s.data
	if options.Theme == nil {
		options.Theme = s.theme
	}
	s.mu.RUnlock()
	return s.registry.Render(ctx, name, page, options)
}

// RenderPage renders the HTML page.
func (s *Site) RenderPage(ctx context.Context) ([]byte, error) {
	return s.Render(ctx, PageRenderer, render.RenderOptions{})
}

// Reload drops cached templates and rereads the site copy. A content error
// keeps the previous copy.
func (s *Site) Reload() {
	if reloader, ok := s.page.Templates().(interface{ Reload() }); ok {
		reloader.Reload()
	}
	site, err := content.LoadDir(s.cfg.Content.Dir)
	if err != nil {
		s.logger.Error("reload content", zap.Error(err))
		return
	}
	s.mu.Lock()
	s.data.Site = site
	s.data.Title = site.Company.Name
	s.mu.Unlock()
}

// WatchDirs lists the directories whose changes should trigger Reload.
func (s *Site) WatchDirs() []string {
	var dirs []string
	if s.cfg.Templates.Dir != "" {
		dirs = append(dirs, s.cfg.Templates.Dir)
	}
	if s.cfg.Content.Dir != "" {
		dirs = append(dirs, s.cfg.Content.Dir)
	}
	return dirs
}
