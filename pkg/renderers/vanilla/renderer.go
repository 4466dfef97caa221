package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-hafriyat/pkg/effects"
	"github.com/goliatone/go-hafriyat/pkg/model"
	"github.com/goliatone/go-hafriyat/pkg/render"
	rendertemplate "github.com/goliatone/go-hafriyat/pkg/render/template"
	gotemplate "github.com/goliatone/go-hafriyat/pkg/render/template/gotemplate"
	"github.com/goliatone/go-hafriyat/pkg/sitetheme"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Section keys in page order. The layout key renders last and receives the
// other sections as HTML.
const (
	SectionLayout       = "page.layout"
	SectionNavbar       = "page.navbar"
	SectionHero         = "page.hero"
	SectionServices     = "page.services"
	SectionGallery      = "page.gallery"
	SectionTestimonials = "page.testimonials"
	SectionContact      = "page.contact"
	SectionFooter       = "page.footer"
)

var sectionOrder = []string{
	SectionNavbar,
	SectionHero,
	SectionServices,
	SectionGallery,
	SectionTestimonials,
	SectionContact,
	SectionFooter,
}

// Renderer produces the full site page as HTML.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	if err := installHelpers(renderer); err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}

	return &Renderer{templates: renderer}, nil
}

// Templates exposes the template renderer, mainly so the dev watcher can
// reload it.
func (r *Renderer) Templates() rendertemplate.TemplateRenderer {
	return r.templates
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render renders every section template, then the layout around them.
// Section templates come from the theme partials when set.
func (r *Renderer) Render(ctx context.Context, page render.Page, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	data, err := buildView(page, options)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}

	partials := sitetheme.DefaultPartials()
	if options.Theme != nil {
		for key, path := range options.Theme.Partials {
			if strings.TrimSpace(path) != "" {
				partials[key] = path
			}
		}
	}

	sections := make(map[string]string, len(sectionOrder))
	for _, key := range sectionOrder {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		html, err := r.templates.RenderTemplate(partials[key], data)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: render %s: %w", key, err)
		}
		sections[sectionVar(key)] = html
	}
	data["sections"] = sections

	result, err := r.templates.RenderTemplate(partials[SectionLayout], data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render layout: %w", err)
	}
	return []byte(result), nil
}

// sectionVar turns "page.navbar" into "navbar".
func sectionVar(key string) string {
	return strings.TrimPrefix(key, "page.")
}

type fieldView struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
	Required    bool   `json:"required"`
	Textarea    bool   `json:"textarea"`
	InputID     string `json:"inputId"`
	Value       string `json:"value"`
	Error       string `json:"error"`
	Classes     string `json:"classes"`
}

type formView struct {
	ID          string      `json:"id"`
	Action      string      `json:"action"`
	Method      string      `json:"method"`
	SubmitLabel string      `json:"submitLabel"`
	DialogID    string      `json:"dialogId"`
	Fields      []fieldView `json:"fields"`
	ErrorClass  string      `json:"errorClass"`
}

func buildView(page render.Page, options render.RenderOptions) (map[string]any, error) {
	form := page.Form
	formID := form.ID
	if formID == "" {
		formID = model.DefaultFormID
	}
	dialogID := form.SuccessDialogID
	if dialogID == "" {
		dialogID = model.DefaultSuccessDialogID
	}
	submitLabel := form.SubmitLabel
	if submitLabel == "" {
		submitLabel = model.DefaultSubmitLabel
	}
	method := strings.ToLower(form.Method)
	if method == "" {
		method = "post"
	}

	fv := formView{
		ID:          formID,
		Action:      form.Action,
		Method:      method,
		SubmitLabel: submitLabel,
		DialogID:    dialogID,
		ErrorClass:  model.FieldErrorClasses,
		Fields:      make([]fieldView, 0, len(form.Fields)),
	}
	for _, field := range form.Fields {
		label := field.Label
		if label == "" {
			label = model.FieldLabel(field.Name)
		}
		fieldType := string(field.Type)
		if fieldType == "" {
			fieldType = string(model.FieldTypeText)
		}
		view := fieldView{
			Name:        field.Name,
			Type:        fieldType,
			Label:       label,
			Placeholder: field.Placeholder,
			Required:    field.Required,
			Textarea:    field.Type == model.FieldTypeTextarea,
			InputID:     formID + "-" + field.Name,
			Value:       options.Values[field.Name],
			Error:       options.Errors[field.Name],
			Classes:     "form-control",
		}
		if view.Error != "" {
			view.Classes += " " + model.InvalidClass
		}
		fv.Fields = append(fv.Fields, view)
	}

	runtime := page.Runtime
	if runtime.FormID == "" {
		runtime = effects.DefaultRuntimeConfig()
	}
	runtime.FormID = formID
	runtime.DialogID = dialogID
	if options.Theme != nil {
		runtime.Navbar = sitetheme.NavbarPalette(options.Theme)
	}
	if runtime.WhatsAppURL == "" {
		runtime.WhatsAppURL = page.WhatsAppURL
	}
	payload, err := runtime.Encode()
	if err != nil {
		return nil, err
	}

	title := page.Title
	if title == "" {
		title = page.Site.Company.Name
	}

	return map[string]any{
		"title":       title,
		"site":        page.Site,
		"form":        fv,
		"whatsappUrl": runtime.WhatsAppURL,
		"runtime":     payload,
		"themeStyle":  sitetheme.CSSVarsStyle(options.Theme),
		"navbarStyle": navbarStyle(runtime.Navbar.Top),
		"assets": map[string]string{
			"stylesheet": options.AssetURL("site.stylesheet", StylesheetName),
			"loader":     options.AssetURL("site.loader", LoaderName),
			"wasmExec":   options.AssetURL("site.wasm_exec", "wasm_exec.js"),
			"wasm":       options.AssetURL("site.wasm", "hafriyat.wasm"),
		},
	}, nil
}

func navbarStyle(style effects.NavbarStyle) string {
	return fmt.Sprintf("background: %s; box-shadow: %s;", style.Background, style.BoxShadow)
}
