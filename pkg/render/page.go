package render

import (
	"github.com/goliatone/go-hafriyat/pkg/content"
	"github.com/goliatone/go-hafriyat/pkg/effects"
	"github.com/goliatone/go-hafriyat/pkg/model"
)

// Page is everything a renderer needs to produce the site.
type Page struct {
	Title       string
	Form        model.FormModel
	Site        content.Site
	Runtime     effects.RuntimeConfig
	WhatsAppURL string
}
