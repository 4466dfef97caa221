package hafriyat

import (
	"io/fs"

	"github.com/goliatone/go-hafriyat/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in page templates so a custom
// templates.dir can start from a copy of them.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
