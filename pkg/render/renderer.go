package render

import (
	"context"
)

// Renderer turns a Page into a byte representation (HTML for the browser,
// a JSON outcome for the terminal form).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page Page, options RenderOptions) ([]byte, error)
}
