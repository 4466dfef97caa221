package template

import (
	"errors"
	"io"
)

// ErrFilterExists is returned by RegisterFilter when the name is taken.
var ErrFilterExists = errors.New("template: filter already registered")

// TemplateRenderer is the engine contract the page renderer depends on.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
