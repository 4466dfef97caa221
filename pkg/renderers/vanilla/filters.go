package vanilla

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-hafriyat/pkg/effects"
	rendertemplate "github.com/goliatone/go-hafriyat/pkg/render/template"
)

const maxStars = 5

// filters are the template filters the page templates use.
var filters = map[string]func(input any, param any) (any, error){
	"telhref": telHref,
	"stars":   stars,
}

// installHelpers registers the page filters and globals on templates.
// Filters that are already registered are kept.
func installHelpers(templates rendertemplate.TemplateRenderer) error {
	for name, fn := range filters {
		err := templates.RegisterFilter(name, fn)
		if err != nil && !errors.Is(err, rendertemplate.ErrFilterExists) {
			return fmt.Errorf("register filter %s: %w", name, err)
		}
	}
	return templates.GlobalContext(map[string]any{
		"runtimeId": effects.RuntimeConfigElementID,
	})
}

// telHref keeps a leading plus and the digits of a phone number, the form a
// tel: link expects.
func telHref(input any, _ any) (any, error) {
	raw := strings.TrimSpace(fmt.Sprint(input))
	var b strings.Builder
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// stars renders a rating as filled and empty stars, clamped to 0..5.
func stars(input any, _ any) (any, error) {
	n, err := toInt(input)
	if err != nil {
		return nil, fmt.Errorf("stars: %w", err)
	}
	n = min(max(n, 0), maxStars)
	return strings.Repeat("★", n) + strings.Repeat("☆", maxStars-n), nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	default:
		return 0, fmt.Errorf("unsupported rating %T", v)
	}
}
