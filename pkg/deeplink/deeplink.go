// Package deeplink builds the one-click WhatsApp chat link shown by the
// floating button and served by the /whatsapp redirect.
package deeplink

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	// PlaceholderRecipient is the number shipped with the site until the
	// business configures its real WhatsApp number.
	PlaceholderRecipient = "905551234567"

	// DefaultMessage is the pre-filled chat text.
	DefaultMessage = "Merhaba! Hafriyat hizmetleri hakkında bilgi almak istiyorum. Teşekkürler."

	baseURL = "https://wa.me/"
)

var (
	// ErrEmptyRecipient is returned when no recipient digits remain after
	// normalisation.
	ErrEmptyRecipient = errors.New("deeplink: recipient is empty")

	// ErrInvalidRecipient is returned when the recipient contains anything
	// other than digits and formatting characters.
	ErrInvalidRecipient = errors.New("deeplink: recipient must contain digits only")

	// ErrNotWhatsApp is returned by Parse for links that do not point at wa.me.
	ErrNotWhatsApp = errors.New("deeplink: not a wa.me link")
)

// Link is a parsed WhatsApp deep link.
type Link struct {
	Recipient string
	Message   string
}

// String renders the link.
func (l Link) String() string {
	return baseURL + l.Recipient + "?text=" + EscapeComponent(l.Message)
}

// WhatsApp validates the recipient and returns the chat link with message
// pre-filled. An empty message falls back to DefaultMessage.
func WhatsApp(recipient, message string) (string, error) {
	normalized, err := NormalizeRecipient(recipient)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(message) == "" {
		message = DefaultMessage
	}
	return Link{Recipient: normalized, Message: message}.String(), nil
}

// MustWhatsApp is WhatsApp for compile-time constants; it panics on an
// invalid recipient.
func MustWhatsApp(recipient, message string) string {
	link, err := WhatsApp(recipient, message)
	if err != nil {
		panic(err)
	}
	return link
}

// NormalizeRecipient strips a leading plus, spaces, hyphens and parentheses
// and requires the remainder to be digits.
func NormalizeRecipient(recipient string) (string, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(recipient) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return "", fmt.Errorf("%w: %q", ErrInvalidRecipient, recipient)
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyRecipient
	}
	return b.String(), nil
}

// IsPlaceholder reports whether recipient is still the shipped placeholder.
func IsPlaceholder(recipient string) bool {
	normalized, err := NormalizeRecipient(recipient)
	return err == nil && normalized == PlaceholderRecipient
}

// Parse recovers recipient and message from a link produced by WhatsApp.
func Parse(raw string) (Link, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Link{}, fmt.Errorf("deeplink: parse %q: %w", raw, err)
	}
	if u.Host != "wa.me" {
		return Link{}, fmt.Errorf("%w: %q", ErrNotWhatsApp, raw)
	}
	recipient, err := NormalizeRecipient(strings.Trim(u.Path, "/"))
	if err != nil {
		return Link{}, err
	}
	return Link{Recipient: recipient, Message: u.Query().Get("text")}, nil
}

// EscapeComponent percent-encodes s the way browsers encode URI components:
// spaces become %20 and the marks !'()* stay literal.
func EscapeComponent(s string) string {
	escaped := url.QueryEscape(s)
	return componentReplacer.Replace(escaped)
}

var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)
