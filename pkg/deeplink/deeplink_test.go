package deeplink

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWhatsApp_DefaultLink(t *testing.T) {
	got, err := WhatsApp(PlaceholderRecipient, "")
	if err != nil {
		t.Fatalf("whatsapp: %v", err)
	}
	want := "https://wa.me/905551234567?text=Merhaba!%20Hafriyat%20hizmetleri%20hakk%C4%B1nda%20bilgi%20almak%20istiyorum.%20Te%C5%9Fekk%C3%BCrler."
	if got != want {
		t.Fatalf("unexpected link\nwant %s\n got %s", want, got)
	}
}

func TestWhatsApp_NormalizesRecipient(t *testing.T) {
	got, err := WhatsApp("+90 (555) 123-45-67", "Selam")
	if err != nil {
		t.Fatalf("whatsapp: %v", err)
	}
	if got != "https://wa.me/905551234567?text=Selam" {
		t.Fatalf("unexpected link %s", got)
	}
}

func TestWhatsApp_RejectsInvalidRecipients(t *testing.T) {
	cases := map[string]error{
		"":             ErrEmptyRecipient,
		"  + ":         ErrEmptyRecipient,
		"90555abc4567": ErrInvalidRecipient,
		"90.555":       ErrInvalidRecipient,
	}
	for recipient, want := range cases {
		if _, err := WhatsApp(recipient, "x"); !errors.Is(err, want) {
			t.Fatalf("recipient %q: expected %v, got %v", recipient, want, err)
		}
	}
}

func TestParse_RoundTrip(t *testing.T) {
	messages := []string{
		DefaultMessage,
		"Kazı & döküm? 50% indirim + nakliye (İstanbul) #1",
		"satır\nsatır",
	}
	for _, message := range messages {
		link, err := WhatsApp("905321112233", message)
		if err != nil {
			t.Fatalf("whatsapp: %v", err)
		}
		got, err := Parse(link)
		if err != nil {
			t.Fatalf("parse %s: %v", link, err)
		}
		want := Link{Recipient: "905321112233", Message: message}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestParse_RejectsOtherHosts(t *testing.T) {
	if _, err := Parse("https://example.com/905551234567?text=x"); !errors.Is(err, ErrNotWhatsApp) {
		t.Fatalf("expected ErrNotWhatsApp, got %v", err)
	}
}

func TestIsPlaceholder(t *testing.T) {
	if !IsPlaceholder("+90 555 123 45 67") {
		t.Fatalf("formatted placeholder must be detected")
	}
	if IsPlaceholder("905321112233") {
		t.Fatalf("real number reported as placeholder")
	}
}

func TestEscapeComponent(t *testing.T) {
	cases := map[string]string{
		"a b":     "a%20b",
		"(x)!*'":  "(x)!*'",
		"a+b=c&d": "a%2Bb%3Dc%26d",
		"ğüşiöç":  "%C4%9F%C3%BC%C5%9Fi%C3%B6%C3%A7",
		"-_.~":    "-_.~",
	}
	for in, want := range cases {
		if got := EscapeComponent(in); got != want {
			t.Fatalf("EscapeComponent(%q) = %q, want %q", in, got, want)
		}
	}
}
