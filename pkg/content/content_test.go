package content

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefault(t *testing.T) {
	site, err := LoadDefault()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if site.Company.Name != "Ayaz Hafriyat" {
		t.Fatalf("unexpected company %q", site.Company.Name)
	}
	if len(site.Services) != 4 || len(site.Gallery) != 3 || len(site.Testimonials) != 3 {
		t.Fatalf("unexpected section sizes: %d services, %d gallery, %d testimonials",
			len(site.Services), len(site.Gallery), len(site.Testimonials))
	}
	for _, svc := range site.Services {
		if !strings.HasPrefix(svc.Icon, "<svg") {
			t.Fatalf("service %q lost its icon: %q", svc.Title, svc.Icon)
		}
	}
}

func TestLoadFS_MergesFilesInOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": &fstest.MapFile{Data: []byte(`
company: {name: Ayaz, tagline: Eski}
services:
  - title: Kazı
`)},
		"b.yml": &fstest.MapFile{Data: []byte(`
company: {tagline: Yeni}
services:
  - title: Yıkım
`)},
		"notes.txt": &fstest.MapFile{Data: []byte("ignored")},
	}

	site, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Company{Name: "Ayaz", Tagline: "Yeni"}
	if diff := cmp.Diff(want, site.Company); diff != "" {
		t.Fatalf("company mismatch (-want +got):\n%s", diff)
	}
	if len(site.Services) != 2 || site.Services[0].Title != "Kazı" || site.Services[1].Title != "Yıkım" {
		t.Fatalf("unexpected services %+v", site.Services)
	}
}

func TestLoadFS_ReportsParseErrors(t *testing.T) {
	fsys := fstest.MapFS{"broken.yaml": &fstest.MapFile{Data: []byte("services: [")}}
	if _, err := LoadFS(fsys); err == nil || !strings.Contains(err.Error(), "broken.yaml") {
		t.Fatalf("expected parse error naming the file, got %v", err)
	}
}

func TestSanitizeIcon(t *testing.T) {
	raw := `<svg xmlns="http://www.w3.org/2000/svg" onload="alert(1)"><script>alert(2)</script><path d="M0 0h24" onclick="x()"/><foreignObject><div>hi</div></foreignObject></svg>`
	got := SanitizeIcon(raw)

	for _, banned := range []string{"onload", "script", "onclick", "foreignObject", "alert"} {
		if strings.Contains(got, banned) {
			t.Fatalf("sanitised icon still contains %q: %s", banned, got)
		}
	}
	if !strings.Contains(got, "<svg") || !strings.Contains(got, `d="M0 0h24"`) {
		t.Fatalf("sanitised icon lost drawing markup: %s", got)
	}
	if SanitizeIcon("   ") != "" {
		t.Fatalf("blank icon must stay empty")
	}
}

func TestSanitizeText(t *testing.T) {
	if got := SanitizeText(`<b>Hata</b><script>x</script>`); got != "Hata" {
		t.Fatalf("unexpected sanitised text %q", got)
	}
}

func TestTestimonialStars(t *testing.T) {
	cases := map[int]int{-1: 0, 0: 0, 3: 3, 9: 5}
	for rating, want := range cases {
		if got := (Testimonial{Rating: rating}).Stars(); got != want {
			t.Fatalf("rating %d: got %d, want %d", rating, got, want)
		}
	}
}
