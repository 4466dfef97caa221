// Package content loads the site copy (company details, services, gallery,
// testimonials and contact information) from YAML files.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed site/*
var embeddedSite embed.FS

// EmbeddedFS returns the bundled site content.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedSite, "site")
	if err != nil {
		panic(err)
	}
	return sub
}

// Site is the complete page copy.
type Site struct {
	Company      Company       `yaml:"company" json:"company"`
	Hero         Hero          `yaml:"hero" json:"hero"`
	Services     []Service     `yaml:"services" json:"services"`
	Gallery      []GalleryItem `yaml:"gallery" json:"gallery"`
	Testimonials []Testimonial `yaml:"testimonials" json:"testimonials"`
	Contact      Contact       `yaml:"contact" json:"contact"`
}

// Company describes the business.
type Company struct {
	Name        string `yaml:"name" json:"name"`
	Tagline     string `yaml:"tagline" json:"tagline"`
	Description string `yaml:"description" json:"description"`
}

// Hero is the top banner.
type Hero struct {
	Title     string `yaml:"title" json:"title"`
	Subtitle  string `yaml:"subtitle" json:"subtitle"`
	CTALabel  string `yaml:"cta_label" json:"ctaLabel"`
	CTATarget string `yaml:"cta_target" json:"ctaTarget"`
}

// Service is a card in the services section. Icon holds sanitised SVG
// markup.
type Service struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon,omitempty"`
}

// GalleryItem is a lazily loaded image. Thumbnail is rendered as src and
// Image as data-src.
type GalleryItem struct {
	Title     string `yaml:"title" json:"title"`
	Image     string `yaml:"image" json:"image"`
	Thumbnail string `yaml:"thumbnail" json:"thumbnail,omitempty"`
}

// Testimonial is a customer quote.
type Testimonial struct {
	Author string `yaml:"author" json:"author"`
	Role   string `yaml:"role" json:"role,omitempty"`
	Quote  string `yaml:"quote" json:"quote"`
	Rating int    `yaml:"rating" json:"rating,omitempty"`
}

// Stars returns the rating clamped to 0..5.
func (t Testimonial) Stars() int {
	switch {
	case t.Rating < 0:
		return 0
	case t.Rating > 5:
		return 5
	default:
		return t.Rating
	}
}

// Contact lists the business contact details.
type Contact struct {
	Phone   string `yaml:"phone" json:"phone"`
	Email   string `yaml:"email" json:"email"`
	Address string `yaml:"address" json:"address"`
	Hours   string `yaml:"hours" json:"hours,omitempty"`
}

// LoadDefault loads the embedded content.
func LoadDefault() (Site, error) {
	return LoadFS(EmbeddedFS())
}

// LoadDir loads content from a directory. An empty dir uses the embedded
// content.
func LoadDir(dir string) (Site, error) {
	if strings.TrimSpace(dir) == "" {
		return LoadDefault()
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads every YAML file in fsys in lexical order and merges them:
// lists are appended and non-empty scalars override earlier values.
func LoadFS(fsys fs.FS) (Site, error) {
	var site Site
	if fsys == nil {
		return site, nil
	}

	var files []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isContentFile(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return Site{}, fmt.Errorf("content: walk: %w", err)
	}
	sort.Strings(files)

	for _, path := range files {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return Site{}, fmt.Errorf("content: read %s: %w", path, err)
		}
		var part Site
		if err := yaml.Unmarshal(data, &part); err != nil {
			return Site{}, fmt.Errorf("content: parse %s: %w", path, err)
		}
		site.merge(part)
	}

	for i := range site.Services {
		site.Services[i].Icon = SanitizeIcon(site.Services[i].Icon)
	}
	return site, nil
}

func (s *Site) merge(other Site) {
	mergeString(&s.Company.Name, other.Company.Name)
	mergeString(&s.Company.Tagline, other.Company.Tagline)
	mergeString(&s.Company.Description, other.Company.Description)
	mergeString(&s.Hero.Title, other.Hero.Title)
	mergeString(&s.Hero.Subtitle, other.Hero.Subtitle)
	mergeString(&s.Hero.CTALabel, other.Hero.CTALabel)
	mergeString(&s.Hero.CTATarget, other.Hero.CTATarget)
	mergeString(&s.Contact.Phone, other.Contact.Phone)
	mergeString(&s.Contact.Email, other.Contact.Email)
	mergeString(&s.Contact.Address, other.Contact.Address)
	mergeString(&s.Contact.Hours, other.Contact.Hours)

	s.Services = append(s.Services, other.Services...)
	s.Gallery = append(s.Gallery, other.Gallery...)
	s.Testimonials = append(s.Testimonials, other.Testimonials...)
}

func mergeString(dst *string, value string) {
	if strings.TrimSpace(value) != "" {
		*dst = value
	}
}

func isContentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
