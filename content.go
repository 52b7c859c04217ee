package main

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// ErrInvalidContent is returned when the site content fails validation.
var ErrInvalidContent = errors.New("invalid site content")

// NavLink is an in-page navigation target.
type NavLink struct {
	Href  string `yaml:"href" validate:"required,startswith=#"`
	Label string `yaml:"label" validate:"required"`
}

type Link struct {
	Href  string `yaml:"href" validate:"required"`
	Label string `yaml:"label" validate:"required"`
}

type Service struct {
	Title       string `yaml:"title" validate:"required"`
	Description string `yaml:"description" validate:"required"`
}

// ContactItem is one row of the contact section. Items without an href render as plain text.
type ContactItem struct {
	Label string `yaml:"label" validate:"required"`
	Icon  string `yaml:"icon" validate:"required"`
	Value string `yaml:"value" validate:"required"`
	Href  string `yaml:"href" validate:"omitempty,startswith=mailto:|startswith=tel:"`
}

type Site struct {
	Name     string    `yaml:"name" validate:"required"`
	Title    string    `yaml:"title" validate:"required"`
	Lang     string    `yaml:"lang" validate:"required"`
	IconBase string    `yaml:"iconBase" validate:"required,url"`
	Nav      []NavLink `yaml:"nav" validate:"required,min=1,dive"`

	Hero struct {
		Tagline string  `yaml:"tagline" validate:"required"`
		CTA     NavLink `yaml:"cta"`
	} `yaml:"hero"`

	About struct {
		Heading  string    `yaml:"heading" validate:"required"`
		Body     string    `yaml:"body" validate:"required"`
		Services []Service `yaml:"services" validate:"dive"`
	} `yaml:"about"`

	Contact struct {
		Heading string        `yaml:"heading" validate:"required"`
		Intro   string        `yaml:"intro"`
		Items   []ContactItem `yaml:"items" validate:"dive"`
	} `yaml:"contact"`

	Footer struct {
		Rights string `yaml:"rights" validate:"required"`
		Credit struct {
			Href  string `yaml:"href" validate:"required,url"`
			Label string `yaml:"label" validate:"required"`
		} `yaml:"credit"`
	} `yaml:"footer"`

	// AboutHTML is the sanitized rendering of About.Body.
	AboutHTML template.HTML `yaml:"-"`
}

// LoadSite reads the content file at path, or the built-in content when path is empty.
func LoadSite(path string) (*Site, error) {
	data := defaultContent
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read content: %w", err)
		}
	}
	return parseSite(data)
}

func parseSite(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	if err := validator.New().Struct(site); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}

	html, err := renderMarkdown(site.About.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: about: %v", ErrInvalidContent, err)
	}
	site.AboutHTML = html
	return &site, nil
}

// renderMarkdown converts Markdown to HTML and strips anything a visitor's
// browser should not execute.
func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(bluemonday.UGCPolicy().SanitizeBytes(buf.Bytes())), nil
}

// IconURL resolves a CDN icon name.
func (s *Site) IconURL(name string) string {
	return s.IconBase + name + ".svg"
}
