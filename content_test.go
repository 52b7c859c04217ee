package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSite(t *testing.T) {
	t.Run("BuiltIn", func(t *testing.T) {
		site, err := LoadSite("")
		require.NoError(t, err)

		assert.Equal(t, "Jan Novák", site.Name)
		assert.Equal(t, "Jan Novák | Web Developer & Designer", site.Title)
		require.Len(t, site.Nav, 2)
		assert.Equal(t, NavLink{Href: "#about", Label: "O mně"}, site.Nav[0])
		assert.Equal(t, NavLink{Href: "#contact", Label: "Kontakt"}, site.Nav[1])
		assert.Len(t, site.About.Services, 3)
		assert.Contains(t, string(site.AboutHTML), "<p>")
		assert.Equal(t, "https://cdn.jsdelivr.net/npm/@tabler/icons@latest/icons/mail.svg", site.IconURL("mail"))
	})

	t.Run("FromFile", func(t *testing.T) {
		data := strings.Replace(string(defaultContent), "name: Jan Novák", "name: Eva Nováková", 1)
		path := filepath.Join(t.TempDir(), "content.yaml")
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		site, err := LoadSite(path)
		require.NoError(t, err)
		assert.Equal(t, "Eva Nováková", site.Name)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadSite(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("NavMustStayInPage", func(t *testing.T) {
		data := strings.Replace(string(defaultContent), `href: "#about"`, `href: "https://example.com"`, 1)
		_, err := parseSite([]byte(data))
		assert.ErrorIs(t, err, ErrInvalidContent)
	})

	t.Run("ContactSchemes", func(t *testing.T) {
		data := strings.Replace(string(defaultContent), "href: tel:+420123456789", "href: javascript:alert(1)", 1)
		_, err := parseSite([]byte(data))
		assert.ErrorIs(t, err, ErrInvalidContent)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := parseSite([]byte("nav: ["))
		assert.ErrorIs(t, err, ErrInvalidContent)
	})
}

func TestRenderMarkdown(t *testing.T) {
	html, err := renderMarkdown("Hello **world**\n\n<script>alert(1)</script>")
	require.NoError(t, err)
	assert.Contains(t, string(html), "<strong>world</strong>")
	assert.NotContains(t, string(html), "<script>")
}
