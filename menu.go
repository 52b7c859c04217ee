package main

// menuParam is the query parameter carrying the mobile menu state of a page view.
const (
	menuParam = "menu"
	menuOpen  = "open"
)

// Menu is the open/closed state of the full-screen mobile navigation.
// The zero value is closed.
type Menu struct {
	open bool
}

// menuFromQuery restores the state a page view was requested with.
func menuFromQuery(v string) Menu {
	return Menu{open: v == menuOpen}
}

func (m Menu) IsOpen() bool {
	return m.open
}

// Toggle flips the menu.
func (m *Menu) Toggle() {
	m.open = !m.open
}

// Close forces the menu shut.
func (m *Menu) Close() {
	m.open = false
}

// Follow activates a navigation link: the menu closes and the link's target is returned.
func (m *Menu) Follow(link NavLink) string {
	m.Close()
	return link.Href
}

// Href is the page URL that renders this menu state.
func (m Menu) Href() string {
	if m.open {
		return "/?" + menuParam + "=" + menuOpen
	}
	return "/"
}

// ToggleHref is where the toggle button leads: the page in the opposite state.
func (m Menu) ToggleHref() string {
	m.Toggle()
	return m.Href()
}

// CloseHref is where the overlay's close button leads.
func (m Menu) CloseHref() string {
	m.Close()
	return m.Href()
}

// LinkHref is the overlay target of a navigation link. Following it always
// lands on the closed page, scrolled to the link's section.
func (m Menu) LinkHref(link NavLink) string {
	target := m.Follow(link)
	if target == "#" {
		return m.Href()
	}
	return m.Href() + target
}
