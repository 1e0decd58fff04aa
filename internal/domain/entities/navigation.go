package entities

import (
	"fmt"
	"strings"
)

// NavItem is an entry of a navbar or footer. Only Link and SocialLink
// implement it.
type NavItem interface {
	Component
	renderNav() (string, error)
}

func (l Link) renderNav() (string, error) {
	return l.render(true), nil
}

func (s SocialLink) renderNav() (string, error) {
	return s.render(true)
}

// renderNavItems validates every item before rendering any of them so a bad
// item never produces partial output
func renderNavItems(items []NavItem) ([]string, error) {
	for i, item := range items {
		switch item.(type) {
		case Link, SocialLink:
		default:
			// pointer variants satisfy the interface too; only values are valid
			return nil, fmt.Errorf("item %d (%T): %w", i, item, ErrInvalidNavItem)
		}
	}

	rendered := make([]string, 0, len(items))
	for i, item := range items {
		html, err := item.renderNav()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		rendered = append(rendered, html)
	}
	return rendered, nil
}

// Navbar is the header shown above every slide
type Navbar struct {
	Title string    `json:"title"`
	Items []NavItem `json:"-"`
}

// NewNavbar creates a navbar with a title and ordered links
func NewNavbar(title string, items ...NavItem) *Navbar {
	return &Navbar{Title: title, Items: items}
}

// Render renders the navbar
func (n *Navbar) Render() (string, error) {
	items, err := renderNavItems(n.Items)
	if err != nil {
		return "", fmt.Errorf("navbar: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `
        <header role="banner">
            <nav role="navigation">
                <p class="logo"><a href="" target="_blank" title="%s">%s</a></p>
                <ul>
        `, n.Title, n.Title)
	for _, item := range items {
		fmt.Fprintf(&b, "\n\t\t\t\t\t<li>%s</li>\n", item)
	}
	b.WriteString(`
                </ul>
            </nav>
        </header>
        `)
	return b.String(), nil
}

// Footer is shown below every slide
type Footer struct {
	Items []NavItem `json:"-"`
}

// NewFooter creates a footer with ordered links
func NewFooter(items ...NavItem) *Footer {
	return &Footer{Items: items}
}

// Render renders the footer
func (f *Footer) Render() (string, error) {
	items, err := renderNavItems(f.Items)
	if err != nil {
		return "", fmt.Errorf("footer: %w", err)
	}

	var b strings.Builder
	b.WriteString("\n        <footer>\n        ")
	for _, item := range items {
		fmt.Fprintf(&b, "\n\t\t\t%s\n", item)
	}
	b.WriteString("\n        </footer>\n\n        ")
	return b.String(), nil
}

var (
	_ NavItem   = Link{}
	_ NavItem   = SocialLink{}
	_ Component = (*Navbar)(nil)
	_ Component = (*Footer)(nil)
)
