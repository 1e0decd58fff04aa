package entities

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavbar_Render(t *testing.T) {
	navbar := NewNavbar("Basic web technologies",
		NewLink("Docs", "https://example.com/docs"),
		Social(SocialGitHub).WithURL("https://github.com/descent098"),
	)

	html, err := navbar.Render()
	require.NoError(t, err)

	assert.Contains(t, html, `<header role="banner">`)
	assert.Contains(t, html, `title="Basic web technologies">Basic web technologies</a></p>`)
	assert.Equal(t, 2, strings.Count(html, "<li>"))
	assert.Contains(t, html, "style='background-color:#fff; color:#141414;'>Docs</a>")
	assert.Less(t, strings.Index(html, "Docs"), strings.Index(html, "fa-github"))
	assert.True(t, strings.Contains(html, "</nav>") && strings.Contains(html, "</header>"))
}

func TestNavbar_RenderRejectsInvalidItems(t *testing.T) {
	tests := []struct {
		name    string
		items   []NavItem
		wantErr bool
	}{
		{name: "links only", items: []NavItem{NewLink("a", "b")}},
		{name: "social only", items: []NavItem{Social(SocialTwitch)}},
		{name: "empty", items: nil},
		{name: "nil item", items: []NavItem{NewLink("a", "b"), nil}, wantErr: true},
		{name: "nil link pointer", items: []NavItem{NewLink("a", "b"), (*Link)(nil)}, wantErr: true},
		{name: "nil social pointer", items: []NavItem{NewLink("a", "b"), (*SocialLink)(nil)}, wantErr: true},
		{name: "link pointer", items: []NavItem{NewLink("a", "b"), &Link{Label: "c"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := NewNavbar("title", tt.items...).Render()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidNavItem)
				assert.Contains(t, err.Error(), "item 1")
				assert.Empty(t, html)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNavbar_RenderPropagatesItemErrors(t *testing.T) {
	_, err := NewNavbar("title", SocialLink{Kind: SocialKind(-1)}).Render()
	assert.ErrorIs(t, err, ErrUnknownSocialKind)
}

func TestFooter_Render(t *testing.T) {
	footer := NewFooter(Social(SocialLinkedIn).WithURL("https://linkedin.com/in/x"), NewLink("Home", "/"))

	html, err := footer.Render()
	require.NoError(t, err)
	assert.Contains(t, html, "<footer>")
	assert.Contains(t, html, "</footer>")
	assert.Contains(t, html, "fa-linkedin")
	assert.Contains(t, html, ">Home</a>")

	_, err = NewFooter(nil).Render()
	assert.ErrorIs(t, err, ErrInvalidNavItem)
}
