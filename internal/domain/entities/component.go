package entities

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Component is anything that can render itself into an HTML fragment
type Component interface {
	Render() (string, error)
}

// headerStyle is applied to links rendered inside a navbar or footer
const headerStyle = "background-color:#fff; color:#141414;"

// Link is a labelled web link
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// NewLink creates a link showing label and pointing at url
func NewLink(label, url string) Link {
	return Link{Label: label, URL: url}
}

// Render renders the link for use inside slide content
func (l Link) Render() (string, error) {
	return l.render(false), nil
}

func (l Link) render(header bool) string {
	if header {
		return fmt.Sprintf("\n\t\t\t\t\t<a href='%s' target='_blank' rel='external' style='%s'>%s</a>\n", l.URL, headerStyle, l.Label)
	}
	return fmt.Sprintf("\n\t\t\t\t\t<a href='%s' target='_blank' rel='external'>%s</a>\n", l.URL, l.Label)
}

// SocialKind identifies a supported social network
type SocialKind int

const (
	SocialYouTube SocialKind = iota
	SocialGitHub
	SocialTwitter
	SocialLinkedIn
	SocialTwitch
)

var socialKindNames = [...]string{
	SocialYouTube:  "youtube",
	SocialGitHub:   "github",
	SocialTwitter:  "twitter",
	SocialLinkedIn: "linkedin",
	SocialTwitch:   "twitch",
}

// SocialKinds returns every supported kind in declaration order
func SocialKinds() []SocialKind {
	return []SocialKind{SocialYouTube, SocialGitHub, SocialTwitter, SocialLinkedIn, SocialTwitch}
}

// ParseSocialKind resolves a social network name such as "github"
func ParseSocialKind(name string) (SocialKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for kind, kindName := range socialKindNames {
		if kindName == normalized {
			return SocialKind(kind), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSocialKind, name)
}

// Valid reports whether k is one of the supported kinds
func (k SocialKind) Valid() bool {
	return k >= 0 && int(k) < len(socialKindNames)
}

// String returns the kind name used in the icon CSS class
func (k SocialKind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return socialKindNames[k]
}

// Title returns a human readable name for the kind
func (k SocialKind) Title() string {
	return cases.Title(language.English).String(k.String())
}

// SocialLink is a social network icon, optionally linked to a profile URL.
// It is a plain value: WithURL returns a copy and never affects other links
// built from the same kind.
type SocialLink struct {
	Kind SocialKind `json:"kind"`
	URL  string     `json:"url,omitempty"`
}

// Social creates an icon-only social link for kind
func Social(kind SocialKind) SocialLink {
	return SocialLink{Kind: kind}
}

// WithURL returns a copy of the social link pointing at url
func (s SocialLink) WithURL(url string) SocialLink {
	s.URL = url
	return s
}

// Render renders the social link for use inside slide content
func (s SocialLink) Render() (string, error) {
	return s.render(false)
}

func (s SocialLink) render(header bool) (string, error) {
	if !s.Kind.Valid() {
		return "", fmt.Errorf("%w: %d", ErrUnknownSocialKind, int(s.Kind))
	}

	icon := fmt.Sprintf("<i class='fab fa-%s fa-3x'></i>", s.Kind)
	if s.URL == "" {
		if header {
			icon = fmt.Sprintf("<i class='fab fa-%s fa-3x' style='%s'></i>", s.Kind, headerStyle)
		}
		return "\n\t\t\t\t\t" + icon + "\n", nil
	}

	style := ""
	if header {
		style = fmt.Sprintf(" style='%s'", headerStyle)
	}
	return fmt.Sprintf("\n\t\t\t\t\t<a href='%s' target='_blank' rel='external' title='%s'%s>\n\t\t\t\t\t\t%s\n\t\t\t\t\t</a>\n",
		s.URL, s.Kind.Title(), style, icon), nil
}

// DefaultIconSize is used when an icon is created without a size
const DefaultIconSize = "48px"

// Icon is an SVG icon from the bundled icon sprite, e.g. "fa-heart"
type Icon struct {
	Label string `json:"label"`
	Size  string `json:"size"`
}

// NewIcon creates an icon with the default size
func NewIcon(label string) Icon {
	return Icon{Label: label, Size: DefaultIconSize}
}

// WithSize returns a copy of the icon with a different size, e.g. "60px"
func (i Icon) WithSize(size string) Icon {
	i.Size = size
	return i
}

// Render renders the icon
func (i Icon) Render() (string, error) {
	size := i.Size
	if size == "" {
		size = DefaultIconSize
	}
	return fmt.Sprintf("\t\t\t\t\t<svg class='%s' style='width:%s;height:%s;'><use xlink:href='#%s'></use></svg>\n",
		i.Label, size, size, i.Label), nil
}

// codeEscaper replaces the five HTML special characters. The ampersand is
// handled in the same pass so already produced entities are never touched.
var codeEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// CodeBlock is a syntax highlighted code sample
type CodeBlock struct {
	Language string `json:"language"`
	Source   string `json:"source"`
}

// NewCodeBlock creates a code block; language is any highlight.js language tag
func NewCodeBlock(language, source string) CodeBlock {
	return CodeBlock{Language: language, Source: source}
}

// Escaped returns the HTML-escaped source without modifying the block
func (c CodeBlock) Escaped() string {
	return codeEscaper.Replace(c.Source)
}

// Render renders the code block
func (c CodeBlock) Render() (string, error) {
	return fmt.Sprintf("\t\t\t\t\t<pre><code class='language-%s'>%s</code></pre>\n",
		strings.ToLower(c.Language), c.Escaped()), nil
}

// RawFragment is trusted, pre-formatted HTML emitted verbatim
type RawFragment struct {
	Content string `json:"content"`
}

// Raw creates a raw HTML fragment
func Raw(content string) RawFragment {
	return RawFragment{Content: content}
}

// Render returns the content unchanged
func (r RawFragment) Render() (string, error) {
	return r.Content, nil
}

// TOCEntry maps a section label to the slide number it starts on
type TOCEntry struct {
	Label string `json:"label"`
	Slide int    `json:"slide"`
}

// TableOfContents lists presentation sections in caller order
type TableOfContents struct {
	Entries []TOCEntry `json:"entries"`
}

// NewTableOfContents creates a table of contents from ordered entries
func NewTableOfContents(entries ...TOCEntry) TableOfContents {
	return TableOfContents{Entries: entries}
}

// Render renders an ordered list of anchors to the listed slides
func (t TableOfContents) Render() (string, error) {
	var b strings.Builder
	b.WriteString("\n\t\t<hr>\n\t\t<div class='toc'>\n\t\t\t<ol>")
	for _, entry := range t.Entries {
		fmt.Fprintf(&b, "\n\t\t\t\t<li>\n\t\t\t\t\t<a href='#slide=%d' title='Go to %s'>\n\t\t\t\t\t<span class='chapter'>%s</span>\n\t\t\t\t\t<span class='toc-page'>%d</span>\n\t\t\t\t</a></li>",
			entry.Slide, entry.Label, entry.Label, entry.Slide)
	}
	b.WriteString("\n\t\t\t</ol>\n\t\t</div>\n")
	return b.String(), nil
}

var (
	_ Component = Link{}
	_ Component = SocialLink{}
	_ Component = Icon{}
	_ Component = CodeBlock{}
	_ Component = RawFragment{}
	_ Component = TableOfContents{}
)
