package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/fredcamaral/ezprez/internal/domain/entities"
	"github.com/fredcamaral/ezprez/internal/domain/ports"
)

// Converter renders markdown slide content using Goldmark
type Converter struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// Option configures a Converter
type Option func(*Converter)

// WithSanitizer strips markup outside the slide-safe element set from the
// rendered HTML
func WithSanitizer() Option {
	return func(c *Converter) { c.policy = newSlidePolicy() }
}

// NewConverter creates a markdown converter. Raw HTML in the source is
// kept unless WithSanitizer is given.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert renders source to an HTML fragment
func (c *Converter) Convert(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}

	if c.policy != nil {
		return c.policy.Sanitize(buf.String()), nil
	}
	return buf.String(), nil
}

// Block wraps source as a slide component. Conversion happens at render time.
func (c *Converter) Block(source string) entities.Component {
	return Block{Source: source, converter: c}
}

// Block is a markdown slide component
type Block struct {
	Source    string
	converter *Converter
}

// Render renders the markdown source
func (b Block) Render() (string, error) {
	if b.converter == nil {
		return "", fmt.Errorf("%w: markdown block without converter", entities.ErrUnsupportedContent)
	}
	out, err := b.converter.Convert([]byte(b.Source))
	if err != nil {
		return "", err
	}
	return "\t\t\t\t<div class='content-markdown'>\n" + out + "\t\t\t\t</div>\n", nil
}

// newSlidePolicy allows the markup goldmark produces for slide bodies
func newSlidePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre", "span", "div")
	p.AllowAttrs("id").Matching(bluemonday.Paragraph).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("type", "checked", "disabled").OnElements("input")
	p.AllowElements("input")

	return p
}

// Ensure Converter implements ports.MarkdownConverter
var _ ports.MarkdownConverter = (*Converter)(nil)
