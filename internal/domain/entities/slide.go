package entities

import (
	"fmt"
	"reflect"
	"strings"
)

// Content is one item of a slide body: Text, Bullets or an embedded Component
type Content interface {
	isContent()
}

// Text is rendered as a paragraph
type Text string

// Bullets is rendered as an unordered list, one item per entry
type Bullets []string

// Embedded wraps a Component placed in a slide body
type Embedded struct {
	Component Component
}

// Embed places a component in a slide body
func Embed(c Component) Embedded {
	return Embedded{Component: c}
}

func (Text) isContent()     {}
func (Bullets) isContent()  {}
func (Embedded) isContent() {}

// HorizontalAlign is the WebSlides horizontal alignment class of a slide
type HorizontalAlign string

const (
	AlignDefault HorizontalAlign = ""
	AlignLeft    HorizontalAlign = "alignleft"
	AlignCenter  HorizontalAlign = "aligncenter"
	AlignRight   HorizontalAlign = "alignright"
)

// ParseHorizontalAlign accepts left, center or right (or the class names)
func ParseHorizontalAlign(s string) (HorizontalAlign, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return AlignDefault, nil
	case "left", string(AlignLeft):
		return AlignLeft, nil
	case "center", "centre", string(AlignCenter):
		return AlignCenter, nil
	case "right", string(AlignRight):
		return AlignRight, nil
	default:
		return AlignDefault, fmt.Errorf("invalid horizontal alignment: %q (must be left, center or right)", s)
	}
}

// VerticalAlign is the WebSlides vertical alignment class of a slide
type VerticalAlign string

const (
	VAlignDefault VerticalAlign = ""
	VAlignTop     VerticalAlign = "slide-top"
	VAlignBottom  VerticalAlign = "slide-bottom"
)

// ParseVerticalAlign accepts top, middle or bottom (or the class names).
// Middle is the template default and maps to no class.
func ParseVerticalAlign(s string) (VerticalAlign, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default", "middle", "center":
		return VAlignDefault, nil
	case "top", string(VAlignTop):
		return VAlignTop, nil
	case "bottom", string(VAlignBottom):
		return VAlignBottom, nil
	default:
		return VAlignDefault, fmt.Errorf("invalid vertical alignment: %q (must be top, middle or bottom)", s)
	}
}

// Slide is a single section of a presentation
type Slide struct {
	// Heading is shown as the slide's h2
	Heading string `json:"heading"`

	// Contents are rendered in order below the heading
	Contents []Content `json:"-"`

	// Background is a WebSlides color name such as "black"; empty inherits
	// the presentation background
	Background string `json:"background,omitempty"`

	HAlign HorizontalAlign `json:"halign,omitempty"`
	VAlign VerticalAlign   `json:"valign,omitempty"`

	// Image is an optional background image path or URL
	Image string `json:"image,omitempty"`
}

// NewSlide creates a slide with a heading and ordered content
func NewSlide(heading string, contents ...Content) *Slide {
	return &Slide{Heading: heading, Contents: contents}
}

// classes returns the class attribute value of the slide's section
func (s *Slide) classes() string {
	classes := []string{"bg-" + s.Background}
	if s.VAlign != VAlignDefault {
		classes = append(classes, string(s.VAlign))
	}
	if s.HAlign != AlignDefault {
		classes = append(classes, string(s.HAlign))
	}
	return strings.Join(classes, " ")
}

// Render renders the slide as a single section
func (s *Slide) Render() (string, error) {
	var b strings.Builder

	style := ""
	if s.Image != "" {
		style = fmt.Sprintf(` style="background-image:url('%s')"`, s.Image)
	}
	fmt.Fprintf(&b, "\n\t\t\t<section class='%s'%s>\n\t\t\t\t<h2>%s</h2>\n", s.classes(), style, s.Heading)

	for i, content := range s.Contents {
		if err := renderContent(&b, content); err != nil {
			return "", fmt.Errorf("slide %q content %d: %w", s.Heading, i, err)
		}
	}

	b.WriteString("\t\t\t</section>\n")
	return b.String(), nil
}

func renderContent(b *strings.Builder, content Content) error {
	switch c := content.(type) {
	case Text:
		fmt.Fprintf(b, "\t\t\t\t<p>%s</p>\n", string(c))
	case Bullets:
		b.WriteString("\t\t\t\t<ul>\n")
		for _, bullet := range c {
			fmt.Fprintf(b, "\t\t\t\t\t<li>%s</li>\n", bullet)
		}
		b.WriteString("\t\t\t\t</ul>\n")
	case Embedded:
		if isNilComponent(c.Component) {
			return fmt.Errorf("%w: embedded component is nil", ErrUnsupportedContent)
		}
		html, err := c.Component.Render()
		if err != nil {
			return err
		}
		b.WriteString(html)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedContent, content)
	}
	return nil
}

// isNilComponent reports a nil interface or a typed nil pointer
func isNilComponent(c Component) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
