package builders

import (
	"strconv"

	"github.com/fredcamaral/ezprez/internal/domain/entities"
)

// PresentationBuilder helps build Presentation entities for testing
type PresentationBuilder struct {
	title       string
	description string
	url         string
	slides      []*entities.Slide
	opts        []entities.PresentationOption
}

// NewPresentationBuilder creates a new presentation builder with sensible defaults
func NewPresentationBuilder() *PresentationBuilder {
	return &PresentationBuilder{
		title:       "Test Presentation",
		description: "Test description",
	}
}

// WithTitle sets the presentation title
func (b *PresentationBuilder) WithTitle(title string) *PresentationBuilder {
	b.title = title
	return b
}

// WithDescription sets the presentation description
func (b *PresentationBuilder) WithDescription(description string) *PresentationBuilder {
	b.description = description
	return b
}

// WithURL sets the canonical URL
func (b *PresentationBuilder) WithURL(url string) *PresentationBuilder {
	b.url = url
	return b
}

// WithSlide adds a single slide to the presentation
func (b *PresentationBuilder) WithSlide(slide *entities.Slide) *PresentationBuilder {
	b.slides = append(b.slides, slide)
	return b
}

// WithSlideCount adds the specified number of default slides
func (b *PresentationBuilder) WithSlideCount(count int) *PresentationBuilder {
	for i := 0; i < count; i++ {
		b.slides = append(b.slides, NewSlideBuilder().
			WithHeading("Slide "+strconv.Itoa(len(b.slides)+1)).
			Build())
	}
	return b
}

// WithOptions appends presentation options applied at Build
func (b *PresentationBuilder) WithOptions(opts ...entities.PresentationOption) *PresentationBuilder {
	b.opts = append(b.opts, opts...)
	return b
}

// Build creates the final Presentation entity. Slides are copied so one
// builder can produce independent presentations.
func (b *PresentationBuilder) Build() *entities.Presentation {
	slides := make([]*entities.Slide, 0, len(b.slides))
	for _, s := range b.slides {
		c := *s
		c.Contents = append([]entities.Content(nil), s.Contents...)
		slides = append(slides, &c)
	}
	return entities.NewPresentation(b.title, b.description, b.url, slides, b.opts...)
}

// SlideBuilder helps build Slide entities for testing
type SlideBuilder struct {
	slide entities.Slide
}

// NewSlideBuilder creates a new slide builder with sensible defaults
func NewSlideBuilder() *SlideBuilder {
	return &SlideBuilder{
		slide: entities.Slide{
			Heading:  "Test Slide",
			Contents: []entities.Content{entities.Text("Test content")},
		},
	}
}

// WithHeading sets the slide heading
func (b *SlideBuilder) WithHeading(heading string) *SlideBuilder {
	b.slide.Heading = heading
	return b
}

// WithContents replaces the slide body
func (b *SlideBuilder) WithContents(contents ...entities.Content) *SlideBuilder {
	b.slide.Contents = contents
	return b
}

// WithBackground sets the slide background color
func (b *SlideBuilder) WithBackground(color string) *SlideBuilder {
	b.slide.Background = color
	return b
}

// WithAlign sets both alignments
func (b *SlideBuilder) WithAlign(h entities.HorizontalAlign, v entities.VerticalAlign) *SlideBuilder {
	b.slide.HAlign = h
	b.slide.VAlign = v
	return b
}

// Build creates the final Slide entity
func (b *SlideBuilder) Build() *entities.Slide {
	s := b.slide
	s.Contents = append([]entities.Content(nil), b.slide.Contents...)
	return &s
}

// Common presentation types for testing

// MinimalPresentation creates a minimal presentation for basic tests
func MinimalPresentation() *entities.Presentation {
	return NewPresentationBuilder().
		WithTitle("Minimal").
		WithSlideCount(1).
		Build()
}

// LargePresentation creates a presentation with many slides for performance tests
func LargePresentation() *entities.Presentation {
	return NewPresentationBuilder().
		WithTitle("Large Presentation").
		WithSlideCount(50).
		Build()
}

// DecoratedPresentation uses navigation, an end card and mixed content
func DecoratedPresentation() *entities.Presentation {
	return NewPresentationBuilder().
		WithTitle("Decorated").
		WithURL("https://example.com/decorated").
		WithSlide(NewSlideBuilder().
			WithHeading("Components").
			WithContents(
				entities.Bullets{"one", "two"},
				entities.Embed(entities.NewCodeBlock("go", "fmt.Println(1)")),
			).
			WithBackground("black").
			WithAlign(entities.AlignCenter, entities.VAlignTop).
			Build()).
		WithOptions(
			entities.WithNavbar(entities.NewNavbar("Nav", entities.NewLink("Docs", "/docs"))),
			entities.WithFooter(entities.NewFooter(entities.Social(entities.SocialGitHub))),
			entities.WithEndCard(true),
		).
		Build()
}
