package entities

import (
	"fmt"
	"strings"
)

// DefaultBackground is the presentation background when none is given
const DefaultBackground = "white"

// Presentation is the aggregate root: document metadata plus ordered slides
type Presentation struct {
	// Title is shown on the intro slide and used as the default export folder
	Title string `json:"title"`

	// Description is used for the intro slide and social card metadata
	Description string `json:"description"`

	// URL is the canonical URL the presentation will be deployed at
	URL string `json:"url"`

	// Slides contains all slides in order
	Slides []*Slide `json:"slides"`

	// Background is the intro slide color and the fallback for slides
	Background string `json:"background"`

	// Image is the cover image used on the intro slide and social cards
	Image string `json:"image,omitempty"`

	// Favicon is an optional favicon path
	Favicon string `json:"favicon,omitempty"`

	// Vertical switches WebSlides to vertical scrolling
	Vertical bool `json:"vertical"`

	// EndCard appends a closing thank-you slide
	EndCard bool `json:"endcard"`

	// GenerateIntro prepends an intro slide with the title and description
	GenerateIntro bool `json:"generate_intro"`

	Navbar *Navbar `json:"-"`
	Footer *Footer `json:"-"`
}

// PresentationOption customizes a presentation built by NewPresentation
type PresentationOption func(*Presentation)

// NewPresentation creates a presentation with a white background and an
// intro slide
func NewPresentation(title, description, url string, slides []*Slide, opts ...PresentationOption) *Presentation {
	p := &Presentation{
		Title:         title,
		Description:   description,
		URL:           url,
		Slides:        slides,
		Background:    DefaultBackground,
		GenerateIntro: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithBackground sets the presentation background color
func WithBackground(color string) PresentationOption {
	return func(p *Presentation) { p.Background = color }
}

// WithImage sets the cover image
func WithImage(image string) PresentationOption {
	return func(p *Presentation) { p.Image = image }
}

// WithFavicon sets the favicon path
func WithFavicon(favicon string) PresentationOption {
	return func(p *Presentation) { p.Favicon = favicon }
}

// WithVertical enables vertical layout
func WithVertical(vertical bool) PresentationOption {
	return func(p *Presentation) { p.Vertical = vertical }
}

// WithEndCard enables or disables the closing thank-you slide
func WithEndCard(enabled bool) PresentationOption {
	return func(p *Presentation) { p.EndCard = enabled }
}

// WithIntro enables or disables the generated intro slide
func WithIntro(enabled bool) PresentationOption {
	return func(p *Presentation) { p.GenerateIntro = enabled }
}

// WithNavbar sets the navbar
func WithNavbar(n *Navbar) PresentationOption {
	return func(p *Presentation) { p.Navbar = n }
}

// WithFooter sets the footer
func WithFooter(f *Footer) PresentationOption {
	return func(p *Presentation) { p.Footer = f }
}

// Validate ensures the presentation can be rendered and exported
func (p *Presentation) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}

	for i, slide := range p.Slides {
		if slide == nil {
			return fmt.Errorf("slide %d is nil", i+1)
		}
	}

	return nil
}

// FolderName returns the default export folder name
func (p *Presentation) FolderName() string {
	return p.Title
}

// ResolveBackgrounds fills every slide without a background with the
// presentation background. Slides that already have one are left alone, so
// the fill happens at most once per slide.
func (p *Presentation) ResolveBackgrounds() {
	background := p.Background
	if background == "" {
		background = DefaultBackground
	}
	for _, slide := range p.Slides {
		if slide != nil && slide.Background == "" {
			slide.Background = background
		}
	}
}

// SlideCount returns the number of user slides
func (p *Presentation) SlideCount() int {
	return len(p.Slides)
}
