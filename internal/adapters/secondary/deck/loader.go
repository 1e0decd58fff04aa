package deck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/ezprez/internal/domain/entities"
	"github.com/fredcamaral/ezprez/internal/domain/ports"
)

// Format is a deck file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for deck files with an unsupported extension
var ErrUnknownFormat = errors.New("unknown deck format (use .yaml, .yml or .toml)")

// FormatOf returns the deck format implied by path's extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Loader implements ports.DeckLoader for YAML and TOML deck files
type Loader struct {
	fs       ports.FileSystem
	markdown ports.MarkdownConverter
}

// NewLoader creates a deck loader. Without a markdown converter, markdown
// content items are rejected.
func NewLoader(fs ports.FileSystem, markdown ports.MarkdownConverter) *Loader {
	return &Loader{fs: fs, markdown: markdown}
}

// Supports reports whether path has a deck file extension
func (l *Loader) Supports(path string) bool {
	_, err := FormatOf(path)
	return err == nil
}

// Load reads and converts the deck file at path
func (l *Loader) Load(ctx context.Context, path string) (*entities.Presentation, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading deck: %w", err)
	}

	p, err := l.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse converts deck source in the given format
func (l *Loader) Parse(data []byte, format Format) (*entities.Presentation, error) {
	var doc deckDoc

	switch format {
	case FormatYAML:
		if err := decodeYAML(data, &doc); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := decodeTOML(data, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	return l.build(doc)
}

func decodeYAML(data []byte, doc *deckDoc) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil {
		return fmt.Errorf("parsing YAML deck: %w", err)
	}
	return nil
}

func decodeTOML(data []byte, doc *deckDoc) error {
	meta, err := toml.Decode(string(data), doc)
	if err != nil {
		return fmt.Errorf("parsing TOML deck: %w", err)
	}

	for _, key := range meta.Undecoded() {
		// keys under [[slides.content]] appear as [slides content KEY]
		if len(key) >= 3 && key[0] == "slides" && key[1] == "content" {
			return fmt.Errorf("%w: unknown content type %q", entities.ErrUnsupportedContent, key[2])
		}
		if len(key) >= 3 && (key[0] == "navbar" || key[0] == "footer") && key[1] == "items" {
			return fmt.Errorf("%w: unknown field %q", entities.ErrInvalidNavItem, key.String())
		}
		return fmt.Errorf("unknown deck field %q", key.String())
	}
	return nil
}

func (l *Loader) build(doc deckDoc) (*entities.Presentation, error) {
	slides := make([]*entities.Slide, 0, len(doc.Slides))
	for i, sd := range doc.Slides {
		slide, err := l.buildSlide(sd)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		slides = append(slides, slide)
	}

	opts := []entities.PresentationOption{
		entities.WithImage(doc.Image),
		entities.WithFavicon(doc.Favicon),
		entities.WithVertical(doc.Vertical),
		entities.WithEndCard(doc.EndCard),
	}
	if doc.Background != "" {
		opts = append(opts, entities.WithBackground(doc.Background))
	}
	if doc.Intro != nil {
		opts = append(opts, entities.WithIntro(*doc.Intro))
	}

	if doc.Navbar != nil {
		items, err := buildNavItems(doc.Navbar.Items)
		if err != nil {
			return nil, fmt.Errorf("navbar: %w", err)
		}
		opts = append(opts, entities.WithNavbar(entities.NewNavbar(doc.Navbar.Title, items...)))
	}

	if doc.Footer != nil {
		items, err := buildNavItems(doc.Footer.Items)
		if err != nil {
			return nil, fmt.Errorf("footer: %w", err)
		}
		opts = append(opts, entities.WithFooter(entities.NewFooter(items...)))
	}

	p := entities.NewPresentation(doc.Title, doc.Description, doc.URL, slides, opts...)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (l *Loader) buildSlide(sd slideDoc) (*entities.Slide, error) {
	halign, err := entities.ParseHorizontalAlign(sd.Align)
	if err != nil {
		return nil, err
	}
	valign, err := entities.ParseVerticalAlign(sd.VAlign)
	if err != nil {
		return nil, err
	}

	contents := make([]entities.Content, 0, len(sd.Content))
	for i, cd := range sd.Content {
		content, err := l.buildContent(cd)
		if err != nil {
			return nil, fmt.Errorf("content %d: %w", i+1, err)
		}
		contents = append(contents, content)
	}

	slide := entities.NewSlide(sd.Heading, contents...)
	slide.Background = sd.Background
	slide.HAlign = halign
	slide.VAlign = valign
	slide.Image = sd.Image
	return slide, nil
}

func (l *Loader) buildContent(cd contentDoc) (entities.Content, error) {
	kinds := cd.kinds()
	if len(kinds) != 1 {
		return nil, fmt.Errorf("%w: item must have exactly one content type, got %s", entities.ErrUnsupportedContent, describeKinds(kinds))
	}

	switch {
	case cd.Text != nil:
		return entities.Text(*cd.Text), nil
	case cd.Bullets != nil:
		return entities.Bullets(cd.Bullets), nil
	case cd.Link != nil:
		return entities.Embed(entities.NewLink(cd.Link.Label, cd.Link.URL)), nil
	case cd.Social != nil:
		kind, err := entities.ParseSocialKind(cd.Social.Kind)
		if err != nil {
			return nil, err
		}
		return entities.Embed(entities.Social(kind).WithURL(cd.Social.URL)), nil
	case cd.Icon != nil:
		icon := entities.NewIcon(cd.Icon.Label)
		if cd.Icon.Size != "" {
			icon = icon.WithSize(cd.Icon.Size)
		}
		return entities.Embed(icon), nil
	case cd.Code != nil:
		return entities.Embed(entities.NewCodeBlock(cd.Code.Language, cd.Code.Source)), nil
	case cd.Raw != nil:
		return entities.Embed(entities.Raw(*cd.Raw)), nil
	case cd.Markdown != nil:
		if l.markdown == nil {
			return nil, fmt.Errorf("%w: markdown support is not configured", entities.ErrUnsupportedContent)
		}
		return entities.Embed(l.markdown.Block(*cd.Markdown)), nil
	default:
		entries := make([]entities.TOCEntry, 0, len(cd.TOC))
		for _, e := range cd.TOC {
			entries = append(entries, entities.TOCEntry{Label: e.Label, Slide: e.Slide})
		}
		return entities.Embed(entities.NewTableOfContents(entries...)), nil
	}
}

func buildNavItems(docs []navItemDoc) ([]entities.NavItem, error) {
	items := make([]entities.NavItem, 0, len(docs))
	for i, d := range docs {
		switch {
		case d.Social != "" && d.Label == "":
			kind, err := entities.ParseSocialKind(d.Social)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i+1, err)
			}
			items = append(items, entities.Social(kind).WithURL(d.URL))
		case d.Label != "" && d.Social == "":
			items = append(items, entities.NewLink(d.Label, d.URL))
		default:
			return nil, fmt.Errorf("item %d: %w", i+1, entities.ErrInvalidNavItem)
		}
	}
	return items, nil
}

// Ensure Loader implements ports.DeckLoader
var _ ports.DeckLoader = (*Loader)(nil)
