package deck

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/ezprez/internal/domain/entities"
)

// deckDoc is the on-disk shape of a deck file, shared by YAML and TOML
type deckDoc struct {
	Title       string     `yaml:"title" toml:"title"`
	Description string     `yaml:"description" toml:"description"`
	URL         string     `yaml:"url" toml:"url"`
	Background  string     `yaml:"background" toml:"background"`
	Image       string     `yaml:"image" toml:"image"`
	Favicon     string     `yaml:"favicon" toml:"favicon"`
	Vertical    bool       `yaml:"vertical" toml:"vertical"`
	EndCard     bool       `yaml:"endcard" toml:"endcard"`
	Intro       *bool      `yaml:"intro" toml:"intro"`
	Navbar      *navDoc    `yaml:"navbar" toml:"navbar"`
	Footer      *navDoc    `yaml:"footer" toml:"footer"`
	Slides      []slideDoc `yaml:"slides" toml:"slides"`
}

type navDoc struct {
	Title string       `yaml:"title" toml:"title"`
	Items []navItemDoc `yaml:"items" toml:"items"`
}

// navItemDoc is either a link {label, url} or a social link {social, url}
type navItemDoc struct {
	Label  string `yaml:"label" toml:"label"`
	Social string `yaml:"social" toml:"social"`
	URL    string `yaml:"url" toml:"url"`
}

var navItemKeys = map[string]bool{"label": true, "social": true, "url": true}

// UnmarshalYAML rejects nav items with keys outside navItemKeys
func (n *navItemDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: item must be a mapping", entities.ErrInvalidNavItem, node.Line)
	}
	for i := 0; i < len(node.Content); i += 2 {
		if key := node.Content[i].Value; !navItemKeys[key] {
			return fmt.Errorf("%w: line %d: unknown field %q", entities.ErrInvalidNavItem, node.Content[i].Line, key)
		}
	}

	type plain navItemDoc
	return node.Decode((*plain)(n))
}

type slideDoc struct {
	Heading    string       `yaml:"heading" toml:"heading"`
	Background string       `yaml:"background" toml:"background"`
	Align      string       `yaml:"align" toml:"align"`
	VAlign     string       `yaml:"valign" toml:"valign"`
	Image      string       `yaml:"image" toml:"image"`
	Content    []contentDoc `yaml:"content" toml:"content"`
}

type linkDoc struct {
	Label string `yaml:"label" toml:"label"`
	URL   string `yaml:"url" toml:"url"`
}

type socialDoc struct {
	Kind string `yaml:"kind" toml:"kind"`
	URL  string `yaml:"url" toml:"url"`
}

type iconDoc struct {
	Label string `yaml:"label" toml:"label"`
	Size  string `yaml:"size" toml:"size"`
}

type codeDoc struct {
	Language string `yaml:"language" toml:"language"`
	Source   string `yaml:"source" toml:"source"`
}

type tocEntryDoc struct {
	Label string `yaml:"label" toml:"label"`
	Slide int    `yaml:"slide" toml:"slide"`
}

// contentDoc holds exactly one content item
type contentDoc struct {
	Text     *string       `yaml:"text" toml:"text"`
	Bullets  []string      `yaml:"bullets" toml:"bullets"`
	Link     *linkDoc      `yaml:"link" toml:"link"`
	Social   *socialDoc    `yaml:"social" toml:"social"`
	Icon     *iconDoc      `yaml:"icon" toml:"icon"`
	Code     *codeDoc      `yaml:"code" toml:"code"`
	Raw      *string       `yaml:"raw" toml:"raw"`
	Markdown *string       `yaml:"markdown" toml:"markdown"`
	TOC      []tocEntryDoc `yaml:"toc" toml:"toc"`
}

var contentKeys = map[string]bool{
	"text": true, "bullets": true, "link": true, "social": true, "icon": true,
	"code": true, "raw": true, "markdown": true, "toc": true,
}

// UnmarshalYAML rejects content items with keys outside contentKeys
func (c *contentDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: content item must be a mapping", entities.ErrUnsupportedContent, node.Line)
	}
	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if !contentKeys[key] {
			return fmt.Errorf("%w: line %d: unknown content type %q", entities.ErrUnsupportedContent, node.Content[i].Line, key)
		}
	}

	type plain contentDoc
	return node.Decode((*plain)(c))
}

// kinds lists the content types set on the item
func (c contentDoc) kinds() []string {
	var kinds []string
	if c.Text != nil {
		kinds = append(kinds, "text")
	}
	if c.Bullets != nil {
		kinds = append(kinds, "bullets")
	}
	if c.Link != nil {
		kinds = append(kinds, "link")
	}
	if c.Social != nil {
		kinds = append(kinds, "social")
	}
	if c.Icon != nil {
		kinds = append(kinds, "icon")
	}
	if c.Code != nil {
		kinds = append(kinds, "code")
	}
	if c.Raw != nil {
		kinds = append(kinds, "raw")
	}
	if c.Markdown != nil {
		kinds = append(kinds, "markdown")
	}
	if c.TOC != nil {
		kinds = append(kinds, "toc")
	}
	return kinds
}

func describeKinds(kinds []string) string {
	if len(kinds) == 0 {
		return "none"
	}
	return strings.Join(kinds, ", ")
}
