package renderer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/fredcamaral/ezprez/internal/domain/entities"
	"github.com/fredcamaral/ezprez/internal/domain/ports"
)

const (
	// DefaultShareImage is the social card image shipped with WebSlides
	DefaultShareImage = "static/images/share-webslides.jpg"

	// DefaultFavicon is the favicon shipped with WebSlides
	DefaultFavicon = "static/images/favicons/favicon-152.png"
)

// DocumentRenderer implements ports.DocumentRenderer using html/template.
// Metadata is escaped by the template; component fragments are trusted.
type DocumentRenderer struct {
	templates *template.Template
	clock     ports.Clock
}

// NewDocumentRenderer creates a renderer stamping documents with clock's time
func NewDocumentRenderer(clock ports.Clock) (*DocumentRenderer, error) {
	if clock == nil {
		clock = ports.NewSystemClock()
	}

	tmpl := template.New("document").Funcs(template.FuncMap{
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s) // #nosec G203 - fragments are produced by components
		},
	})

	if _, err := tmpl.Parse(documentTemplate); err != nil {
		return nil, fmt.Errorf("parsing document template: %w", err)
	}

	if _, err := tmpl.New("intro").Parse(introTemplate); err != nil {
		return nil, fmt.Errorf("parsing intro template: %w", err)
	}

	if _, err := tmpl.New("endcard").Parse(endCardTemplate); err != nil {
		return nil, fmt.Errorf("parsing end card template: %w", err)
	}

	return &DocumentRenderer{templates: tmpl, clock: clock}, nil
}

type documentData struct {
	Title       string
	Description string
	URL         string
	UpdatedTime string
	ShareImage  string
	Favicon     string
	Background  string
	CoverImage  string
	Vertical    bool
	Intro       bool
	EndCard     bool
	Navbar      string
	Footer      string
	Slides      []string
}

// RenderPresentation renders the complete WebSlides document
func (r *DocumentRenderer) RenderPresentation(ctx context.Context, p *entities.Presentation) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: presentation is nil", entities.ErrUnsupportedContent)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	p.ResolveBackgrounds()

	data := documentData{
		Title:       p.Title,
		Description: p.Description,
		URL:         p.URL,
		UpdatedTime: r.clock.Now().Format(time.RFC3339),
		ShareImage:  orDefault(p.Image, DefaultShareImage),
		Favicon:     orDefault(p.Favicon, DefaultFavicon),
		Background:  orDefault(p.Background, entities.DefaultBackground),
		CoverImage:  p.Image,
		Vertical:    p.Vertical,
		Intro:       p.GenerateIntro,
		EndCard:     p.EndCard,
		Slides:      make([]string, 0, len(p.Slides)),
	}

	if p.Navbar != nil {
		html, err := p.Navbar.Render()
		if err != nil {
			return nil, err
		}
		data.Navbar = html
	}

	for _, slide := range p.Slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		html, err := slide.Render()
		if err != nil {
			return nil, err
		}
		data.Slides = append(data.Slides, html)
	}

	if p.Footer != nil {
		html, err := p.Footer.Render()
		if err != nil {
			return nil, err
		}
		data.Footer = html
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "document", data); err != nil {
		return nil, fmt.Errorf("executing document template: %w", err)
	}

	return buf.Bytes(), nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Ensure DocumentRenderer implements ports.DocumentRenderer
var _ ports.DocumentRenderer = (*DocumentRenderer)(nil)

const documentTemplate = `<!doctype html>
<html lang="en" prefix="og: http://ogp.me/ns#">
    <head>
        <meta charset="utf-8">
        <meta name="viewport" content="width=device-width, initial-scale=1">

        <!-- SEO -->
        <title>{{.Title}}</title>
        <meta name="description" content="{{.Description}}">

        <!-- URL CANONICAL -->
        <link rel="canonical" href="{{.URL}}">

        <!-- Google Fonts -->
        <link href="https://fonts.googleapis.com/css?family=Roboto:100,100i,300,300i,400,400i,700,700i%7CMaitree:200,300,400,600,700&amp;subset=latin-ext" rel="stylesheet">

        <!-- CSS WebSlides -->
        <link rel="stylesheet" type='text/css' media='all' href="static/css/webslides.css">

        <!-- Optional - CSS SVG Icons (Font Awesome) -->
        <link rel="stylesheet" type='text/css' media='all' href="static/css/svg-icons.css">

        <!-- FACEBOOK -->
        <meta property="og:url" content="{{.URL}}">
        <meta property="og:type" content="article">
        <meta property="og:title" content="{{.Title}}">
        <meta property="og:description" content="{{.Description}}">
        <meta property="og:updated_time" content="{{.UpdatedTime}}">
        <meta property="og:image" content="{{.ShareImage}}">

        <!-- TWITTER -->
        <meta name="twitter:card" content="summary_large_image">
        <meta name="twitter:title" content="{{.Title}}">
        <meta name="twitter:description" content="{{.Description}}">
        <meta name="twitter:image" content="{{.ShareImage}}">

        <!-- FAVICONS -->
        <link rel="apple-touch-icon icon" sizes="76x76" href="{{.Favicon}}">

        <!-- Android -->
        <meta name="mobile-web-app-capable" content="yes">
        <meta name="theme-color" content="#f0f0f0">
    </head>
    <body>
{{.Navbar | safeHTML}}
    <main role='main'>
        <article id='webslides'{{if .Vertical}} class="vertical"{{end}}>
{{if .Intro}}{{template "intro" .}}{{end}}
{{range .Slides}}{{. | safeHTML}}{{end}}
{{if .EndCard}}{{template "endcard" .}}{{end}}
        </article>
        <!-- end article -->
{{.Footer | safeHTML}}
    </main>
    <!-- end main -->

    <!-- Required -->
    <script src='static/js/webslides.js'></script>
    <script>
        window.ws = new WebSlides();
    </script>

    <!-- OPTIONAL - svg-icons.js (fontastic.me - Font Awesome as svg icons) -->
    <script defer src='static/js/svg-icons.js'></script>

    </body>
</html>
`

const introTemplate = `			<section class='bg-{{.Background}}'>
{{- if .CoverImage}}
				<span class='background' style="background-image:url('{{.CoverImage}}')"></span>
{{- end}}
				<div class='wrap aligncenter'>
					<h1><strong>{{.Title}}</strong></h1>
					<p class='text-intro'>{{.Description}}</p>
				</div>
			</section>`

const endCardTemplate = `
			<section class='bg-{{.Background}}'>
				<div class='wrap aligncenter'>
					<h2><strong>Thank you!</strong></h2>
				</div>
			</section>`
