package renderer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/fredcamaral/ezprez/internal/domain/entities"
	"github.com/fredcamaral/ezprez/internal/domain/ports"
	"github.com/fredcamaral/ezprez/internal/test/builders"
)

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestRenderer(t *testing.T) *DocumentRenderer {
	t.Helper()
	r, err := NewDocumentRenderer(ports.FixedClock{At: fixedTime})
	require.NoError(t, err)
	return r
}

func demoPresentation(opts ...entities.PresentationOption) *entities.Presentation {
	slides := []*entities.Slide{
		entities.NewSlide("First", entities.Text("plain paragraph text")),
		entities.NewSlide("Second", entities.Bullets{"item one", "item two"}),
	}
	return entities.NewPresentation("Demo", "A short demo", "https://example.com/demo", slides, opts...)
}

// findAll collects element nodes with the given tag in document order
func findAll(n *html.Node, tag string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func metaContent(doc *html.Node, key, name string) string {
	for _, meta := range findAll(doc, "meta") {
		if attr(meta, key) == name {
			return attr(meta, "content")
		}
	}
	return ""
}

func TestDocumentRenderer_EndToEndOrder(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.RenderPresentation(context.Background(), demoPresentation(entities.WithEndCard(true)))
	require.NoError(t, err)

	doc := string(out)
	positions := []int{
		strings.Index(doc, "<h1><strong>Demo</strong></h1>"),
		strings.Index(doc, "<p>plain paragraph text</p>"),
		strings.Index(doc, "<li>item one</li>"),
		strings.Index(doc, "<li>item two</li>"),
		strings.Index(doc, "<h2><strong>Thank you!</strong></h2>"),
	}
	for i, pos := range positions {
		require.NotEqual(t, -1, pos, "fragment %d missing", i)
		if i > 0 {
			assert.Less(t, positions[i-1], pos, "fragment %d out of order", i)
		}
	}
}

func TestDocumentRenderer_Structure(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.RenderPresentation(context.Background(), demoPresentation())
	require.NoError(t, err)

	doc, err := html.Parse(strings.NewReader(string(out)))
	require.NoError(t, err)

	titles := findAll(doc, "title")
	require.Len(t, titles, 1)
	assert.Equal(t, "Demo", titles[0].FirstChild.Data)

	articles := findAll(doc, "article")
	require.Len(t, articles, 1)
	assert.Equal(t, "webslides", attr(articles[0], "id"))
	assert.Empty(t, attr(articles[0], "class"))

	// intro plus two slides, no end card by default
	sections := findAll(articles[0], "section")
	require.Len(t, sections, 3)
	for _, section := range sections {
		assert.Equal(t, "bg-white", attr(section, "class"))
	}

	assert.Equal(t, "Demo", metaContent(doc, "property", "og:title"))
	assert.Equal(t, "A short demo", metaContent(doc, "name", "description"))
	assert.Equal(t, "https://example.com/demo", metaContent(doc, "property", "og:url"))
	assert.Equal(t, "2024-03-01T12:00:00Z", metaContent(doc, "property", "og:updated_time"))
	assert.Equal(t, DefaultShareImage, metaContent(doc, "property", "og:image"))
	assert.Equal(t, DefaultShareImage, metaContent(doc, "name", "twitter:image"))

	var stylesheets, scripts []string
	for _, link := range findAll(doc, "link") {
		if attr(link, "rel") == "stylesheet" {
			stylesheets = append(stylesheets, attr(link, "href"))
		}
		if strings.Contains(attr(link, "rel"), "icon") {
			assert.Equal(t, DefaultFavicon, attr(link, "href"))
		}
	}
	for _, script := range findAll(doc, "script") {
		if src := attr(script, "src"); src != "" {
			scripts = append(scripts, src)
		}
	}
	assert.Contains(t, stylesheets, "static/css/webslides.css")
	assert.Contains(t, stylesheets, "static/css/svg-icons.css")
	assert.Equal(t, []string{"static/js/webslides.js", "static/js/svg-icons.js"}, scripts)
	assert.Contains(t, string(out), "window.ws = new WebSlides();")
}

func TestDocumentRenderer_Options(t *testing.T) {
	r := newTestRenderer(t)

	p := demoPresentation(
		entities.WithBackground("red"),
		entities.WithVertical(true),
		entities.WithIntro(false),
		entities.WithImage("static/images/cover.jpg"),
		entities.WithFavicon("favicon.png"),
		entities.WithNavbar(entities.NewNavbar("Nav Title", entities.NewLink("Docs", "/docs"))),
		entities.WithFooter(entities.NewFooter(entities.Social(entities.SocialGitHub).WithURL("https://github.com/x"))),
	)
	p.Slides[1].Background = "black"

	out, err := r.RenderPresentation(context.Background(), p)
	require.NoError(t, err)

	doc, err := html.Parse(strings.NewReader(string(out)))
	require.NoError(t, err)

	articles := findAll(doc, "article")
	require.Len(t, articles, 1)
	assert.Equal(t, "vertical", attr(articles[0], "class"))

	sections := findAll(articles[0], "section")
	require.Len(t, sections, 2, "intro must be skipped")
	assert.Equal(t, "bg-red", attr(sections[0], "class"))
	assert.Equal(t, "bg-black", attr(sections[1], "class"))
	assert.NotContains(t, string(out), "text-intro")

	assert.Equal(t, "static/images/cover.jpg", metaContent(doc, "property", "og:image"))
	assert.Contains(t, string(out), `href="favicon.png"`)

	headers := findAll(doc, "header")
	require.Len(t, headers, 1)
	footers := findAll(doc, "footer")
	require.Len(t, footers, 1)

	navbar := strings.Index(string(out), "Nav Title")
	article := strings.Index(string(out), "<article")
	footer := strings.Index(string(out), "<footer>")
	assert.True(t, navbar < article && article < footer)
}

func TestDocumentRenderer_IntroImage(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.RenderPresentation(context.Background(), demoPresentation(entities.WithImage("cover.png")))
	require.NoError(t, err)
	assert.Contains(t, string(out), `<span class='background' style="background-image:url('cover.png')"></span>`)
}

func TestDocumentRenderer_EscapesMetadata(t *testing.T) {
	r := newTestRenderer(t)

	p := entities.NewPresentation(`Tom & "Jerry"`, "<b>bold</b>", "", nil)
	out, err := r.RenderPresentation(context.Background(), p)
	require.NoError(t, err)

	assert.Contains(t, string(out), "<title>Tom &amp; &#34;Jerry&#34;</title>")
	assert.NotContains(t, string(out), "<b>bold</b>")
}

func TestDocumentRenderer_Errors(t *testing.T) {
	r := newTestRenderer(t)
	ctx := context.Background()

	t.Run("invalid navbar aborts", func(t *testing.T) {
		p := demoPresentation(entities.WithNavbar(entities.NewNavbar("nav", nil)))
		out, err := r.RenderPresentation(ctx, p)
		assert.ErrorIs(t, err, entities.ErrInvalidNavItem)
		assert.Nil(t, out)
	})

	t.Run("unsupported content aborts", func(t *testing.T) {
		p := demoPresentation()
		p.Slides = append(p.Slides, entities.NewSlide("broken", entities.Embedded{}))
		out, err := r.RenderPresentation(ctx, p)
		assert.ErrorIs(t, err, entities.ErrUnsupportedContent)
		assert.Nil(t, out)
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := r.RenderPresentation(ctx, entities.NewPresentation("", "", "", nil))
		assert.ErrorIs(t, err, entities.ErrEmptyTitle)
	})

	t.Run("canceled context", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := r.RenderPresentation(canceled, demoPresentation())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDocumentRenderer_BackgroundBackfillIsOneTime(t *testing.T) {
	r := newTestRenderer(t)

	p := demoPresentation(entities.WithBackground("red"))
	_, err := r.RenderPresentation(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "red", p.Slides[0].Background)

	p.Background = "blue"
	out, err := r.RenderPresentation(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "red", p.Slides[0].Background)
	assert.Contains(t, string(out), "<section class='bg-blue'>", "intro follows the presentation")
}

func TestDocumentRenderer_LargePresentation(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.RenderPresentation(context.Background(), builders.LargePresentation())
	require.NoError(t, err)

	doc, err := html.Parse(strings.NewReader(string(out)))
	require.NoError(t, err)

	articles := findAll(doc, "article")
	require.Len(t, articles, 1)
	sections := findAll(articles[0], "section")
	require.Len(t, sections, 51, "intro plus fifty slides")
	assert.Contains(t, string(out), "<h2>Slide 50</h2>")
}
