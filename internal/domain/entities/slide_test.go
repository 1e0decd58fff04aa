package entities

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingComponent struct{}

func (failingComponent) Render() (string, error) {
	return "", assert.AnError
}

func TestSlide_Render(t *testing.T) {
	slide := NewSlide("H T M L",
		Text("Any nouns on a webpage are typically html"),
		Bullets{"that block of text", "that image", "etc."},
		Embed(NewLink("MDN", "https://developer.mozilla.org")),
	)
	slide.Background = "black"

	html, err := slide.Render()
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(html, "<section"))
	assert.Equal(t, 1, strings.Count(html, "</section>"))
	assert.Contains(t, html, "<section class='bg-black'>")
	assert.Contains(t, html, "<h2>H T M L</h2>")
	assert.Contains(t, html, "<p>Any nouns on a webpage are typically html</p>")
	assert.Equal(t, 1, strings.Count(html, "<ul>"))
	assert.Equal(t, 3, strings.Count(html, "<li>"))
	assert.Contains(t, html, ">MDN</a>")

	paragraph := strings.Index(html, "<p>")
	list := strings.Index(html, "<ul>")
	link := strings.Index(html, "MDN")
	assert.True(t, paragraph < list && list < link, "content must keep input order")
}

func TestSlide_RenderClasses(t *testing.T) {
	tests := []struct {
		name  string
		slide Slide
		want  string
	}{
		{
			name:  "background only",
			slide: Slide{Heading: "a", Background: "apple"},
			want:  "<section class='bg-apple'>",
		},
		{
			name:  "aligned",
			slide: Slide{Heading: "a", Background: "white", HAlign: AlignRight, VAlign: VAlignTop},
			want:  "<section class='bg-white slide-top alignright'>",
		},
		{
			name:  "background image",
			slide: Slide{Heading: "a", Background: "black", Image: "static/images/bg.jpg"},
			want:  `<section class='bg-black' style="background-image:url('static/images/bg.jpg')">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := tt.slide.Render()
			require.NoError(t, err)
			assert.Contains(t, html, tt.want)
		})
	}
}

func TestSlide_RenderRejectsUnsupportedContent(t *testing.T) {
	t.Run("nil content", func(t *testing.T) {
		_, err := NewSlide("bad", Text("ok"), nil).Render()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedContent)
		assert.Contains(t, err.Error(), "content 1")
	})

	t.Run("empty embed", func(t *testing.T) {
		_, err := NewSlide("bad", Embedded{}).Render()
		assert.ErrorIs(t, err, ErrUnsupportedContent)
	})

	t.Run("typed nil components", func(t *testing.T) {
		for _, c := range []Component{(*Navbar)(nil), (*Footer)(nil), (*Link)(nil)} {
			_, err := NewSlide("bad", Embed(c)).Render()
			assert.ErrorIs(t, err, ErrUnsupportedContent, "%T", c)
		}
	})

	t.Run("component error", func(t *testing.T) {
		_, err := NewSlide("bad", Embed(failingComponent{})).Render()
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestParseHorizontalAlign(t *testing.T) {
	tests := []struct {
		input   string
		want    HorizontalAlign
		wantErr bool
	}{
		{input: "", want: AlignDefault},
		{input: "left", want: AlignLeft},
		{input: "Center", want: AlignCenter},
		{input: "alignright", want: AlignRight},
		{input: "diagonal", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHorizontalAlign(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseVerticalAlign(t *testing.T) {
	tests := []struct {
		input   string
		want    VerticalAlign
		wantErr bool
	}{
		{input: "", want: VAlignDefault},
		{input: "middle", want: VAlignDefault},
		{input: "top", want: VAlignTop},
		{input: "BOTTOM", want: VAlignBottom},
		{input: "sideways", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVerticalAlign(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
