package ui

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	c, ok := ParseHexColor("#ff6b6b")
	require.True(t, ok)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0x6b, B: 0x6b, A: 0xff}, c)

	c, ok = ParseHexColor("#abc")
	require.True(t, ok)
	assert.Equal(t, color.RGBA{R: 0xaa, G: 0xbb, B: 0xcc, A: 0xff}, c)

	c, ok = ParseHexColor("#00000080")
	require.True(t, ok)
	assert.Equal(t, uint8(0x80), c.A)

	for _, bad := range []string{"", "red", "#12", "#gggggg", "#12345"} {
		_, ok := ParseHexColor(bad)
		assert.False(t, ok, bad)
	}
}

func TestParsePxAndPct(t *testing.T) {
	n, ok := ParsePx("12px")
	assert.True(t, ok)
	assert.Equal(t, int32(12), n)
	n, ok = ParsePx(" 7 ")
	assert.True(t, ok)
	assert.Equal(t, int32(7), n)
	_, ok = ParsePx("auto")
	assert.False(t, ok)

	p, ok := ParsePct("50%")
	assert.True(t, ok)
	assert.Equal(t, int32(50), p)
	_, ok = ParsePct("150%")
	assert.False(t, ok)
}

func TestResolveProps(t *testing.T) {
	s := ResolveProps(map[string]string{
		"background": "#111",
		"border":     "1px solid #222222",
		"left":       "25%",
		"top":        "10px",
		"display":    "none",
		"font-size":  "14px",
	})
	assert.Equal(t, uint8(0x11), s.Background.R)
	assert.True(t, s.HasBorder)
	assert.Equal(t, uint8(0x22), s.Border.G)
	assert.Equal(t, int32(25), s.LeftPct)
	assert.Equal(t, int32(10), s.Top)
	assert.Equal(t, int32(-1), s.TopPct)
	assert.Equal(t, int32(14), s.FontSize)
	assert.True(t, s.Hidden)
}

func TestParseCSS(t *testing.T) {
	sheet, err := ParseCSS(`
/* comment */
@media screen { .x { color: #fff; } }
.a, #b { color: #010203; padding: 2px; }
div p { width: 10px; }
`)
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 3)
	assert.Equal(t, ".a", sheet.Rules[0].Selector)
	assert.Equal(t, "#b", sheet.Rules[1].Selector)
	assert.Equal(t, "#010203", sheet.Rules[1].Props["color"])
	assert.Equal(t, "div p", sheet.Rules[2].Selector)
}

func TestParseInlineStyle(t *testing.T) {
	props, err := ParseInlineStyle("color: #ff6b6b")
	require.NoError(t, err)
	assert.Equal(t, "#ff6b6b", props["color"])
}

func TestDefaultDocumentLayout(t *testing.T) {
	doc, err := NewDefaultDocument()
	require.NoError(t, err)
	assert.True(t, doc.HasStylesheet())

	boxes := doc.Layout(1000, 600)
	require.Len(t, boxes, 2)
	panel := boxes[0]
	assert.Equal(t, int32(320), panel.Width)
	assert.Equal(t, int32(64), panel.Height)
	assert.Equal(t, int32((1000-320)/2), panel.X)
	assert.Equal(t, int32((600-64)/2), panel.Y)
	assert.True(t, panel.Style.HasBorder)

	label := boxes[1]
	assert.Equal(t, "Loading model...", label.Text)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, label.Style.Color)
	assert.GreaterOrEqual(t, label.X, panel.X)
	assert.GreaterOrEqual(t, label.Y, panel.Y)
}

func TestIndicatorHide(t *testing.T) {
	doc, err := NewDefaultDocument()
	require.NoError(t, err)
	ind, err := NewLoadingIndicator(doc)
	require.NoError(t, err)
	require.True(t, ind.Visible())
	require.NotEmpty(t, doc.Layout(800, 600))

	ind.Hide()
	ind.Hide()
	assert.False(t, ind.Visible())
	assert.Equal(t, []string{HiddenClass}, doc.GetElementByID(LoadingID).Classes())
	assert.Empty(t, doc.Layout(800, 600), "hidden indicator and its children are not drawn")
}

func TestIndicatorShowError(t *testing.T) {
	doc, err := NewDefaultDocument()
	require.NoError(t, err)
	ind, err := NewLoadingIndicator(doc)
	require.NoError(t, err)

	ind.ShowError("Error loading model")
	assert.True(t, ind.Visible())
	assert.Equal(t, "Error loading model", ind.Text())

	boxes := doc.Layout(800, 600)
	require.Len(t, boxes, 2)
	assert.Equal(t, "Error loading model", boxes[1].Text)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0x6b, B: 0x6b, A: 0xff}, boxes[1].Style.Color)
}

func TestShowErrorEscapesMarkup(t *testing.T) {
	doc, err := NewDefaultDocument()
	require.NoError(t, err)
	ind, err := NewLoadingIndicator(doc)
	require.NoError(t, err)
	ind.ShowError("<b>bad</b>")
	assert.Equal(t, "<b>bad</b>", ind.Text())
}

func TestIndicatorNeedsLoadingElement(t *testing.T) {
	doc, err := NewDocument(`<div id="other"></div>`)
	require.NoError(t, err)
	_, err = NewLoadingIndicator(doc)
	assert.Error(t, err)
}

func TestRemoveClassAndLoadCSS(t *testing.T) {
	doc, err := NewDocument(`<div id="panel" class="a b"><p>hi</p></div>`)
	require.NoError(t, err)
	el := doc.GetElementByID("panel")
	el.RemoveClass("a")
	assert.Equal(t, []string{"b"}, el.Classes())

	path := filepath.Join(t.TempDir(), "overlay.css")
	require.NoError(t, os.WriteFile(path, []byte(".b { display: none; }"), 0o644))
	require.NoError(t, doc.LoadCSS(path))
	assert.Empty(t, doc.Layout(100, 100))

	assert.Error(t, doc.LoadCSS(filepath.Join(t.TempDir(), "missing.css")))
}
