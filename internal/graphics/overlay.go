package graphics

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"model-viewer/internal/ui"
)

// overlayFontSize is the glyph atlas size for fonts loaded from disk.
const overlayFontSize = 48

// Overlay draws a ui.Document over the rendered scene.
type Overlay struct {
	doc     *ui.Document
	font    rl.Font
	hasFont bool
}

// NewOverlay returns an overlay for doc using raylib's default font.
func NewOverlay(doc *ui.Document) *Overlay {
	return &Overlay{doc: doc}
}

// LoadFont replaces the default font with a TTF/OTF file. Call after the window exists.
func (o *Overlay) LoadFont(path string) error {
	f := rl.LoadFontEx(path, overlayFontSize, nil)
	if !rl.IsFontValid(f) {
		return fmt.Errorf("graphics: load font %s", path)
	}
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	o.Unload()
	o.font, o.hasFont = f, true
	return nil
}

// Font returns the loaded font, if any.
func (o *Overlay) Font() (rl.Font, bool) {
	return o.font, o.hasFont
}

// Unload releases the font.
func (o *Overlay) Unload() {
	if o.hasFont {
		rl.UnloadFont(o.font)
		o.hasFont = false
	}
}

// Draw lays out the document for a width x height screen and draws it.
func (o *Overlay) Draw(width, height int) {
	for _, b := range o.doc.Layout(int32(width), int32(height)) {
		rec := rl.NewRectangle(float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height))
		if b.Style.Background.A > 0 {
			rl.DrawRectangleRec(rec, b.Style.Background)
		}
		if b.Style.HasBorder {
			rl.DrawRectangleLinesEx(rec, 1, b.Style.Border)
		}
		if b.Text == "" {
			continue
		}
		o.drawText(b.Text, b.X+b.Style.Padding, b.Y+b.Style.Padding, b.Style.FontSize, b.Style.Color)
	}
}

func (o *Overlay) drawText(text string, x, y, size int32, c color.RGBA) {
	if o.hasFont {
		rl.DrawTextEx(o.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, c)
		return
	}
	rl.DrawText(text, x, y, size, c)
}
