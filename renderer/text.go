package renderer

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Labels are rasterized CPU-side with the fixed 7x13 bitmap face and drawn
// as a single textured quad, scaled to the label's requested size. Text
// changes rarely (names are static, the FPS readout once per update), so
// re-rendering on change is cheap.
var face = basicfont.Face7x13

// measureText returns the unscaled pixel size of the rasterized text.
func measureText(text string) (w, h int) {
	return font.MeasureString(face, text).Ceil(), face.Ascent + face.Descent
}

// uploadLabel (re)rasterizes a label's text into its texture.
func uploadLabel(l *Label) {
	w, h := measureText(l.Text)
	if w < 1 {
		w = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(l.Text)

	if l.tex == 0 {
		gl.GenTextures(1, &l.tex)
	}
	gl.BindTexture(gl.TEXTURE_2D, l.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	l.texText = l.Text
}

// releaseLabel frees a label's texture when it leaves the scene.
func releaseLabel(l *Label) {
	if l.tex != 0 {
		gl.DeleteTextures(1, &l.tex)
		l.tex = 0
	}
}
