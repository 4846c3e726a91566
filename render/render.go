// Package render rasterizes sprite frames for display: the editor's grid
// view, the animation preview and the PNG/GIF encodings served to browsers.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/bradfitz/iter"

	"badc0de.net/pkg/go-sprited/frames"
)

var (
	SetColor   color.Color = color.Black
	UnsetColor color.Color = color.White
	LineColor  color.Color = color.Black
)

// cellRect returns the viewport rectangle covered by cell x, y.
func cellRect(size image.Point, gridW, gridH, x, y int) image.Rectangle {
	return image.Rect(
		x*size.X/gridW, y*size.Y/gridH,
		(x+1)*size.X/gridW, (y+1)*size.Y/gridH,
	)
}

func paint(f *frames.Frame, size image.Point) *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(img, img.Bounds(), image.NewUniform(UnsetColor), image.Point{}, draw.Src)

	set := image.NewUniform(SetColor)
	for y := range iter.N(f.Height()) {
		for x := range iter.N(f.Width()) {
			if f.Pixel(x, y) {
				draw.Draw(img, cellRect(size, f.Width(), f.Height(), x, y), set, image.Point{}, draw.Src)
			}
		}
	}
	return img
}

// Preview draws f scaled to size: set pixels black on white.
func Preview(f *frames.Frame, size image.Point) *image.RGBA {
	return paint(f, size)
}

// Grid draws f scaled to size like Preview, with one pixel wide lines
// between the cells. Horizontal lines separate the rows; vertical lines sit
// on the left edge of every column.
func Grid(f *frames.Frame, size image.Point) *image.RGBA {
	img := paint(f, size)
	line := image.NewUniform(LineColor)

	for y := 1; y < f.Height(); y++ {
		py := y * size.Y / f.Height()
		draw.Draw(img, image.Rect(0, py, size.X, py+1), line, image.Point{}, draw.Src)
	}
	for x := range iter.N(f.Width()) {
		px := x * size.X / f.Width()
		draw.Draw(img, image.Rect(px, 0, px+1, size.Y), line, image.Point{}, draw.Src)
	}
	return img
}

// CellAt maps position p inside a viewport of the passed size onto a cell of
// a gridW x gridH grid. ok is false when p lies outside the viewport.
func CellAt(viewport image.Point, gridW, gridH int, p image.Point) (x, y int, ok bool) {
	if !p.In(image.Rectangle{Max: viewport}) {
		return 0, 0, false
	}
	x = p.X * gridW / viewport.X
	y = p.Y * gridH / viewport.Y
	return x, y, true
}
