package frames

// This file contains the Frame type and its image.Image implementation.

import (
	"fmt"
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// ErrInvalidDimension is returned when a frame would have a non-positive
// dimension.
var ErrInvalidDimension = errors.New("invalid frame dimension")

// Palette is the color model of a Frame: index 0 is an unset pixel, index 1
// a set one.
var Palette = color.Palette{color.White, color.Black}

// Frame is a single animation step: a grid of boolean pixels.
type Frame struct {
	width, height int
	pix           []byte // y*width+x; 0 or 1
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidDimension, "%dx%d", width, height)
	}
	return nil
}

// NewFrame returns a cleared frame of the passed dimensions.
func NewFrame(width, height int) (*Frame, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	return &Frame{
		width:  width,
		height: height,
		pix:    make([]byte, width*height),
	}, nil
}

func (f *Frame) Width() int  { return f.width }
func (f *Frame) Height() int { return f.height }

func (f *Frame) offset(x, y int) int {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		panic(fmt.Sprintf("frames: pixel index out of range: (%d,%d) not in %dx%d", x, y, f.width, f.height))
	}
	return y*f.width + x
}

// Pixel reports whether the pixel at x, y is set.
func (f *Frame) Pixel(x, y int) bool {
	return f.pix[f.offset(x, y)] != 0
}

// SetPixel sets the pixel at x, y to v.
func (f *Frame) SetPixel(x, y int, v bool) {
	var b byte
	if v {
		b = 1
	}
	f.pix[f.offset(x, y)] = b
}

// TogglePixel negates the pixel at x, y.
func (f *Frame) TogglePixel(x, y int) {
	f.pix[f.offset(x, y)] ^= 1
}

// Clear unsets every pixel.
func (f *Frame) Clear() {
	for i := range f.pix {
		f.pix[i] = 0
	}
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := &Frame{
		width:  f.width,
		height: f.height,
		pix:    make([]byte, len(f.pix)),
	}
	copy(c.pix, f.pix)
	return c
}

// Equal reports whether both frames have the same dimensions and pixels.
func (f *Frame) Equal(o *Frame) bool {
	if f.width != o.width || f.height != o.height {
		return false
	}
	for i := range f.pix {
		if f.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// ColorModel, Bounds, At and ColorIndexAt make a Frame an
// image.PalettedImage, one image pixel per grid cell.

func (f *Frame) ColorModel() color.Model {
	return Palette
}

func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

func (f *Frame) At(x, y int) color.Color {
	return Palette[f.ColorIndexAt(x, y)]
}

func (f *Frame) ColorIndexAt(x, y int) uint8 {
	if !(image.Point{x, y}).In(f.Bounds()) {
		return 0
	}
	return f.pix[y*f.width+x]
}
