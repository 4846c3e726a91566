package frames

import (
	"image/color"
	"testing"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-sprited/ttesting"
)

func TestNewFrameInvalidDimension(t *testing.T) {
	for _, dim := range [][2]int{{0, 8}, {8, 0}, {-1, 8}, {8, -3}} {
		f, err := NewFrame(dim[0], dim[1])
		if err == nil {
			t.Errorf("NewFrame(%d, %d) = %v, want error", dim[0], dim[1], f)
			continue
		}
		if errors.Cause(err) != ErrInvalidDimension {
			t.Errorf("NewFrame(%d, %d) error cause = %v, want ErrInvalidDimension", dim[0], dim[1], err)
		}
	}
}

func TestNewFrameIsCleared(t *testing.T) {
	f, err := NewFrame(5, 3)
	if err != nil {
		t.Fatalf("failed to create frame: %v", err)
	}
	ttesting.AssertEqualInt(t, "width", f.Width(), 5)
	ttesting.AssertEqualInt(t, "height", f.Height(), 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if f.Pixel(x, y) {
				t.Errorf("pixel %d,%d set on a new frame", x, y)
			}
		}
	}
}

func TestTogglePixelIsInvolution(t *testing.T) {
	f, err := NewFrame(4, 4)
	if err != nil {
		t.Fatalf("failed to create frame: %v", err)
	}
	f.SetPixel(1, 2, true)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			before := f.Pixel(x, y)
			f.TogglePixel(x, y)
			if f.Pixel(x, y) == before {
				t.Errorf("toggle at %d,%d did not change the pixel", x, y)
			}
			f.TogglePixel(x, y)
			if f.Pixel(x, y) != before {
				t.Errorf("double toggle at %d,%d: got %t, want %t", x, y, f.Pixel(x, y), before)
			}
		}
	}
}

func TestSetPixelTouchesOnlyOneCell(t *testing.T) {
	f, _ := NewFrame(3, 3)
	f.SetPixel(2, 1, true)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			want := x == 2 && y == 1
			if f.Pixel(x, y) != want {
				t.Errorf("pixel %d,%d = %t, want %t", x, y, f.Pixel(x, y), want)
			}
		}
	}
	f.SetPixel(2, 1, false)
	ttesting.AssertEqualBool(t, "unset again", f.Pixel(2, 1), false)
}

func TestPixelOutOfRangePanics(t *testing.T) {
	f, _ := NewFrame(8, 8)
	ttesting.AssertPanics(t, "x too large", func() { f.Pixel(8, 0) })
	ttesting.AssertPanics(t, "y too large", func() { f.TogglePixel(0, 8) })
	ttesting.AssertPanics(t, "negative x", func() { f.SetPixel(-1, 0, true) })
	ttesting.AssertPanics(t, "negative y", func() { f.Pixel(0, -1) })
}

func TestCloneAndClear(t *testing.T) {
	f, _ := NewFrame(2, 2)
	f.SetPixel(0, 0, true)
	c := f.Clone()
	ttesting.AssertEqualBool(t, "clone equal", c.Equal(f), true)

	f.Clear()
	ttesting.AssertEqualBool(t, "cleared", f.Pixel(0, 0), false)
	ttesting.AssertEqualBool(t, "clone unaffected", c.Pixel(0, 0), true)
	ttesting.AssertEqualBool(t, "no longer equal", c.Equal(f), false)
}

func TestFrameAsImage(t *testing.T) {
	f, _ := NewFrame(3, 2)
	f.SetPixel(1, 1, true)

	ttesting.AssertEqualInt(t, "bounds width", f.Bounds().Dx(), 3)
	ttesting.AssertEqualInt(t, "bounds height", f.Bounds().Dy(), 2)
	if f.At(1, 1) != color.Black {
		t.Errorf("At(1,1) = %v, want black", f.At(1, 1))
	}
	if f.At(0, 0) != color.White {
		t.Errorf("At(0,0) = %v, want white", f.At(0, 0))
	}
	ttesting.AssertEqualInt(t, "outside bounds is unset", int(f.ColorIndexAt(5, 5)), 0)
}
