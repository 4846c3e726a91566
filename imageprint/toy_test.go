package imageprint

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"badc0de.net/pkg/go-sprited/frames"
	"badc0de.net/pkg/go-sprited/ttesting"
)

func TestPrintNoColor(t *testing.T) {
	f, err := frames.NewFrame(3, 2)
	if err != nil {
		t.Fatalf("failed to create frame: %v", err)
	}
	f.SetPixel(0, 0, true)
	f.SetPixel(2, 1, true)

	buf := &bytes.Buffer{}
	PrintNoColor(buf, f, false)
	ttesting.AssertEqualString(t, "ascii art", buf.String(), "##....\n....##\n")
}

func TestPrint24bitResetsEveryRow(t *testing.T) {
	f, _ := frames.NewFrame(2, 2)
	buf := &bytes.Buffer{}
	Print24bit(buf, f, true)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	ttesting.AssertEqualInt(t, "rows", len(lines), 2)
	for _, l := range lines {
		if !strings.HasSuffix(l, "\x1b[0m") {
			t.Errorf("row %q does not reset attributes", l)
		}
		if !strings.Contains(l, "\x1b[48;2;255;255;255m") {
			t.Errorf("row %q does not paint white background", l)
		}
	}
}

func TestScale(t *testing.T) {
	f, _ := frames.NewFrame(8, 4)
	f.SetPixel(0, 0, true)

	img := Scale(f, 2)
	ttesting.AssertEqualInt(t, "width", img.Bounds().Dx(), 16)
	ttesting.AssertEqualInt(t, "height", img.Bounds().Dy(), 8)
	r, _, _, _ := img.At(1, 1).RGBA()
	ttesting.AssertEqualInt(t, "set pixel stays black", int(r), 0)

	if Scale(f, 1) != image.Image(f) {
		t.Errorf("factor 1 did not return the image itself")
	}
}
