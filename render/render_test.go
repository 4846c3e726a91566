package render

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"strings"
	"testing"

	"github.com/vincent-petithory/dataurl"

	"badc0de.net/pkg/go-sprited/frames"
	"badc0de.net/pkg/go-sprited/ttesting"
)

func isBlack(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0 && g == 0 && b == 0
}

func frameForTest(t *testing.T) *frames.Frame {
	f, err := frames.NewFrame(8, 8)
	if err != nil {
		t.Fatalf("failed to create frame: %v", err)
	}
	f.SetPixel(0, 0, true)
	f.SetPixel(7, 7, true)
	return f
}

func TestPreview(t *testing.T) {
	img := Preview(frameForTest(t), image.Pt(64, 64))
	ttesting.AssertEqualInt(t, "width", img.Bounds().Dx(), 64)
	ttesting.AssertEqualBool(t, "top-left cell set", isBlack(img.At(3, 3)), true)
	ttesting.AssertEqualBool(t, "bottom-right cell set", isBlack(img.At(60, 60)), true)
	ttesting.AssertEqualBool(t, "neighbour cell unset", isBlack(img.At(12, 3)), false)
	ttesting.AssertEqualBool(t, "no grid lines", isBlack(img.At(8, 20)), false)
}

func TestGridLines(t *testing.T) {
	img := Grid(frameForTest(t), image.Pt(64, 64))
	ttesting.AssertEqualBool(t, "vertical line between columns", isBlack(img.At(8, 20)), true)
	ttesting.AssertEqualBool(t, "horizontal line between rows", isBlack(img.At(20, 16)), true)
	ttesting.AssertEqualBool(t, "left edge line", isBlack(img.At(0, 20)), true)
	ttesting.AssertEqualBool(t, "no top edge line", isBlack(img.At(20, 0)), false)
	ttesting.AssertEqualBool(t, "cell interior", isBlack(img.At(20, 20)), false)
}

func TestCellAt(t *testing.T) {
	vp := image.Pt(512, 512)
	for _, tc := range []struct {
		p    image.Point
		x, y int
		ok   bool
	}{
		{image.Pt(0, 0), 0, 0, true},
		{image.Pt(63, 64), 0, 1, true},
		{image.Pt(511, 511), 7, 7, true},
		{image.Pt(512, 10), 0, 0, false},
		{image.Pt(-1, 10), 0, 0, false},
	} {
		x, y, ok := CellAt(vp, 8, 8, tc.p)
		if x != tc.x || y != tc.y || ok != tc.ok {
			t.Errorf("CellAt(%v) = %d, %d, %t; want %d, %d, %t", tc.p, x, y, ok, tc.x, tc.y, tc.ok)
		}
	}
}

func TestEncodePNGAndGIF(t *testing.T) {
	img := Preview(frameForTest(t), image.Pt(16, 16))

	buf := &bytes.Buffer{}
	if err := EncodePNG(buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	if _, err := png.Decode(buf); err != nil {
		t.Errorf("failed to decode png: %v", err)
	}

	buf.Reset()
	if err := EncodeGIF(buf, img); err != nil {
		t.Fatalf("failed to encode gif: %v", err)
	}
	dec, err := gif.Decode(buf)
	if err != nil {
		t.Fatalf("failed to decode gif: %v", err)
	}
	ttesting.AssertEqualBool(t, "gif keeps set cell", isBlack(dec.At(0, 0)), true)
	ttesting.AssertEqualBool(t, "gif keeps unset cell", isBlack(dec.At(8, 0)), false)
}

func TestEncodeAnimation(t *testing.T) {
	s, err := frames.NewStore(8, 8)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	s.Current().SetPixel(1, 1, true)
	s.Append().SetPixel(6, 6, true)
	s.Append()

	buf := &bytes.Buffer{}
	if err := EncodeAnimation(buf, s.Frames(), image.Pt(32, 32), 10); err != nil {
		t.Fatalf("failed to encode animation: %v", err)
	}
	g, err := gif.DecodeAll(buf)
	if err != nil {
		t.Fatalf("failed to decode animation: %v", err)
	}
	ttesting.AssertEqualInt(t, "frame count", len(g.Image), 3)
	ttesting.AssertEqualInt(t, "delay", g.Delay[0], 10)

	if err := EncodeAnimation(buf, nil, image.Pt(32, 32), 10); err == nil {
		t.Errorf("animation of no frames did not fail")
	}
}

func TestGIFDelay(t *testing.T) {
	ttesting.AssertEqualInt(t, "10 fps", GIFDelay(10), 10)
	ttesting.AssertEqualInt(t, "3 fps", GIFDelay(3), 33)
	ttesting.AssertEqualInt(t, "very fast", GIFDelay(1000), 1)
	ttesting.AssertEqualInt(t, "invalid", GIFDelay(0), 100)
}

func TestDataURL(t *testing.T) {
	s, err := DataURL(Preview(frameForTest(t), image.Pt(8, 8)))
	if err != nil {
		t.Fatalf("failed to build data url: %v", err)
	}
	if !strings.HasPrefix(s, "data:image/png") {
		t.Errorf("got %q; want a png data url", s[:20])
	}
	du, err := dataurl.DecodeString(s)
	if err != nil {
		t.Fatalf("failed to decode data url: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(du.Data)); err != nil {
		t.Errorf("data url does not hold a png: %v", err)
	}
}

func TestStripClasses(t *testing.T) {
	for _, tc := range []struct {
		name    string
		i       int
		running bool
		want    string
	}{
		{"plain", 0, false, "frame"},
		{"edited", 1, false, "frame frame-current"},
		{"stopped preview is not marked", 2, false, "frame"},
		{"playing", 2, true, "frame preview-current"},
		{"edited while playing", 1, true, "frame frame-current"},
	} {
		ttesting.AssertEqualString(t, tc.name, StripClasses(tc.i, 1, 2, tc.running), tc.want)
	}

	ttesting.AssertEqualString(t, "edited and previewed", StripClasses(3, 3, 3, true), "frame frame-current preview-current")
}
