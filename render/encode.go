package render

import (
	"bytes"
	"image"
	"image/gif"
	"image/png"
	"io"
	"math"

	"github.com/andybons/gogif"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"

	"badc0de.net/pkg/go-sprited/frames"
)

func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// EncodeGIF writes a single-frame GIF of img.
func EncodeGIF(w io.Writer, img image.Image) error {
	return gif.Encode(w, img, &gif.Options{
		NumColors: 2,
		Quantizer: quantize.MedianCutQuantizer{},
	})
}

// GIFDelay converts a frame rate into a GIF frame delay in hundredths of a
// second, never less than one.
func GIFDelay(fps float64) int {
	if fps <= 0 {
		return 100
	}
	d := int(math.Round(100 / fps))
	if d < 1 {
		d = 1
	}
	return d
}

// EncodeAnimation writes the frames as a looping animated GIF, each frame
// rendered with Preview at size and shown for one period of fps.
func EncodeAnimation(w io.Writer, fs []*frames.Frame, size image.Point, fps float64) error {
	if len(fs) == 0 {
		return errors.New("render: no frames to animate")
	}

	g := gif.GIF{}
	delay := GIFDelay(fps)
	quantizer := gogif.MedianCutQuantizer{NumColor: 16}
	for _, f := range fs {
		img := Preview(f, size)

		pal := image.NewPaletted(img.Bounds(), nil)
		quantizer.Quantize(pal, img.Bounds(), img, image.Point{})

		g.Image = append(g.Image, pal)
		g.Delay = append(g.Delay, delay)
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}

	if err := gif.EncodeAll(w, &g); err != nil {
		return errors.Wrap(err, "encoding animated gif")
	}
	return nil
}

// DataURL returns img PNG-encoded as a data URL, usable as an <img> src.
func DataURL(img image.Image) (string, error) {
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return "", errors.Wrap(err, "encoding png for data url")
	}
	byt, err := dataurl.New(buf.Bytes(), "image/png").MarshalText()
	if err != nil {
		return "", errors.Wrap(err, "encoding data url")
	}
	return string(byt), nil
}
