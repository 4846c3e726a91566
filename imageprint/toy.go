// Package imageprint prints images on terminal.
//
// It is used to show rendered sprite frames without a browser. Every
// function writes to the passed io.Writer, two terminal columns per image
// pixel.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"
	"io"

	"github.com/bradfitz/iter"
	"github.com/gookit/color"
	"github.com/nfnt/resize"
)

type sprinter interface {
	Sprintf(s string, arg ...interface{}) string
}
type fmtSprinterT struct{}

func (fmtSprinterT) Sprintf(s string, arg ...interface{}) string {
	return fmt.Sprintf(s, arg...)
}

var fmtSprinter fmtSprinterT

func shade(w io.Writer, col ic.Color, escapesTrueColor, blanks, noColor bool) {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		fmt.Fprintf(w, "\x1b[0m  ")
		return
	}

	var d sprinter
	if noColor {
		d = &fmtSprinter
	} else if escapesTrueColor {
		fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm", uint8(cR>>8), uint8(cG>>8), uint8(cB>>8))
		d = &fmtSprinter
	} else {
		d = color.RGB(uint8(cR>>8), uint8(cG>>8), uint8(cB>>8), true)
	}
	if blanks {
		io.WriteString(w, d.Sprintf("  "))
	} else {
		// Dark pixels get dense glyphs, so that set sprite pixels stand out
		// even without color.
		a := ((cR + cG + cB) / 3) >> 8
		switch {
		case a < 32:
			io.WriteString(w, d.Sprintf("##"))
		case a < 64:
			io.WriteString(w, d.Sprintf("=="))
		case a < 128:
			io.WriteString(w, d.Sprintf("--"))
		default:
			io.WriteString(w, d.Sprintf(".."))
		}
	}

	if escapesTrueColor && !noColor {
		fmt.Fprintf(w, "\x1b[0m")
	}
}

func printRows(w io.Writer, i image.Image, escapesTrueColor, blanks, noColor bool) {
	b := i.Bounds()
	for y := range iter.N(b.Dy()) {
		for x := range iter.N(b.Dx()) {
			shade(w, i.At(b.Min.X+x, b.Min.Y+y), escapesTrueColor, blanks, noColor)
		}
		if !noColor {
			fmt.Fprintf(w, "\x1b[0m")
		}
		fmt.Fprintf(w, "\n")
	}
}

// Print256Color draws an image using 256color'd ascii art.
func Print256Color(w io.Writer, i image.Image, blanks bool) {
	printRows(w, i, false, blanks, false)
}

// Print24bit draws an image using 24bit color escape sequences by changing background.
func Print24bit(w io.Writer, i image.Image, blanks bool) {
	printRows(w, i, true, blanks, false)
}

// PrintNoColor draws an image without using color escape sequences. Only
// makes sense with blanks=false.
func PrintNoColor(w io.Writer, i image.Image, blanks bool) {
	printRows(w, i, true, blanks, true)
}

// PrintITerm draws an image using iTerm2's escape sequences.
//
// https://www.iterm2.com/documentation-images.html
func PrintITerm(w io.Writer, i image.Image, fn string) {
	if !isTermItermWez() {
		return
	}
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	bEnc := base64.NewEncoder(base64.StdEncoding, b)
	png.Encode(bEnc, i)
	bEnc.Close()
	fmt.Fprintf(w, "\n\033]1337;File=name=%s;inline=1;size=%d,width=%dpx;height=%dpx:%s\a\n", name, b.Len(), i.Bounds().Size().X, i.Bounds().Size().Y, b.String())
}

// Scale resizes i by factor with nearest-neighbour sampling, keeping sprite
// pixels crisp.
func Scale(i image.Image, factor float64) image.Image {
	if factor <= 0 || factor == 1 {
		return i
	}
	w := uint(float64(i.Bounds().Dx()) * factor)
	h := uint(float64(i.Bounds().Dy()) * factor)
	if w == 0 || h == 0 {
		return i
	}
	return resize.Resize(w, h, i, resize.NearestNeighbor)
}

// Thumbnail shrinks i to fit maxW x maxH, keeping the aspect ratio. Images
// already small enough are returned unchanged.
func Thumbnail(i image.Image, maxW, maxH uint) image.Image {
	return resize.Thumbnail(maxW, maxH, i, resize.NearestNeighbor)
}
