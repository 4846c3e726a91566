package main

import (
	"image"
	"io"

	"badc0de.net/pkg/go-sprited/imageprint"
)

func out(w io.Writer, img image.Image) {
	img = imageprint.Scale(img, *scale)

	if *downsize {
		termSize, err := GetTermSize()
		if err == nil {
			if (termSize.WSXPixel != 0 && termSize.WSYPixel != 0) && (*rasterm || *iterm) {
				// Image protocols draw real pixels, so fit to the pixel size.
				img = imageprint.Thumbnail(img, termSize.WSXPixel/2, termSize.WSYPixel/2)
			} else if termSize.WSCol != 0 {
				// Two columns per pixel.
				img = imageprint.Thumbnail(img, termSize.WSCol/2, termSize.WSRow)
			}
		}
	}

	if *rasterm && imageprint.PrintRasTerm(w, img) {
		return
	}
	if !*col {
		imageprint.PrintNoColor(w, img, false)
	} else if *iterm {
		imageprint.PrintITerm(w, img, "frame.png")
	} else if *col256 {
		imageprint.Print256Color(w, img, *blanks)
	} else {
		imageprint.Print24bit(w, img, *blanks)
	}
}
