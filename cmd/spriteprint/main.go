// Command spriteprint replays a sprite editing script and prints the
// resulting frames on the terminal.
//
// Each script line is one editor event, for example:
//
//	toggle 0 0
//	add
//	toggle 7 1
//	play
//	tick 16 10
//	print
//	export
//
// Time only passes on "tick MS [COUNT]", so playback is reproducible.
package main

import (
	"flag"
	"io"
	"os"

	"badc0de.net/pkg/flagutil/v1"

	"github.com/golang/glog"
)

var (
	script   = flag.String("script", "-", "script to replay; - reads stdin")
	width    = flag.Int("width", 8, "frame width in pixels")
	height   = flag.Int("height", 8, "frame height in pixels")
	fps      = flag.Float64("fps", 10, "initial playback frame rate")
	scale    = flag.Float64("scale", 1, "factor to scale frames by before printing")
	col      = flag.Bool("col", true, "whether to use color escape sequences at all")
	col256   = flag.Bool("col256", false, "whether to use 256 col instead of 24 bit")
	iterm    = flag.Bool("iterm", false, "whether to print with iterm escape code instead of 24 bit")
	rasterm  = flag.Bool("rasterm", false, "whether to print with whichever image protocol rasterm finds")
	blanks   = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize = flag.Bool("downsize", false, "whether to shrink frames to fit the terminal")
)

func main() {
	flagutil.Parse()

	var r io.Reader = os.Stdin
	if *script != "-" {
		f, err := os.Open(*script)
		if err != nil {
			glog.Exitf("opening script: %v", err)
		}
		defer f.Close()
		r = f
	}

	cmds, err := parseScript(r)
	if err != nil {
		glog.Exitf("parsing script: %v", err)
	}

	s, err := newSession(*width, *height, *fps, os.Stdout, out)
	if err != nil {
		glog.Exitf("creating session: %v", err)
	}
	if err := s.run(cmds); err != nil {
		glog.Exitf("replaying script: %v", err)
	}
	glog.V(1).Infof("replayed %d commands, %d preview redraws", len(cmds), s.redraws)
}
