package main

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-sprited/frames"
	"badc0de.net/pkg/go-sprited/playback"
	"badc0de.net/pkg/go-sprited/render"
)

// command is a single parsed script line.
type command struct {
	line int
	name string
	args []string
}

// argc is the number of arguments each command takes. Commands with an
// optional trailing argument list both counts.
var argc = map[string][]int{
	"toggle":   {2},
	"clear":    {0},
	"add":      {0},
	"del":      {0},
	"select":   {1},
	"rate":     {1},
	"play":     {0},
	"stop":     {0},
	"playstop": {0},
	"tick":     {1, 2},
	"print":    {0},
	"frame":    {0},
	"state":    {0},
	"export":   {0},
	"anim":     {1},
	"png":      {2},
}

// parseScript reads one command per line. Empty lines and lines starting
// with '#' are ignored.
func parseScript(r io.Reader) ([]command, error) {
	var cmds []command
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		fields := strings.Fields(s.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		cmd := command{line: line, name: strings.ToLower(fields[0]), args: fields[1:]}
		counts, ok := argc[cmd.name]
		if !ok {
			return nil, errors.Errorf("line %d: unknown command %q", line, cmd.name)
		}
		valid := false
		for _, n := range counts {
			if len(cmd.args) == n {
				valid = true
			}
		}
		if !valid {
			return nil, errors.Errorf("line %d: %s takes %v arguments, got %d", line, cmd.name, counts, len(cmd.args))
		}
		cmds = append(cmds, cmd)
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "reading script")
	}
	return cmds, nil
}

// session replays a script against a frame store and a playback controller
// driven by a manual clock.
type session struct {
	store  *frames.Store
	player *playback.Controller
	sched  *playback.ManualScheduler

	w     io.Writer
	print func(w io.Writer, img image.Image)
	size  image.Point

	// redraws counts preview redraws requested by playback.
	redraws int
}

func newSession(width, height int, fps float64, w io.Writer, print func(io.Writer, image.Image)) (*session, error) {
	store, err := frames.NewStore(width, height)
	if err != nil {
		return nil, err
	}
	s := &session{
		store: store,
		sched: &playback.ManualScheduler{},
		w:     w,
		print: print,
		size:  image.Pt(256, 256),
	}
	s.player = playback.New(store, s.sched)
	if err := s.player.SetFrameRate(fps); err != nil {
		return nil, err
	}
	s.player.OnRedraw(func(idx int) {
		s.redraws++
		glog.V(2).Infof("preview redraw: frame %d", idx)
	})
	return s, nil
}

func (s *session) intArg(c command, i, lo, hi int) (int, error) {
	v, err := strconv.Atoi(c.args[i])
	if err != nil {
		return 0, errors.Wrapf(err, "line %d: %s", c.line, c.name)
	}
	if v < lo || v >= hi {
		return 0, errors.Errorf("line %d: %s: %d not in [%d, %d)", c.line, c.name, v, lo, hi)
	}
	return v, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeAnimation(path string, fs []*frames.Frame, size image.Point, fps float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.EncodeAnimation(f, fs, size, fps); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *session) exec(c command) error {
	switch c.name {
	case "toggle":
		x, err := s.intArg(c, 0, 0, s.store.Width())
		if err != nil {
			return err
		}
		y, err := s.intArg(c, 1, 0, s.store.Height())
		if err != nil {
			return err
		}
		s.store.Current().TogglePixel(x, y)
	case "clear":
		s.store.Current().Clear()
	case "add":
		s.store.Append()
	case "del":
		s.store.RemoveLast()
	case "select":
		i, err := s.intArg(c, 0, 0, s.store.Len())
		if err != nil {
			return err
		}
		s.store.Select(i)
	case "rate":
		fps, err := strconv.ParseFloat(c.args[0], 64)
		if err != nil {
			return errors.Wrapf(err, "line %d: rate", c.line)
		}
		if err := s.player.SetFrameRate(fps); err != nil {
			return errors.Wrapf(err, "line %d: rate", c.line)
		}
	case "play":
		s.player.Play()
	case "stop":
		s.player.Stop()
	case "playstop":
		s.player.Toggle()
	case "tick":
		ms, err := strconv.ParseFloat(c.args[0], 64)
		if err != nil || ms < 0 {
			return errors.Errorf("line %d: tick: bad duration %q", c.line, c.args[0])
		}
		n := 1
		if len(c.args) == 2 {
			if n, err = s.intArg(c, 1, 1, 1<<20); err != nil {
				return err
			}
		}
		for i := 0; i < n; i++ {
			s.sched.Step(time.Duration(ms * float64(time.Millisecond)))
		}
	case "print":
		s.print(s.w, s.store.Frame(s.player.DisplayIndex(s.store.CurrentIndex())))
	case "frame":
		s.print(s.w, s.store.Current())
	case "state":
		fmt.Fprintf(s.w, "frame %d/%d %s fps=%g preview=%d\n",
			s.store.CurrentIndex(), s.store.Len(), s.player.State(), s.player.FrameRate(),
			s.player.DisplayIndex(s.store.CurrentIndex()))
	case "export":
		if err := s.store.WriteExport(s.w); err != nil {
			return errors.Wrap(err, "writing export")
		}
		fmt.Fprintln(s.w)
	case "anim":
		if err := writeAnimation(c.args[0], s.store.Frames(), s.size, s.player.FrameRate()); err != nil {
			return errors.Wrapf(err, "line %d: anim", c.line)
		}
	case "png":
		i, err := s.intArg(c, 0, 0, s.store.Len())
		if err != nil {
			return err
		}
		if err := writePNG(c.args[1], render.Preview(s.store.Frame(i), s.size)); err != nil {
			return errors.Wrapf(err, "line %d: png", c.line)
		}
	}
	return nil
}

func (s *session) run(cmds []command) error {
	for _, c := range cmds {
		glog.V(1).Infof("line %d: %s %s", c.line, c.name, strings.Join(c.args, " "))
		if err := s.exec(c); err != nil {
			return err
		}
	}
	return nil
}
