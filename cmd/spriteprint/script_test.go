package main

import (
	"bytes"
	"image"
	"io"
	"strings"
	"testing"

	"badc0de.net/pkg/go-sprited/imageprint"
	"badc0de.net/pkg/go-sprited/ttesting"
)

func asciiPrint(w io.Writer, img image.Image) {
	imageprint.PrintNoColor(w, img, false)
}

func TestParseScript(t *testing.T) {
	cmds, err := parseScript(strings.NewReader("# comment\n\ntoggle 1 2\n  ADD  \ntick 16 4\n"))
	if err != nil {
		t.Fatalf("failed to parse script: %v", err)
	}
	ttesting.AssertEqualInt(t, "commands", len(cmds), 3)
	ttesting.AssertEqualString(t, "first", cmds[0].name, "toggle")
	ttesting.AssertEqualInt(t, "first line", cmds[0].line, 3)
	ttesting.AssertEqualString(t, "second", cmds[1].name, "add")
	ttesting.AssertEqualInt(t, "tick args", len(cmds[2].args), 2)
}

func TestParseScriptErrors(t *testing.T) {
	for _, src := range []string{
		"jump\n",
		"toggle 1\n",
		"add 3\n",
		"tick\n",
	} {
		if _, err := parseScript(strings.NewReader(src)); err == nil {
			t.Errorf("parseScript(%q) returned no error", src)
		}
	}
}

func TestReplay(t *testing.T) {
	const src = `
toggle 0 0
add
toggle 7 1
state
play
tick 60
tick 60
state
stop
export
print
`
	cmds, err := parseScript(strings.NewReader(src))
	if err != nil {
		t.Fatalf("failed to parse script: %v", err)
	}
	buf := &bytes.Buffer{}
	s, err := newSession(8, 2, 10, buf, asciiPrint)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if err := s.run(cmds); err != nil {
		t.Fatalf("failed to replay: %v", err)
	}

	want := "frame 1/2 stopped fps=10 preview=1\n" +
		"frame 1/2 running fps=10 preview=1\n" +
		"\n0x80, 0x00, \n0x00, 0x01, \n" +
		"................\n..............##\n"
	ttesting.AssertEqualString(t, "output", buf.String(), want)
	ttesting.AssertEqualInt(t, "redraws", s.redraws, 2)
}

func TestReplayRejectsOutOfRange(t *testing.T) {
	for _, src := range []string{
		"toggle 8 0\n",
		"toggle 0 -1\n",
		"select 1\n",
		"rate 0\n",
		"tick -5\n",
	} {
		cmds, err := parseScript(strings.NewReader(src))
		if err != nil {
			t.Fatalf("failed to parse %q: %v", src, err)
		}
		s, _ := newSession(8, 2, 10, io.Discard, asciiPrint)
		if err := s.run(cmds); err == nil {
			t.Errorf("replaying %q returned no error", src)
		}
	}
}
