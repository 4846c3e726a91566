//go:build js && wasm
// +build js,wasm

// Command spritedfe is the browser frontend of the sprite editor. It is
// compiled to main.wasm and served by spritedweb; the frames never leave the
// browser.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"strconv"
	"syscall/js"

	"badc0de.net/pkg/go-sprited/frames"
	"badc0de.net/pkg/go-sprited/playback"
	"badc0de.net/pkg/go-sprited/render"
)

const (
	canvasSize    = 512
	editorWidth   = 768
	thumbnailSize = 32
)

// previewSize leaves room for the editor canvas and a margin next to it.
var previewSize = min(editorWidth-canvasSize-30, 100)

type editor struct {
	store  *frames.Store
	player *playback.Controller

	document js.Value
	canvas   js.Value
	preview  js.Value
	playBtn  js.Value
	label    js.Value
	framesEl js.Value
	output   js.Value
}

func main() {
	flag.Set("logtostderr", "true")
	flag.Parse()
	log.SetOutput(&console{})

	document := js.Global().Get("document")
	canvas := document.Call("getElementById", "canvas")
	if canvas.IsNull() || canvas.IsUndefined() {
		log.Printf("[E] no #canvas element; nothing to edit")
		return
	}

	width, height := 8, 8
	if v, err := strconv.Atoi(canvas.Get("dataset").Get("width").String()); err == nil {
		width = v
	}
	if v, err := strconv.Atoi(canvas.Get("dataset").Get("height").String()); err == nil {
		height = v
	}

	store, err := frames.NewStore(width, height)
	if err != nil {
		showError("creating frame store", err)
		select {}
	}

	e := &editor{
		store:    store,
		player:   playback.New(store, rafScheduler{}),
		document: document,
		canvas:   canvas,
		preview:  document.Call("getElementById", "preview-canvas"),
		playBtn:  document.Call("getElementById", "play-stop-btn"),
		label:    document.Call("getElementById", "anim-speed-label"),
		framesEl: document.Call("getElementById", "frames"),
		output:   document.Call("getElementById", "output"),
	}
	e.player.OnRedraw(func(int) {
		e.drawPreview()
		e.markFrames()
	})
	e.canvas.Set("width", canvasSize)
	e.canvas.Set("height", canvasSize)
	e.preview.Set("width", previewSize)
	e.preview.Set("height", previewSize)
	e.bind()

	log.Printf("editing %dx%d frames", width, height)
	e.redraw()

	// Prevent go program from exiting.
	select {}
}

// on adds an event listener. The js.Func is never released, so listeners
// are only added once, from bind.
func (e *editor) on(el js.Value, event string, fn func(ev js.Value)) {
	el.Call("addEventListener", event, js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		fn(args[0])
		return nil
	}))
}

func (e *editor) bind() {
	e.on(e.canvas, "mousedown", func(ev js.Value) {
		p := image.Pt(ev.Get("offsetX").Int(), ev.Get("offsetY").Int())
		x, y, ok := render.CellAt(image.Pt(canvasSize, canvasSize), e.store.Width(), e.store.Height(), p)
		if !ok {
			return
		}
		e.store.Current().TogglePixel(x, y)
		e.redraw()
	})

	e.on(e.playBtn, "click", func(js.Value) {
		e.player.Toggle()
		if e.player.Running() {
			e.playBtn.Set("textContent", "STOP")
		} else {
			e.playBtn.Set("textContent", "PLAY")
		}
		e.drawPreview()
		e.markFrames()
	})

	// Thumbnails are rebuilt on every redraw; one listener on the strip
	// serves all of them.
	e.on(e.framesEl, "click", func(ev js.Value) {
		idx := ev.Get("target").Get("dataset").Get("idx")
		if idx.Type() != js.TypeString {
			return
		}
		i, err := strconv.Atoi(idx.String())
		if err != nil || i < 0 || i >= e.store.Len() {
			return
		}
		e.store.Select(i)
		e.redraw()
	})

	slider := e.document.Call("getElementById", "animation-speed-slider")
	e.on(slider, "input", func(js.Value) {
		fps, err := strconv.ParseFloat(slider.Get("value").String(), 64)
		if err != nil {
			return
		}
		if err := e.player.SetFrameRate(fps); err != nil {
			log.Printf("[W] %v", err)
			return
		}
		e.label.Set("textContent", slider.Get("value"))
	})

	btns := e.document.Call("querySelectorAll", "#frame-btns button")
	e.on(btns.Index(0), "click", func(js.Value) {
		e.store.Append()
		e.redraw()
	})
	e.on(btns.Index(1), "click", func(js.Value) {
		e.store.RemoveLast()
		e.redraw()
	})
}

// putImage copies img into the canvas el.
func putImage(el js.Value, img *image.RGBA) {
	b := img.Bounds()
	data := js.Global().Get("Uint8ClampedArray").New(len(img.Pix))
	js.CopyBytesToJS(data, img.Pix)
	imageData := js.Global().Get("ImageData").New(data, b.Dx(), b.Dy())
	el.Call("getContext", "2d").Call("putImageData", imageData, 0, 0)
}

func (e *editor) drawGrid() {
	putImage(e.canvas, render.Grid(e.store.Current(), image.Pt(canvasSize, canvasSize)))
}

func (e *editor) drawPreview() {
	f := e.store.Frame(e.player.DisplayIndex(e.store.CurrentIndex()))
	putImage(e.preview, render.Preview(f, image.Pt(previewSize, previewSize)))
}

func (e *editor) drawFrames() {
	e.framesEl.Set("innerHTML", "")
	for i, f := range e.store.Frames() {
		src, err := render.DataURL(render.Preview(f, image.Pt(thumbnailSize, thumbnailSize)))
		if err != nil {
			showError("encoding thumbnail", err)
			return
		}
		img := e.document.Call("createElement", "img")
		img.Set("src", src)
		img.Set("title", fmt.Sprintf("frame %d", i))
		img.Get("dataset").Set("idx", strconv.Itoa(i))
		e.framesEl.Call("appendChild", img)
	}
	e.markFrames()
}

// markFrames sets the strip classes: the frame being edited, and while
// playing, the frame shown in the preview.
func (e *editor) markFrames() {
	children := e.framesEl.Get("children")
	current := e.store.CurrentIndex()
	preview := e.player.DisplayIndex(current)
	for i := 0; i < children.Get("length").Int(); i++ {
		children.Index(i).Set("className", render.StripClasses(i, current, preview, e.player.Running()))
	}
}

func (e *editor) drawOutput() {
	pre := e.document.Call("createElement", "pre")
	pre.Set("textContent", e.store.Export())
	e.output.Set("innerHTML", "")
	e.output.Call("appendChild", pre)
}

// redraw refreshes everything derived from the frame store.
func (e *editor) redraw() {
	e.drawGrid()
	e.drawPreview()
	e.drawFrames()
	e.drawOutput()
}

func showError(pfx string, err error) {
	log.Printf("[E] %s: %v", pfx, err)

	document := js.Global().Get("document")
	p := document.Call("createElement", "h1")
	p.Set("textContent", pfx+": "+err.Error())
	document.Get("body").Call("appendChild", p)
}
