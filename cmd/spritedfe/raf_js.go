//go:build js && wasm
// +build js,wasm

package main

import (
	"syscall/js"
	"time"
)

// rafScheduler delivers playback ticks through the browser's
// requestAnimationFrame. Callbacks run on the JS event loop, one at a time.
type rafScheduler struct{}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func (rafScheduler) RequestFrame(cb func(now time.Duration)) {
	var fn js.Func
	fn = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		fn.Release()
		cb(msToDuration(args[0].Float()))
		return nil
	})
	js.Global().Call("requestAnimationFrame", fn)
}

func (rafScheduler) Now() time.Duration {
	return msToDuration(js.Global().Get("performance").Call("now").Float())
}
