//go:build js && wasm
// +build js,wasm

package main

import (
	"syscall/js"
)

type console struct{}

func (*console) Write(p []byte) (n int, err error) {
	js.Global().Get("window").Get("console").Call("log", js.ValueOf(string(p)))
	return len(p), nil
}
