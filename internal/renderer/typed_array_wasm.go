//go:build js && wasm

package renderer

import (
	"syscall/js"
	"unsafe"
)

// float32Array copies data into a new JS Float32Array. syscall/js only
// copies bytes, so the floats go through a Uint8Array view over the new
// array's buffer in host byte order, which WebGL expects.
func float32Array(data []float32) js.Value {
	arr := js.Global().Get("Float32Array").New(len(data))
	if len(data) == 0 {
		return arr
	}
	bytes := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4)
	view := js.Global().Get("Uint8Array").New(arr.Get("buffer"), arr.Get("byteOffset"), arr.Get("byteLength"))
	js.CopyBytesToJS(view, bytes)
	return arr
}
