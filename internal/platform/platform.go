// Package platform opens the host surface the clock draws on: a glfw window
// on desktop, a canvas in the browser.
package platform

type WindowConfig struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}
