package register

import "github.com/atotto/clipboard"

// ClipboardProvider abstracts system clipboard access.
type ClipboardProvider interface {
	// Get returns the current clipboard content.
	Get() (string, error)

	// Set replaces the clipboard content.
	Set(content string) error
}

// SystemClipboard is the host clipboard.
type SystemClipboard struct{}

// SystemClipboardAvailable reports whether the host has a usable
// clipboard utility.
func SystemClipboardAvailable() bool {
	return !clipboard.Unsupported
}

// Get reads the clipboard.
func (SystemClipboard) Get() (string, error) {
	return clipboard.ReadAll()
}

// Set writes the clipboard.
func (SystemClipboard) Set(content string) error {
	return clipboard.WriteAll(content)
}
