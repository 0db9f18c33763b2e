package tui

import "github.com/atotto/clipboard"

// copyToClipboard puts text on the system clipboard. Kept behind a variable so
// tests can stub it out; headless terminals have no clipboard.
var copyToClipboard = func(text string) error {
	return clipboard.WriteAll(text)
}
