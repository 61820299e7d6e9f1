// Package clipboard copies text to the system clipboard. macOS gets a
// native pasteboard implementation; other platforms go through
// golang.design/x/clipboard.
package clipboard
