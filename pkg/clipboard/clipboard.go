// Package clipboard picks the clipboard host for the current platform.
package clipboard
