//go:build !linux

package logger

import "io"

func isTerminal(io.Writer) bool {
	return false
}
