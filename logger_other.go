//go:build !(darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)
// +build !darwin,!dragonfly,!freebsd,!linux,!netbsd,!openbsd,!solaris

/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Logging, system-dependent part for non-UNIX systems
 */

package ippclient

import (
	"io"
	"os"
)

// logIsAtty returns true, if os.File refers to a terminal.
// Console colors are not used on these systems
func logIsAtty(file *os.File) bool {
	return false
}

// logColorConsoleWrite writes a line to console as is
func logColorConsoleWrite(out io.Writer, level LogLevel, line []byte) {
	out.Write(line)
}
