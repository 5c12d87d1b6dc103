/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Logging
 */

package ippclient

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Default parameters of log rotation
const (
	LogMaxFileSize    = 256 * 1024
	LogMaxBackupFiles = 5
)

var (
	logMessagePool = sync.Pool{New: func() interface{} { return &LogMessage{} }}
	logBufferPool  = sync.Pool{New: func() interface{} { return &bytes.Buffer{} }}
)

// LogLevel enumerates possible log levels. Levels are bits,
// and Logger filters messages by the mask of enabled levels
type LogLevel int

// LogLevel bits
const (
	LogError LogLevel = 1 << iota
	LogInfo
	LogDebug
	LogTraceIPP
	LogTraceHTTP

	LogTraceAll = LogTraceIPP | LogTraceHTTP
	LogAll      = LogError | LogInfo | LogDebug | LogTraceAll
)

// Logger implements logging facilities.
//
// The nil *Logger is valid and discards everything
type Logger struct {
	lock       sync.Mutex   // Write lock
	levels     LogLevel     // Enabled levels
	path       string       // Path to log file, "" if none
	time       bytes.Buffer // Time prefix buffer
	out        io.Writer    // Output stream
	file       *os.File     // Output file, if opened by logger
	console    bool         // true for console logger
	color      bool         // Colorize console output
	maxSize    int64        // Rotate file when it grows above
	maxBackups int          // Count of gzip-ed backups
}

// NewConsoleLogger creates a logger that writes to the
// standard error stream
func NewConsoleLogger(levels LogLevel) *Logger {
	return &Logger{
		levels:  levels,
		out:     os.Stderr,
		console: true,
		color:   logIsAtty(os.Stderr),
	}
}

// NewFileLogger creates a logger that writes to the file.
// The file is opened on demand and rotated when grows too large
func NewFileLogger(path string, levels LogLevel) *Logger {
	return &Logger{
		levels:     levels,
		path:       path,
		maxSize:    LogMaxFileSize,
		maxBackups: LogMaxBackupFiles,
	}
}

// NewWriterLogger creates a logger that writes to the io.Writer
func NewWriterLogger(w io.Writer, levels LogLevel) *Logger {
	return &Logger{
		levels:  levels,
		out:     w,
		console: true,
	}
}

// SetRotation overrides log rotation parameters of the file logger
func (l *Logger) SetRotation(maxSize int64, maxBackups int) {
	l.lock.Lock()
	l.maxSize = maxSize
	l.maxBackups = maxBackups
	l.lock.Unlock()
}

// Enabled reports whether any of specified levels is enabled
func (l *Logger) Enabled(level LogLevel) bool {
	return l != nil && l.levels&level != 0
}

// Close the logger
func (l *Logger) Close() {
	if l == nil {
		return
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	if l.file != nil {
		l.file.Close()
		l.file = nil
		l.out = nil
	}
}

// Begin new log message
func (l *Logger) Begin() *LogMessage {
	msg := logMessagePool.Get().(*LogMessage)
	msg.logger = l
	return msg
}

// Debug writes a LogDebug message
func (l *Logger) Debug(prefix byte, format string, args ...interface{}) {
	l.Begin().Debug(prefix, format, args...).Commit()
}

// Info writes a LogInfo message
func (l *Logger) Info(prefix byte, format string, args ...interface{}) {
	l.Begin().Info(prefix, format, args...).Commit()
}

// Error writes a LogError message
func (l *Logger) Error(prefix byte, format string, args ...interface{}) {
	l.Begin().Error(prefix, format, args...).Commit()
}

// Dump writes HEX dump with optional title. If title is not "",
// it is formatted, as fmt.Printf does, and prepended to the dump
func (l *Logger) Dump(data []byte, title string, args ...interface{}) {
	l.Begin().Dump(data, title, args...).Commit()
}

// Format a time prefix
func (l *Logger) fmtTime() {
	l.time.Reset()

	if !l.console {
		now := time.Now()

		year, month, day := now.Date()
		fmt.Fprintf(&l.time, "%2.2d-%2.2d-%4.4d ", day, month, year)

		hour, min, sec := now.Clock()
		fmt.Fprintf(&l.time, "%2.2d:%2.2d:%2.2d", hour, min, sec)

		l.time.WriteString(": ")
	}
}

// Open log file on demand. Called under the lock
func (l *Logger) open() {
	if l.out != nil || l.path == "" {
		return
	}

	os.MkdirAll(filepath.Dir(l.path), 0755)
	file, err := os.OpenFile(l.path,
		os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err == nil {
		l.file = file
		l.out = file
	}
}

// Handle log rotation
func (l *Logger) rotate() {
	if l.file == nil || l.maxSize <= 0 {
		return
	}

	// Do we need to rotate?
	stat, err := l.file.Stat()
	if err != nil || stat.Size() <= l.maxSize {
		return
	}

	// Perform rotation
	prevpath := ""
	for i := l.maxBackups; i >= 0; i-- {
		nextpath := l.path
		if i > 0 {
			nextpath += fmt.Sprintf(".%d.gz", i-1)
		}

		switch i {
		case l.maxBackups:
			os.Remove(nextpath)
		case 0:
			err := l.gzip(nextpath, prevpath)
			if err == nil {
				l.file.Truncate(0)
			}
		default:
			os.Rename(nextpath, prevpath)
		}

		prevpath = nextpath
	}
}

// gzip the log file
func (l *Logger) gzip(ipath, opath string) error {
	if opath == "" {
		return nil
	}

	// Open input file
	ifile, err := os.Open(ipath)
	if err != nil {
		return err
	}

	defer ifile.Close()

	// Open output file
	ofile, err := os.OpenFile(opath, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return err
	}

	// gzip ifile->ofile
	w := gzip.NewWriter(ofile)
	_, err = io.Copy(w, ifile)
	err2 := w.Close()
	err3 := ofile.Close()

	switch {
	case err == nil && err2 != nil:
		err = err2
	case err == nil && err3 != nil:
		err = err3
	}

	// Cleanup and exit
	if err != nil {
		os.Remove(opath)
	}

	return err
}

// LogMessage represents a single (possible multi line) log
// message, which will appear in the output log atomically,
// and will not be interrupted in the middle by other log activity
type LogMessage struct {
	logger *Logger   // Underlying logger
	lines  []logLine // One buffer per line
}

// logLine is the single line of the LogMessage
type logLine struct {
	level LogLevel
	buf   *bytes.Buffer
}

// add formats a next line of log message, with level and prefix char
func (msg *LogMessage) add(level LogLevel, prefix byte,
	format string, args ...interface{}) *LogMessage {

	if !msg.logger.Enabled(level) {
		return msg
	}

	buf := logBufAlloc()
	buf.Write([]byte{prefix, ' '})
	fmt.Fprintf(buf, format, args...)
	buf.WriteByte('\n')
	msg.lines = append(msg.lines, logLine{level, buf})
	return msg
}

// Debug writes a LogDebug message
func (msg *LogMessage) Debug(prefix byte, format string, args ...interface{}) *LogMessage {
	return msg.add(LogDebug, prefix, format, args...)
}

// Info writes a LogInfo message
func (msg *LogMessage) Info(prefix byte, format string, args ...interface{}) *LogMessage {
	return msg.add(LogInfo, prefix, format, args...)
}

// Error writes a LogError message
func (msg *LogMessage) Error(prefix byte, format string, args ...interface{}) *LogMessage {
	return msg.add(LogError, prefix, format, args...)
}

// Write implements io.Writer interface. Text is automatically
// split into lines, written at the LogDebug level
func (msg *LogMessage) Write(text []byte) (n int, err error) {
	return msg.write(LogDebug, text)
}

// Writer returns io.Writer that appends text to the message
// at the specified level
func (msg *LogMessage) Writer(level LogLevel) io.Writer {
	return logWriter{msg, level}
}

// logWriter implements io.Writer on the top of LogMessage
type logWriter struct {
	msg   *LogMessage
	level LogLevel
}

// Write implements io.Writer interface
func (w logWriter) Write(text []byte) (n int, err error) {
	return w.msg.write(w.level, text)
}

// write appends text at the specified level
func (msg *LogMessage) write(level LogLevel, text []byte) (n int, err error) {
	n, err = len(text), nil

	if !msg.logger.Enabled(level) {
		return
	}

	for len(text) > 0 {
		// Fetch next line
		var line []byte

		if l := bytes.IndexByte(text, '\n'); l >= 0 {
			l++
			line = text[:l]
			text = text[l:]
		} else {
			line = text
			text = nil
		}

		// Save the line
		cnt := len(msg.lines)
		if cnt > 0 && msg.lines[cnt-1].level == level &&
			!logBufTerminated(msg.lines[cnt-1].buf) {
			buf := msg.lines[cnt-1].buf
			if buf.Len() == 0 {
				buf.Write([]byte("  "))
			}
			buf.Write(line)
		} else {
			buf := logBufAlloc()
			if len(line) != 0 {
				buf.Write([]byte("  "))
				buf.Write(line)
			}
			msg.lines = append(msg.lines, logLine{level, buf})
		}
	}

	return
}

// Dump writes HEX dump with optional title. If title is not "",
// it is formatted, as fmt.Printf does, and prepended to the dump
func (msg *LogMessage) Dump(data []byte, title string, args ...interface{}) *LogMessage {
	return msg.dump(LogDebug, data, title, args...)
}

// dump writes HEX dump at the specified level
func (msg *LogMessage) dump(level LogLevel, data []byte,
	title string, args ...interface{}) *LogMessage {

	if !msg.logger.Enabled(level) {
		return msg
	}

	if title != "" {
		msg.add(level, ' ', title, args...)
	}

	hex := logBufAlloc()
	chr := logBufAlloc()

	defer logBufFree(hex)
	defer logBufFree(chr)

	off := 0

	for len(data) > 0 {
		hex.Reset()
		chr.Reset()

		sz := len(data)
		if sz > 16 {
			sz = 16
		}

		i := 0
		for ; i < sz; i++ {
			c := data[i]
			fmt.Fprintf(hex, "%2.2x", data[i])
			if i%4 == 3 {
				hex.Write([]byte(":"))
			} else {
				hex.Write([]byte(" "))
			}

			if 0x20 <= c && c < 0x80 {
				chr.WriteByte(c)
			} else {
				chr.WriteByte('.')
			}
		}

		for ; i < 16; i++ {
			hex.WriteString("   ")
		}

		msg.add(level, ' ', "%4.4x: %s %s", off, hex, chr)

		off += sz
		data = data[sz:]
	}

	return msg
}

// Commit message to the log
func (msg *LogMessage) Commit() {
	// Don't forget to free the message
	defer msg.free()

	// Ignore empty messages
	l := msg.logger
	if len(msg.lines) == 0 || l == nil {
		return
	}

	// Lock the logger
	l.lock.Lock()
	defer l.lock.Unlock()

	l.open()
	if l.out == nil {
		return
	}

	// Rotate now
	l.rotate()

	// Send message content to the logger
	l.fmtTime()
	for _, line := range msg.lines {
		if !logBufTerminated(line.buf) {
			line.buf.WriteByte('\n')
		}

		if l.color {
			logColorConsoleWrite(l.out, line.level, line.buf.Bytes())
		} else {
			l.out.Write(l.time.Bytes())
			l.out.Write(line.buf.Bytes())
		}
	}
}

// Reject the message
func (msg *LogMessage) Reject() {
	msg.free()
}

// Return message to the logMessagePool
func (msg *LogMessage) free() {
	for _, l := range msg.lines {
		logBufFree(l.buf)
	}

	// Reset the message and put it to the pool
	if len(msg.lines) < 16 {
		msg.lines = msg.lines[:0] // Keep memory, reset content
	} else {
		msg.lines = nil
	}

	msg.logger = nil

	// Put the message
	logMessagePool.Put(msg)
}

// Check if line buffer is '\n'-terminated
func logBufTerminated(buf *bytes.Buffer) bool {
	if l := buf.Len(); l > 0 {
		return buf.Bytes()[l-1] == '\n'
	}
	return false
}

// Allocate a buffer
func logBufAlloc() *bytes.Buffer {
	return logBufferPool.Get().(*bytes.Buffer)
}

// Free a buffer
func logBufFree(buf *bytes.Buffer) {
	if buf.Cap() <= 256 {
		buf.Reset()
		logBufferPool.Put(buf)
	}
}
