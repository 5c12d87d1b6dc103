/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Document payload
 */

package ippclient

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// FormFeed controls the tail of raw text documents
type FormFeed int

// FormFeed modes
const (
	FormFeedAuto  FormFeed = iota // Append \f, unless data ends with it
	FormFeedForce                 // Always append \r\n\f
	FormFeedNone                  // Never append anything
)

// Raw text framing bytes
const (
	rawTextHead = 0x16 // SYN
	rawTextTail = 0x0c // Form feed
)

// Document represents a document payload, sent after the
// IPP request with Print-Job and Send-Document
type Document struct {
	Name     string   // Document name, used for document-name/job-name
	Format   string   // MIME type; "" for the session default
	Path     string   // File path, if document comes from the file
	Data     []byte   // In-memory data, if Path is ""
	RawText  bool     // Send as raw text
	FormFeed FormFeed // Raw text tail mode
}

// NewFileDocument creates a Document that reads the file
func NewFileDocument(path string) *Document {
	return &Document{
		Name: filepath.Base(path),
		Path: path,
	}
}

// NewDataDocument creates a Document from in-memory data
func NewDataDocument(name string, data []byte) *Document {
	return &Document{
		Name: name,
		Data: data,
	}
}

// Open returns document content reader. In raw text mode
// content is framed with head and tail bytes
func (doc *Document) Open() (io.ReadCloser, error) {
	var body io.ReadCloser
	var last byte
	var empty bool

	if doc.Path != "" {
		file, err := os.Open(doc.Path)
		if err != nil {
			return nil, err
		}

		if doc.RawText {
			last, empty, err = docLastByte(file)
			if err != nil {
				file.Close()
				return nil, err
			}
		}

		body = file
	} else {
		if l := len(doc.Data); l > 0 {
			last = doc.Data[l-1]
		} else {
			empty = true
		}
		body = io.NopCloser(bytes.NewReader(doc.Data))
	}

	if !doc.RawText {
		return body, nil
	}

	var tail []byte
	switch doc.FormFeed {
	case FormFeedAuto:
		if empty || last != rawTextTail {
			tail = []byte{rawTextTail}
		}
	case FormFeedForce:
		tail = []byte{'\r', '\n', rawTextTail}
	}

	return &docRawText{
		Reader: io.MultiReader(bytes.NewReader([]byte{rawTextHead}),
			body, bytes.NewReader(tail)),
		body: body,
	}, nil
}

// docRawText wraps raw text reader
type docRawText struct {
	io.Reader
	body io.Closer
}

// Close closes the underlying body
func (rt *docRawText) Close() error {
	return rt.body.Close()
}

// docLastByte returns the last byte of the file
func docLastByte(file *os.File) (last byte, empty bool, err error) {
	stat, err := file.Stat()
	if err != nil {
		return
	}

	if stat.Size() == 0 {
		return 0, true, nil
	}

	var buf [1]byte
	_, err = file.ReadAt(buf[:], stat.Size()-1)
	return buf[0], false, err
}
