/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Tests for document payload
 */

package ippclient

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// Test raw text framing
func TestDocumentRawText(t *testing.T) {
	type testData struct {
		data []byte
		raw  bool
		ff   FormFeed
		out  []byte
	}

	tests := []testData{
		{[]byte("abc"), false, FormFeedAuto, []byte("abc")},
		{[]byte("abc"), true, FormFeedAuto, []byte("\x16abc\x0c")},
		{[]byte("abc\x0c"), true, FormFeedAuto, []byte("\x16abc\x0c")},
		{[]byte(""), true, FormFeedAuto, []byte("\x16\x0c")},
		{[]byte("abc\x0c"), true, FormFeedForce, []byte("\x16abc\x0c\r\n\x0c")},
		{[]byte("abc"), true, FormFeedNone, []byte("\x16abc")},
	}

	dir := t.TempDir()

	for i, test := range tests {
		path := filepath.Join(dir, "doc.txt")
		if err := os.WriteFile(path, test.data, 0644); err != nil {
			t.Fatalf("%s", err)
		}

		docs := []*Document{
			NewDataDocument("doc.txt", test.data),
			NewFileDocument(path),
		}

		for _, doc := range docs {
			doc.RawText = test.raw
			doc.FormFeed = test.ff

			body, err := doc.Open()
			if err != nil {
				t.Errorf("%d: %s", i, err)
				continue
			}

			out, err := io.ReadAll(body)
			body.Close()

			if err != nil {
				t.Errorf("%d: %s", i, err)
			} else if !bytes.Equal(out, test.out) {
				t.Errorf("%d (path=%q): expected %q, present %q",
					i, doc.Path, test.out, out)
			}
		}
	}
}

// Test document constructors
func TestDocumentNew(t *testing.T) {
	doc := NewFileDocument("/tmp/reports/q1.pdf")
	if doc.Name != "q1.pdf" || doc.Path != "/tmp/reports/q1.pdf" {
		t.Errorf("NewFileDocument: %+v", doc)
	}

	_, err := NewFileDocument(filepath.Join(t.TempDir(), "missed.pdf")).Open()
	if err == nil {
		t.Errorf("missed file opened")
	}
}
