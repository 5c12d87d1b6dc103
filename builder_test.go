/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Tests for IPP request builder
 */

package ippclient

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/OpenPrinting/goipp"
)

const testPrinterURI = "ipp://localhost:631/printers/test"

// newTestBuilder creates Builder with predictable session settings
func newTestBuilder(disc Discoverer) *Builder {
	b := NewBuilder(nil, nil, disc)
	b.now = func() time.Time {
		return time.Date(2020, 3, 15, 10, 30, 0, 0, time.UTC)
	}
	b.SetUserName("alice")
	return b
}

// decodeRequest decodes built request with goipp
func decodeRequest(t *testing.T, rq *Request) *goipp.Message {
	t.Helper()

	var m goipp.Message
	if err := m.DecodeBytes(rq.Data); err != nil {
		t.Fatalf("%s: goipp.Decode: %s", rq.Op, err)
	}

	if m.Version != goipp.MakeVersion(1, 1) {
		t.Errorf("%s: version %s", rq.Op, m.Version)
	}

	if m.Code != goipp.Code(rq.Op) {
		t.Errorf("%s: code 0x%4.4x", rq.Op, uint16(m.Code))
	}

	if m.RequestID != uint32(rq.RequestID) {
		t.Errorf("%s: request-id %d, expected %d", rq.Op, m.RequestID, rq.RequestID)
	}

	return &m
}

// attrNames returns names of attributes, in order
func attrNames(attrs goipp.Attributes) []string {
	var names []string
	for _, attr := range attrs {
		names = append(names, attr.Name)
	}
	return names
}

// attrValues returns values of the named attribute as strings
func attrValues(attrs goipp.Attributes, name string) []string {
	for _, attr := range attrs {
		if attr.Name == name {
			var values []string
			for _, v := range attr.Values {
				values = append(values, v.V.String())
			}
			return values
		}
	}
	return nil
}

// attrTag returns tag of the first value of the named attribute
func attrTag(attrs goipp.Attributes, name string) goipp.Tag {
	for _, attr := range attrs {
		if attr.Name == name && len(attr.Values) != 0 {
			return attr.Values[0].T
		}
	}
	return goipp.TagZero
}

// Test Print-Job request
func TestBuilderPrintJob(t *testing.T) {
	b := newTestBuilder(nil)
	b.SetPrinterURI(testPrinterURI)
	b.SetFidelity()

	if err := b.SetCopies(2); err != nil {
		t.Fatalf("%s", err)
	}

	if err := b.SetSides("2"); err != nil {
		t.Fatalf("%s", err)
	}

	if err := b.SetPageRanges("1:5 10-12"); err != nil {
		t.Fatalf("%s", err)
	}

	doc := NewDataDocument("report.pdf", []byte("%PDF"))
	rq, err := b.PrintJob(context.Background(), doc)
	if err != nil {
		t.Fatalf("%s", err)
	}

	if rq.Op != OpPrintJob || rq.Path != PathPrinters ||
		rq.RequestID != 1 || rq.Document != doc {
		t.Errorf("wrong request: %+v", rq)
	}

	m := decodeRequest(t, rq)

	expected := []string{
		"attributes-charset",
		"attributes-natural-language",
		"printer-uri",
		"requesting-user-name",
		"job-name",
		"ipp-attribute-fidelity",
		"document-name",
		"document-format",
	}

	if names := attrNames(m.Operation); !reflect.DeepEqual(names, expected) {
		t.Errorf("operation attributes:\n  expected: %v\n  present:  %v",
			expected, names)
	}

	check := func(name, value string) {
		if v := attrValues(m.Operation, name); len(v) != 1 || v[0] != value {
			t.Errorf("%s: expected %q, present %q", name, value, v)
		}
	}

	check("attributes-charset", DefaultCharset)
	check("attributes-natural-language", DefaultLanguage)
	check("printer-uri", testPrinterURI)
	check("requesting-user-name", "alice")
	check("job-name", "report.pdf-10:30:00-0001")
	check("document-name", "report.pdf")
	check("document-format", DefaultDocumentFormat)
	check("ipp-attribute-fidelity", "true")

	if v := attrValues(m.Job, "copies"); len(v) != 1 || v[0] != "2" {
		t.Errorf("copies: %v", v)
	}

	if v := attrValues(m.Job, "sides"); len(v) != 1 || v[0] != "two-sided-long-edge" {
		t.Errorf("sides: %v", v)
	}

	if v := attrValues(m.Job, "page-ranges"); !reflect.DeepEqual(v, []string{"1-5", "10-12"}) {
		t.Errorf("page-ranges: %v", v)
	}

	// Pending attributes are reset, request ID incremented
	rq, err = b.PrintJob(context.Background(), doc)
	if err != nil {
		t.Fatalf("%s", err)
	}

	m = decodeRequest(t, rq)
	if rq.RequestID != 2 || len(m.Job) != 0 {
		t.Errorf("pending attributes not reset: id=%d job=%v",
			rq.RequestID, attrNames(m.Job))
	}

	if v := attrValues(m.Operation, "job-name"); v[0] != "report.pdf-10:30:00-0002" {
		t.Errorf("job-name: %v", v)
	}
}

// Test raw text document without explicit format
func TestBuilderRawText(t *testing.T) {
	b := newTestBuilder(nil)
	b.SetPrinterURI(testPrinterURI)
	b.SetJobName("notes", true)

	doc := NewDataDocument("notes.txt", []byte("hello"))
	doc.RawText = true

	rq, err := b.PrintJob(context.Background(), doc)
	if err != nil {
		t.Fatalf("%s", err)
	}

	m := decodeRequest(t, rq)
	if v := attrValues(m.Operation, "document-format"); v != nil {
		t.Errorf("document-format sent for raw text: %v", v)
	}

	if v := attrValues(m.Operation, "job-name"); v[0] != "notes" {
		t.Errorf("absolute job-name: %v", v)
	}

	doc.Format = "text/plain"
	rq, _ = b.PrintJob(context.Background(), doc)
	m = decodeRequest(t, rq)
	if v := attrValues(m.Operation, "document-format"); len(v) != 1 || v[0] != "text/plain" {
		t.Errorf("explicit document-format: %v", v)
	}
}

// Test that failed builds don't consume request ID
func TestBuilderErrors(t *testing.T) {
	b := newTestBuilder(nil)
	ctx := context.Background()

	type testData struct {
		build func() (*Request, error)
		err   error
	}

	tests := []testData{
		{func() (*Request, error) { return b.PrintJob(ctx, NewDataDocument("x", nil)) }, ErrNoPrinterURI},
		{func() (*Request, error) { return b.PrintJob(ctx, nil) }, ErrNoDocument},
		{func() (*Request, error) { return b.CancelJob(ctx, "") }, ErrNoJobURI},
		{func() (*Request, error) { return b.HoldJob(ctx, "") }, ErrNoJobURI},
		{func() (*Request, error) { return b.SendURI(ctx, "", "http://x/", true) }, ErrNoJobURI},
		{func() (*Request, error) { return b.GetJobAttributes(ctx, "", "") }, ErrNoJobURI},
		{func() (*Request, error) { return b.GetPrinterAttributes(ctx) }, ErrNoPrinterURI},
		{func() (*Request, error) { return b.GetJobs(ctx, GetJobsOptions{}) }, ErrNoPrinterAvailable},
	}

	for i, test := range tests {
		rq, err := test.build()
		if rq != nil || !errors.Is(err, test.err) {
			t.Errorf("%d: expected %v, present %v", i, test.err, err)
		}
	}

	if b.RequestID() != 1 {
		t.Errorf("request ID consumed by failed builds: %d", b.RequestID())
	}

	// Pending attributes survive failed build
	b.SetAttribute("copies", "3")
	b.PrintJob(ctx, NewDataDocument("x", nil))

	b.SetPrinterURI(testPrinterURI)
	rq, err := b.PrintJob(ctx, NewDataDocument("x", nil))
	if err != nil {
		t.Fatalf("%s", err)
	}

	m := decodeRequest(t, rq)
	if v := attrValues(m.Job, "copies"); len(v) != 1 || v[0] != "3" {
		t.Errorf("copies lost: %v", v)
	}
}

// Test SetAttribute
func TestBuilderSetAttribute(t *testing.T) {
	b := newTestBuilder(nil)

	type testData struct {
		name   string
		values []string
		err    interface{}
	}

	var unsupported *UnsupportedAttributeError
	var encoding *EncodingError

	tests := []testData{
		{"copies", []string{"2"}, nil},
		{"media", []string{"iso_a4_210x297mm"}, nil},
		{"print-quality", []string{"high"}, nil},
		{"printer-resolution", []string{"600x300dpi"}, nil},
		{"page-ranges", []string{"1-3", "7"}, nil},
		{"requested-attributes", []string{"printer-name", "printer-state"}, nil},
		{"no-such-attribute", []string{"1"}, &unsupported},
		{"copies", []string{"two"}, &encoding},
		{"copies", []string{"3000000000"}, &encoding},
		{"copies", nil, &encoding},
		{"print-quality", []string{"best"}, &encoding},
		{"printer-resolution", []string{"600"}, &encoding},
		{"page-ranges", []string{"5-1"}, &encoding},
	}

	for _, test := range tests {
		err := b.SetAttribute(test.name, test.values...)
		switch {
		case test.err == nil && err != nil:
			t.Errorf("%s=%v: %s", test.name, test.values, err)
		case test.err != nil && !errors.As(err, test.err):
			t.Errorf("%s=%v: expected %T, present %v",
				test.name, test.values, test.err, err)
		}
	}

	b.SetPrinterURI(testPrinterURI)
	rq, err := b.GetPrinterAttributes(context.Background())
	if err != nil {
		t.Fatalf("%s", err)
	}

	m := decodeRequest(t, rq)
	if v := attrValues(m.Operation, "requested-attributes"); !reflect.DeepEqual(v,
		[]string{"printer-name", "printer-state"}) {
		t.Errorf("requested-attributes: %v", v)
	}

	// Job attributes are not sent by Get-Printer-Attributes,
	// but reset anyway
	if len(m.Job) != 0 || len(b.pending[CategoryJob]) != 0 {
		t.Errorf("job attributes: %v", attrNames(m.Job))
	}
}

// Test job control requests
func TestBuilderJobControl(t *testing.T) {
	const jobURI = "ipp://localhost:631/jobs/42"

	b := newTestBuilder(nil)
	ctx := context.Background()

	rq, err := b.HoldJob(ctx, jobURI)
	if err != nil {
		t.Fatalf("%s", err)
	}

	m := decodeRequest(t, rq)
	if v := attrValues(m.Operation, "job-hold-until"); len(v) != 1 || v[0] != "indefinite" {
		t.Errorf("default job-hold-until: %v", v)
	}

	b.SetMessage(strings.Repeat("x", 200))
	b.SetJobHoldUntil("lunch-time")

	rq, err = b.HoldJob(ctx, jobURI)
	if err != nil {
		t.Fatalf("%s", err)
	}

	if rq.Path != PathJobs || rq.JobURI != jobURI {
		t.Errorf("wrong request: %+v", rq)
	}

	m = decodeRequest(t, rq)

	if v := attrValues(m.Operation, "job-hold-until"); len(v) != 1 || v[0] != "indefinite" {
		t.Errorf("job-hold-until: %v", v)
	}

	if v := attrValues(m.Operation, "message"); len(v) != 1 || len(v[0]) != MaxMessage {
		t.Errorf("message not clipped: %v", v)
	}

	b.SetJobHoldUntil("night")
	rq, _ = b.HoldJob(ctx, jobURI)
	m = decodeRequest(t, rq)
	if v := attrValues(m.Operation, "job-hold-until"); v[0] != "night" {
		t.Errorf("job-hold-until: %v", v)
	}

	for _, op := range []Op{OpCancelJob, OpReleaseJob, OpRestartJob} {
		var rq *Request
		switch op {
		case OpCancelJob:
			rq, err = b.CancelJob(ctx, jobURI)
		case OpReleaseJob:
			rq, err = b.ReleaseJob(ctx, jobURI)
		case OpRestartJob:
			rq, err = b.RestartJob(ctx, jobURI)
		}

		if err != nil {
			t.Fatalf("%s: %s", op, err)
		}

		m := decodeRequest(t, rq)
		if v := attrValues(m.Operation, "job-uri"); len(v) != 1 || v[0] != jobURI {
			t.Errorf("%s: job-uri: %v", op, v)
		}

		if attrValues(m.Operation, "printer-uri") != nil {
			t.Errorf("%s: printer-uri sent", op)
		}
	}
}

// Test Get-Jobs request
func TestBuilderGetJobs(t *testing.T) {
	type testData struct {
		opts      GetJobsOptions
		requested []string
		extra     []string
	}

	tests := []testData{
		{
			opts:      GetJobsOptions{},
			requested: []string{"all"},
		},
		{
			opts:      GetJobsOptions{Subset: true, Limit: 10, MyJobs: true},
			requested: getJobsSubset,
			extra:     []string{"limit", "my-jobs"},
		},
		{
			opts:      GetJobsOptions{WhichJobs: "completed"},
			requested: []string{"all"},
			extra:     []string{"which-jobs"},
		},
	}

	for _, test := range tests {
		b := newTestBuilder(StaticDiscoverer{testPrinterURI})
		rq, err := b.GetJobs(context.Background(), test.opts)
		if err != nil {
			t.Fatalf("%+v: %s", test.opts, err)
		}

		m := decodeRequest(t, rq)
		if v := attrValues(m.Operation, "requested-attributes"); !reflect.DeepEqual(v, test.requested) {
			t.Errorf("%+v: requested-attributes: %v", test.opts, v)
		}

		for _, name := range test.extra {
			if attrValues(m.Operation, name) == nil {
				t.Errorf("%+v: %s missed", test.opts, name)
			}
		}
	}

	// Explicitly requested attributes win
	b := newTestBuilder(StaticDiscoverer{testPrinterURI})
	b.SetAttribute("requested-attributes", "job-id")
	rq, _ := b.GetJobs(context.Background(), GetJobsOptions{Subset: true})
	m := decodeRequest(t, rq)
	if v := attrValues(m.Operation, "requested-attributes"); !reflect.DeepEqual(v, []string{"job-id"}) {
		t.Errorf("requested-attributes: %v", v)
	}
}

// Test Set-Job-Attributes and Set-Printer-Attributes
func TestBuilderSetAttributes(t *testing.T) {
	b := newTestBuilder(nil)
	b.SetPrinterURI(testPrinterURI)
	ctx := context.Background()

	b.SetAttribute("printer-location", "Room 101")
	if err := b.DeleteAttribute("printer-info"); err != nil {
		t.Fatalf("%s", err)
	}

	rq, err := b.SetPrinterAttributes(ctx)
	if err != nil {
		t.Fatalf("%s", err)
	}

	m := decodeRequest(t, rq)

	if len(m.Groups) != 2 || m.Groups[1].Tag != goipp.TagPrinterGroup {
		t.Fatalf("printer group expected")
	}

	if v := attrValues(m.Printer, "printer-location"); len(v) != 1 || v[0] != "Room 101" {
		t.Errorf("printer-location: %v", v)
	}

	if tag := attrTag(m.Printer, "printer-info"); tag != goipp.TagDeleteAttr {
		t.Errorf("printer-info: tag %s", tag)
	}

	// Operation attributes cannot be deleted
	var e *UnsupportedAttributeError
	if err := b.DeleteAttribute("requested-attributes"); !errors.As(err, &e) {
		t.Errorf("operation attribute deleted: %v", err)
	}

	b.SetAttribute("job-priority", "80")
	rq, err = b.SetJobAttributes(ctx, "ipp://localhost:631/jobs/7")
	if err != nil {
		t.Fatalf("%s", err)
	}

	m = decodeRequest(t, rq)
	if v := attrValues(m.Job, "job-priority"); len(v) != 1 || v[0] != "80" {
		t.Errorf("job-priority: %v", v)
	}
}

// Test printer discovery
func TestBuilderDiscovery(t *testing.T) {
	ctx := context.Background()

	b := newTestBuilder(StaticDiscoverer{"ipp://first/", "ipp://second/"})
	rq, err := b.PausePrinter(ctx)
	if err != nil {
		t.Fatalf("%s", err)
	}

	m := decodeRequest(t, rq)
	if v := attrValues(m.Operation, "printer-uri"); v[0] != "ipp://first/" {
		t.Errorf("printer-uri: %v", v)
	}

	if b.PrinterURI() != "ipp://first/" {
		t.Errorf("discovered printer not remembered")
	}

	b = newTestBuilder(StaticDiscoverer{})
	_, err = b.ResumePrinter(ctx)
	if !errors.Is(err, ErrNoPrinterAvailable) {
		t.Errorf("expected ErrNoPrinterAvailable, present %v", err)
	}

	// Purge-Jobs carries purge-jobs
	b = newTestBuilder(StaticDiscoverer{testPrinterURI})
	rq, _ = b.PurgeJobs(ctx)
	m = decodeRequest(t, rq)
	if v := attrValues(m.Operation, "purge-jobs"); len(v) != 1 || v[0] != "true" {
		t.Errorf("purge-jobs: %v", v)
	}
}

// Test multi-document job requests
func TestBuilderCreateSend(t *testing.T) {
	const jobURI = "ipp://localhost:631/jobs/9"

	b := newTestBuilder(StaticDiscoverer{testPrinterURI})
	ctx := context.Background()

	rq, err := b.CreateJob(ctx)
	if err != nil {
		t.Fatalf("%s", err)
	}
	decodeRequest(t, rq)

	doc := NewDataDocument("page1.pdf", []byte("%PDF"))
	rq, err = b.SendDocument(ctx, jobURI, doc, false)
	if err != nil {
		t.Fatalf("%s", err)
	}

	if rq.Path != PathPrinters || rq.Document != doc || rq.JobURI != jobURI {
		t.Errorf("wrong request: %+v", rq)
	}

	m := decodeRequest(t, rq)
	if v := attrValues(m.Operation, "last-document"); len(v) != 1 || v[0] != "false" {
		t.Errorf("last-document: %v", v)
	}

	rq, err = b.SendURI(ctx, jobURI, "http://example.com/page2.pdf", true)
	if err != nil {
		t.Fatalf("%s", err)
	}

	m = decodeRequest(t, rq)
	if v := attrValues(m.Operation, "document-uri"); len(v) != 1 ||
		v[0] != "http://example.com/page2.pdf" {
		t.Errorf("document-uri: %v", v)
	}

	if v := attrValues(m.Operation, "last-document"); v[0] != "true" {
		t.Errorf("last-document: %v", v)
	}
}

// Test CUPS requests
func TestBuilderCups(t *testing.T) {
	b := NewBuilder(CupsRegistry, nil, nil)
	b.SetUserName("root")
	ctx := context.Background()

	rq, err := b.CupsGetPrinters(ctx, "Lab", "")
	if err != nil {
		t.Fatalf("%s", err)
	}

	if rq.Path != PathRoot {
		t.Errorf("path: %q", rq.Path)
	}

	m := decodeRequest(t, rq)
	if v := attrValues(m.Operation, "printer-location"); len(v) != 1 || v[0] != "Lab" {
		t.Errorf("printer-location: %v", v)
	}

	if attrValues(m.Operation, "printer-info") != nil {
		t.Errorf("empty printer-info sent")
	}

	rq, err = b.CupsGetDefault(ctx)
	if err != nil {
		t.Fatalf("%s", err)
	}

	m = decodeRequest(t, rq)
	if v := attrValues(m.Operation, "requested-attributes"); !reflect.DeepEqual(v, []string{"all"}) {
		t.Errorf("requested-attributes: %v", v)
	}

	_, err = b.CupsAcceptJobs(ctx, "")
	if !errors.Is(err, ErrNoPrinterURI) {
		t.Errorf("expected ErrNoPrinterURI, present %v", err)
	}

	rq, err = b.CupsRejectJobs(ctx, testPrinterURI, "maintenance")
	if err != nil {
		t.Fatalf("%s", err)
	}

	m = decodeRequest(t, rq)
	if v := attrValues(m.Printer, "printer-state-message"); len(v) != 1 || v[0] != "maintenance" {
		t.Errorf("printer-state-message: %v", v)
	}

	// CUPS job template attributes
	if err := b.SetAttribute("mirror", "true"); err != nil {
		t.Errorf("mirror: %s", err)
	}
}

// Test that too long string values are rejected by SetAttribute
// and do not affect subsequent requests
func TestBuilderLongValue(t *testing.T) {
	b := newTestBuilder(nil)
	b.SetPrinterURI(testPrinterURI)
	ctx := context.Background()

	err := b.SetAttribute("job-sheets", strings.Repeat("x", 65536))
	var e *EncodingError
	if !errors.As(err, &e) || e.What != "job-sheets" {
		t.Fatalf("EncodingError expected, present %v", err)
	}

	for i := 0; i < 2; i++ {
		rq, err := b.PrintJob(ctx, NewDataDocument("x", nil))
		if err != nil {
			t.Fatalf("PrintJob #%d: %s", i, err)
		}

		m := decodeRequest(t, rq)
		if v := attrValues(m.Job, "job-sheets"); v != nil {
			t.Errorf("PrintJob #%d: job-sheets sent: %d values", i, len(v))
		}
	}

	err = b.SetAttribute("job-sheets", strings.Repeat("x", 65535))
	if err != nil {
		t.Fatalf("%s", err)
	}

	rq, err := b.ValidateJob(ctx)
	if err != nil {
		t.Fatalf("%s", err)
	}

	m := decodeRequest(t, rq)
	if v := attrValues(m.Job, "job-sheets"); len(v) != 1 || len(v[0]) != 65535 {
		t.Errorf("job-sheets not sent")
	}
}

// Test requested-attributes of Get-Printer-Attributes
func TestBuilderRequestedAttributes(t *testing.T) {
	b := newTestBuilder(nil)
	ctx := context.Background()

	// Failed build leaves nothing pending
	_, err := b.GetPrinterAttributes(ctx, "printer-name")
	if !errors.Is(err, ErrNoPrinterAvailable) || !errors.Is(err, ErrNoPrinterURI) {
		t.Fatalf("expected ErrNoPrinterAvailable, present %v", err)
	}

	b.SetPrinterURI(testPrinterURI)
	rq, err := b.GetJobs(ctx, GetJobsOptions{})
	if err != nil {
		t.Fatalf("%s", err)
	}

	m := decodeRequest(t, rq)
	if v := attrValues(m.Operation, "requested-attributes"); !reflect.DeepEqual(v, []string{"all"}) {
		t.Errorf("Get-Jobs requested-attributes: %v", v)
	}

	// Explicit list wins over the pending one
	b.SetAttribute("requested-attributes", "printer-state")
	rq, err = b.GetPrinterAttributes(ctx, "printer-name", "printer-location")
	if err != nil {
		t.Fatalf("%s", err)
	}

	m = decodeRequest(t, rq)
	v := attrValues(m.Operation, "requested-attributes")
	if !reflect.DeepEqual(v, []string{"printer-name", "printer-location"}) {
		t.Errorf("requested-attributes: %v", v)
	}

	// Pending one is used without explicit list
	b.SetAttribute("requested-attributes", "printer-state")
	rq, _ = b.GetPrinterAttributes(ctx)
	m = decodeRequest(t, rq)
	v = attrValues(m.Operation, "requested-attributes")
	if !reflect.DeepEqual(v, []string{"printer-state"}) {
		t.Errorf("requested-attributes: %v", v)
	}
}
