/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP request builder
 */

package ippclient

import (
	"context"
	"fmt"
	"os/user"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Session defaults
const (
	DefaultCharset        = "utf-8"
	DefaultLanguage       = "en-us"
	DefaultDocumentFormat = "application/octet-stream"
	DefaultUserName       = "ippclient"
)

// Limits of string attributes
const (
	MaxDocumentName = 1023
	MaxMessage      = 127
)

// Keywords accepted by SetJobHoldUntil. Anything else
// is replaced with "indefinite"
var holdUntilKeywords = map[string]bool{
	"no-hold":      true,
	"day-time":     true,
	"evening":      true,
	"night":        true,
	"weekend":      true,
	"second-shift": true,
	"third-shift":  true,
}

// Subset of job attributes, requested by Get-Jobs with Subset set
var getJobsSubset = []string{"job-uri", "job-name", "job-state", "job-state-reason"}

// Builder assembles IPP requests.
//
// Session-level settings (charset, language, user, printer
// URI and so on) persist between requests. Attributes, set
// by SetAttribute and typed setters of job template attributes,
// are pending for the next request only
type Builder struct {
	reg  *Registry        // Attributes registry
	log  *Logger          // Debug logger
	disc Discoverer       // Printer discoverer, may be nil
	now  func() time.Time // Time source, for job names

	requestID int32 // Next request ID
	jobSeq    int   // Job names sequence

	// Session settings
	charset         string // attributes-charset
	language        string // attributes-natural-language
	userName        string // requesting-user-name
	printerURI      string // printer-uri
	documentFormat  string // document-format
	jobName         string // job-name
	jobNameAbsolute bool   // Don't add suffix to the jobName
	documentName    string // document-name
	fidelity        bool   // ipp-attribute-fidelity value
	fidelitySet     bool   // ipp-attribute-fidelity is set
	message         string // message
	holdUntil       string // job-hold-until for Hold-Job

	// Pending attributes, per category
	pending [numCategories]pendingAttrs
}

// pendingAttr is the encoded attribute, pending for
// the next request
type pendingAttr struct {
	name   string
	tag    Tag
	values [][]byte
}

// pendingAttrs is the ordered set of pending attributes
type pendingAttrs []pendingAttr

// set adds or replaces the attribute
func (p *pendingAttrs) set(attr pendingAttr) {
	for i := range *p {
		if (*p)[i].name == attr.name {
			(*p)[i] = attr
			return
		}
	}
	*p = append(*p, attr)
}

// unset removes the attribute
func (p *pendingAttrs) unset(name string) bool {
	for i := range *p {
		if (*p)[i].name == name {
			copy((*p)[i:], (*p)[i+1:])
			*p = (*p)[:len(*p)-1]
			return true
		}
	}
	return false
}

// has reports whether the attribute is set
func (p pendingAttrs) has(name string) bool {
	for _, attr := range p {
		if attr.name == name {
			return true
		}
	}
	return false
}

// NewBuilder creates a new Builder. If reg is nil, BaseRegistry is used.
// Logger and Discoverer may be nil
func NewBuilder(reg *Registry, log *Logger, disc Discoverer) *Builder {
	if reg == nil {
		reg = BaseRegistry
	}

	return &Builder{
		reg:       reg,
		log:       log,
		disc:      disc,
		now:       time.Now,
		requestID: 1,
	}
}

// Registry returns Registry, used by the Builder
func (b *Builder) Registry() *Registry {
	return b.reg
}

// RequestID returns ID of the next request
func (b *Builder) RequestID() int32 {
	return b.requestID
}

// SetAttribute sets pending attribute for the next request.
// Values are given in their textual form and encoded according
// to the attribute's tag, as known by the Registry.
//
// Unknown attributes are logged and ignored, and
// *UnsupportedAttributeError is returned. Values that cannot
// be encoded cause *EncodingError
func (b *Builder) SetAttribute(name string, values ...string) error {
	ent, err := b.reg.Lookup(name)
	if err != nil {
		b.log.Error('!', "%s", err)
		return &UnsupportedAttributeError{name, "unknown attribute"}
	}

	if len(values) == 0 {
		return &EncodingError{name, values, "no values"}
	}

	attr := pendingAttr{name: name, tag: ent.Tag}
	for _, v := range values {
		data, err := b.encodeValue(name, ent.Tag, v)
		if err != nil {
			return err
		}
		attr.values = append(attr.values, data)
	}

	b.pending[ent.Category].set(attr)
	b.log.Debug(' ', "%s attribute set: %s=%s", ent.Category, name,
		strings.Join(values, ","))

	return nil
}

// UnsetAttribute removes pending attribute
func (b *Builder) UnsetAttribute(name string) error {
	ent, err := b.reg.Lookup(name)
	if err != nil {
		b.log.Error('!', "%s", err)
		return &UnsupportedAttributeError{name, "unknown attribute"}
	}

	b.pending[ent.Category].unset(name)
	return nil
}

// DeleteAttribute requests deletion of the attribute by the
// next Set-Job-Attributes or Set-Printer-Attributes. The
// attribute is sent with the delete-attribute tag
func (b *Builder) DeleteAttribute(name string) error {
	ent, err := b.reg.Lookup(name)
	if err != nil {
		b.log.Error('!', "%s", err)
		return &UnsupportedAttributeError{name, "unknown attribute"}
	}

	if ent.Category == CategoryOperation {
		return &UnsupportedAttributeError{name,
			"operation attributes cannot be deleted"}
	}

	b.pending[ent.Category].set(pendingAttr{
		name:   name,
		tag:    TagDeleteAttr,
		values: [][]byte{{}},
	})

	return nil
}

// encodeValue encodes textual value according to the tag
func (b *Builder) encodeValue(name string, tag Tag, s string) ([]byte, error) {
	switch tag.Kind() {
	case KindInteger:
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, &EncodingError{name, s, "invalid integer"}
		}
		return b.encodeInt(name, v)

	case KindBoolean:
		v, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return nil, &EncodingError{name, s, "invalid boolean"}
		}
		return EncodeBoolean(v), nil

	case KindEnum:
		return b.reg.EncodeEnum(name, s)

	case KindRange:
		lower, upper, err := parseRange(s)
		if err != nil {
			return nil, &EncodingError{name, s, err.Error()}
		}
		return EncodeRange(lower, upper)

	case KindResolution:
		x, y, units, err := parseResolution(s)
		if err != nil {
			return nil, &EncodingError{name, s, err.Error()}
		}
		return EncodeResolution(x, y, units)

	case KindString, KindBinary:
		if _, err := EncodeLength(len(s)); err != nil {
			return nil, &EncodingError{name, len(s), "exceeds 65535 bytes"}
		}
		return []byte(s), nil
	}

	return nil, &UnsupportedAttributeError{name,
		fmt.Sprintf("%s values cannot be set", tag)}
}

// encodeInt encodes integer value, filling error context
func (b *Builder) encodeInt(name string, v int64) ([]byte, error) {
	data, err := EncodeInt32(v)
	if err != nil {
		err.(*EncodingError).What = name
	}
	return data, err
}

// parseRange parses range of integers: "N:M", "N-M" or just "N"
func parseRange(s string) (lower, upper int64, err error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, ":-")
	if sep <= 0 {
		lower, err = strconv.ParseInt(s, 10, 64)
		return lower, lower, err
	}

	lower, err = strconv.ParseInt(s[:sep], 10, 64)
	if err == nil {
		upper, err = strconv.ParseInt(s[sep+1:], 10, 64)
	}

	if err == nil && lower > upper {
		err = fmt.Errorf("lower bound above upper")
	}

	return
}

// parseResolution parses resolution: "NNNxMMMdpi", "NNN-MMMdpc"
// or "NNNdpi"
func parseResolution(s string) (x, y int64, units Units, err error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch {
	case strings.HasSuffix(s, "dpi"):
		units = UnitsDpi
	case strings.HasSuffix(s, "dpc"):
		units = UnitsDpc
	default:
		err = fmt.Errorf("missed units (dpi or dpc)")
		return
	}

	s = s[:len(s)-3]
	sep := strings.IndexAny(s, "x-")
	if sep < 0 {
		x, err = strconv.ParseInt(s, 10, 64)
		return x, x, units, err
	}

	x, err = strconv.ParseInt(s[:sep], 10, 64)
	if err == nil {
		y, err = strconv.ParseInt(s[sep+1:], 10, 64)
	}

	return
}

// clipString clips string to the limit, at the UTF-8
// character boundary
func clipString(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}

	return s[:limit]
}

// SetCharset sets attributes-charset
func (b *Builder) SetCharset(charset string) {
	b.charset = strings.ToLower(charset)
}

// SetLanguage sets attributes-natural-language
func (b *Builder) SetLanguage(language string) {
	b.language = strings.ToLower(language)
}

// SetUserName sets requesting-user-name
func (b *Builder) SetUserName(name string) {
	b.userName = name
}

// SetPrinterURI sets printer-uri
func (b *Builder) SetPrinterURI(uri string) {
	b.printerURI = uri
}

// PrinterURI returns printer-uri, "" if not set
func (b *Builder) PrinterURI() string {
	return b.printerURI
}

// SetDocumentFormat sets default document-format
func (b *Builder) SetDocumentFormat(mime string) {
	b.documentFormat = mime
}

// SetJobName sets job-name. Unless absolute is true,
// -HH:MM:SS-NNNN suffix is appended on each request
func (b *Builder) SetJobName(name string, absolute bool) {
	b.jobName = name
	b.jobNameAbsolute = absolute
}

// SetDocumentName sets document-name, clipped to MaxDocumentName
// bytes. If not set, the name of the submitted Document is used
func (b *Builder) SetDocumentName(name string) {
	b.documentName = clipString(name, MaxDocumentName)
}

// SetFidelity sets ipp-attribute-fidelity to true
func (b *Builder) SetFidelity() {
	b.fidelity, b.fidelitySet = true, true
}

// UnsetFidelity sets ipp-attribute-fidelity to false
func (b *Builder) UnsetFidelity() {
	b.fidelity, b.fidelitySet = false, true
}

// SetMessage sets message, clipped to MaxMessage bytes,
// for job control operations
func (b *Builder) SetMessage(message string) {
	b.message = clipString(message, MaxMessage)
}

// SetJobHoldUntil sets job-hold-until for Hold-Job.
// Unknown keywords are replaced with "indefinite"
func (b *Builder) SetJobHoldUntil(when string) {
	if !holdUntilKeywords[when] {
		b.log.Debug(' ', "job-hold-until %q: using indefinite", when)
		when = "indefinite"
	}
	b.holdUntil = when
}

// SetCopies sets copies for the next job. 1 copy
// is the printer's default and is not sent
func (b *Builder) SetCopies(copies int) error {
	if copies <= 1 {
		b.pending[CategoryJob].unset("copies")
		return nil
	}

	data, err := b.encodeInt("copies", int64(copies))
	if err != nil {
		return err
	}

	b.pending[CategoryJob].set(pendingAttr{"copies", TagInteger,
		[][]byte{data}})
	return nil
}

// SetSides sets sides for the next job. Shorthands are
// accepted: "1" for one-sided, "2" for two-sided-long-edge
// and "2CE" for two-sided-short-edge
func (b *Builder) SetSides(sides string) error {
	switch strings.ToUpper(sides) {
	case "1":
		sides = "one-sided"
	case "2":
		sides = "two-sided-long-edge"
	case "2CE":
		sides = "two-sided-short-edge"
	}

	b.pending[CategoryJob].set(pendingAttr{"sides", TagKeyword,
		[][]byte{[]byte(sides)}})
	return nil
}

// SetPageRanges sets page-ranges for the next job. Ranges
// are separated by spaces or commas: "1:5 10-25"
func (b *Builder) SetPageRanges(ranges string) error {
	fields := strings.FieldsFunc(ranges, func(c rune) bool {
		return c == ' ' || c == ','
	})

	if len(fields) == 0 {
		b.pending[CategoryJob].unset("page-ranges")
		return nil
	}

	attr := pendingAttr{name: "page-ranges", tag: TagRange}
	for _, f := range fields {
		lower, upper, err := parseRange(f)
		if err != nil {
			return &EncodingError{"page-ranges", f, err.Error()}
		}

		data, err := EncodeRange(lower, upper)
		if err != nil {
			return err
		}

		attr.values = append(attr.values, data)
	}

	b.pending[CategoryJob].set(attr)
	return nil
}

// applyDefaults fills not-yet-set session settings
func (b *Builder) applyDefaults() {
	if b.charset == "" {
		b.charset = DefaultCharset
	}

	if b.language == "" {
		b.language = DefaultLanguage
	}

	if b.documentFormat == "" {
		b.documentFormat = DefaultDocumentFormat
	}

	if b.userName == "" {
		b.userName = DefaultUserName
		if u, err := user.Current(); err == nil && u.Username != "" {
			b.userName = u.Username
		}
		b.log.Debug(' ', "requesting-user-name: %s", b.userName)
	}
}

// printer returns printer URI. If not set, the first
// discovered printer becomes the session printer
func (b *Builder) printer(ctx context.Context) (string, error) {
	if b.printerURI != "" {
		return b.printerURI, nil
	}

	if b.disc == nil {
		return "", fmt.Errorf("%w: %w", ErrNoPrinterAvailable, ErrNoPrinterURI)
	}

	uris, err := b.disc.Printers(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoPrinterAvailable, err)
	}

	if len(uris) == 0 {
		return "", ErrNoPrinterAvailable
	}

	b.printerURI = uris[0]
	b.log.Info(' ', "using printer %s", b.printerURI)

	return b.printerURI, nil
}

// makeJobName returns job-name for the next job
func (b *Builder) makeJobName(docName string) string {
	name, absolute := b.jobName, b.jobNameAbsolute
	if name == "" {
		name, absolute = docName, false
	}
	if name == "" {
		name = DefaultUserName
	}

	if !absolute {
		b.jobSeq++
		name += fmt.Sprintf("-%s-%4.4d",
			b.now().Format("15:04:05"), b.jobSeq%10000)
	}

	return name
}

// requestEncoder writes attributes of the request.
// The first error is saved and stops the encoding
type requestEncoder struct {
	b   *Builder
	op  Op
	me  messageEncoder
	err error
}

// begin starts a new request
func (b *Builder) begin(op Op) *requestEncoder {
	b.applyDefaults()

	re := &requestEncoder{b: b, op: op}
	re.me.encodeHeader(Version, uint16(op), b.requestID)
	re.group(TagOperationGroup)
	re.str(TagCharset, "attributes-charset", b.charset)
	re.str(TagLanguage, "attributes-natural-language", b.language)

	return re
}

// group starts a new group
func (re *requestEncoder) group(tag Tag) {
	re.me.encodeTag(tag)
}

// attr writes attribute with one or more values
func (re *requestEncoder) attr(tag Tag, name string, values ...[]byte) {
	for i, v := range values {
		if re.err != nil {
			return
		}

		if i > 0 {
			name = ""
		}

		re.err = re.me.encodeRecord(tag, name, v)
	}
}

// str writes string attribute
func (re *requestEncoder) str(tag Tag, name string, values ...string) {
	for i, v := range values {
		if i > 0 {
			name = ""
		}
		re.attr(tag, name, []byte(v))
	}
}

// boolean writes boolean attribute
func (re *requestEncoder) boolean(name string, v bool) {
	re.attr(TagBoolean, name, EncodeBoolean(v))
}

// integer writes integer attribute
func (re *requestEncoder) integer(name string, v int64) {
	if re.err == nil {
		var data []byte
		data, re.err = re.b.encodeInt(name, v)
		re.attr(TagInteger, name, data)
	}
}

// user writes requesting-user-name
func (re *requestEncoder) user() {
	re.str(TagName, "requesting-user-name", re.b.userName)
}

// fidelity writes ipp-attribute-fidelity, if set
func (re *requestEncoder) fidelity() {
	if re.b.fidelitySet {
		re.boolean("ipp-attribute-fidelity", re.b.fidelity)
	}
}

// message writes message, if set
func (re *requestEncoder) message() {
	if re.b.message != "" {
		re.str(TagText, "message", re.b.message)
	}
}

// pending writes pending attributes of the category, except
// the skipped ones. If group is not TagZero, the group is started,
// unless there are no attributes
func (re *requestEncoder) pending(cat Category, group Tag, skip ...string) {
	var attrs pendingAttrs
	for _, attr := range re.b.pending[cat] {
		if !stringIn(attr.name, skip) {
			attrs = append(attrs, attr)
		}
	}

	if len(attrs) == 0 {
		return
	}

	if group != TagZero {
		re.group(group)
	}

	for _, attr := range attrs {
		re.attr(attr.tag, attr.name, attr.values...)
	}
}

// stringIn reports whether s is one of list
func stringIn(s string, list []string) bool {
	for _, l := range list {
		if s == l {
			return true
		}
	}
	return false
}

// finish terminates the request. On success the request
// ID is incremented and pending attributes are reset
func (re *requestEncoder) finish() (*Request, error) {
	if re.err != nil {
		return nil, re.err
	}

	re.me.encodeTag(TagEnd)

	b := re.b
	rq := &Request{
		Op:        re.op,
		Path:      re.op.Path(),
		RequestID: b.requestID,
		Data:      re.me.Bytes(),
	}

	b.requestID++
	if b.requestID <= 0 {
		b.requestID = 1
	}

	for cat := range b.pending {
		b.pending[cat] = nil
	}

	return rq, nil
}

// PrintJob builds Print-Job request
func (b *Builder) PrintJob(ctx context.Context, doc *Document) (*Request, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}

	uri, err := b.printer(ctx)
	if err != nil {
		return nil, err
	}

	docName := b.documentName
	if docName == "" {
		docName = clipString(doc.Name, MaxDocumentName)
	}

	re := b.begin(OpPrintJob)
	re.str(TagURI, "printer-uri", uri)
	re.user()
	re.str(TagName, "job-name", b.makeJobName(docName))
	re.fidelity()
	if docName != "" {
		re.str(TagName, "document-name", docName)
	}
	re.documentFormat(doc)
	re.pending(CategoryOperation, TagZero)
	re.pending(CategoryJob, TagJobGroup)

	rq, err := re.finish()
	if rq != nil {
		rq.Document = doc
	}

	return rq, err
}

// documentFormat writes document-format for the document.
// Raw text is sent without format, unless explicitly set
func (re *requestEncoder) documentFormat(doc *Document) {
	format := doc.Format
	if format == "" && !doc.RawText {
		format = re.b.documentFormat
	}

	if format != "" {
		re.str(TagMimeType, "document-format", format)
	}
}

// PrintURI builds Print-URI request
func (b *Builder) PrintURI(ctx context.Context, docURI string) (*Request, error) {
	uri, err := b.printer(ctx)
	if err != nil {
		return nil, err
	}

	re := b.begin(OpPrintURI)
	re.str(TagURI, "printer-uri", uri)
	re.user()
	re.str(TagName, "job-name", b.makeJobName(b.documentName))
	re.fidelity()
	re.str(TagURI, "document-uri", docURI)
	re.pending(CategoryOperation, TagZero)
	re.pending(CategoryJob, TagJobGroup)

	return re.finish()
}

// ValidateJob builds Validate-Job request
func (b *Builder) ValidateJob(ctx context.Context) (*Request, error) {
	uri, err := b.printer(ctx)
	if err != nil {
		return nil, err
	}

	re := b.begin(OpValidateJob)
	re.str(TagURI, "printer-uri", uri)
	re.user()
	if b.jobName != "" {
		re.str(TagName, "job-name", b.makeJobName(""))
	}
	re.fidelity()
	re.str(TagMimeType, "document-format", b.documentFormat)
	re.pending(CategoryOperation, TagZero)
	re.pending(CategoryJob, TagJobGroup)

	return re.finish()
}

// CreateJob builds Create-Job request
func (b *Builder) CreateJob(ctx context.Context) (*Request, error) {
	uri, err := b.printer(ctx)
	if err != nil {
		return nil, err
	}

	re := b.begin(OpCreateJob)
	re.str(TagURI, "printer-uri", uri)
	re.user()
	re.str(TagName, "job-name", b.makeJobName(b.documentName))
	re.fidelity()
	re.pending(CategoryOperation, TagZero)
	re.pending(CategoryJob, TagJobGroup)

	return re.finish()
}

// SendDocument builds Send-Document request
func (b *Builder) SendDocument(ctx context.Context, jobURI string,
	doc *Document, last bool) (*Request, error) {

	if jobURI == "" {
		return nil, ErrNoJobURI
	}

	if doc == nil {
		return nil, ErrNoDocument
	}

	docName := b.documentName
	if docName == "" {
		docName = clipString(doc.Name, MaxDocumentName)
	}

	re := b.begin(OpSendDocument)
	re.str(TagURI, "job-uri", jobURI)
	re.user()
	if docName != "" {
		re.str(TagName, "document-name", docName)
	}
	re.fidelity()
	re.documentFormat(doc)
	re.pending(CategoryOperation, TagZero)
	re.boolean("last-document", last)

	rq, err := re.finish()
	if rq != nil {
		rq.Document = doc
		rq.JobURI = jobURI
	}

	return rq, err
}

// SendURI builds Send-URI request
func (b *Builder) SendURI(ctx context.Context, jobURI, docURI string,
	last bool) (*Request, error) {

	if jobURI == "" {
		return nil, ErrNoJobURI
	}

	re := b.begin(OpSendURI)
	re.str(TagURI, "job-uri", jobURI)
	re.user()
	re.str(TagURI, "document-uri", docURI)
	re.fidelity()
	re.pending(CategoryOperation, TagZero)
	re.boolean("last-document", last)

	return re.finishJob(jobURI)
}

// finishJob terminates the job-related request
func (re *requestEncoder) finishJob(jobURI string) (*Request, error) {
	rq, err := re.finish()
	if rq != nil {
		rq.JobURI = jobURI
	}
	return rq, err
}

// jobControl builds Cancel-Job, Release-Job or Restart-Job requests
func (b *Builder) jobControl(op Op, jobURI string) (*Request, error) {
	if jobURI == "" {
		return nil, ErrNoJobURI
	}

	re := b.begin(op)
	re.str(TagURI, "job-uri", jobURI)
	re.user()
	re.message()
	re.pending(CategoryOperation, TagZero)

	return re.finishJob(jobURI)
}

// CancelJob builds Cancel-Job request
func (b *Builder) CancelJob(ctx context.Context, jobURI string) (*Request, error) {
	return b.jobControl(OpCancelJob, jobURI)
}

// ReleaseJob builds Release-Job request
func (b *Builder) ReleaseJob(ctx context.Context, jobURI string) (*Request, error) {
	return b.jobControl(OpReleaseJob, jobURI)
}

// RestartJob builds Restart-Job request
func (b *Builder) RestartJob(ctx context.Context, jobURI string) (*Request, error) {
	return b.jobControl(OpRestartJob, jobURI)
}

// HoldJob builds Hold-Job request
func (b *Builder) HoldJob(ctx context.Context, jobURI string) (*Request, error) {
	if jobURI == "" {
		return nil, ErrNoJobURI
	}

	re := b.begin(OpHoldJob)
	re.user()
	re.str(TagURI, "job-uri", jobURI)
	re.message()
	holdUntil := b.holdUntil
	if holdUntil == "" {
		holdUntil = "indefinite"
	}
	re.str(TagKeyword, "job-hold-until", holdUntil)
	re.pending(CategoryOperation, TagZero, "job-hold-until")

	return re.finishJob(jobURI)
}

// GetJobsOptions are parameters of Get-Jobs request
type GetJobsOptions struct {
	MyJobs    bool   // Only jobs of requesting user
	Limit     int    // Maximum count of jobs, 0 for unlimited
	WhichJobs string // "completed" or "not-completed", "" for default
	Subset    bool   // Request job-uri, job-name and job state only
}

// GetJobs builds Get-Jobs request
func (b *Builder) GetJobs(ctx context.Context, opts GetJobsOptions) (*Request, error) {
	uri, err := b.printer(ctx)
	if err != nil {
		return nil, err
	}

	re := b.begin(OpGetJobs)
	re.str(TagURI, "printer-uri", uri)
	re.user()
	if opts.Limit > 0 {
		re.integer("limit", int64(opts.Limit))
	}
	if opts.WhichJobs != "" {
		re.str(TagKeyword, "which-jobs", opts.WhichJobs)
	}
	if opts.MyJobs {
		re.boolean("my-jobs", true)
	}

	switch {
	case b.pending[CategoryOperation].has("requested-attributes"):
	case opts.Subset:
		re.str(TagKeyword, "requested-attributes", getJobsSubset...)
	default:
		re.str(TagKeyword, "requested-attributes", "all")
	}

	re.pending(CategoryOperation, TagZero)

	return re.finish()
}

// GetJobAttributes builds Get-Job-Attributes request. The subset
// is one of "job-template", "job-description" or "all", and ""
// means the printer's default
func (b *Builder) GetJobAttributes(ctx context.Context, jobURI,
	subset string) (*Request, error) {

	if jobURI == "" {
		return nil, ErrNoJobURI
	}

	re := b.begin(OpGetJobAttributes)
	re.str(TagURI, "job-uri", jobURI)
	re.user()
	if subset != "" && !b.pending[CategoryOperation].has("requested-attributes") {
		re.str(TagKeyword, "requested-attributes", subset)
	}
	re.pending(CategoryOperation, TagZero)

	return re.finishJob(jobURI)
}

// GetPrinterAttributes builds Get-Printer-Attributes request
func (b *Builder) GetPrinterAttributes(ctx context.Context,
	requested ...string) (*Request, error) {

	uri, err := b.printer(ctx)
	if err != nil {
		return nil, err
	}

	re := b.begin(OpGetPrinterAttributes)
	re.str(TagURI, "printer-uri", uri)
	re.user()
	if len(requested) != 0 {
		re.str(TagKeyword, "requested-attributes", requested...)
		re.pending(CategoryOperation, TagZero, "requested-attributes")
	} else {
		re.pending(CategoryOperation, TagZero)
	}

	return re.finish()
}

// SetJobAttributes builds Set-Job-Attributes request. Pending job
// attributes, including deleted ones, are sent in the job group
func (b *Builder) SetJobAttributes(ctx context.Context, jobURI string) (*Request, error) {
	if jobURI == "" {
		return nil, ErrNoJobURI
	}

	re := b.begin(OpSetJobAttributes)
	re.str(TagURI, "job-uri", jobURI)
	re.user()
	re.message()
	re.pending(CategoryOperation, TagZero)
	re.pending(CategoryJob, TagJobGroup)

	return re.finishJob(jobURI)
}

// SetPrinterAttributes builds Set-Printer-Attributes request. Pending
// printer attributes, including deleted ones, are sent in the printer
// group
func (b *Builder) SetPrinterAttributes(ctx context.Context) (*Request, error) {
	uri, err := b.printer(ctx)
	if err != nil {
		return nil, err
	}

	re := b.begin(OpSetPrinterAttributes)
	re.str(TagURI, "printer-uri", uri)
	re.user()
	re.pending(CategoryOperation, TagZero)
	re.pending(CategoryPrinter, TagPrinterGroup)

	return re.finish()
}

// printerControl builds Pause-Printer, Resume-Printer and Purge-Jobs
// requests
func (b *Builder) printerControl(ctx context.Context, op Op) (*Request, error) {
	uri, err := b.printer(ctx)
	if err != nil {
		return nil, err
	}

	re := b.begin(op)
	re.str(TagURI, "printer-uri", uri)
	re.user()
	if op == OpPurgeJobs {
		re.boolean("purge-jobs", true)
	}
	re.pending(CategoryOperation, TagZero)

	return re.finish()
}

// PurgeJobs builds Purge-Jobs request
func (b *Builder) PurgeJobs(ctx context.Context) (*Request, error) {
	return b.printerControl(ctx, OpPurgeJobs)
}

// PausePrinter builds Pause-Printer request
func (b *Builder) PausePrinter(ctx context.Context) (*Request, error) {
	return b.printerControl(ctx, OpPausePrinter)
}

// ResumePrinter builds Resume-Printer request
func (b *Builder) ResumePrinter(ctx context.Context) (*Request, error) {
	return b.printerControl(ctx, OpResumePrinter)
}
