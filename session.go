/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Per-call results and session history
 */

package ippclient

// Result is the outcome of a single operation
type Result struct {
	Op           Op        // Operation
	RequestID    int32     // Request ID, 0 if request was not built
	Status       Status    // Response status, valid if Response != nil
	StatusString string    // Symbolic status or StatusOperationFailed
	JobID        int       // Job ID, if known
	JobURI       string    // Job URI, if known
	Response     *Response // Parsed response, may be partial or nil
	Index        int       // Index of this call in the History
}

// Succeeded reports whether response was received with
// the successful status
func (r *Result) Succeeded() bool {
	return r.Response != nil && r.Status.IsSuccess()
}

// History is the append-only record of operations, performed
// within the session. Each call appends one entry to every list
// before the request is sent, and fills it when the response
// is received. Entries of failed calls keep their placeholders:
// zero job ID, empty job URI, and StatusOperationFailed
type History struct {
	Jobs     []int    // Job IDs
	JobURIs  []string // Job URIs
	Statuses []string // Status strings
}

// Len returns count of entries
func (h *History) Len() int {
	return len(h.Statuses)
}

// begin pushes placeholders and returns their index
func (h *History) begin() int {
	h.Jobs = append(h.Jobs, 0)
	h.JobURIs = append(h.JobURIs, "")
	h.Statuses = append(h.Statuses, StatusOperationFailed)
	return len(h.Statuses) - 1
}

// complete fills the entry from the Result
func (h *History) complete(r *Result) {
	h.Jobs[r.Index] = r.JobID
	h.JobURIs[r.Index] = r.JobURI
	h.Statuses[r.Index] = r.StatusString
}

// clone returns a deep copy of the History
func (h *History) clone() History {
	return History{
		Jobs:     append([]int(nil), h.Jobs...),
		JobURIs:  append([]string(nil), h.JobURIs...),
		Statuses: append([]string(nil), h.Statuses...),
	}
}
