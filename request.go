/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Built IPP request
 */

package ippclient

// Request is the ready-to-send IPP request
type Request struct {
	Op        Op        // Operation code
	Path      string    // Target path (PathPrinters etc)
	RequestID int32     // Request ID
	Data      []byte    // Encoded IPP message
	Document  *Document // Document to follow, may be nil
	JobURI    string    // Job URI of job-related requests
}

// Version is the IPP version of requests: 1.1
const Version uint16 = 0x0101
