/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * HTTP traces
 */

package ippclient

import (
	"fmt"
	"net/http"
	"sort"
)

// HTTPHeader writes HTTP header at the LogTraceHTTP level,
// sorted by keys. Credentials are not logged
func (msg *LogMessage) HTTPHeader(prefix byte, session int32,
	title string, hdr http.Header) *LogMessage {

	if !msg.logger.Enabled(LogTraceHTTP) {
		return msg
	}

	keys := []string{}
	for k := range hdr {
		keys = append(keys, k)
	}

	msg.add(LogTraceHTTP, prefix, "HTTP[%d]: %s", session, title)
	sort.Strings(keys)
	for _, k := range keys {
		v := hdr.Get(k)
		if k == "Authorization" {
			v = "<hidden>"
		}
		msg.add(LogTraceHTTP, prefix, "HTTP[%d]: %s: %s", session, k, v)
	}

	return msg.add(LogTraceHTTP, prefix, "HTTP[%d]:", session)
}

// HTTPRequest writes HTTP request header
func (msg *LogMessage) HTTPRequest(session int32, rq *http.Request) *LogMessage {
	title := fmt.Sprintf("%s %s %s", rq.Method, rq.URL, rq.Proto)
	return msg.HTTPHeader('>', session, title, rq.Header)
}

// HTTPResponse writes HTTP response header
func (msg *LogMessage) HTTPResponse(session int32, rsp *http.Response) *LogMessage {
	title := fmt.Sprintf("%s %s", rsp.Proto, rsp.Status)
	return msg.HTTPHeader('<', session, title, rsp.Header)
}

// HTTPError writes HTTP error
func (msg *LogMessage) HTTPError(session int32, err error) *LogMessage {
	return msg.add(LogError, '!', "HTTP[%d]: %s", session, err)
}
