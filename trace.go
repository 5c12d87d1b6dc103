/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP message traces
 */

package ippclient

import (
	"github.com/OpenPrinting/goipp"
)

// IPPRequest writes IPP request at the LogTraceIPP level
func (msg *LogMessage) IPPRequest(data []byte) *LogMessage {
	return msg.ipp(data, true)
}

// IPPResponse writes IPP response at the LogTraceIPP level
func (msg *LogMessage) IPPResponse(data []byte) *LogMessage {
	return msg.ipp(data, false)
}

// ipp pretty-prints IPP message. Messages that cannot be
// decoded are dumped as HEX
func (msg *LogMessage) ipp(data []byte, request bool) *LogMessage {
	if !msg.logger.Enabled(LogTraceIPP) {
		return msg
	}

	var m goipp.Message
	err := m.DecodeBytes(data)
	if err != nil {
		return msg.dump(LogTraceIPP, data, "IPP message (%s):", err)
	}

	f := goipp.NewFormatter()
	if request {
		f.FmtRequest(&m)
	} else {
		f.FmtResponse(&m)
	}

	f.WriteTo(msg.Writer(LogTraceIPP))
	return msg
}
