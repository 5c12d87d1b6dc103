/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * UUID normalization
 */

package ippclient

import (
	"strings"
)

// NormalizeUUID brings printer UUID into the canonical
// xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx form.
//
// Printers report UUIDs in many ways: as urn:uuid: URNs
// (printer-uuid), bare or braced, upper or lower case, with
// or without dashes (DNS-SD TXT records). Everything but hex
// digits is ignored. If there are not exactly 32 hex digits,
// "" is returned
func NormalizeUUID(uuid string) string {
	uuid = strings.ToLower(uuid)
	uuid = strings.TrimPrefix(uuid, "urn:")
	uuid = strings.TrimPrefix(uuid, "uuid:")

	hex := make([]byte, 0, 32)
	for i := 0; i < len(uuid); i++ {
		c := uuid[i]
		switch {
		case '0' <= c && c <= '9', 'a' <= c && c <= 'f':
			if len(hex) == 32 {
				return ""
			}
			hex = append(hex, c)
		}
	}

	if len(hex) != 32 {
		return ""
	}

	var buf strings.Builder
	for i, part := range [...][2]int{{0, 8}, {8, 12}, {12, 16}, {16, 20}, {20, 32}} {
		if i > 0 {
			buf.WriteByte('-')
		}
		buf.Write(hex[part[0]:part[1]])
	}

	return buf.String()
}
