/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Tests for UUID normalization
 */

package ippclient

import (
	"testing"
)

// Test NormalizeUUID
func TestNormalizeUUID(t *testing.T) {
	type testData struct {
		in, out string
	}

	tests := []testData{
		{"urn:uuid:4509a320-00a0-008f-00b6-002507510eca", "4509a320-00a0-008f-00b6-002507510eca"},
		{"4509A32000A0008F00B6002507510ECA", "4509a320-00a0-008f-00b6-002507510eca"},
		{"{4509a320-00a0-008f-00b6-002507510eca}", "4509a320-00a0-008f-00b6-002507510eca"},
		{"uuid:4509a320-00a0-008f-00b6-002507510eca", "4509a320-00a0-008f-00b6-002507510eca"},
		{"4509a320-00a0-008f-00b6-002507510ec", ""},
		{"4509a320-00a0-008f-00b6-002507510eca0", ""},
		{"", ""},
	}

	for _, test := range tests {
		out := NormalizeUUID(test.in)
		if out != test.out {
			t.Errorf("%q: expected %q, present %q", test.in, test.out, out)
		}
	}
}
