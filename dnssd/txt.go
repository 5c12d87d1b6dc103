/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * DNS-SD TXT records
 */

package dnssd

import (
	"strings"
)

// TxtItem represents a single TXT record item
type TxtItem struct {
	Key, Value string // TXT entry: Key=Value
}

// TxtRecord represents a TXT record
type TxtRecord []TxtItem

// Add adds item to TxtRecord
func (txt *TxtRecord) Add(key, value string) {
	*txt = append(*txt, TxtItem{key, value})
}

// Get returns value of the first item with the given key. Keys
// are case-insensitive, as RFC 6763 requires
func (txt TxtRecord) Get(key string) (string, bool) {
	for _, item := range txt {
		if strings.EqualFold(item.Key, key) {
			return item.Value, true
		}
	}
	return "", false
}

// GetDefault works as Get, but returns dflt for missed key
func (txt TxtRecord) GetDefault(key, dflt string) string {
	if value, ok := txt.Get(key); ok {
		return value
	}
	return dflt
}

// ParseTxt parses TXT record strings in the "key=value" form.
// Items without key are skipped, items without "=" have
// empty value
func ParseTxt(items []string) TxtRecord {
	var txt TxtRecord

	for _, item := range items {
		key, value, _ := strings.Cut(item, "=")
		if key != "" {
			txt.Add(key, value)
		}
	}

	return txt
}

// parseTxtBytes works as ParseTxt, for the Avahi representation
func parseTxtBytes(items [][]byte) TxtRecord {
	strs := make([]string, len(items))
	for i, item := range items {
		strs[i] = string(item)
	}

	return ParseTxt(strs)
}
