/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Printer discovery
 */

package ippclient

import (
	"context"
)

// Discoverer returns the ordered list of printer URIs. The first
// one is used when request needs a printer and none was set
type Discoverer interface {
	Printers(ctx context.Context) ([]string, error)
}

// StaticDiscoverer is the Discoverer that returns a fixed list
type StaticDiscoverer []string

// Printers returns the list of printers
func (d StaticDiscoverer) Printers(ctx context.Context) ([]string, error) {
	return append([]string(nil), d...), nil
}
