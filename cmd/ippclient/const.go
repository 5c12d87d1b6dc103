/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Configuration constants
 */

package main

import (
	"time"
)

const (
	// DefaultRequestTimeout specifies how much time to wait
	// for the IPP response
	DefaultRequestTimeout = 30 * time.Second

	// DefaultDiscoveryTimeout specifies how much time to spend
	// for the DNS-SD browsing
	DefaultDiscoveryTimeout = 3 * time.Second
)
