/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IETF attributes and enumerations
 */

package ippclient

import (
	"fmt"
)

// baseTable contains IETF-defined attributes, which may be set
// by SetAttribute, and decoding tables for enum attributes
var baseTable = TagTable{
	Attrs: map[string]TagEntry{
		// Operation attributes
		"compression":               {CategoryOperation, TagKeyword},
		"document-natural-language": {CategoryOperation, TagLanguage},
		"job-k-octets":              {CategoryOperation, TagInteger},
		"job-impressions":           {CategoryOperation, TagInteger},
		"job-media-sheets":          {CategoryOperation, TagInteger},
		"requested-attributes":      {CategoryOperation, TagKeyword},

		// Job template attributes
		"job-priority":               {CategoryJob, TagInteger},
		"job-hold-until":             {CategoryJob, TagKeyword},
		"job-sheets":                 {CategoryJob, TagKeyword},
		"multiple-document-handling": {CategoryJob, TagKeyword},
		"copies":                     {CategoryJob, TagInteger},
		"sides":                      {CategoryJob, TagKeyword},
		"page-ranges":                {CategoryJob, TagRange},
		"number-up":                  {CategoryJob, TagInteger},
		"media":                      {CategoryJob, TagKeyword},
		"finishings":                 {CategoryJob, TagEnum},
		"orientation-requested":      {CategoryJob, TagEnum},
		"print-quality":              {CategoryJob, TagEnum},
		"printer-resolution":         {CategoryJob, TagResolution},
		"print-color-mode":           {CategoryJob, TagKeyword},
		"output-bin":                 {CategoryJob, TagKeyword},
		"job-message-from-operator":  {CategoryJob, TagText},

		// Printer attributes
		"printer-info":                {CategoryPrinter, TagText},
		"printer-location":            {CategoryPrinter, TagText},
		"printer-state-message":       {CategoryPrinter, TagText},
		"printer-organization":        {CategoryPrinter, TagText},
		"printer-organizational-unit": {CategoryPrinter, TagText},
		"printer-geo-location":        {CategoryPrinter, TagURI},
	},

	Enums: map[string]*EnumTable{
		"job-state":     enumJobState,
		"printer-state": enumPrinterState,

		"print-quality":           enumPrintQuality,
		"print-quality-supported": enumPrintQuality,
		"print-quality-default":   enumPrintQuality,

		"finishings":           enumFinishings,
		"finishings-default":   enumFinishings,
		"finishings-supported": enumFinishings,

		"orientation-requested":           enumOrientation,
		"orientation-requested-supported": enumOrientation,
		"orientation-requested-default":   enumOrientation,

		"operations-supported": enumOperations,
	},
}

var enumJobState = NewEnumTable(map[int32]string{
	3: "pending",
	4: "pending-held",
	5: "processing",
	6: "processing-stopped",
	7: "canceled",
	8: "aborted",
	9: "completed",
}, `Unknown(IETF standards track "job-state" reserved): 0x%x`)

var enumPrinterState = NewEnumTable(map[int32]string{
	3: "idle",
	4: "processing",
	5: "stopped",
}, `Unknown(IETF standards track "printer-state" reserved): 0x%x`)

var enumPrintQuality = NewEnumTable(map[int32]string{
	3: "draft",
	4: "normal",
	5: "high",
}, "")

var enumFinishings = NewEnumTable(map[int32]string{
	3:  "none",
	4:  "staple",
	5:  "punch",
	6:  "cover",
	7:  "bind",
	8:  "saddle-stitch",
	9:  "edge-stitch",
	20: "staple-top-left",
	21: "staple-bottom-left",
	22: "staple-top-right",
	23: "staple-bottom-right",
	24: "edge-stitch-left",
	25: "edge-stitch-top",
	26: "edge-stitch-right",
	27: "edge-stitch-bottom",
	28: "staple-dual-left",
	29: "staple-dual-top",
	30: "staple-dual-right",
	31: "staple-dual-bottom",
}, `Unknown(IETF standards track "finishing" reserved): 0x%x`)

var enumOrientation = NewEnumTable(map[int32]string{
	3: "portrait",
	4: "landscape",
	5: "reverse-landscape",
	6: "reverse-portrait",
}, `Unknown(IETF standards track "orientation" reserved): 0x%x`)

var enumOperations = &EnumTable{
	Names:   operationNames,
	Decoder: decodeOperation,
}

// operationNames contains names of IETF operations
var operationNames = map[int32]string{
	0x0002: "Print-Job",
	0x0003: "Print-URI",
	0x0004: "Validate-Job",
	0x0005: "Create-Job",
	0x0006: "Send-Document",
	0x0007: "Send-URI",
	0x0008: "Cancel-Job",
	0x0009: "Get-Job-Attributes",
	0x000a: "Get-Jobs",
	0x000b: "Get-Printer-Attributes",
	0x000c: "Hold-Job",
	0x000d: "Release-Job",
	0x000e: "Restart-Job",
	0x0010: "Pause-Printer",
	0x0011: "Resume-Printer",
	0x0012: "Purge-Jobs",
	0x0013: "Set-Printer-Attributes",
	0x0014: "Set-Job-Attributes",
	0x0015: "Get-Printer-Supported-Values",
	0x0016: "Create-Printer-Subscriptions",
	0x0017: "Create-Job-Subscriptions",
	0x0018: "Get-Subscription-Attributes",
	0x0019: "Get-Subscriptions",
	0x001a: "Renew-Subscription",
	0x001b: "Cancel-Subscription",
	0x001c: "Get-Notifications",
	0x0022: "Enable-Printer",
	0x0023: "Disable-Printer",
	0x0024: "Pause-Printer-After-Current-Job",
	0x0025: "Hold-New-Jobs",
	0x0026: "Release-Held-New-Jobs",
	0x0027: "Deactivate-Printer",
	0x0028: "Activate-Printer",
	0x0029: "Restart-Printer",
	0x002a: "Shutdown-Printer",
	0x002b: "Startup-Printer",
}

// decodeOperation decodes operations-supported codes. The code
// space is split into bands:
//
//	0x0000...0x002b  IETF operations, with reserved holes
//	0x002c...0x3fff  reserved by IETF
//	0x4000...0x8fff  vendor extensions, see Registry.vendorOperation
//	0x9000...        must not be used
func decodeOperation(r *Registry, code int32) string {
	if s, ok := operationNames[code]; ok {
		return s
	}

	switch {
	case code < 0:
		return fmt.Sprintf("Unknown operation (should not exists): 0x%x", code)
	case code <= 0x0001:
		return fmt.Sprintf("Unknown(reserved) : %d", code)
	case code == 0x000f:
		return "Unknown(reserved for a future operation)"
	case code <= 0x002b:
		return fmt.Sprintf(`Unknown (reserved IETF "operations"): 0x%x`, code)
	case code <= 0x3fff:
		return fmt.Sprintf("Unknown(IETF standards track operations reserved): 0x%x", code)
	case code <= 0x8fff:
		return r.vendorOperation(code)
	}

	return fmt.Sprintf("Unknown operation (should not exists): 0x%x", code)
}
