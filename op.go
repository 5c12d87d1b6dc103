/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP operation codes and request routing
 */

package ippclient

import (
	"fmt"
)

// Op represents an IPP operation code
type Op uint16

// Op codes
const (
	OpPrintJob             Op = 0x0002 // Print-Job: Print a single file
	OpPrintURI             Op = 0x0003 // Print-URI: Print a single URL
	OpValidateJob          Op = 0x0004 // Validate-Job: Validate job values prior to submission
	OpCreateJob            Op = 0x0005 // Create-Job: Create an empty print job
	OpSendDocument         Op = 0x0006 // Send-Document: Add a file to a job
	OpSendURI              Op = 0x0007 // Send-URI: Add a URL to a job
	OpCancelJob            Op = 0x0008 // Cancel-Job: Cancel a job
	OpGetJobAttributes     Op = 0x0009 // Get-Job-Attribute: Get information about a job
	OpGetJobs              Op = 0x000a // Get-Jobs: Get a list of jobs
	OpGetPrinterAttributes Op = 0x000b // Get-Printer-Attributes: Get information about a printer
	OpHoldJob              Op = 0x000c // Hold-Job: Hold a job for printing
	OpReleaseJob           Op = 0x000d // Release-Job: Release a job for printing
	OpRestartJob           Op = 0x000e // Restart-Job: Reprint a job
	OpPausePrinter         Op = 0x0010 // Pause-Printer: Stop a printer
	OpResumePrinter        Op = 0x0011 // Resume-Printer: Start a printer
	OpPurgeJobs            Op = 0x0012 // Purge-Jobs: Delete all jobs
	OpSetPrinterAttributes Op = 0x0013 // Set-Printer-Attributes: Set printer values
	OpSetJobAttributes     Op = 0x0014 // Set-Job-Attributes: Set job values

	OpCupsGetDefault  Op = 0x4001 // CUPS-Get-Default: Get the default printer
	OpCupsGetPrinters Op = 0x4002 // CUPS-Get-Printers: Get a list of printers and/or classes
	OpCupsAcceptJobs  Op = 0x4008 // CUPS-Accept-Jobs: Accept new jobs on a printer
	OpCupsRejectJobs  Op = 0x4009 // CUPS-Reject-Jobs: Reject new jobs on a printer
)

// Request target paths
const (
	PathRoot     = "/"
	PathAdmin    = "/admin/"
	PathPrinters = "/printers/"
	PathJobs     = "/jobs/"
)

// String returns name of the operation
func (op Op) String() string {
	if s := opNames[op]; s != "" {
		return s
	}

	return fmt.Sprintf("0x%4.4x", uint16(op))
}

// Path returns the HTTP path the operation is routed to
func (op Op) Path() string {
	switch op {
	case OpPausePrinter, OpResumePrinter, OpPurgeJobs,
		OpCupsAcceptJobs, OpCupsRejectJobs:
		return PathAdmin

	case OpCancelJob, OpHoldJob, OpReleaseJob, OpRestartJob,
		OpGetJobs, OpGetJobAttributes, OpSetJobAttributes:
		return PathJobs

	case OpCupsGetDefault, OpCupsGetPrinters:
		return PathRoot
	}

	return PathPrinters
}

var opNames = map[Op]string{
	OpPrintJob:             "Print-Job",
	OpPrintURI:             "Print-URI",
	OpValidateJob:          "Validate-Job",
	OpCreateJob:            "Create-Job",
	OpSendDocument:         "Send-Document",
	OpSendURI:              "Send-URI",
	OpCancelJob:            "Cancel-Job",
	OpGetJobAttributes:     "Get-Job-Attributes",
	OpGetJobs:              "Get-Jobs",
	OpGetPrinterAttributes: "Get-Printer-Attributes",
	OpHoldJob:              "Hold-Job",
	OpReleaseJob:           "Release-Job",
	OpRestartJob:           "Restart-Job",
	OpPausePrinter:         "Pause-Printer",
	OpResumePrinter:        "Resume-Printer",
	OpPurgeJobs:            "Purge-Jobs",
	OpSetPrinterAttributes: "Set-Printer-Attributes",
	OpSetJobAttributes:     "Set-Job-Attributes",
	OpCupsGetDefault:       "CUPS-Get-Default",
	OpCupsGetPrinters:      "CUPS-Get-Printers",
	OpCupsAcceptJobs:       "CUPS-Accept-Jobs",
	OpCupsRejectJobs:       "CUPS-Reject-Jobs",
}
