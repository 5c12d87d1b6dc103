/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Persistent history test
 */

package history

import (
	"context"
	"testing"
	"time"

	"github.com/OpenPrinting/ippclient"
)

// Test recording and listing of results
func TestStore(t *testing.T) {
	ctx := context.Background()

	store, err := Open(Memory)
	if err != nil {
		t.Fatalf("Open: %s", err)
	}
	defer store.Close()

	clock := time.Date(2020, 4, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	results := []*ippclient.Result{
		{
			Op:           ippclient.OpPrintJob,
			RequestID:    1,
			Status:       ippclient.StatusOk,
			StatusString: "successful-ok",
			JobID:        42,
			JobURI:       "ipp://localhost/jobs/42",
			Response:     &ippclient.Response{},
		},
		{
			Op:           ippclient.OpGetPrinterAttributes,
			RequestID:    2,
			StatusString: ippclient.StatusOperationFailed,
		},
		{
			Op:           ippclient.OpCancelJob,
			RequestID:    3,
			Status:       ippclient.StatusErrorNotFound,
			StatusString: "client-error-not-found",
			JobID:        42,
			JobURI:       "ipp://localhost/jobs/42",
			Response:     &ippclient.Response{},
		},
	}

	for _, r := range results {
		if err := store.Record(ctx, r); err != nil {
			t.Fatalf("Record: %s", err)
		}
	}

	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %s", err)
	}

	if len(entries) != 3 {
		t.Fatalf("List: 3 entries expected, %d present", len(entries))
	}

	// Newest first
	if entries[0].Op != "Cancel-Job" || entries[2].Op != "Print-Job" {
		t.Errorf("List: wrong order: %s ... %s", entries[0].Op, entries[2].Op)
	}

	if entries[1].Status != -1 ||
		entries[1].StatusString != ippclient.StatusOperationFailed {
		t.Errorf("failed call: status %d %q",
			entries[1].Status, entries[1].StatusString)
	}

	if entries[0].Status != int(ippclient.StatusErrorNotFound) {
		t.Errorf("Cancel-Job: status 0x%x", entries[0].Status)
	}

	if !entries[2].Time.Equal(time.Date(2020, 4, 1, 12, 1, 0, 0, time.UTC)) {
		t.Errorf("Print-Job: time %s", entries[2].Time)
	}

	entries, err = store.List(ctx, 1)
	if err != nil || len(entries) != 1 || entries[0].RequestID != 3 {
		t.Errorf("List(1): %v %v", entries, err)
	}

	entries, err = store.Job(ctx, 42)
	if err != nil {
		t.Fatalf("Job: %s", err)
	}

	if len(entries) != 2 || entries[0].Op != "Print-Job" {
		t.Errorf("Job(42): %v", entries)
	}

	n, err := store.Purge(ctx, time.Date(2020, 4, 1, 12, 2, 30, 0, time.UTC))
	if err != nil || n != 2 {
		t.Errorf("Purge: %d %v", n, err)
	}

	entries, _ = store.List(ctx, 0)
	if len(entries) != 1 || entries[0].RequestID != 3 {
		t.Errorf("after Purge: %v", entries)
	}
}
