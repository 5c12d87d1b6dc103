/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * History command
 */

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/OpenPrinting/ippclient/history"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newHistoryCmd(global *globalFlags) *cobra.Command {
	var limit, job int
	var purge time.Duration

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show history of operations",
		Long: `Show history of operations, newest first.

Operations are recorded when the [history] section of the configuration
file contains "enable = enable".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(Conf.HistoryPath)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := context.Background()

			if purge > 0 {
				n, err := store.Purge(ctx, time.Now().Add(-purge))
				if err != nil {
					return err
				}
				fmt.Fprintf(stdout, "%d entries removed\n", n)
				return nil
			}

			var entries []history.Entry
			if job > 0 {
				entries, err = store.Job(ctx, job)
			} else {
				entries, err = store.List(ctx, limit)
			}

			if err != nil {
				return err
			}

			return writeHistory(stdout, entries, global.output)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum count of entries, 0 for all")
	cmd.Flags().IntVar(&job, "job", 0, "Only entries of the job ID")
	cmd.Flags().DurationVar(&purge, "purge", 0, "Remove entries, older than the given age")

	return cmd
}

// writeHistory writes history entries
func writeHistory(w io.Writer, entries []history.Entry, format string) error {
	if format == OutputYAML {
		type yamlEntry struct {
			Time      string `yaml:"time"`
			Operation string `yaml:"operation"`
			RequestID int32  `yaml:"request-id"`
			Status    string `yaml:"status"`
			JobID     int    `yaml:"job-id,omitempty"`
			JobURI    string `yaml:"job-uri,omitempty"`
		}

		out := make([]yamlEntry, len(entries))
		for i, e := range entries {
			out[i] = yamlEntry{
				Time:      e.Time.Format(time.RFC3339),
				Operation: e.Op,
				RequestID: e.RequestID,
				Status:    e.StatusString,
				JobID:     e.JobID,
				JobURI:    e.JobURI,
			}
		}

		return yaml.NewEncoder(w).Encode(out)
	}

	for _, e := range entries {
		fmt.Fprintf(w, "%s %-24s %-5d %s", e.Time.Format("2006-01-02 15:04:05"),
			e.Op, e.RequestID, e.StatusString)
		if e.JobID != 0 {
			fmt.Fprintf(w, " job=%d", e.JobID)
		}
		fmt.Fprintf(w, "\n")
	}

	return nil
}
