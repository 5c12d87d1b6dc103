/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Job commands
 */

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/OpenPrinting/ippclient"
	"github.com/spf13/cobra"
)

// stdout is where command results are written to
var stdout io.Writer = os.Stdout

// jobFlags represents job template options of print and
// validate commands
type jobFlags struct {
	jobName    string
	copies     int
	sides      string
	pageRanges string
	hold       string
	fidelity   bool
	format     string
}

// addJobFlags registers job template flags
func addJobFlags(cmd *cobra.Command, flags *jobFlags) {
	cmd.Flags().StringVarP(&flags.jobName, "job-name", "J", "", "Job name (default: derived from document name)")
	cmd.Flags().IntVarP(&flags.copies, "copies", "n", 1, "Number of copies")
	cmd.Flags().StringVar(&flags.sides, "sides", "", "Sides: 1, 2, 2CE or sides keyword")
	cmd.Flags().StringVar(&flags.pageRanges, "page-ranges", "", `Page ranges, i.e. "1:5 10-25"`)
	cmd.Flags().StringVar(&flags.hold, "hold", "", "job-hold-until keyword")
	cmd.Flags().BoolVar(&flags.fidelity, "fidelity", false, "Request ipp-attribute-fidelity")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Document format (MIME type)")
}

// apply applies job flags to the Builder
func (flags *jobFlags) apply(b *ippclient.Builder) error {
	if flags.jobName != "" {
		b.SetJobName(flags.jobName, true)
	}

	if flags.format != "" {
		b.SetDocumentFormat(flags.format)
	}

	if flags.fidelity {
		b.SetFidelity()
	}

	if flags.hold != "" {
		b.SetJobHoldUntil(flags.hold)
	}

	if err := b.SetCopies(flags.copies); err != nil {
		return err
	}

	if flags.sides != "" {
		if err := b.SetSides(flags.sides); err != nil {
			return err
		}
	}

	if flags.pageRanges != "" {
		if err := b.SetPageRanges(flags.pageRanges); err != nil {
			return err
		}
	}

	return nil
}

// printFlags represents options of the print command
type printFlags struct {
	jobFlags
	uri      bool
	raw      bool
	formFeed string
}

func newPrintCmd(global *globalFlags) *cobra.Command {
	flags := &printFlags{}

	cmd := &cobra.Command{
		Use:   "print FILE...",
		Short: "Print documents",
		Long: `Print one or more documents.

A single document is sent with Print-Job (or Print-URI with --uri).
Multiple documents are combined into one job with Create-Job,
followed by Send-Document (or Send-URI) for each of them.

Use "-" to print the standard input.`,
		Example: `  # Print PDF file on the default printer
  ippclient print report.pdf

  # Print two copies, duplex, on the given printer
  ippclient -P ipp://cups.local:631/printers/laser print -n 2 --sides 2 report.pdf

  # Print plain text, form feed forced after the text
  ippclient print --raw --form-feed force notes.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(global, func(ctx context.Context, s *session) error {
				return runPrint(ctx, s, global, flags, args)
			})
		},
	}

	addJobFlags(cmd, &flags.jobFlags)
	cmd.Flags().BoolVar(&flags.uri, "uri", false, "Arguments are document URIs, fetched by the printer")
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "Send documents as raw text")
	cmd.Flags().StringVar(&flags.formFeed, "form-feed", "auto", "Raw text form feed: auto|force|none")

	return cmd
}

// newDocument creates document from the file name
func (flags *printFlags) newDocument(name string) (*ippclient.Document, error) {
	var doc *ippclient.Document

	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		doc = ippclient.NewDataDocument("stdin", data)
	} else {
		doc = ippclient.NewFileDocument(name)
	}

	doc.RawText = flags.raw

	switch flags.formFeed {
	case "auto":
		doc.FormFeed = ippclient.FormFeedAuto
	case "force":
		doc.FormFeed = ippclient.FormFeedForce
	case "none":
		doc.FormFeed = ippclient.FormFeedNone
	default:
		return nil, fmt.Errorf("invalid form feed mode %q", flags.formFeed)
	}

	return doc, nil
}

// runPrint runs the print command
func runPrint(ctx context.Context, s *session, global *globalFlags,
	flags *printFlags, args []string) error {

	err := s.client.Update(flags.apply)
	if err != nil {
		return err
	}

	var docs []*ippclient.Document
	if !flags.uri {
		for _, arg := range args {
			doc, err := flags.newDocument(arg)
			if err != nil {
				return err
			}
			docs = append(docs, doc)
		}
	}

	// Single document
	if len(args) == 1 {
		var r *ippclient.Result
		if flags.uri {
			r, err = s.client.PrintURI(ctx, args[0])
		} else {
			r, err = s.client.PrintJob(ctx, docs[0])
		}
		return s.finish(r, err, global.output)
	}

	// Multiple documents
	r, err := s.client.CreateJob(ctx)
	if err == nil && !r.Succeeded() {
		return s.finish(r, err, global.output)
	}
	if err != nil {
		return err
	}

	jobURI := r.JobURI
	for i, arg := range args {
		last := i == len(args)-1
		if flags.uri {
			r, err = s.client.SendURI(ctx, jobURI, arg, last)
		} else {
			r, err = s.client.SendDocument(ctx, jobURI, docs[i], last)
		}

		if err != nil || !r.Succeeded() {
			break
		}
	}

	return s.finish(r, err, global.output)
}

func newValidateCmd(global *globalFlags) *cobra.Command {
	flags := &jobFlags{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate job attributes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(global, func(ctx context.Context, s *session) error {
				if err := s.client.Update(flags.apply); err != nil {
					return err
				}
				r, err := s.client.ValidateJob(ctx)
				return s.finish(r, err, global.output)
			})
		},
	}

	addJobFlags(cmd, flags)

	return cmd
}

// newJobControlCmds creates cancel, hold, release and restart commands
func newJobControlCmds(global *globalFlags) []*cobra.Command {
	type control func(c *ippclient.Client, ctx context.Context,
		jobURI string) (*ippclient.Result, error)

	newCmd := func(use, short string, fn control) *cobra.Command {
		return &cobra.Command{
			Use:   use + " JOB",
			Short: short,
			Long: short + `.

JOB is either job URI or job ID on the current printer.`,
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(global, func(ctx context.Context, s *session) error {
					jobURI, err := s.jobURI(args[0])
					if err != nil {
						return err
					}
					r, err := fn(s.client, ctx, jobURI)
					return s.finish(r, err, global.output)
				})
			},
		}
	}

	cancel := newCmd("cancel", "Cancel the job", (*ippclient.Client).CancelJob)
	release := newCmd("release", "Release the held job", (*ippclient.Client).ReleaseJob)
	restart := newCmd("restart", "Restart the job", (*ippclient.Client).RestartJob)

	var until, message string
	hold := newCmd("hold", "Hold the job",
		func(c *ippclient.Client, ctx context.Context,
			jobURI string) (*ippclient.Result, error) {

			c.Update(func(b *ippclient.Builder) error {
				if until != "" {
					b.SetJobHoldUntil(until)
				}
				if message != "" {
					b.SetMessage(message)
				}
				return nil
			})

			return c.HoldJob(ctx, jobURI)
		})

	hold.Flags().StringVar(&until, "until", "", "job-hold-until keyword (default: indefinite)")
	hold.Flags().StringVarP(&message, "message", "m", "", "Message to the operator")

	return []*cobra.Command{cancel, hold, release, restart}
}

func newJobsCmd(global *globalFlags) *cobra.Command {
	opts := ippclient.GetJobsOptions{}

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.WhichJobs {
			case "", "completed", "not-completed":
			default:
				return fmt.Errorf("invalid --which %q", opts.WhichJobs)
			}

			return withSession(global, func(ctx context.Context, s *session) error {
				r, err := s.client.GetJobs(ctx, opts)
				return s.finish(r, err, global.output)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.MyJobs, "mine", false, "Only my jobs")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "Maximum count of jobs")
	cmd.Flags().StringVar(&opts.WhichJobs, "which", "", "completed|not-completed")
	cmd.Flags().BoolVar(&opts.Subset, "brief", false, "Request only job URI, name and state")

	return cmd
}

func newJobAttrsCmd(global *globalFlags) *cobra.Command {
	var subset string

	cmd := &cobra.Command{
		Use:   "job-attrs JOB",
		Short: "Show job attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch subset {
			case "", "all", "job-template", "job-description":
			default:
				return fmt.Errorf("invalid --subset %q", subset)
			}

			return withSession(global, func(ctx context.Context, s *session) error {
				jobURI, err := s.jobURI(args[0])
				if err != nil {
					return err
				}
				r, err := s.client.GetJobAttributes(ctx, jobURI, subset)
				return s.finish(r, err, global.output)
			})
		},
	}

	cmd.Flags().StringVar(&subset, "subset", "", "all|job-template|job-description")

	return cmd
}

func newSetJobCmd(global *globalFlags) *cobra.Command {
	var deleted []string

	cmd := &cobra.Command{
		Use:   "set-job JOB [NAME=VALUE...]",
		Short: "Set job attributes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(global, func(ctx context.Context, s *session) error {
				jobURI, err := s.jobURI(args[0])
				if err != nil {
					return err
				}

				err = s.client.Update(func(b *ippclient.Builder) error {
					return setAndDelete(b, args[1:], deleted)
				})
				if err != nil {
					return err
				}

				r, err := s.client.SetJobAttributes(ctx, jobURI)
				return s.finish(r, err, global.output)
			})
		},
	}

	cmd.Flags().StringArrayVar(&deleted, "delete", nil, "Delete attribute (repeatable)")

	return cmd
}

// setAndDelete sets attributes and marks attributes for deletion
func setAndDelete(b *ippclient.Builder, set, deleted []string) error {
	if err := setAttributes(b, set); err != nil {
		return err
	}

	for _, name := range deleted {
		if err := b.DeleteAttribute(name); err != nil {
			return err
		}
	}

	return nil
}
