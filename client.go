/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * IPP client
 */

package ippclient

import (
	"context"
	"io"
	"sync"
)

// Recorder receives Result of every call, performed by the Client
type Recorder interface {
	Record(ctx context.Context, r *Result) error
}

// Client is the IPP client session. Calls are serialized; sessions
// that need to run in parallel must use separate Clients
type Client struct {
	lock      sync.Mutex // Access lock
	builder   *Builder   // Request builder
	transport Transport  // Transport
	log       *Logger    // Logger
	history   History    // Calls history
	recorder  Recorder   // Optional Recorder
}

// NewClient creates a new Client. If reg is nil, BaseRegistry is
// used. Logger and Discoverer may be nil
func NewClient(tr Transport, reg *Registry, log *Logger, disc Discoverer) *Client {
	return &Client{
		builder:   NewBuilder(reg, log, disc),
		transport: tr,
		log:       log,
	}
}

// SetRecorder sets Recorder that receives every Result
func (c *Client) SetRecorder(rec Recorder) {
	c.lock.Lock()
	c.recorder = rec
	c.lock.Unlock()
}

// Update calls fn with the request Builder, to change
// session settings or set pending attributes
func (c *Client) Update(fn func(b *Builder) error) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return fn(c.builder)
}

// SetAttribute sets pending attribute for the next request
func (c *Client) SetAttribute(name string, values ...string) error {
	return c.Update(func(b *Builder) error {
		return b.SetAttribute(name, values...)
	})
}

// History returns copy of the session history
func (c *Client) History() History {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.history.clone()
}

// do performs a single call
func (c *Client) do(ctx context.Context, op Op,
	build func(b *Builder) (*Request, error)) (*Result, error) {

	c.lock.Lock()
	defer c.lock.Unlock()

	r := &Result{Op: op, StatusString: StatusOperationFailed}
	r.Index = c.history.begin()

	err := c.exchange(ctx, r, build)
	if err != nil {
		c.log.Error('!', "%s: %s", op, err)
	}

	if c.recorder != nil {
		if err := c.recorder.Record(ctx, r); err != nil {
			c.log.Error('!', "history: %s", err)
		}
	}

	return r, err
}

// exchange builds the request, sends it and parses the response.
// Called under the lock
func (c *Client) exchange(ctx context.Context, r *Result,
	build func(b *Builder) (*Request, error)) error {

	rq, err := build(c.builder)
	if err != nil {
		return err
	}

	r.RequestID = rq.RequestID
	r.JobURI = rq.JobURI

	if c.transport == nil {
		return ErrNoTransport
	}

	c.log.Begin().
		Debug('>', "%s %s (request-id %d)", rq.Op, rq.Path, rq.RequestID).
		IPPRequest(rq.Data).
		Commit()

	var doc io.Reader
	if rq.Document != nil {
		body, err := rq.Document.Open()
		if err != nil {
			return err
		}
		defer body.Close()
		doc = body
	}

	reply, err := c.transport.Send(ctx, rq.Path, rq.Data, doc)
	if err != nil {
		return err
	}

	rsp, err := ParseResponse(reply.Body, c.builder.Registry())

	msg := c.log.Begin().IPPResponse(reply.Body)
	if rsp == nil {
		msg.Commit()
		return err
	}

	if rsp.RequestID != rq.RequestID {
		msg.Debug('!', "request-id mismatch: sent %d, received %d",
			rq.RequestID, rsp.RequestID)
	}

	r.Response = rsp
	r.Status = rsp.Status
	r.StatusString = rsp.Status.String()
	if id := rsp.JobID(); id != 0 {
		r.JobID = id
	}
	if uri := rsp.JobURI(); uri != "" {
		r.JobURI = uri
	}

	msg.Debug('<', "%s: %s", rq.Op, r.StatusString)
	msg.Commit()

	c.history.complete(r)

	return err
}

// PrintJob prints the document
func (c *Client) PrintJob(ctx context.Context, doc *Document) (*Result, error) {
	return c.do(ctx, OpPrintJob, func(b *Builder) (*Request, error) {
		return b.PrintJob(ctx, doc)
	})
}

// PrintURI prints the document, referenced by URI
func (c *Client) PrintURI(ctx context.Context, docURI string) (*Result, error) {
	return c.do(ctx, OpPrintURI, func(b *Builder) (*Request, error) {
		return b.PrintURI(ctx, docURI)
	})
}

// ValidateJob validates job attributes
func (c *Client) ValidateJob(ctx context.Context) (*Result, error) {
	return c.do(ctx, OpValidateJob, func(b *Builder) (*Request, error) {
		return b.ValidateJob(ctx)
	})
}

// CreateJob creates an empty job, to be filled with SendDocument
// and SendURI
func (c *Client) CreateJob(ctx context.Context) (*Result, error) {
	return c.do(ctx, OpCreateJob, func(b *Builder) (*Request, error) {
		return b.CreateJob(ctx)
	})
}

// SendDocument adds the document to the job
func (c *Client) SendDocument(ctx context.Context, jobURI string,
	doc *Document, last bool) (*Result, error) {
	return c.do(ctx, OpSendDocument, func(b *Builder) (*Request, error) {
		return b.SendDocument(ctx, jobURI, doc, last)
	})
}

// SendURI adds the document, referenced by URI, to the job
func (c *Client) SendURI(ctx context.Context, jobURI, docURI string,
	last bool) (*Result, error) {
	return c.do(ctx, OpSendURI, func(b *Builder) (*Request, error) {
		return b.SendURI(ctx, jobURI, docURI, last)
	})
}

// CancelJob cancels the job
func (c *Client) CancelJob(ctx context.Context, jobURI string) (*Result, error) {
	return c.do(ctx, OpCancelJob, func(b *Builder) (*Request, error) {
		return b.CancelJob(ctx, jobURI)
	})
}

// HoldJob holds the job
func (c *Client) HoldJob(ctx context.Context, jobURI string) (*Result, error) {
	return c.do(ctx, OpHoldJob, func(b *Builder) (*Request, error) {
		return b.HoldJob(ctx, jobURI)
	})
}

// ReleaseJob releases the held job
func (c *Client) ReleaseJob(ctx context.Context, jobURI string) (*Result, error) {
	return c.do(ctx, OpReleaseJob, func(b *Builder) (*Request, error) {
		return b.ReleaseJob(ctx, jobURI)
	})
}

// RestartJob restarts the job
func (c *Client) RestartJob(ctx context.Context, jobURI string) (*Result, error) {
	return c.do(ctx, OpRestartJob, func(b *Builder) (*Request, error) {
		return b.RestartJob(ctx, jobURI)
	})
}

// GetJobs returns list of jobs, one job group per job
func (c *Client) GetJobs(ctx context.Context, opts GetJobsOptions) (*Result, error) {
	return c.do(ctx, OpGetJobs, func(b *Builder) (*Request, error) {
		return b.GetJobs(ctx, opts)
	})
}

// GetJobAttributes returns attributes of the job
func (c *Client) GetJobAttributes(ctx context.Context, jobURI,
	subset string) (*Result, error) {
	return c.do(ctx, OpGetJobAttributes, func(b *Builder) (*Request, error) {
		return b.GetJobAttributes(ctx, jobURI, subset)
	})
}

// GetPrinterAttributes returns printer attributes. If requested
// attributes are not specified, the printer's default set is returned
func (c *Client) GetPrinterAttributes(ctx context.Context,
	requested ...string) (*Result, error) {
	return c.do(ctx, OpGetPrinterAttributes, func(b *Builder) (*Request, error) {
		return b.GetPrinterAttributes(ctx, requested...)
	})
}

// SetJobAttributes sends pending job attributes to the job
func (c *Client) SetJobAttributes(ctx context.Context, jobURI string) (*Result, error) {
	return c.do(ctx, OpSetJobAttributes, func(b *Builder) (*Request, error) {
		return b.SetJobAttributes(ctx, jobURI)
	})
}

// SetPrinterAttributes sends pending printer attributes to the printer
func (c *Client) SetPrinterAttributes(ctx context.Context) (*Result, error) {
	return c.do(ctx, OpSetPrinterAttributes, func(b *Builder) (*Request, error) {
		return b.SetPrinterAttributes(ctx)
	})
}

// PurgeJobs deletes all jobs of the printer
func (c *Client) PurgeJobs(ctx context.Context) (*Result, error) {
	return c.do(ctx, OpPurgeJobs, func(b *Builder) (*Request, error) {
		return b.PurgeJobs(ctx)
	})
}

// PausePrinter stops the printer
func (c *Client) PausePrinter(ctx context.Context) (*Result, error) {
	return c.do(ctx, OpPausePrinter, func(b *Builder) (*Request, error) {
		return b.PausePrinter(ctx)
	})
}

// ResumePrinter starts the printer
func (c *Client) ResumePrinter(ctx context.Context) (*Result, error) {
	return c.do(ctx, OpResumePrinter, func(b *Builder) (*Request, error) {
		return b.ResumePrinter(ctx)
	})
}
