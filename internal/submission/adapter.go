// Package submission turns a finished configuration into a stored lead and
// notifies the configured channels about it.
package submission

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/domain"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/pricing"
)

var (
	ErrUpload      = errors.New("submission: attachment upload failed")
	ErrPersistence = errors.New("submission: storing the request failed")
)

// Channel names a notification recipient group.
type Channel string

const (
	ChannelAdmin    Channel = "admin"
	ChannelCustomer Channel = "customer"
)

// File is an optional attachment sent along with the request.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Request is everything needed to submit one configuration.
type Request struct {
	SessionID   string
	ProductLine string
	Config      domain.Configuration
	Price       pricing.Breakdown
	Attachment  *File
}

// Ack is returned once the request is stored.
type Ack struct {
	ID            string `json:"id"`
	Notified      bool   `json:"notified"`
	AttachmentURL string `json:"attachmentUrl,omitempty"`
}

// Persister stores a flat record and returns its id.
type Persister interface {
	InsertRequest(ctx context.Context, rec Record) (string, error)
}

// Notifier tells a channel that request id exists.
type Notifier interface {
	Notify(ctx context.Context, id string, channel Channel) error
}

// FileStore keeps attachments and returns a public URL.
type FileStore interface {
	Upload(ctx context.Context, f File) (string, error)
}

// Recorder receives submission metrics.
type Recorder interface {
	RecordSubmission(ctx context.Context, productLine, result string)
	RecordNotificationFailure(ctx context.Context, channel string)
}

type Options struct {
	Timeout             time.Duration
	NotificationTimeout time.Duration
	Channels            []Channel
}

type Adapter struct {
	persister Persister
	notifier  Notifier
	files     FileStore
	opts      Options
	logger    *zap.Logger
	metrics   Recorder
	now       func() time.Time
}

func NewAdapter(p Persister, n Notifier, f FileStore, opts Options, logger *zap.Logger, metrics Recorder) *Adapter {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.NotificationTimeout <= 0 {
		opts.NotificationTimeout = 10 * time.Second
	}
	if len(opts.Channels) == 0 {
		opts.Channels = []Channel{ChannelAdmin}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		persister: p,
		notifier:  n,
		files:     f,
		opts:      opts,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Submit validates the contact details, uploads the attachment, stores the
// record and then notifies. Only validation, upload and persistence can fail
// the call; notification errors are logged and reflected in Ack.Notified.
func (a *Adapter) Submit(ctx context.Context, req Request) (Ack, error) {
	if verr := req.Validate(); verr != nil {
		a.record(ctx, req.ProductLine, "invalid")
		return Ack{}, verr
	}

	ctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()

	rec := NewRecord(req, a.now().UTC())

	if req.Attachment != nil {
		if a.files == nil {
			a.record(ctx, req.ProductLine, "upload_failed")
			return Ack{}, fmt.Errorf("%w: no file storage configured", ErrUpload)
		}
		url, err := a.files.Upload(ctx, *req.Attachment)
		if err != nil {
			a.logger.Error("submission: upload failed",
				zap.String("file", req.Attachment.Name), zap.Error(err))
			a.record(ctx, req.ProductLine, "upload_failed")
			return Ack{}, fmt.Errorf("%w: %v", ErrUpload, err)
		}
		rec.AttachmentURL = url
	}

	id, err := a.persister.InsertRequest(ctx, rec)
	if err != nil {
		a.logger.Error("submission: persist failed",
			zap.String("product_line", req.ProductLine), zap.Error(err))
		a.record(ctx, req.ProductLine, "persist_failed")
		return Ack{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	a.logger.Info("submission: request stored",
		zap.String("id", id), zap.String("product_line", req.ProductLine),
		zap.Float64("total", rec.Total))
	a.record(ctx, req.ProductLine, "ok")

	return Ack{ID: id, Notified: a.notify(ctx, id), AttachmentURL: rec.AttachmentURL}, nil
}

// notify runs after persistence on a context detached from the request, so a
// client that hangs up does not cancel the message.
func (a *Adapter) notify(ctx context.Context, id string) bool {
	if a.notifier == nil {
		return false
	}
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.opts.NotificationTimeout)
	defer cancel()

	ok := true
	for _, ch := range a.opts.Channels {
		if err := a.notifier.Notify(nctx, id, ch); err != nil {
			ok = false
			a.logger.Warn("submission: notify failed",
				zap.String("id", id), zap.String("channel", string(ch)), zap.Error(err))
			if a.metrics != nil {
				a.metrics.RecordNotificationFailure(nctx, string(ch))
			}
		}
	}
	return ok
}

func (a *Adapter) record(ctx context.Context, productLine, result string) {
	if a.metrics != nil {
		a.metrics.RecordSubmission(ctx, productLine, result)
	}
}
