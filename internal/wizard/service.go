package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/domain"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/preview"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/pricing"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/submission"
)

// Submitter hands a finished configuration to the back office.
type Submitter interface {
	Submit(ctx context.Context, req submission.Request) (submission.Ack, error)
}

// Recorder receives wizard metrics.
type Recorder interface {
	RecordSessionStarted(ctx context.Context, productLine string)
}

// Service runs wizard sessions. All calls for one session id are serialised.
type Service struct {
	store     Store
	loader    *pricing.Loader
	submitter Submitter
	logger    *zap.Logger
	metrics   Recorder
	locks     *keyedLocks
	now       func() time.Time
	newID     func() string
}

func NewService(store Store, loader *pricing.Loader, submitter Submitter, logger *zap.Logger, metrics Recorder) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		loader:    loader,
		submitter: submitter,
		logger:    logger,
		metrics:   metrics,
		locks:     newKeyedLocks(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Create starts a session on step 1 with the current pricing snapshot.
func (s *Service) Create(ctx context.Context, productLine string) (StepView, error) {
	line, ok := LookupProductLine(productLine)
	if !ok {
		return StepView{}, fmt.Errorf("%w: %q", ErrUnknownProductLine, productLine)
	}
	snap := s.loader.Load(ctx, line.ID)
	sess := newSession(s.newID(), line, snap, s.now().UTC())
	if err := s.store.Save(ctx, sess); err != nil {
		return StepView{}, err
	}
	if s.metrics != nil {
		s.metrics.RecordSessionStarted(ctx, line.ID)
	}
	s.logger.Info("wizard: session started",
		zap.String("session", sess.ID), zap.String("product_line", line.ID),
		zap.Bool("pricing_fallback", snap.Fallback))
	return sess.View(), nil
}

func (s *Service) Get(ctx context.Context, id string) (StepView, error) {
	var v StepView
	err := s.read(ctx, id, func(sess *Session) error {
		v = sess.View()
		return nil
	})
	return v, err
}

func (s *Service) Update(ctx context.Context, id string, p domain.Patch) (StepView, error) {
	return s.mutate(ctx, id, func(sess *Session) (*Transition, error) {
		return nil, sess.Update(p)
	})
}

func (s *Service) Next(ctx context.Context, id string) (StepView, error) {
	return s.mutate(ctx, id, func(sess *Session) (*Transition, error) {
		t := sess.Next()
		return &t, nil
	})
}

func (s *Service) Previous(ctx context.Context, id string) (StepView, error) {
	return s.mutate(ctx, id, func(sess *Session) (*Transition, error) {
		t := sess.Previous()
		return &t, nil
	})
}

func (s *Service) Reset(ctx context.Context, id string) (StepView, error) {
	return s.mutate(ctx, id, func(sess *Session) (*Transition, error) {
		t := sess.Reset()
		return &t, nil
	})
}

func (s *Service) ResolveAdvice(ctx context.Context, id string, f domain.Field, cm int) (StepView, error) {
	return s.mutate(ctx, id, func(sess *Session) (*Transition, error) {
		return nil, sess.ResolveAdvice(f, cm)
	})
}

// RefreshPricing fetches a new table snapshot. It is refused once the
// customer has moved past step 1 on real prices, so a quote never changes
// under their feet.
func (s *Service) RefreshPricing(ctx context.Context, id string) (StepView, error) {
	return s.mutate(ctx, id, func(sess *Session) (*Transition, error) {
		if !sess.CanRefreshPricing() {
			return nil, ErrRefreshNotAllowed
		}
		sess.Pricing = s.loader.Load(ctx, sess.ProductLine)
		return nil, nil
	})
}

func (s *Service) Price(ctx context.Context, id string) (pricing.Breakdown, error) {
	var b pricing.Breakdown
	err := s.read(ctx, id, func(sess *Session) error {
		b = sess.Price()
		return nil
	})
	return b, err
}

func (s *Service) Preview(ctx context.Context, id string) (preview.Scene, error) {
	var sc preview.Scene
	err := s.read(ctx, id, func(sess *Session) error {
		sc = preview.Render(preview.SliceOf(sess.Config))
		return nil
	})
	return sc, err
}

// Submit sends the configuration from the final step. A contact patch is
// merged and saved first, under the same lock. The session is removed on
// success and kept on any error so the customer can retry.
func (s *Service) Submit(ctx context.Context, id string, contact *domain.ContactPatch, attachment *submission.File) (submission.Ack, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return submission.Ack{}, err
	}
	if !sess.Machine.IsFinal() {
		return submission.Ack{}, ErrNotFinalStep
	}
	if s.submitter == nil {
		return submission.Ack{}, errors.New("wizard: no submitter configured")
	}
	if contact != nil {
		if err := sess.Update(domain.Patch{Contact: contact}); err != nil {
			return submission.Ack{}, err
		}
		sess.UpdatedAt = s.now().UTC()
		if err := s.store.Save(ctx, sess); err != nil {
			return submission.Ack{}, err
		}
	}

	ack, err := s.submitter.Submit(ctx, submission.Request{
		SessionID:   sess.ID,
		ProductLine: sess.ProductLine,
		Config:      sess.Config,
		Price:       sess.Price(),
		Attachment:  attachment,
	})
	if err != nil {
		return submission.Ack{}, err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Warn("wizard: drop submitted session", zap.String("session", id), zap.Error(err))
	}
	return ack, nil
}

func (s *Service) read(ctx context.Context, id string, fn func(*Session) error) error {
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	return fn(sess)
}

// mutate applies fn and saves the session only when fn succeeds.
func (s *Service) mutate(ctx context.Context, id string, fn func(*Session) (*Transition, error)) (StepView, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return StepView{}, err
	}
	t, err := fn(sess)
	if err != nil {
		return StepView{}, err
	}
	sess.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, sess); err != nil {
		return StepView{}, err
	}
	v := sess.View()
	v.Transition = t
	return v, nil
}
