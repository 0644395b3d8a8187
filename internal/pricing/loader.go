package pricing

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrNoTable is returned by a Source that has no table for a product line.
var ErrNoTable = errors.New("pricing: no table published")

// Source fetches the current pricing table of a product line.
type Source interface {
	Fetch(ctx context.Context, productLine string) (*Table, error)
}

// FallbackRecorder counts fallbacks; observability.Metrics satisfies it.
type FallbackRecorder interface {
	RecordPricingFallback(ctx context.Context, productLine string)
}

// Snapshot is the table a wizard session prices against for its lifetime.
type Snapshot struct {
	Table    *Table `json:"table"`
	Fallback bool   `json:"fallback"`
}

// Loader fetches tables with a timeout, collapses concurrent fetches for the
// same product line and falls back to the built-in table on any failure.
type Loader struct {
	source  Source
	timeout time.Duration
	logger  *zap.Logger
	metrics FallbackRecorder
	group   singleflight.Group
}

func NewLoader(source Source, timeout time.Duration, logger *zap.Logger, metrics FallbackRecorder) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Loader{source: source, timeout: timeout, logger: logger, metrics: metrics}
}

// Load never fails; callers can tell a fallback by Snapshot.Fallback.
func (l *Loader) Load(ctx context.Context, productLine string) Snapshot {
	if l.source == nil {
		return l.fallback(ctx, productLine, errors.New("no pricing source configured"))
	}

	// The fetch is shared by every caller waiting on this line, so it must
	// not end when the first caller goes away.
	v, err, _ := l.group.Do(productLine, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
		defer cancel()
		return l.source.Fetch(fctx, productLine)
	})
	if err != nil {
		return l.fallback(ctx, productLine, err)
	}
	t, _ := v.(*Table)
	if t == nil {
		return l.fallback(ctx, productLine, ErrNoTable)
	}
	return Snapshot{Table: t}
}

func (l *Loader) fallback(ctx context.Context, productLine string, err error) Snapshot {
	if errors.Is(err, ErrNoTable) {
		l.logger.Info("pricing: no published table, using built-in prices",
			zap.String("product_line", productLine))
	} else {
		l.logger.Warn("pricing: table unavailable, using built-in prices",
			zap.String("product_line", productLine), zap.Error(err))
	}
	if l.metrics != nil {
		l.metrics.RecordPricingFallback(ctx, productLine)
	}
	return Snapshot{Table: Fallback(productLine), Fallback: true}
}
