package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/submission"
)

// Log only writes a log line. It is used when no Telegram bot is configured.
type Log struct {
	logger *zap.Logger
}

func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

func (l *Log) Notify(_ context.Context, id string, channel submission.Channel) error {
	l.logger.Info("notify: new lead", zap.String("id", id), zap.String("channel", string(channel)))
	return nil
}

// Router sends each channel to its own notifier. Channels without a route
// get ErrUnsupportedChannel.
type Router map[submission.Channel]submission.Notifier

func (r Router) Notify(ctx context.Context, id string, channel submission.Channel) error {
	n, ok := r[channel]
	if !ok {
		return ErrUnsupportedChannel
	}
	return n.Notify(ctx, id, channel)
}
