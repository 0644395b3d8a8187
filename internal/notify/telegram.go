// Package notify tells the back office about new leads.
package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/domain"
	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/submission"
)

// ErrUnsupportedChannel is returned for channels a notifier cannot reach.
var ErrUnsupportedChannel = errors.New("notify: channel not supported")

// LeadLookup loads a stored lead; store.Postgres satisfies it.
type LeadLookup interface {
	GetLead(ctx context.Context, id string) (submission.Record, error)
}

type TelegramConfig struct {
	BotToken string
	ChatID   string
	APIBase  string
}

// Telegram posts a summary of a lead to the admin chat.
type Telegram struct {
	cfg    TelegramConfig
	leads  LeadLookup
	client *http.Client
	logger *zap.Logger
}

func NewTelegram(cfg TelegramConfig, leads LeadLookup, logger *zap.Logger) *Telegram {
	if cfg.APIBase == "" {
		cfg.APIBase = "https://api.telegram.org"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Telegram{
		cfg:    cfg,
		leads:  leads,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

func (t *Telegram) Notify(ctx context.Context, id string, channel submission.Channel) error {
	if channel != submission.ChannelAdmin {
		return fmt.Errorf("%w: telegram cannot reach %s", ErrUnsupportedChannel, channel)
	}
	rec, err := t.leads.GetLead(ctx, id)
	if err != nil {
		return fmt.Errorf("lookup lead %s: %w", id, err)
	}
	return t.send(ctx, LeadMessage(rec))
}

func (t *Telegram) send(ctx context.Context, text string) error {
	token := strings.TrimSpace(t.cfg.BotToken)
	chatID := strings.TrimSpace(t.cfg.ChatID)
	if token == "" || chatID == "" {
		return errors.New("telegram: empty bot token or chat id")
	}

	form := url.Values{}
	form.Set("chat_id", chatID)
	form.Set("text", text)
	form.Set("parse_mode", "HTML")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.cfg.APIBase+"/bot"+token+"/sendMessage", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("telegram: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("telegram: non-OK status %s", resp.Status)
	}
	t.logger.Debug("telegram: message sent", zap.String("chat_id", chatID))
	return nil
}

// LeadMessage renders the HTML message sent for a new lead.
func LeadMessage(r submission.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏠 <b>Nieuwe dakkapel aanvraag</b> (%s)\n\n", html.EscapeString(r.ProductLine))
	fmt.Fprintf(&b, "Naam: %s\n", html.EscapeString(r.Name))
	fmt.Fprintf(&b, "E-mail: %s\n", html.EscapeString(r.Email))
	fmt.Fprintf(&b, "Telefoon: %s\n", html.EscapeString(r.Phone))
	fmt.Fprintf(&b, "Adres: %s, %s %s\n\n", html.EscapeString(r.Address), html.EscapeString(r.PostalCode), html.EscapeString(r.City))

	fmt.Fprintf(&b, "Afmeting: %d × %d cm, dakhelling %d°\n", r.Width, r.Height, r.RoofAngle)
	fmt.Fprintf(&b, "Model: %s, materiaal: %s\n", domain.ModelType(r.Model).Label(), html.EscapeString(r.Material))
	fmt.Fprintf(&b, "Kleuren: kozijn %s, zijwang %s, draaidelen %s\n", r.FrameColor, r.SideColor, r.SashColor)

	if opts := r.Options.Enabled(); len(opts) > 0 {
		labels := make([]string, len(opts))
		for i, k := range opts {
			labels[i] = k.Label()
		}
		fmt.Fprintf(&b, "Opties: %s\n", strings.Join(labels, ", "))
	}
	if r.Comments != "" {
		fmt.Fprintf(&b, "Opmerking: %s\n", html.EscapeString(r.Comments))
	}
	if r.AttachmentURL != "" {
		fmt.Fprintf(&b, "Bijlage: %s\n", html.EscapeString(r.AttachmentURL))
	}
	fmt.Fprintf(&b, "\nTotaal incl. BTW: € %.2f", r.Total)
	return b.String()
}
