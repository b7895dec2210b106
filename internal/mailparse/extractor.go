package mailparse

import (
	"time"

	"github.com/berkanunver-maker/subwatch-ai/internal/core"
	"go.uber.org/zap"
)

// Extractor is the mail-to-subscription extraction pipeline: decode the
// body, detect the provider, run the matching parser. Extraction is best
// effort; a mail that cannot be understood yields nil, never an error.
type Extractor struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewExtractor creates a new extractor. A nil clock means time.Now; tests
// inject a fixed clock to pin down the date fallbacks.
func NewExtractor(logger *zap.Logger, now func() time.Time) *Extractor {
	if now == nil {
		now = time.Now
	}
	return &Extractor{
		logger: logger,
		now:    now,
	}
}

// Extract pulls a subscription record out of one raw mail. It returns nil
// for unrecognized senders, for mails without a parseable amount, and for
// anything that panics a parser — a single malformed mail must never abort
// a batch.
func (e *Extractor) Extract(raw *core.RawMail) (sub *core.Subscription) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Recovered from mail parsing panic", zap.Any("panic", r))
			sub = nil
		}
	}()

	if raw == nil {
		return nil
	}

	from := raw.Header("From")
	subject := raw.Header("Subject")
	date := raw.Header("Date")
	body := DecodeBody(raw)

	provider, ok := DetectProvider(from, subject)
	if !ok {
		e.logger.Debug("Unknown service provider", zap.String("from", from))
		return nil
	}

	parser, ok := parsers[provider]
	if !ok {
		parser = parseGeneric
	}

	parsed := parser(subject, body, e.now())
	if parsed == nil {
		e.logger.Debug("No subscription data found",
			zap.String("provider", string(provider)),
			zap.String("subject", subject))
		return nil
	}

	parsed.Provider = string(provider)
	parsed.SourceEmail = from
	parsed.EmailDate = date
	parsed.RawSubject = subject
	return parsed
}

// ExtractAll maps Extract over the input in order and drops the mails that
// yielded nothing. Callers needing a failure count compare lengths.
func (e *Extractor) ExtractAll(raws []*core.RawMail) []*core.Subscription {
	results := make([]*core.Subscription, 0, len(raws))
	for _, raw := range raws {
		if sub := e.Extract(raw); sub != nil {
			results = append(results, sub)
		}
	}

	e.logger.Info("Extracted subscriptions from mail batch",
		zap.Int("mails", len(raws)),
		zap.Int("subscriptions", len(results)))
	return results
}
