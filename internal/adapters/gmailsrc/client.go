// Package gmailsrc adapts the Gmail API to the core.MailSource port.
// Authentication stays with the caller: the adapter only needs an OAuth2
// access token with read scope.
package gmailsrc

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/berkanunver-maker/subwatch-ai/internal/core"
	"go.uber.org/zap"
)

// DefaultQuery matches the billing mails the extraction pipeline knows how
// to read.
const DefaultQuery = "subject:(subscription OR invoice OR receipt OR payment OR billing)"

// GmailSource fetches raw mails from the authenticated user's mailbox
type GmailSource struct {
	svc    *gmail.Service
	logger *zap.Logger
}

// NewGmailSource builds a Gmail-backed mail source from an access token
func NewGmailSource(ctx context.Context, accessToken string, logger *zap.Logger) (*GmailSource, error) {
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return &GmailSource{svc: svc, logger: logger}, nil
}

// NewGmailSourceFromService wraps an already configured Gmail service;
// tests use this with a service pointed at a fake server.
func NewGmailSourceFromService(svc *gmail.Service, logger *zap.Logger) *GmailSource {
	return &GmailSource{svc: svc, logger: logger}
}

// Search lists mails matching the query and fetches each in full format.
// A mail that fails to fetch is skipped, not fatal: the extraction pipeline
// downstream is best effort anyway.
func (g *GmailSource) Search(ctx context.Context, query string, maxResults int64) ([]*core.RawMail, error) {
	if query == "" {
		query = DefaultQuery
	}

	list, err := g.svc.Users.Messages.List("me").Q(query).MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list mails: %w", err)
	}

	raws := make([]*core.RawMail, 0, len(list.Messages))
	for _, ref := range list.Messages {
		msg, err := g.svc.Users.Messages.Get("me", ref.Id).Format("full").Context(ctx).Do()
		if err != nil {
			g.logger.Warn("Failed to fetch mail, skipping",
				zap.String("id", ref.Id),
				zap.Error(err))
			continue
		}
		raws = append(raws, ToRawMail(msg))
	}

	g.logger.Info("Fetched mails from Gmail",
		zap.String("query", query),
		zap.Int("count", len(raws)))
	return raws, nil
}

// ToRawMail flattens a Gmail API message into the core's raw mail shape
func ToRawMail(msg *gmail.Message) *core.RawMail {
	raw := &core.RawMail{ID: msg.Id}
	if msg.Payload == nil {
		return raw
	}
	for _, h := range msg.Payload.Headers {
		raw.Headers = append(raw.Headers, core.Header{Name: h.Name, Value: h.Value})
	}
	raw.Payload = toMailPart(msg.Payload)
	return raw
}

func toMailPart(part *gmail.MessagePart) *core.MailPart {
	if part == nil {
		return nil
	}
	mapped := &core.MailPart{MimeType: part.MimeType}
	if part.Body != nil && part.Body.Data != "" {
		mapped.Body = &core.MailBody{Data: part.Body.Data}
	}
	for _, sub := range part.Parts {
		mapped.Parts = append(mapped.Parts, toMailPart(sub))
	}
	return mapped
}
