package factory

import (
	"context"
	"errors"
	"fmt"

	"github.com/berkanunver-maker/subwatch-ai/internal/adapters/gmailsrc"
	"github.com/berkanunver-maker/subwatch-ai/internal/config"
	"github.com/berkanunver-maker/subwatch-ai/internal/core"
	"go.uber.org/zap"
)

// ErrMailDisabled is returned by the disabled mail source on Search
var ErrMailDisabled = errors.New("mail retrieval is disabled")

// MailSourceFactory creates mail sources based on configuration
type MailSourceFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewMailSourceFactory creates a new mail source factory
func NewMailSourceFactory(cfg *config.Config, logger *zap.Logger) *MailSourceFactory {
	return &MailSourceFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateMailSource creates a mail source based on the configuration. With
// gmail.enabled off the app still runs; only SyncMail is unavailable.
func (f *MailSourceFactory) CreateMailSource(ctx context.Context) (core.MailSource, error) {
	if !f.cfg.GetBool("gmail.enabled") {
		return disabledSource{}, nil
	}

	accessToken := f.cfg.GetString("gmail.access_token")
	if accessToken == "" {
		return nil, fmt.Errorf("gmail.access_token is required when gmail is enabled")
	}
	return gmailsrc.NewGmailSource(ctx, accessToken, f.logger)
}

type disabledSource struct{}

func (disabledSource) Search(ctx context.Context, query string, maxResults int64) ([]*core.RawMail, error) {
	return nil, ErrMailDisabled
}
