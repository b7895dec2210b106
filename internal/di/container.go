package di

import (
	"context"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/berkanunver-maker/subwatch-ai/internal/config"
	"github.com/berkanunver-maker/subwatch-ai/internal/core"
	"github.com/berkanunver-maker/subwatch-ai/internal/factory"
	"github.com/berkanunver-maker/subwatch-ai/internal/logging"
	"github.com/berkanunver-maker/subwatch-ai/internal/mailparse"
	"github.com/berkanunver-maker/subwatch-ai/internal/stats"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register the wall clock; tests swap this for a fixed time
	if err := container.Provide(func() func() time.Time {
		return time.Now
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewMailSourceFactory); err != nil {
		return nil, err
	}

	// Register subscription repository
	if err := container.Provide(func(f *factory.StoreFactory) (core.SubscriptionRepository, error) {
		return f.CreateRepository()
	}); err != nil {
		return nil, err
	}

	// Register mail source
	if err := container.Provide(func(f *factory.MailSourceFactory) (core.MailSource, error) {
		return f.CreateMailSource(context.Background())
	}); err != nil {
		return nil, err
	}

	// Register mail extractor
	if err := container.Provide(func(logger *zap.Logger, now func() time.Time) core.MailExtractor {
		return mailparse.NewExtractor(logger, now)
	}); err != nil {
		return nil, err
	}

	// Register statistics engine
	if err := container.Provide(func(now func() time.Time) core.StatisticsEngine {
		return stats.NewEngine(now)
	}); err != nil {
		return nil, err
	}

	// Register subscription service
	if err := container.Provide(core.NewSubscriptionService); err != nil {
		return nil, err
	}

	return container, nil
}
