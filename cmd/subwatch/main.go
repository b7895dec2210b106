package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/berkanunver-maker/subwatch-ai/internal/core"
	"github.com/berkanunver-maker/subwatch-ai/internal/di"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	action     = flag.String("action", "stats", "Action to run (seed, list, sync, stats)")
	query      = flag.String("query", "", "Gmail search query override for sync")
	maxResults = flag.Int64("max-results", 50, "Maximum mails to fetch during sync")
)

func main() {
	flag.Parse()

	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(logger *zap.Logger, service *core.SubscriptionService) error {
	defer logger.Sync()
	ctx := context.Background()

	switch *action {
	case "seed":
		if err := service.LoadSampleData(ctx); err != nil {
			return err
		}
		fmt.Println("Sample subscriptions loaded")
		return nil

	case "list":
		subs, err := service.List(ctx)
		if err != nil {
			return err
		}
		printSubscriptions(subs)
		return nil

	case "sync":
		added, err := service.SyncMail(ctx, *query, *maxResults)
		if err != nil {
			return err
		}
		if len(added) == 0 {
			fmt.Println("No new subscriptions found in your mail")
			return nil
		}
		fmt.Printf("Added %d subscription(s):\n", len(added))
		printSubscriptions(added)
		return nil

	case "stats":
		statistics, err := service.Statistics(ctx)
		if err != nil {
			return err
		}
		printStatistics(statistics)
		return nil

	default:
		return fmt.Errorf("unknown action: %s", *action)
	}
}

func printSubscriptions(subs []*core.Subscription) {
	p := message.NewPrinter(language.Turkish)
	for _, sub := range subs {
		active := " "
		if sub.IsActive {
			active = "*"
		}
		p.Printf("%s %-24s %10.2f %s  %-8s %-14s renews %s\n",
			active, sub.Name, sub.Price, sub.Currency, sub.BillingCycle,
			sub.Category.Label(), sub.NextBillingDate.Format("02/01/2006"))
	}
}

func printStatistics(stats *core.Statistics) {
	p := message.NewPrinter(language.Turkish)

	p.Printf("=== Spending ===\n")
	p.Printf("Monthly total: %.2f\n", stats.TotalMonthly)
	p.Printf("Yearly total:  %.2f\n", stats.TotalYearly)
	p.Printf("Active: %d of %d subscriptions\n", stats.ActiveCount, stats.TotalCount)

	if len(stats.TopSubscriptions) > 0 {
		p.Printf("\n=== Top subscriptions (monthly equivalent) ===\n")
		for i, top := range stats.TopSubscriptions {
			p.Printf("%d. %-24s %10.2f\n", i+1, top.Name, top.Price)
		}
	}

	if len(stats.CategoryBreakdown) > 0 {
		p.Printf("\n=== By category ===\n")
		for _, cat := range stats.CategoryBreakdown {
			p.Printf("%-18s %10.2f\n", cat.Label, cat.Amount)
		}
	}

	if len(stats.UpcomingRenewals) > 0 {
		p.Printf("\n=== Renewing within 30 days ===\n")
		for _, sub := range stats.UpcomingRenewals {
			p.Printf("%-24s %s\n", sub.Name, sub.NextBillingDate.Format("02/01/2006"))
		}
	}
}
