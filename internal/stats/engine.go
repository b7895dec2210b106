package stats

import (
	"math"
	"sort"
	"time"

	"github.com/berkanunver-maker/subwatch-ai/internal/core"
)

// renewalHorizonDays bounds the upcoming-renewals window
const renewalHorizonDays = 30

// topSubscriptionsLimit caps the top-spenders list
const topSubscriptionsLimit = 5

// Engine computes aggregate statistics over a snapshot of subscription
// records. It holds no state of its own and recomputes everything on each
// call; the caller guarantees the snapshot is not mutated mid-computation.
type Engine struct {
	now func() time.Time
}

// NewEngine creates a statistics engine. A nil clock means time.Now.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// MonthlyEquivalent normalizes a subscription's price to a per-month
// amount. Every cross-subscription comparison and sum goes through this.
func MonthlyEquivalent(sub *core.Subscription) float64 {
	if sub.BillingCycle == core.CycleYearly {
		return sub.Price / 12
	}
	return sub.Price
}

// Compute builds a statistics snapshot from the full subscription list.
// It never fails on well-formed input; records missing a billing date are
// left out of the date-dependent aggregates only.
func (e *Engine) Compute(subs []*core.Subscription) *core.Statistics {
	active := make([]*core.Subscription, 0, len(subs))
	for _, sub := range subs {
		if sub.IsActive {
			active = append(active, sub)
		}
	}

	totalMonthly := 0.0
	for _, sub := range active {
		totalMonthly += MonthlyEquivalent(sub)
	}
	totalYearly := totalMonthly * 12

	return &core.Statistics{
		TotalMonthly:      totalMonthly,
		TotalYearly:       totalYearly,
		ActiveCount:       len(active),
		TotalCount:        len(subs),
		TopSubscriptions:  e.topSubscriptions(active),
		CategoryBreakdown: e.categoryBreakdown(active),
		UpcomingRenewals:  e.upcomingRenewals(active),
		MonthlyAverage:    totalMonthly,
		TotalSpent:        totalYearly,
		SavingsPotential:  0,
	}
}

// topSubscriptions lists the heaviest spenders by monthly-equivalent price,
// at most five. The sort is stable so equal prices keep their input order.
func (e *Engine) topSubscriptions(active []*core.Subscription) []core.TopSubscription {
	sorted := make([]*core.Subscription, len(active))
	copy(sorted, active)
	sort.SliceStable(sorted, func(i, j int) bool {
		return MonthlyEquivalent(sorted[i]) > MonthlyEquivalent(sorted[j])
	})

	if len(sorted) > topSubscriptionsLimit {
		sorted = sorted[:topSubscriptionsLimit]
	}

	top := make([]core.TopSubscription, 0, len(sorted))
	for _, sub := range sorted {
		top = append(top, core.TopSubscription{
			Name:  sub.Name,
			Price: MonthlyEquivalent(sub),
		})
	}
	return top
}

// categoryBreakdown sums monthly spend per category. Groups appear in
// first-occurrence order; records with an unknown category count as other.
func (e *Engine) categoryBreakdown(active []*core.Subscription) []core.CategoryAmount {
	index := make(map[core.Category]int)
	breakdown := make([]core.CategoryAmount, 0)

	for _, sub := range active {
		category := sub.Category
		if category == "" {
			category = core.CategoryOther
		}

		i, ok := index[category]
		if !ok {
			i = len(breakdown)
			index[category] = i
			breakdown = append(breakdown, core.CategoryAmount{
				Category: category,
				Label:    category.Label(),
			})
		}
		breakdown[i].Amount += MonthlyEquivalent(sub)
	}
	return breakdown
}

// upcomingRenewals returns the active subscriptions renewing within the
// next 30 days, soonest first. Days are counted by calendar-day ceiling, so
// a renewal later today is already past due and excluded.
func (e *Engine) upcomingRenewals(active []*core.Subscription) []*core.Subscription {
	now := e.now()

	upcoming := make([]*core.Subscription, 0)
	for _, sub := range active {
		if sub.NextBillingDate.IsZero() {
			continue
		}
		daysUntil := int(math.Ceil(sub.NextBillingDate.Sub(now).Hours() / 24))
		if daysUntil > 0 && daysUntil <= renewalHorizonDays {
			upcoming = append(upcoming, sub)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].NextBillingDate.Before(upcoming[j].NextBillingDate)
	})
	return upcoming
}
