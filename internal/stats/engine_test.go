package stats

import (
	"testing"
	"time"

	"github.com/berkanunver-maker/subwatch-ai/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(func() time.Time { return testNow })
}

func sub(name string, price float64, cycle core.BillingCycle, category core.Category, active bool) *core.Subscription {
	return &core.Subscription{
		Name:         name,
		Price:        price,
		Currency:     "TRY",
		BillingCycle: cycle,
		Category:     category,
		IsActive:     active,
	}
}

func TestMonthlyEquivalent(t *testing.T) {
	assert.Equal(t, 100.0, MonthlyEquivalent(sub("m", 100, core.CycleMonthly, core.CategoryOther, true)))
	assert.Equal(t, 100.0, MonthlyEquivalent(sub("y", 1200, core.CycleYearly, core.CategoryOther, true)))
}

func TestCompute_Totals(t *testing.T) {
	e := newTestEngine()

	stats := e.Compute([]*core.Subscription{
		sub("a", 100, core.CycleMonthly, core.CategoryStreaming, true),
		sub("b", 1200, core.CycleYearly, core.CategoryMusic, true),
		sub("c", 50, core.CycleMonthly, core.CategoryOther, false),
	})

	assert.Equal(t, 200.0, stats.TotalMonthly)
	assert.Equal(t, 2400.0, stats.TotalYearly)
	assert.Equal(t, 2, stats.ActiveCount)
	assert.Equal(t, 3, stats.TotalCount)

	// Aliases, not independent computations
	assert.Equal(t, stats.TotalMonthly, stats.MonthlyAverage)
	assert.Equal(t, stats.TotalYearly, stats.TotalSpent)
	assert.Equal(t, 0.0, stats.SavingsPotential)
}

func TestCompute_EmptyInput(t *testing.T) {
	e := newTestEngine()

	stats := e.Compute(nil)
	assert.Equal(t, 0.0, stats.TotalMonthly)
	assert.Equal(t, 0, stats.ActiveCount)
	assert.Empty(t, stats.TopSubscriptions)
	assert.Empty(t, stats.CategoryBreakdown)
	assert.Empty(t, stats.UpcomingRenewals)
}

func TestCompute_TopSubscriptions(t *testing.T) {
	e := newTestEngine()

	subs := []*core.Subscription{
		sub("small", 10, core.CycleMonthly, core.CategoryOther, true),
		sub("yearly-big", 2400, core.CycleYearly, core.CategoryOther, true), // 200/month
		sub("mid", 50, core.CycleMonthly, core.CategoryOther, true),
		sub("big", 300, core.CycleMonthly, core.CategoryOther, true),
		sub("tiny", 5, core.CycleMonthly, core.CategoryOther, true),
		sub("another", 80, core.CycleMonthly, core.CategoryOther, true),
	}

	top := e.Compute(subs).TopSubscriptions
	require.Len(t, top, 5)
	assert.Equal(t, "big", top[0].Name)
	assert.Equal(t, "yearly-big", top[1].Name)
	assert.Equal(t, 200.0, top[1].Price) // monthly equivalent, not raw price
	assert.Equal(t, "another", top[2].Name)
	assert.Equal(t, "mid", top[3].Name)
	assert.Equal(t, "small", top[4].Name)
}

func TestCompute_TopSubscriptionsBound(t *testing.T) {
	e := newTestEngine()

	stats := e.Compute([]*core.Subscription{
		sub("a", 10, core.CycleMonthly, core.CategoryOther, true),
		sub("b", 20, core.CycleMonthly, core.CategoryOther, true),
	})
	assert.Len(t, stats.TopSubscriptions, 2)
}

func TestCompute_TopSubscriptionsTiesKeepInputOrder(t *testing.T) {
	e := newTestEngine()

	top := e.Compute([]*core.Subscription{
		sub("first", 100, core.CycleMonthly, core.CategoryOther, true),
		sub("second", 1200, core.CycleYearly, core.CategoryOther, true), // also 100/month
	}).TopSubscriptions

	require.Len(t, top, 2)
	assert.Equal(t, "first", top[0].Name)
	assert.Equal(t, "second", top[1].Name)
}

func TestCompute_CategoryBreakdown(t *testing.T) {
	e := newTestEngine()

	breakdown := e.Compute([]*core.Subscription{
		sub("netflix", 150, core.CycleMonthly, core.CategoryStreaming, true),
		sub("spotify", 60, core.CycleMonthly, core.CategoryMusic, true),
		sub("youtube", 90, core.CycleMonthly, core.CategoryStreaming, true),
		sub("mystery", 10, core.CycleMonthly, "", true),
	}).CategoryBreakdown

	require.Len(t, breakdown, 3)

	// Groups appear in first-occurrence order
	assert.Equal(t, core.CategoryStreaming, breakdown[0].Category)
	assert.Equal(t, "Video Streaming", breakdown[0].Label)
	assert.Equal(t, 240.0, breakdown[0].Amount)

	assert.Equal(t, core.CategoryMusic, breakdown[1].Category)
	assert.Equal(t, 60.0, breakdown[1].Amount)

	// Missing category counts as other
	assert.Equal(t, core.CategoryOther, breakdown[2].Category)
	assert.Equal(t, "Diğer", breakdown[2].Label)
	assert.Equal(t, 10.0, breakdown[2].Amount)
}

func TestCompute_UpcomingRenewalsWindow(t *testing.T) {
	e := newTestEngine()

	within29 := sub("soon", 10, core.CycleMonthly, core.CategoryOther, true)
	within29.NextBillingDate = testNow.AddDate(0, 0, 29)

	at31 := sub("later", 10, core.CycleMonthly, core.CategoryOther, true)
	at31.NextBillingDate = testNow.AddDate(0, 0, 31)

	pastDue := sub("past", 10, core.CycleMonthly, core.CategoryOther, true)
	pastDue.NextBillingDate = testNow.AddDate(0, 0, -1)

	within5 := sub("soonest", 10, core.CycleMonthly, core.CategoryOther, true)
	within5.NextBillingDate = testNow.AddDate(0, 0, 5)

	noDate := sub("dateless", 10, core.CycleMonthly, core.CategoryOther, true)

	upcoming := e.Compute([]*core.Subscription{within29, at31, pastDue, within5, noDate}).UpcomingRenewals
	require.Len(t, upcoming, 2)

	// Ascending by date
	assert.Equal(t, "soonest", upcoming[0].Name)
	assert.Equal(t, "soon", upcoming[1].Name)
}

func TestCompute_UpcomingRenewalsThirtyDayBoundary(t *testing.T) {
	e := newTestEngine()

	at30 := sub("edge", 10, core.CycleMonthly, core.CategoryOther, true)
	at30.NextBillingDate = testNow.AddDate(0, 0, 30)

	upcoming := e.Compute([]*core.Subscription{at30}).UpcomingRenewals
	assert.Len(t, upcoming, 1)
}

func TestCompute_InactiveExcludedEverywhereButTotalCount(t *testing.T) {
	e := newTestEngine()

	inactive := sub("cancelled", 500, core.CycleMonthly, core.CategoryStreaming, false)
	inactive.NextBillingDate = testNow.AddDate(0, 0, 5)

	stats := e.Compute([]*core.Subscription{inactive})
	assert.Equal(t, 0.0, stats.TotalMonthly)
	assert.Equal(t, 0, stats.ActiveCount)
	assert.Equal(t, 1, stats.TotalCount)
	assert.Empty(t, stats.TopSubscriptions)
	assert.Empty(t, stats.CategoryBreakdown)
	assert.Empty(t, stats.UpcomingRenewals)
}
