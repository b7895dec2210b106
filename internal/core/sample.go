package core

import (
	"strconv"
	"time"
)

// SampleSubscriptions returns the starter records shown on first run so the
// app is not empty before the first mail sync. Renewal dates are offsets
// from the given time.
func SampleSubscriptions(now time.Time) []*Subscription {
	samples := []*Subscription{
		{
			Name:            "Netflix",
			Price:           149.99,
			Currency:        "TRY",
			BillingCycle:    CycleMonthly,
			Category:        CategoryStreaming,
			NextBillingDate: now.AddDate(0, 0, 15),
			Notes:           "Premium plan",
		},
		{
			Name:            "Spotify",
			Price:           59.99,
			Currency:        "TRY",
			BillingCycle:    CycleMonthly,
			Category:        CategoryMusic,
			NextBillingDate: now.AddDate(0, 0, 7),
			Notes:           "Premium Individual",
		},
		{
			Name:            "YouTube Premium",
			Price:           89.99,
			Currency:        "TRY",
			BillingCycle:    CycleMonthly,
			Category:        CategoryStreaming,
			NextBillingDate: now.AddDate(0, 0, 20),
		},
		{
			Name:            "Adobe Creative Cloud",
			Price:           699.99,
			Currency:        "TRY",
			BillingCycle:    CycleMonthly,
			Category:        CategoryProductivity,
			NextBillingDate: now.AddDate(0, 0, 25),
			Notes:           "All Apps plan",
		},
		{
			Name:            "iCloud",
			Price:           29.99,
			Currency:        "TRY",
			BillingCycle:    CycleMonthly,
			Category:        CategoryStorage,
			NextBillingDate: now.AddDate(0, 0, 10),
			Notes:           "200GB plan",
		},
	}

	for i, sub := range samples {
		sub.ID = strconv.Itoa(i + 1)
		sub.IsActive = true
		sub.CreatedAt = now
	}
	return samples
}
