package mailparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/berkanunver-maker/subwatch-ai/internal/core"
)

// parserFunc extracts subscription fields from one mail. Parsers are pure:
// the current time comes in as an argument so the "one month from now"
// fallback stays deterministic under test.
type parserFunc func(subject, body string, now time.Time) *core.Subscription

// parsers is a closed dispatch table; unknown providers fall back to
// parseGeneric at the call site.
var parsers = map[Provider]parserFunc{
	ProviderNetflix:   parseNetflix,
	ProviderSpotify:   parseSpotify,
	ProviderYouTube:   parseYouTube,
	ProviderApple:     parseApple,
	ProviderAdobe:     parseAdobe,
	ProviderAmazon:    parseAmazon,
	ProviderMicrosoft: parseMicrosoft,
}

var (
	// Amounts like "₺149,99", "TRY 149.99" or "149,99 TL"
	tryPricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`₺\s*(\d+[.,]\d{2})`),
		regexp.MustCompile(`TRY\s*(\d+[.,]\d{2})`),
		regexp.MustCompile(`(\d+[.,]\d{2})\s*TL`),
	}

	// Adobe and Microsoft bill in USD for some regions
	usdPricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`₺\s*(\d+[.,]\d{2})`),
		regexp.MustCompile(`USD\s*(\d+[.,]\d{2})`),
		regexp.MustCompile(`(\d+[.,]\d{2})\s*USD`),
	}

	// "DD/MM/YYYY" or "DD-MM-YYYY", 2 to 4 digit years
	datePattern = regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)

	// Netflix mails anchor the renewal date behind a phrase
	anchoredDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)next payment.*?(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
		regexp.MustCompile(`(?i)billing date.*?(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	}
)

// matchPrice runs the ordered price patterns over the body and returns the
// first amount found. Comma is accepted as the decimal separator.
func matchPrice(body string, patterns []*regexp.Regexp) (float64, bool) {
	for _, pattern := range patterns {
		m := pattern.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		price, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err != nil {
			continue
		}
		return price, true
	}
	return 0, false
}

// matchDate returns the first bare date in the body, or one month from now
// when nothing parses. The date is optional by design; the amount is not.
func matchDate(body string, now time.Time) time.Time {
	if m := datePattern.FindStringSubmatch(body); m != nil {
		return parseDate(m[1], now)
	}
	return nextMonth(now)
}

// matchAnchoredDate prefers dates behind "next payment" / "billing date"
// anchor phrases and ignores bare date-shaped substrings.
func matchAnchoredDate(body string, now time.Time) time.Time {
	for _, pattern := range anchoredDatePatterns {
		if m := pattern.FindStringSubmatch(body); m != nil {
			return parseDate(m[1], now)
		}
	}
	return nextMonth(now)
}

// parseDate converts "DD/MM/YYYY" or "DD-MM-YYYY" into a time. Two-digit
// years resolve into the 2000s. Out-of-range components normalize the way
// time.Date always does; garbage falls back to one month ahead.
func parseDate(dateStr string, now time.Time) time.Time {
	parts := strings.FieldsFunc(dateStr, func(r rune) bool {
		return r == '/' || r == '-'
	})
	if len(parts) != 3 {
		return nextMonth(now)
	}

	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return nextMonth(now)
	}
	if year < 100 {
		year += 2000
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
}

func nextMonth(now time.Time) time.Time {
	return now.AddDate(0, 1, 0)
}

func containsAny(text string, keywords ...string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func parseNetflix(subject, body string, now time.Time) *core.Subscription {
	price, ok := matchPrice(body, tryPricePatterns)
	if !ok {
		return nil
	}

	cycle := core.CycleMonthly
	if containsAny(body, "annual", "yearly") {
		cycle = core.CycleYearly
	}

	return &core.Subscription{
		Name:            "Netflix",
		Price:           price,
		Currency:        "TRY",
		BillingCycle:    cycle,
		Category:        core.CategoryStreaming,
		NextBillingDate: matchAnchoredDate(body, now),
		IsActive:        true,
	}
}

func parseSpotify(subject, body string, now time.Time) *core.Subscription {
	price, ok := matchPrice(body, tryPricePatterns)
	if !ok {
		return nil
	}

	// Premium Family still bills monthly; only the price differs. Spotify
	// never promotes to yearly here, unlike Netflix/Adobe/Microsoft.
	return &core.Subscription{
		Name:            "Spotify",
		Price:           price,
		Currency:        "TRY",
		BillingCycle:    core.CycleMonthly,
		Category:        core.CategoryMusic,
		NextBillingDate: matchDate(body, now),
		IsActive:        true,
	}
}

func parseYouTube(subject, body string, now time.Time) *core.Subscription {
	price, ok := matchPrice(body, tryPricePatterns)
	if !ok {
		return nil
	}

	return &core.Subscription{
		Name:            "YouTube Premium",
		Price:           price,
		Currency:        "TRY",
		BillingCycle:    core.CycleMonthly,
		Category:        core.CategoryStreaming,
		NextBillingDate: matchDate(body, now),
		IsActive:        true,
	}
}

func parseApple(subject, body string, now time.Time) *core.Subscription {
	price, ok := matchPrice(body, tryPricePatterns)
	if !ok {
		return nil
	}

	// One receipt sender, several services
	name := "Apple"
	category := core.CategoryStreaming
	switch {
	case containsAny(body, "icloud"):
		name = "iCloud Storage"
		category = core.CategoryStorage
	case containsAny(body, "apple music"):
		name = "Apple Music"
		category = core.CategoryMusic
	case containsAny(body, "apple tv"):
		name = "Apple TV+"
	}

	return &core.Subscription{
		Name:            name,
		Price:           price,
		Currency:        "TRY",
		BillingCycle:    core.CycleMonthly,
		Category:        category,
		NextBillingDate: matchDate(body, now),
		IsActive:        true,
	}
}

func parseAdobe(subject, body string, now time.Time) *core.Subscription {
	price, ok := matchPrice(body, usdPricePatterns)
	if !ok {
		return nil
	}

	cycle := core.CycleMonthly
	if containsAny(body, "annual") {
		cycle = core.CycleYearly
	}

	return &core.Subscription{
		Name:            "Adobe Creative Cloud",
		Price:           price,
		Currency:        pickCurrency(body),
		BillingCycle:    cycle,
		Category:        core.CategoryProductivity,
		NextBillingDate: matchDate(body, now),
		IsActive:        true,
	}
}

func parseAmazon(subject, body string, now time.Time) *core.Subscription {
	price, ok := matchPrice(body, tryPricePatterns)
	if !ok {
		return nil
	}

	return &core.Subscription{
		Name:            "Amazon Prime",
		Price:           price,
		Currency:        "TRY",
		BillingCycle:    core.CycleMonthly,
		Category:        core.CategoryStreaming,
		NextBillingDate: matchDate(body, now),
		IsActive:        true,
	}
}

func parseMicrosoft(subject, body string, now time.Time) *core.Subscription {
	price, ok := matchPrice(body, usdPricePatterns)
	if !ok {
		return nil
	}

	cycle := core.CycleMonthly
	if containsAny(body, "annual", "yearly") {
		cycle = core.CycleYearly
	}

	return &core.Subscription{
		Name:            "Microsoft 365",
		Price:           price,
		Currency:        pickCurrency(body),
		BillingCycle:    cycle,
		Category:        core.CategoryProductivity,
		NextBillingDate: matchDate(body, now),
		IsActive:        true,
	}
}

// parseGeneric handles mails from recognized senders that no dedicated
// parser claims. The record is deliberately vague: the user renames it in
// the app after review.
func parseGeneric(subject, body string, now time.Time) *core.Subscription {
	price, ok := matchPrice(body, tryPricePatterns)
	if !ok {
		return nil
	}

	return &core.Subscription{
		Name:            "Unknown Subscription",
		Price:           price,
		Currency:        "TRY",
		BillingCycle:    core.CycleMonthly,
		Category:        core.CategoryOther,
		NextBillingDate: nextMonth(now),
		IsActive:        true,
	}
}

// pickCurrency resolves the USD/TRY ambiguity for providers that bill in
// either, keyed off the body mentioning USD at all.
func pickCurrency(body string) string {
	if strings.Contains(body, "USD") {
		return "USD"
	}
	return "TRY"
}
