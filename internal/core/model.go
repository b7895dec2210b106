package core

import (
	"strings"
	"time"
)

// BillingCycle is how often a subscription renews
type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
	CycleWeekly  BillingCycle = "weekly"
	CycleDaily   BillingCycle = "daily"
)

// Category classifies what kind of service a subscription pays for
type Category string

const (
	CategoryStreaming    Category = "streaming"
	CategoryMusic        Category = "music"
	CategoryProductivity Category = "productivity"
	CategoryGaming       Category = "gaming"
	CategoryFitness      Category = "fitness"
	CategoryNews         Category = "news"
	CategoryEducation    Category = "education"
	CategoryStorage      Category = "storage"
	CategoryOther        Category = "other"
)

// categoryLabels maps categories to their display names
var categoryLabels = map[Category]string{
	CategoryStreaming:    "Video Streaming",
	CategoryMusic:        "Müzik",
	CategoryProductivity: "Üretkenlik",
	CategoryGaming:       "Oyun",
	CategoryFitness:      "Sağlık & Fitness",
	CategoryNews:         "Haber",
	CategoryEducation:    "Eğitim",
	CategoryStorage:      "Depolama",
	CategoryOther:        "Diğer",
}

// Label returns the display name for the category, falling back to "Diğer"
// for anything outside the known set.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return categoryLabels[CategoryOther]
}

// Subscription is a single recurring payment tracked by the application.
// Records come either from the mail extraction pipeline or from manual entry.
type Subscription struct {
	ID              string       `json:"id"`
	Name            string       `json:"name" validate:"required"`
	Price           float64      `json:"price" validate:"min:0"`
	Currency        string       `json:"currency"`
	BillingCycle    BillingCycle `json:"billingCycle"`
	Category        Category     `json:"category"`
	NextBillingDate time.Time    `json:"nextBillingDate"`
	IsActive        bool         `json:"isActive"`
	Notes           string       `json:"notes,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`

	// Provenance of mail-extracted records, informational only
	Provider    string `json:"provider,omitempty"`
	SourceEmail string `json:"sourceEmail,omitempty"`
	EmailDate   string `json:"emailDate,omitempty"`
	RawSubject  string `json:"rawSubject,omitempty"`
}

// Header is a single name/value mail header pair
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MailPart is one node of a MIME-like payload tree. Body data is
// base64url-encoded the way the Gmail API returns it. Parts may nest;
// the body decoder honors one level of nesting.
type MailPart struct {
	MimeType string      `json:"mimeType"`
	Body     *MailBody   `json:"body,omitempty"`
	Parts    []*MailPart `json:"parts,omitempty"`
}

// MailBody carries the encoded content of a part
type MailBody struct {
	Data string `json:"data"`
}

// RawMail is one fetched mail item as handed over by the mail source.
// It is read-only to the extraction pipeline.
type RawMail struct {
	ID      string    `json:"id"`
	Headers []Header  `json:"headers"`
	Payload *MailPart `json:"payload"`
}

// Header returns the value of the named header, matched case-insensitively.
// Missing headers yield an empty string.
func (m *RawMail) Header(name string) string {
	for _, h := range m.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// TopSubscription is one entry of the top-spenders list. Price is the
// monthly-equivalent amount, not the raw subscription price.
type TopSubscription struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CategoryAmount is the monthly spend within one category
type CategoryAmount struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Amount   float64  `json:"amount"`
}

// Statistics is a snapshot of aggregate spend, recomputed on demand and
// never persisted.
type Statistics struct {
	TotalMonthly      float64           `json:"totalMonthly"`
	TotalYearly       float64           `json:"totalYearly"`
	ActiveCount       int               `json:"activeCount"`
	TotalCount        int               `json:"totalCount"`
	TopSubscriptions  []TopSubscription `json:"topSubscriptions"`
	CategoryBreakdown []CategoryAmount  `json:"categoryBreakdown"`
	UpcomingRenewals  []*Subscription   `json:"upcomingRenewals"`

	// MonthlyAverage and TotalSpent alias TotalMonthly and TotalYearly;
	// the app never tracked historical spend. SavingsPotential is a
	// placeholder for the unbuilt AI analysis and stays zero.
	MonthlyAverage   float64 `json:"monthlyAverage"`
	TotalSpent       float64 `json:"totalSpent"`
	SavingsPotential float64 `json:"savingsPotential"`
}
