package mailparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectProvider(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		subject  string
		want     Provider
		detected bool
	}{
		{"netflix sender", "billing@netflix.com", "Your receipt", ProviderNetflix, true},
		{"netflix subject only", "noreply@mailer.example", "Netflix payment confirmation", ProviderNetflix, true},
		{"spotify", "no-reply@spotify.com", "Receipt", ProviderSpotify, true},
		{"youtube", "noreply@youtube.com", "Premium", ProviderYouTube, true},
		{"apple", "no_reply@email.apple.com", "Your receipt from Apple", ProviderApple, true},
		{"icloud sender maps to apple", "noreply@icloud.com", "Storage upgrade", ProviderApple, true},
		{"adobe", "mail@adobe.com", "Invoice", ProviderAdobe, true},
		{"amazon", "payments@amazon.com.tr", "Prime", ProviderAmazon, true},
		{"microsoft", "billing@microsoft.com", "Microsoft 365", ProviderMicrosoft, true},
		{"case insensitive", "BILLING@NETFLIX.COM", "RECEIPT", ProviderNetflix, true},
		{"table order wins", "netflix@microsoft.com", "", ProviderNetflix, true},
		{"unknown sender", "invoice@example.com", "Your invoice", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, ok := DetectProvider(tt.from, tt.subject)
			assert.Equal(t, tt.detected, ok)
			assert.Equal(t, tt.want, provider)
		})
	}
}
