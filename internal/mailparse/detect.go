package mailparse

import (
	"strings"
)

// Provider tags a recognized billing service
type Provider string

const (
	ProviderNetflix   Provider = "netflix"
	ProviderSpotify   Provider = "spotify"
	ProviderYouTube   Provider = "youtube"
	ProviderApple     Provider = "apple"
	ProviderAdobe     Provider = "adobe"
	ProviderAmazon    Provider = "amazon"
	ProviderMicrosoft Provider = "microsoft"
)

// providerTable lists the known providers in priority order; the first
// keyword hit against the sender or the subject wins.
var providerTable = []struct {
	provider Provider
	from     []string
	subject  []string
}{
	{ProviderNetflix, []string{"netflix"}, []string{"netflix"}},
	{ProviderSpotify, []string{"spotify"}, []string{"spotify"}},
	{ProviderYouTube, []string{"youtube"}, []string{"youtube"}},
	{ProviderApple, []string{"apple", "icloud"}, []string{"apple"}},
	{ProviderAdobe, []string{"adobe"}, []string{"adobe"}},
	{ProviderAmazon, []string{"amazon"}, []string{"amazon"}},
	{ProviderMicrosoft, []string{"microsoft"}, []string{"microsoft"}},
}

// DetectProvider matches the sender address and subject line against the
// provider keyword table, case-insensitively. An unmatched mail is simply
// not a billing mail we understand.
func DetectProvider(from, subject string) (Provider, bool) {
	fromLower := strings.ToLower(from)
	subjectLower := strings.ToLower(subject)

	for _, entry := range providerTable {
		for _, keyword := range entry.from {
			if strings.Contains(fromLower, keyword) {
				return entry.provider, true
			}
		}
		for _, keyword := range entry.subject {
			if strings.Contains(subjectLower, keyword) {
				return entry.provider, true
			}
		}
	}
	return "", false
}
