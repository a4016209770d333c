// Package lexicon holds the static word lists and domain tables the
// detection engine scans against. The compiled-in defaults are always
// available; a YAML file can extend them for deployments that curate
// their own lists.
//
// A Set is immutable after construction and safe for concurrent readers.
package lexicon

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Brand maps a brand name to the domain fragments attackers imitate.
type Brand struct {
	Name      string   `yaml:"name"`
	Fragments []string `yaml:"fragments"`
}

// Set is the full lexicon consumed by the analyzers.
type Set struct {
	// PhishingKeywords are generic phishing phrases matched as
	// case-insensitive substrings of the message body.
	PhishingKeywords []string `yaml:"phishing_keywords"`

	// UrgencyWords signal time pressure ("act now", "immediately").
	UrgencyWords []string `yaml:"urgency_words"`

	// MoneyTerms are financial vocabulary common in payment scams.
	MoneyTerms []string `yaml:"money_terms"`

	// Misspellings are deliberate or careless spellings frequent in
	// phishing copy but rare in legitimate correspondence.
	Misspellings []string `yaml:"misspellings"`

	// SuspiciousDomains are substrings that flag a hostname outright
	// (digit-substituted brands, "secure-login" style bait).
	SuspiciousDomains []string `yaml:"suspicious_domains"`

	// SuspiciousTLDs are cheap or abuse-heavy top-level domains,
	// including the leading dot.
	SuspiciousTLDs []string `yaml:"suspicious_tlds"`

	// LegitimateDomains is the exact-match allow list that dampens the
	// URL heuristics. Entries include their www. variants.
	LegitimateDomains []string `yaml:"legitimate_domains"`

	// Shorteners are known URL shortener hostnames.
	Shorteners []string `yaml:"shorteners"`

	// Brands is the brand name to domain-fragment table used by the
	// typosquatting check.
	Brands []Brand `yaml:"brands"`

	// BrandMentions are brand words scanned for in the message body
	// (word-boundary match).
	BrandMentions []string `yaml:"brand_mentions"`

	legitimate map[string]struct{}
}

var (
	defaultSet  *Set
	defaultOnce sync.Once
)

// Default returns the compiled-in lexicon. The same instance is returned
// on every call.
func Default() *Set {
	defaultOnce.Do(func() {
		defaultSet = builtin()
		defaultSet.index()
	})
	return defaultSet
}

// Load returns the compiled-in lexicon extended with entries from a YAML
// file. Lists in the file are appended to the defaults, so a deployment
// only declares what it adds.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon file: %w", err)
	}

	var extra Set
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parse lexicon file %s: %w", path, err)
	}

	s := builtin()
	s.PhishingKeywords = append(s.PhishingKeywords, extra.PhishingKeywords...)
	s.UrgencyWords = append(s.UrgencyWords, extra.UrgencyWords...)
	s.MoneyTerms = append(s.MoneyTerms, extra.MoneyTerms...)
	s.Misspellings = append(s.Misspellings, extra.Misspellings...)
	s.SuspiciousDomains = append(s.SuspiciousDomains, extra.SuspiciousDomains...)
	s.SuspiciousTLDs = append(s.SuspiciousTLDs, extra.SuspiciousTLDs...)
	s.LegitimateDomains = append(s.LegitimateDomains, extra.LegitimateDomains...)
	s.Shorteners = append(s.Shorteners, extra.Shorteners...)
	s.Brands = append(s.Brands, extra.Brands...)
	s.BrandMentions = append(s.BrandMentions, extra.BrandMentions...)
	s.index()
	return s, nil
}

// IsLegitimate reports whether the hostname is on the exact-match allow
// list. The caller is expected to pass a lowercased hostname.
func (s *Set) IsLegitimate(domain string) bool {
	_, ok := s.legitimate[domain]
	return ok
}

func (s *Set) index() {
	s.legitimate = make(map[string]struct{}, len(s.LegitimateDomains))
	for _, d := range s.LegitimateDomains {
		s.legitimate[d] = struct{}{}
	}
}

func builtin() *Set {
	return &Set{
		PhishingKeywords: []string{
			"urgent", "account suspended", "verify immediately", "unusual activity",
			"login attempt", "click here", "confirm identity", "security alert",
			"update your information", "password expired", "limited offer", "act now",
			"payment failed", "unauthorized", "suspicious", "immediately", "verify",
		},
		UrgencyWords: []string{
			"urgent", "immediately", "alert", "warning", "now", "quick", "fast",
			"important", "attention", "critical", "limited time",
		},
		MoneyTerms: []string{
			"money", "cash", "credit", "debit", "bank", "account", "payment",
			"transfer", "withdraw", "deposit", "rs", "rupees", "usd", "euro",
			"dollar", "amount",
		},
		Misspellings: []string{
			"acct", "verifcation", "verificaton", "securty", "informaton",
			"accesing", "acount", "confirmaton",
		},
		SuspiciousDomains: []string{
			"amaz0n", "g00gle", "paypa1", "b4nk", "netfl1x", "apple-id",
			"microsoft-verify", "secure-login", "account-verify",
		},
		SuspiciousTLDs: []string{
			".xyz", ".info", ".tk", ".ml", ".cf", ".gq", ".top", ".online",
		},
		LegitimateDomains: []string{
			"google.com", "www.google.com",
			"microsoft.com", "www.microsoft.com",
			"apple.com", "www.apple.com",
			"amazon.com", "www.amazon.com",
			"facebook.com", "www.facebook.com",
			"twitter.com", "www.twitter.com",
			"instagram.com", "www.instagram.com",
			"linkedin.com", "www.linkedin.com",
			"netflix.com", "www.netflix.com",
			"paypal.com", "www.paypal.com",
			"youtube.com", "www.youtube.com",
			"github.com", "www.github.com",
			"wikipedia.org", "www.wikipedia.org",
			"yahoo.com", "www.yahoo.com",
			"reddit.com", "www.reddit.com",
		},
		Shorteners: []string{
			"bit.ly", "tinyurl.com", "goo.gl", "t.co", "is.gd", "ow.ly",
			"buff.ly", "rebrand.ly", "shorturl.at", "tiny.cc",
		},
		Brands: []Brand{
			{Name: "Google", Fragments: []string{"google"}},
			{Name: "Amazon", Fragments: []string{"amazon"}},
			{Name: "Microsoft", Fragments: []string{"microsoft", "outlook", "office365", "azure"}},
			{Name: "Apple", Fragments: []string{"apple", "icloud"}},
			{Name: "PayPal", Fragments: []string{"paypal"}},
			{Name: "Facebook", Fragments: []string{"facebook", "fb"}},
			{Name: "Instagram", Fragments: []string{"instagram"}},
			{Name: "Netflix", Fragments: []string{"netflix"}},
			{Name: "LinkedIn", Fragments: []string{"linkedin"}},
			{Name: "Twitter", Fragments: []string{"twitter", "x.com"}},
			{Name: "Bank", Fragments: []string{"bank", "chase", "wellsfargo", "bankofamerica", "citibank"}},
		},
		BrandMentions: []string{
			"amazon", "netflix", "paypal", "apple", "microsoft", "google",
			"facebook", "bank", "instagram", "twitter", "rummy",
		},
	}
}
