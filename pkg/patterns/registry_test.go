package patterns

import (
	"testing"
)

func TestRegistryInit(t *testing.T) {
	r1 := Get()
	r2 := Get()

	if r1 != r2 {
		t.Error("Get() should return the same registry instance")
	}
}

func TestRegistryHasPatterns(t *testing.T) {
	r := Get()

	if total := r.TotalPatterns(); total < 10 {
		t.Errorf("expected at least 10 patterns, got %d", total)
	}

	if n := r.CategoryCount(CategoryURLPath); n != 5 {
		t.Errorf("url_path: expected 5 patterns, got %d", n)
	}
	if n := r.CategoryCount(CategorySensitiveRequest); n != 6 {
		t.Errorf("sensitive_request: expected 6 patterns, got %d", n)
	}
}

func TestURLPathOrder(t *testing.T) {
	r := Get()

	// Reason ordering in URL reports depends on registration order.
	want := []string{
		"url_auth_terms", "url_urgent_terms", "url_server_script",
		"url_binary_file", "url_unusual_chars",
	}
	got := r.GetByCategory(CategoryURLPath)
	if len(got) != len(want) {
		t.Fatalf("expected %d patterns, got %d", len(want), len(got))
	}
	for i, p := range got {
		if p.Name != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], p.Name)
		}
	}
}

func TestMatchAny(t *testing.T) {
	r := Get()

	testCases := []struct {
		name      string
		text      string
		category  Category
		wantMatch bool
	}{
		{
			name:      "auth terms in URL",
			text:      "http://example.com/verify-account",
			category:  CategoryURLPath,
			wantMatch: true,
		},
		{
			name:      "executable download",
			text:      "http://cdn.example.net/update.exe",
			category:  CategoryURLPath,
			wantMatch: true,
		},
		{
			name:      "clean URL",
			text:      "http://example.com/articles",
			category:  CategoryURLPath,
			wantMatch: false,
		},
		{
			name:      "SSN request",
			text:      "Please confirm your social security number",
			category:  CategorySensitiveRequest,
			wantMatch: true,
		},
		{
			name:      "credential pair",
			text:      "Enter your username and then your password below",
			category:  CategorySensitiveRequest,
			wantMatch: true,
		},
		{
			name:      "click here phrasing",
			text:      "Click here to restore access",
			category:  CategorySensitiveRequest,
			wantMatch: true,
		},
		{
			name:      "benign message",
			text:      "Lunch at noon tomorrow?",
			category:  CategorySensitiveRequest,
			wantMatch: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			match := r.MatchAny(tc.text, tc.category)
			gotMatch := match != nil

			if gotMatch != tc.wantMatch {
				if tc.wantMatch {
					t.Errorf("expected match for %q, got none", tc.text)
				} else {
					t.Errorf("expected no match for %q, got %s", tc.text, match.Name)
				}
			}
		})
	}
}

func TestMatchAll(t *testing.T) {
	r := Get()

	text := "Click here to verify your credit card number and bank account details"
	matches := r.MatchAll(text, CategorySensitiveRequest)

	if len(matches) < 3 {
		t.Errorf("expected at least 3 matches, got %d", len(matches))
	}
	for _, m := range matches {
		if m.Message == "" {
			t.Errorf("pattern %s has no message", m.Name)
		}
	}
}

func BenchmarkMatchAllURL(b *testing.B) {
	r := Get()
	url := "http://secure-login-verify.example.xyz/account/update.php"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.MatchAll(url, CategoryURLPath)
	}
}
