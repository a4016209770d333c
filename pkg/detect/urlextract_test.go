package detect

import (
	"reflect"
	"testing"
)

func TestExtractURLs(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "standard https URL",
			text: "Visit https://example.com/page today",
			want: []string{"https://example.com/page"},
		},
		{
			name: "trailing punctuation trimmed",
			text: "Go to http://example.com/login.",
			want: []string{"http://example.com/login"},
		},
		{
			name: "www prefix normalized",
			text: "See www.example.com for details",
			want: []string{"http://www.example.com"},
		},
		{
			name: "bare domain",
			text: "check example.com before paying",
			want: []string{"http://example.com"},
		},
		{
			name: "shortener with path",
			text: "click bit.ly/a1b2c3 to claim",
			want: []string{"http://bit.ly/a1b2c3"},
		},
		{
			name: "email address is not a URL",
			text: "reply to support@example.com please",
			want: nil,
		},
		{
			name: "decimal number is not a host",
			text: "release 3.14 is out",
			want: nil,
		},
		{
			name: "verification code is not a host",
			text: "Your Google security code is: 347890. Don't share this code with anyone.",
			want: nil,
		},
		{
			name: "duplicates collapse to first occurrence",
			text: "http://a.example/x then again http://a.example/x",
			want: []string{"http://a.example/x"},
		},
		{
			name: "mixed forms keep text order",
			text: "https://first.example/a and www.second.example too",
			want: []string{"https://first.example/a", "http://www.second.example"},
		},
		{
			name: "no URLs",
			text: "Lunch at noon tomorrow?",
			want: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractURLs(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ExtractURLs(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func BenchmarkExtractURLs(b *testing.B) {
	text := "URGENT: verify at http://amaz0n-security-verify.com or www.backup.example now, also bit.ly/x9y8z7"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ExtractURLs(text)
	}
}
