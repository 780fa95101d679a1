package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		input  string
		region string
		want   string
	}{
		{"+1 (415) 555-2671", "US", "+14155552671"},
		{"  +31 6 12345678 ", "NL", "+31612345678"},
		{"06 12345678", "NL", "+31612345678"},
		{"not a phone", "US", "not a phone"},
		{"", "US", ""},
	}

	for _, tc := range tests {
		got := NormalizeE164(tc.input, tc.region)
		if got != tc.want {
			t.Errorf("NormalizeE164(%q, %q) = %q, want %q", tc.input, tc.region, got, tc.want)
		}
	}
}

func TestDialDigits(t *testing.T) {
	tests := []struct {
		input  string
		region string
		want   string
	}{
		{"+1 (415) 555-2671", "US", "14155552671"},
		{"06 12345678", "NL", "31612345678"},
		{"", "US", ""},
	}

	for _, tc := range tests {
		got := DialDigits(tc.input, tc.region)
		if got != tc.want {
			t.Errorf("DialDigits(%q, %q) = %q, want %q", tc.input, tc.region, got, tc.want)
		}
	}
}
