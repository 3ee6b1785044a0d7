package cli

import "testing"

func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"":        "",
		"7":       "7",
		"123":     "123",
		"1234":    "1,234",
		"123456":  "123,456",
		"1234567": "1,234,567",
	}
	for in, want := range tests {
		if got := FormatNumberString(in); got != want {
			t.Errorf("FormatNumberString(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	t.Parallel()
	if got := TruncateMiddle("abcdef", 10, 2); got != "abcdef" {
		t.Errorf("short strings are unchanged, got %q", got)
	}
	if got := TruncateMiddle("abcdefghijkl", 5, 2); got != "ab...kl" {
		t.Errorf("got %q, want %q", got, "ab...kl")
	}
	if got := TruncateMiddle("abcdefghijkl", 5, 6); got != "abcdefghijkl" {
		t.Errorf("edges covering the string leave it unchanged, got %q", got)
	}
}
