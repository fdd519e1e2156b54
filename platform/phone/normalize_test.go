package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"nationalSpanishMobile", "612 345 678", "+34612345678"},
		{"alreadyE164", "+34612345678", "+34612345678"},
		{"internationalWithSpaces", "+31 6 12345678", "+31612345678"},
		{"empty", "", ""},
		{"whitespaceOnly", "   ", ""},
		{"unparseable", "no-phone", "no-phone"},
		{"invalidNumber", "123", "123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeE164(tc.input); got != tc.want {
				t.Errorf("NormalizeE164(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
