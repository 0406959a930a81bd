package language

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"de", "de"},
		{"FR", "fr"},
		{"deu", "de"},
		{"ger", "de"},
		{"fra", "fr"},
		{"fre", "fr"},
		{"ita", "it"},
		{"de-CH", "de"},
		{"fr_CH", "fr"},
		{"German", "de"},
		{"romansh", "rm"},
		{" it ", "it"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if err != nil {
				t.Fatalf("Normalize(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "not a language!"} {
		if got, err := Normalize(input); err == nil {
			t.Fatalf("Normalize(%q) = %q, want error", input, got)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("fr"); got != "French" {
		t.Fatalf("DisplayName(fr) = %q", got)
	}
	if got := DisplayName("ger"); got != "German" {
		t.Fatalf("DisplayName(ger) = %q", got)
	}
	if got := DisplayName(""); got != "Unknown" {
		t.Fatalf("DisplayName(\"\") = %q", got)
	}
	if got := DisplayName("!!"); got != "!!" {
		t.Fatalf("DisplayName(!!) = %q", got)
	}
}

func TestPair(t *testing.T) {
	if got := Pair("German", "fra"); got != "de;fr" {
		t.Fatalf("Pair = %q, want de;fr", got)
	}
	if got := Pair("de", "??"); got != "de;??" {
		t.Fatalf("Pair with unknown target = %q", got)
	}
}
