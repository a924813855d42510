package textutil

import "testing"

func TestCollapseSpaces(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  ciao   mondo  ", "ciao mondo"},
		{"a\tb\nc", "a b c"},
	}
	for _, tt := range tests {
		if got := CollapseSpaces(tt.in); got != tt.want {
			t.Errorf("CollapseSpaces(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNFCComposesAccents(t *testing.T) {
	decomposed := "perche\u0301"
	if got := NFC(decomposed); got != "perch\u00e9" {
		t.Fatalf("NFC(%q) = %q, want %q", decomposed, got, "perch\u00e9")
	}
}

func TestNormalizeKey(t *testing.T) {
	if NormalizeKey("  Ciao   MONDO ") != NormalizeKey("ciao mondo") {
		t.Fatal("expected normalized keys to match")
	}
}

func TestContentKeyStableAndDistinct(t *testing.T) {
	a := ContentKey(12, "1000", "ciao")
	b := ContentKey(12, "1000", "ciao")
	c := ContentKey(12, "1000", "ciao!")
	if a != b {
		t.Fatalf("expected stable key, got %q and %q", a, b)
	}
	if a == c {
		t.Fatal("expected distinct keys for distinct content")
	}
	if len(a) != 12 {
		t.Fatalf("expected 12 characters, got %d", len(a))
	}
	if len(ContentKey(0, "x")) != 64 {
		t.Fatal("expected full digest when n is 0")
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "unknown"},
		{"HP1", "hp1"},
		{"Harry Potter 1", "harry_potter_1"},
		{"***", "unknown"},
	}
	for _, tt := range tests {
		if got := SanitizeToken(tt.in); got != tt.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
