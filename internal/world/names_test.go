package world

import (
	"testing"
	"unicode"
	"unicode/utf8"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "Guest"},
		{"   ", "Guest"},
		{"!!!", "Guest"},
		{"  Alice  ", "Alice"},
		{"Bob_42", "Bob_42"},
		{"a-b.c<script>", "abcscript"},
		{"Mr Smith", "Mr Smith"},
		{"abcdefghijklmnopqrstuvwxyz", "abcdefghijklmnop"},
		{"Nguyễn Văn A", "Nguyễn Văn A"},
		{"😀 hi", " hi"},
		{"e\u0301", "\u00e9"}, // combining accent composed, not stripped
		{"Zoe\u0308!", "Zo\u00eb"},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Fatalf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeNameInvariants(t *testing.T) {
	inputs := []string{"x", "héllo wörld!!", "____", "\t tab", "漢字かな", "1234567890123456789", "ábc"}
	for _, in := range inputs {
		got := SanitizeName(in)
		if utf8.RuneCountInString(got) > MaxNameLength {
			t.Fatalf("SanitizeName(%q) too long: %q", in, got)
		}
		for _, r := range got {
			if !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r)) {
				t.Fatalf("SanitizeName(%q) kept %q", in, r)
			}
		}
		if got == "" {
			t.Fatalf("SanitizeName(%q) empty", in)
		}
	}
}
