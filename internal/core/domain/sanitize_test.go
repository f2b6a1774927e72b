package domain

import "testing"

func TestSanitizeText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hello world", "hello world"},
		{"  padded  ", "padded"},
		{"<script>alert(1)</script>", "scriptalert(1)/script"},
		{"javascript:alert(1)", "alert(1)"},
		{"JaVaScRiPt:alert(1)", "alert(1)"},
		{`img onerror=alert(1)`, "img alert(1)"},
		{"a <b> c", "a b c"},
		{"jjavascript:avascript:alert(1)", "alert(1)"},
		{"oonclick=nclick=x", "x"},
		{"java<>script:alert(1)", "alert(1)"},
	}

	for _, tc := range cases {
		if got := SanitizeText(tc.in); got != tc.want {
			t.Fatalf("SanitizeText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeText_Idempotent(t *testing.T) {
	inputs := []string{
		"hello world",
		"<script>javascript:alert(1)</script>",
		"img onload=boom src=x",
		"plain text with 'quotes' and-dashes",
		"jjavascript:avascript:alert(1)",
		"oonclick=nclick=x",
		"jjavascript:avascrionload=pt:onerror=",
	}

	for _, in := range inputs {
		once := SanitizeText(in)
		twice := SanitizeText(once)
		if once != twice {
			t.Fatalf("sanitization not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestSanitized_AppliesToAllStringFields(t *testing.T) {
	sub := ContactSubmission{
		Name:           "<Ada>",
		Email:          " ada@example.com ",
		Company:        "javascript:Initech",
		Phone:          "<555>",
		Message:        "onclick=hello there",
		TurnstileToken: " tok ",
	}

	clean := sub.Sanitized()
	if clean.Name != "Ada" {
		t.Fatalf("unexpected name: %q", clean.Name)
	}
	if clean.Email != "ada@example.com" {
		t.Fatalf("unexpected email: %q", clean.Email)
	}
	if clean.Company != "Initech" {
		t.Fatalf("unexpected company: %q", clean.Company)
	}
	if clean.Phone != "555" {
		t.Fatalf("unexpected phone: %q", clean.Phone)
	}
	if clean.Message != "hello there" {
		t.Fatalf("unexpected message: %q", clean.Message)
	}
	if clean.TurnstileToken != "tok" {
		t.Fatalf("unexpected token: %q", clean.TurnstileToken)
	}
}
