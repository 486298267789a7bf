package ai

import (
	"strings"
	"testing"
)

func TestBuildSuggestPrompt(t *testing.T) {
	turns := []Turn{
		{Role: "Client", Text: "Are you available June 5?"},
		{Role: "Vendor", Text: "Let me check."},
	}
	got := BuildSuggestPrompt("Summer wedding", turns)

	for _, want := range []string{
		"Subject: Summer wedding",
		"Client: Are you available June 5?",
		"Vendor: Let me check.",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("prompt missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "Client:") > strings.Index(got, "Vendor:") {
		t.Fatalf("transcript out of order:\n%s", got)
	}
}
