package ai

import (
	"fmt"
	"strings"
)

// Turn is one transcript entry handed to the model: the role label
// ("Client" or "Vendor") and the message text.
type Turn struct {
	Role string
	Text string
}

const suggestPrompt = `You are drafting a reply on behalf of a wedding vendor answering a client inquiry.

Rules:
* Reply as the vendor, in first person, warm and professional.
* Answer only what the conversation supports; never invent prices, dates, or availability.
* Keep it short: 2-4 sentences, plain text, no subject line, no signature.
* If the client asked a question the transcript cannot answer, acknowledge it and ask for the missing detail instead of guessing.`

// BuildSuggestPrompt assembles the instruction block, the thread subject, and
// the transcript into a single prompt. Oldest message first.
func BuildSuggestPrompt(subject string, turns []Turn) string {
	var b strings.Builder
	b.WriteString(suggestPrompt)
	b.WriteString("\n\nSubject: ")
	b.WriteString(subject)
	b.WriteString("\n\nConversation so far:\n")
	for _, t := range turns {
		fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Text)
	}
	b.WriteString("\nDraft the vendor's next reply.")
	return b.String()
}
