package utils

import (
	"strings"
)

// FormatTopicsInline joins suggested topic titles into a human-readable
// Spanish phrase: "a", "a y b", "a, b y c".
func FormatTopicsInline(suggestions []string) string {
	topics := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		s = strings.TrimSpace(s)
		if s != "" {
			topics = append(topics, s)
		}
	}

	switch len(topics) {
	case 0:
		return ""
	case 1:
		return topics[0]
	default:
		return strings.Join(topics[:len(topics)-1], ", ") + " y " + topics[len(topics)-1]
	}
}
