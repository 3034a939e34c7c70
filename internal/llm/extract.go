package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?s)```(?:\\w+)?\\s*(.*?)\\s*```")

// ExtractIntents pulls a JSON array of intents out of a raw model reply.
// Models wrap the payload in markdown fences or prose more often than not,
// so extraction tries, in order: fenced block, direct parse, and the
// outermost [...] slice. A single object is accepted and wrapped in a list.
// Returns nil when nothing parseable is found.
func ExtractIntents(raw string) []Intent {
	s := strings.TrimSpace(raw)

	if m := fenceRe.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}

	if intents := parseIntents(s); intents != nil {
		return intents
	}

	// Slice to the outermost array boundaries and retry.
	first := strings.IndexByte(s, '[')
	last := strings.LastIndexByte(s, ']')
	if first >= 0 && last > first {
		if intents := parseIntents(s[first : last+1]); intents != nil {
			return intents
		}
	}

	return nil
}

func parseIntents(s string) []Intent {
	var arr []map[string]any
	if err := json.Unmarshal([]byte(s), &arr); err != nil {
		var obj map[string]any
		if err := json.Unmarshal([]byte(s), &obj); err != nil {
			return nil
		}
		arr = []map[string]any{obj}
	}

	intents := make([]Intent, 0, len(arr))
	for _, m := range arr {
		action, ok := m["action"].(string)
		if !ok || action == "" {
			continue
		}
		delete(m, "action")
		intents = append(intents, Intent{Action: strings.ToLower(action), Args: m})
	}
	if len(intents) == 0 {
		return nil
	}
	return intents
}
