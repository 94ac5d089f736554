package notes

import (
	"encoding/json"
	"strings"
)

// maxFallbackItems caps line-based extraction to avoid flooding the
// database when the model returns free-form text.
const maxFallbackItems = 10

// ExtractedItem is a single action item parsed from a model response
type ExtractedItem struct {
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
}

// Extractor parses action items out of raw LLM responses. It first looks
// for a JSON array anywhere in the response; when none can be decoded it
// falls back to scanning individual lines. It never returns an error:
// unusable input yields an empty slice.
type Extractor struct{}

// NewExtractor creates a new Extractor instance
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses action items from a raw model response
func (e *Extractor) Extract(response string) []ExtractedItem {
	jsonStr, ok := extractJSONArray(response)
	if !ok {
		return e.extractFromLines(response)
	}

	var raw []interface{}
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return e.extractFromLines(response)
	}

	items := make([]ExtractedItem, 0, len(raw))
	for _, element := range raw {
		// skip non-object entries; models sometimes mix strings into the array
		entry, ok := element.(map[string]interface{})
		if !ok {
			continue
		}
		if _, ok := entry["description"]; !ok {
			continue
		}

		item := ExtractedItem{
			Description: strings.TrimSpace(stringField(entry, "description", "")),
			Assignee:    strings.TrimSpace(stringField(entry, "assignee", "Unassigned")),
			DueDate:     strings.TrimSpace(stringField(entry, "due_date", "No due date specified")),
			Priority:    strings.TrimSpace(stringField(entry, "priority", "Medium")),
		}
		if item.Description != "" {
			items = append(items, item)
		}
	}

	return items
}

// extractJSONArray finds the outermost bracketed span in the response:
// from the first '[' to the last ']'. Models often wrap the array in
// prose or markdown fences, so anything outside the span is ignored.
func extractJSONArray(response string) (string, bool) {
	start := strings.Index(response, "[")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(response, "]")
	if end < start {
		return "", false
	}
	return response[start : end+1], true
}

// stringField reads a string value from a decoded JSON object,
// substituting def when the key is absent or not a string
func stringField(entry map[string]interface{}, key, def string) string {
	v, ok := entry[key]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

// extractFromLines is the fallback parser for non-JSON responses. A line
// qualifies when it is a bullet ("-" or "*") or mentions "action".
func (e *Extractor) extractFromLines(text string) []ExtractedItem {
	items := make([]ExtractedItem, 0)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "*") &&
			!strings.Contains(strings.ToLower(line), "action") {
			continue
		}

		clean := stripBullet(line)
		if clean == "" {
			continue
		}

		items = append(items, ExtractedItem{
			Description: clean,
			Assignee:    "Unassigned",
			DueDate:     "No due date specified",
			Priority:    "Medium",
		})
	}

	if len(items) > maxFallbackItems {
		items = items[:maxFallbackItems]
	}
	return items
}

// stripBullet removes a single leading bullet marker and the whitespace
// that follows it
func stripBullet(line string) string {
	if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
		return strings.TrimLeft(line[1:], " \t")
	}
	return line
}
