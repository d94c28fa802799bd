package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Extraction patterns tried in order against the raw model output. The
// model wraps its JSON inconsistently: bare "json{...}", "json({...})" or a
// fenced code block. First pattern whose capture decodes wins.
var jsonResponsePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)json.?(\{.*\})`),
	regexp.MustCompile(`(?s)json(\{.*\})`),
	regexp.MustCompile("(?s)```json(.*)```"),
}

// ParseJSONFromLLM locates and decodes a JSON object or array inside a raw
// LLM response. Returns nil when no pattern yields decodable JSON; there is
// no fallback inference from prose.
func ParseJSONFromLLM(response string) interface{} {
	for _, pattern := range jsonResponsePatterns {
		match := pattern.FindStringSubmatch(response)
		if match == nil {
			continue
		}

		var decoded interface{}
		dec := json.NewDecoder(strings.NewReader(match[1]))
		dec.UseNumber()
		if err := dec.Decode(&decoded); err != nil {
			continue
		}
		return decoded
	}
	return nil
}
