package ai

import (
	"encoding/json"
	"testing"
)

func TestParseJSONFromLLM(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantNil  bool
	}{
		{
			name:     "json prefix with parenthesis",
			response: `Here you go: json({"action": "like", "tweet_id": 111})`,
		},
		{
			name:     "bare json prefix",
			response: `json{"action": "retweet", "tweet_id": 222}`,
		},
		{
			name:     "fenced code block",
			response: "```json\n{\"action\": \"reply\", \"tweet_id\": 333, \"text\": \"gm\"}\n```",
		},
		{
			name:     "multiline object inside fence",
			response: "some preamble\n```json\n{\n  \"action\": \"none\"\n}\n```\ntrailing prose",
		},
		{
			name:     "no json at all",
			response: "I could not decide on any action this time.",
			wantNil:  true,
		},
		{
			name:     "json marker but undecodable",
			response: "json{this is not valid}",
			wantNil:  true,
		},
		{
			name:     "empty response",
			response: "",
			wantNil:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseJSONFromLLM(tt.response)
			if tt.wantNil {
				if got != nil {
					t.Errorf("expected nil, got %v", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected decoded JSON, got nil")
			}
			if _, ok := got.(map[string]interface{}); !ok {
				t.Errorf("expected a JSON object, got %T", got)
			}
		})
	}
}

func TestParseJSONFromLLMArray(t *testing.T) {
	response := "```json\n[{\"action\": \"like\", \"tweet_id\": 111}, {\"action\": \"follow\", \"tweet_id\": 222}]\n```"

	got := ParseJSONFromLLM(response)
	list, ok := got.([]interface{})
	if !ok {
		t.Fatalf("expected a JSON array, got %T", got)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 decisions, got %d", len(list))
	}
}

func TestParseJSONFromLLMKeepsNumbers(t *testing.T) {
	got := ParseJSONFromLLM(`json{"tweet_id": 1234567890123456789}`)
	obj, ok := got.(map[string]interface{})
	if !ok {
		t.Fatalf("expected a JSON object, got %T", got)
	}

	// Large tweet ids must survive decoding without float truncation.
	num, ok := obj["tweet_id"].(json.Number)
	if !ok {
		t.Fatalf("expected json.Number, got %T", obj["tweet_id"])
	}
	id, err := num.Int64()
	if err != nil {
		t.Fatalf("tweet id is not an int64: %v", err)
	}
	if id != 1234567890123456789 {
		t.Errorf("tweet id mangled: got %d", id)
	}
}
