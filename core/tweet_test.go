package core

import (
	"encoding/json"
	"testing"
)

func TestTweetIDUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
		wantErr bool
	}{
		{"string id", `{"tweet_id": "111", "action": "like"}`, "111", false},
		{"numeric id", `{"tweet_id": 111, "action": "like"}`, "111", false},
		{"large numeric id", `{"tweet_id": 1234567890123456789, "action": "like"}`, "1234567890123456789", false},
		{"object id", `{"tweet_id": {"id": 1}, "action": "like"}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var decision InteractionDecision
			err := json.Unmarshal([]byte(tt.payload), &decision)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected a decode error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if string(decision.TweetID) != tt.want {
				t.Errorf("tweet id = %q, want %q", decision.TweetID, tt.want)
			}
		})
	}
}

func TestTweetIDInt64(t *testing.T) {
	id := TweetID("1234567890123456789")
	n, err := id.Int64()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1234567890123456789 {
		t.Errorf("Int64() = %d", n)
	}

	if _, err := TweetID("not-a-number").Int64(); err == nil {
		t.Errorf("a non-numeric id must fail to parse")
	}
}
