package core

import (
	"encoding/json"
	"strconv"
)

// Tweet is one entry of the persisted tweet log, newest last.
type Tweet struct {
	TweetID   string `json:"tweet_id"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// PendingTweet is the latest not-yet-interacted tweet of another agent,
// collected during the engagement pass.
type PendingTweet struct {
	TweetID  string `json:"tweet_id"`
	Text     string `json:"text"`
	UserName string `json:"user_name"`
}

// InteractionType enumerates the social actions the model may decide on.
type InteractionType string

const (
	InteractNone    InteractionType = "none"
	InteractLike    InteractionType = "like"
	InteractFollow  InteractionType = "follow"
	InteractRetweet InteractionType = "retweet"
	InteractReply   InteractionType = "reply"
	InteractQuote   InteractionType = "quote"
	InteractTweet   InteractionType = "tweet"
)

// TweetID tolerates both string and numeric JSON encodings, since the model
// is not consistent about which one it emits.
type TweetID string

func (id *TweetID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = TweetID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = TweetID(n.String())
	return nil
}

// Int64 parses the id as an integer tweet id.
func (id TweetID) Int64() (int64, error) {
	return strconv.ParseInt(string(id), 10, 64)
}

// InteractionDecision is one element of the model's decision list.
type InteractionDecision struct {
	TweetID TweetID         `json:"tweet_id"`
	Action  InteractionType `json:"action"`
	Text    string          `json:"text,omitempty"`
}
