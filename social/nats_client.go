package social

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/luvnft/memeo/communication"
)

// NATSClient talks to the twitter service over NATS request/reply. Every
// call is one envelope {id, method, kwargs} answered by {response, error};
// a non-empty error field is surfaced as a Go error.
type NATSClient struct {
	messenger *communication.Messenger
	subject   string
}

type clientEnvelope struct {
	ID     string                 `json:"id"`
	Method string                 `json:"method"`
	Kwargs map[string]interface{} `json:"kwargs"`
}

type clientReply struct {
	Response json.RawMessage `json:"response"`
	Error    string          `json:"error,omitempty"`
}

// NewNATSClient creates a social client bound to a request subject.
func NewNATSClient(m *communication.Messenger, subject string) *NATSClient {
	return &NATSClient{messenger: m, subject: subject}
}

func (c *NATSClient) call(ctx context.Context, method string, kwargs map[string]interface{}, out interface{}) error {
	envelope := clientEnvelope{
		ID:     uuid.New().String(),
		Method: method,
		Kwargs: kwargs,
	}
	data, err := c.messenger.Request(ctx, c.subject, envelope)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", method, err)
	}

	var reply clientReply
	if err := json.Unmarshal(data, &reply); err != nil {
		return fmt.Errorf("%s reply is not valid JSON: %w", method, err)
	}
	if reply.Error != "" {
		return fmt.Errorf("%s failed: %s", method, reply.Error)
	}
	if out != nil && len(reply.Response) > 0 {
		if err := json.Unmarshal(reply.Response, out); err != nil {
			return fmt.Errorf("%s response decode: %w", method, err)
		}
	}
	return nil
}

func (c *NATSClient) Post(ctx context.Context, posts []Post) ([]string, error) {
	var out struct {
		TweetIDs []string `json:"tweet_ids"`
	}
	err := c.call(ctx, "post", map[string]interface{}{"tweets": posts}, &out)
	if err != nil {
		return nil, err
	}
	return out.TweetIDs, nil
}

func (c *NATSClient) Like(ctx context.Context, tweetID string) (bool, error) {
	var out struct {
		Success bool `json:"success"`
	}
	err := c.call(ctx, "like_tweet", map[string]interface{}{"tweet_id": tweetID}, &out)
	if err != nil {
		return false, err
	}
	return out.Success, nil
}

func (c *NATSClient) Retweet(ctx context.Context, tweetID string) (bool, error) {
	var out struct {
		Success bool `json:"success"`
	}
	err := c.call(ctx, "retweet", map[string]interface{}{"tweet_id": tweetID}, &out)
	if err != nil {
		return false, err
	}
	return out.Success, nil
}

func (c *NATSClient) Follow(ctx context.Context, userID string) (bool, error) {
	var out struct {
		Success bool `json:"success"`
	}
	err := c.call(ctx, "follow_user", map[string]interface{}{"user_id": userID}, &out)
	if err != nil {
		return false, err
	}
	return out.Success, nil
}

func (c *NATSClient) GetUserPosts(ctx context.Context, handle string) ([]UserTweet, error) {
	var out struct {
		Tweets []UserTweet `json:"tweets"`
	}
	err := c.call(ctx, "get_user_tweets", map[string]interface{}{"handle": handle}, &out)
	if err != nil {
		return nil, err
	}
	return out.Tweets, nil
}

func (c *NATSClient) Search(ctx context.Context, query string, count int) ([]map[string]interface{}, error) {
	var out struct {
		Tweets []map[string]interface{} `json:"tweets"`
	}
	err := c.call(ctx, "search", map[string]interface{}{"query": query, "count": count}, &out)
	if err != nil {
		return nil, err
	}
	if out.Tweets == nil {
		out.Tweets = []map[string]interface{}{}
	}
	return out.Tweets, nil
}

func (c *NATSClient) FilterSuspended(ctx context.Context, handles []string) ([]string, error) {
	var out struct {
		Handles []string `json:"handles"`
	}
	err := c.call(ctx, "filter_suspended", map[string]interface{}{"handles": handles}, &out)
	if err != nil {
		return nil, err
	}
	return out.Handles, nil
}
