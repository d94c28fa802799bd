package social

import "context"

// Post is one outbound submission to the social network. ReplyTo threads
// the post under an existing tweet; AttachmentURL attaches a quoted tweet.
type Post struct {
	Text          string `json:"text"`
	ReplyTo       string `json:"reply_to,omitempty"`
	AttachmentURL string `json:"attachment_url,omitempty"`
}

// UserTweet is a tweet fetched from another account's timeline.
type UserTweet struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	UserName string `json:"user_name"`
}

// Client is the social-network collaborator contract. The engine never
// touches the wire protocol; implementations live behind the backend proxy.
//
// Post submits all posts in one call and returns the new post ids; an empty
// result is total failure for that call (no partial-success tracking).
// Search distinguishes an API error (err != nil) from no matches (empty
// slice); feedback records are loose maps because the platform's counter
// fields are optional and loosely typed.
type Client interface {
	Post(ctx context.Context, posts []Post) ([]string, error)
	Like(ctx context.Context, tweetID string) (bool, error)
	Retweet(ctx context.Context, tweetID string) (bool, error)
	Follow(ctx context.Context, userID string) (bool, error)
	GetUserPosts(ctx context.Context, handle string) ([]UserTweet, error)
	Search(ctx context.Context, query string, count int) ([]map[string]interface{}, error)
	FilterSuspended(ctx context.Context, handles []string) ([]string, error)
}
