package social

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/luvnft/memeo/core"
	"github.com/luvnft/memeo/ledger"
	"github.com/luvnft/memeo/storage"
)

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

type fakeSocial struct {
	posts      [][]Post
	postIDs    []string
	postErr    error
	liked      []string
	retweeted  []string
	followed   []string
	userTweets map[string][]UserTweet
	searchHits []map[string]interface{}
	searchErr  error
}

func (f *fakeSocial) Post(ctx context.Context, posts []Post) ([]string, error) {
	f.posts = append(f.posts, posts)
	if f.postErr != nil {
		return nil, f.postErr
	}
	return f.postIDs, nil
}

func (f *fakeSocial) Like(ctx context.Context, tweetID string) (bool, error) {
	f.liked = append(f.liked, tweetID)
	return true, nil
}

func (f *fakeSocial) Retweet(ctx context.Context, tweetID string) (bool, error) {
	f.retweeted = append(f.retweeted, tweetID)
	return true, nil
}

func (f *fakeSocial) Follow(ctx context.Context, userID string) (bool, error) {
	f.followed = append(f.followed, userID)
	return true, nil
}

func (f *fakeSocial) GetUserPosts(ctx context.Context, handle string) ([]UserTweet, error) {
	tweets, ok := f.userTweets[handle]
	if !ok {
		return nil, errors.New("no tweets")
	}
	return tweets, nil
}

func (f *fakeSocial) Search(ctx context.Context, query string, count int) ([]map[string]interface{}, error) {
	return f.searchHits, f.searchErr
}

func (f *fakeSocial) FilterSuspended(ctx context.Context, handles []string) ([]string, error) {
	return handles, nil
}

func newTestEngine(client *fakeSocial, llm *fakeLLM) *Engine {
	e := NewEngine(client, llm, ledger.New(storage.NewMemoryStore()))
	e.Sleep = func(time.Duration) {}
	e.Now = func() int64 { return 1700000000 }
	return e
}

func pendingFixture() map[string]core.PendingTweet {
	return map[string]core.PendingTweet{
		"111": {TweetID: "111", Text: "wen moon", UserName: "degen_bot"},
	}
}

func TestEngageLikesAndRecordsInteraction(t *testing.T) {
	client := &fakeSocial{
		userTweets: map[string][]UserTweet{
			"degen_bot": {{ID: "111", Text: "wen moon", UserName: "degen_bot"}},
		},
	}
	llm := &fakeLLM{response: "```json\n[{\"tweet_id\": \"111\", \"action\": \"like\"}]\n```"}
	engine := newTestEngine(client, llm)

	event, newIDs := engine.Engage(context.Background(), "a meme degen", []string{"degen_bot"})
	if event != core.EventDone {
		t.Fatalf("event = %s, want DONE", event)
	}
	if len(newIDs) != 1 || newIDs[0] != 111 {
		t.Fatalf("new ids = %v, want [111]", newIDs)
	}
	if len(client.liked) != 1 || client.liked[0] != "111" {
		t.Errorf("liked = %v, want [111]", client.liked)
	}
	if !engine.Ledger.HasInteracted(111) {
		t.Errorf("tweet 111 should be persisted as interacted")
	}
}

func TestEngageSkipsAlreadyInteracted(t *testing.T) {
	client := &fakeSocial{
		userTweets: map[string][]UserTweet{
			"degen_bot": {{ID: "111", Text: "wen moon", UserName: "degen_bot"}},
		},
	}
	llm := &fakeLLM{response: "```json\n[{\"tweet_id\": \"111\", \"action\": \"like\"}]\n```"}
	engine := newTestEngine(client, llm)

	if _, ids := engine.Engage(context.Background(), "p", []string{"degen_bot"}); len(ids) != 1 {
		t.Fatalf("first pass should interact once, got %v", ids)
	}

	// Second pass: the tweet is filtered out of pending, so even a repeated
	// model decision hits the hallucination guard and does nothing.
	event, newIDs := engine.Engage(context.Background(), "p", []string{"degen_bot"})
	if event != core.EventDone {
		t.Fatalf("event = %s, want DONE", event)
	}
	if len(newIDs) != 0 {
		t.Errorf("second pass produced new ids %v", newIDs)
	}
	if len(client.liked) != 1 {
		t.Errorf("tweet was liked twice")
	}
}

func TestInteractIgnoresHallucinatedIDs(t *testing.T) {
	client := &fakeSocial{}
	llm := &fakeLLM{response: "```json\n[{\"tweet_id\": \"999\", \"action\": \"retweet\"}]\n```"}
	engine := newTestEngine(client, llm)

	event, newIDs := engine.Interact(context.Background(), "p", pendingFixture())
	if event != core.EventDone {
		t.Fatalf("event = %s, want DONE", event)
	}
	if len(newIDs) != 0 || len(client.retweeted) != 0 {
		t.Errorf("hallucinated id must not be acted on: ids=%v retweets=%v", newIDs, client.retweeted)
	}
}

func TestInteractPostsNewTweet(t *testing.T) {
	client := &fakeSocial{postIDs: []string{"555"}}
	llm := &fakeLLM{response: "```json\n[{\"action\": \"tweet\", \"text\": \"gm to all meme coins\"}]\n```"}
	engine := newTestEngine(client, llm)

	event, _ := engine.Interact(context.Background(), "p", nil)
	if event != core.EventDone {
		t.Fatalf("event = %s, want DONE", event)
	}

	tweets := engine.Ledger.Tweets()
	if len(tweets) != 1 {
		t.Fatalf("expected the new tweet in the log, got %d entries", len(tweets))
	}
	if tweets[0].TweetID != "555" || tweets[0].Text != "gm to all meme coins" {
		t.Errorf("unexpected stored tweet %+v", tweets[0])
	}
	if tweets[0].Timestamp != 1700000000 {
		t.Errorf("timestamp = %d, want the injected clock value", tweets[0].Timestamp)
	}
}

func TestInteractRejectsOverlongReply(t *testing.T) {
	client := &fakeSocial{postIDs: []string{"556"}}
	longText := strings.Repeat("a", 281)
	llm := &fakeLLM{response: fmt.Sprintf("```json\n[{\"tweet_id\": \"111\", \"action\": \"reply\", \"text\": %q}]\n```", longText)}
	engine := newTestEngine(client, llm)

	event, newIDs := engine.Interact(context.Background(), "p", pendingFixture())
	if event != core.EventDone {
		t.Fatalf("event = %s, want DONE", event)
	}
	if len(newIDs) != 0 || len(client.posts) != 0 {
		t.Errorf("an overlong reply must not be posted")
	}
}

func TestInteractQuoteBuildsAttachmentURL(t *testing.T) {
	client := &fakeSocial{postIDs: []string{"557"}}
	llm := &fakeLLM{response: "```json\n[{\"tweet_id\": \"111\", \"action\": \"quote\", \"text\": \"this is the way\"}]\n```"}
	engine := newTestEngine(client, llm)

	event, newIDs := engine.Interact(context.Background(), "p", pendingFixture())
	if event != core.EventDone {
		t.Fatalf("event = %s, want DONE", event)
	}
	if len(newIDs) != 1 || newIDs[0] != 111 {
		t.Fatalf("new ids = %v, want [111]", newIDs)
	}
	if len(client.posts) != 1 || len(client.posts[0]) != 1 {
		t.Fatalf("expected one posted quote, got %v", client.posts)
	}
	post := client.posts[0][0]
	if post.AttachmentURL != "https://x.com/degen_bot/status/111" {
		t.Errorf("attachment url = %q", post.AttachmentURL)
	}
	if post.ReplyTo != "" {
		t.Errorf("a quote must not set reply_to")
	}
}

func TestInteractSingleObjectDecision(t *testing.T) {
	client := &fakeSocial{}
	llm := &fakeLLM{response: "```json\n{\"tweet_id\": \"111\", \"action\": \"like\"}\n```"}
	engine := newTestEngine(client, llm)

	event, newIDs := engine.Interact(context.Background(), "p", pendingFixture())
	if event != core.EventDone {
		t.Fatalf("event = %s, want DONE", event)
	}
	if len(newIDs) != 1 || newIDs[0] != 111 {
		t.Errorf("a single-object decision must work like a one-element list, got %v", newIDs)
	}
}

func TestInteractUndecodableResponse(t *testing.T) {
	client := &fakeSocial{}
	llm := &fakeLLM{response: "I think I will just vibe today."}
	engine := newTestEngine(client, llm)

	event, _ := engine.Interact(context.Background(), "p", pendingFixture())
	if event != core.EventError {
		t.Errorf("event = %s, want ERROR", event)
	}
}

func TestEngageLLMFailure(t *testing.T) {
	client := &fakeSocial{
		userTweets: map[string][]UserTweet{
			"degen_bot": {{ID: "111", Text: "wen moon", UserName: "degen_bot"}},
		},
	}
	llm := &fakeLLM{err: errors.New("rate limited")}
	engine := newTestEngine(client, llm)

	event, _ := engine.Engage(context.Background(), "p", []string{"degen_bot"})
	if event != core.EventError {
		t.Fatalf("event = %s, want ERROR", event)
	}
	if len(engine.Ledger.InteractedTweetIDs()) != 0 {
		t.Errorf("a failed pass must not persist interactions")
	}
}

func TestAnnounce(t *testing.T) {
	client := &fakeSocial{postIDs: []string{"700"}}
	engine := newTestEngine(client, &fakeLLM{})

	if event := engine.Announce(context.Background(), "token unleashed!"); event != core.EventDone {
		t.Fatalf("event = %s, want DONE", event)
	}
	if len(engine.Ledger.Tweets()) != 0 {
		t.Errorf("the announcement must not be written to the tweet log")
	}

	// An empty id list is total failure.
	client.postIDs = nil
	if event := engine.Announce(context.Background(), "token unleashed!"); event != core.EventError {
		t.Errorf("event = %s, want ERROR", event)
	}
}

func TestFeedback(t *testing.T) {
	client := &fakeSocial{searchHits: []map[string]interface{}{
		{"id": "low", "view_count": 1},
		{"id": "high", "quote_count": 10},
	}}
	engine := newTestEngine(client, &fakeLLM{})

	// Without any own tweets there is nothing to search for.
	feedback, err := engine.Feedback(context.Background())
	if err != nil || len(feedback) != 0 {
		t.Fatalf("expected empty feedback without tweets, got %v, %v", feedback, err)
	}

	if err := engine.Ledger.StoreTweet(core.Tweet{TweetID: "555", Text: "gm", Timestamp: 100}); err != nil {
		t.Fatal(err)
	}

	feedback, err = engine.Feedback(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(feedback) != 2 || feedback[0]["id"] != "high" {
		t.Errorf("feedback must come back ranked, got %v", feedback)
	}

	client.searchErr = errors.New("search unavailable")
	if _, err := engine.Feedback(context.Background()); err == nil {
		t.Errorf("a search API failure must surface as an error")
	}
}

func TestFormatOwnTweetsMarker(t *testing.T) {
	engine := newTestEngine(&fakeSocial{}, &fakeLLM{})
	if got := engine.formatOwnTweets(); got != noPreviousTweets {
		t.Errorf("formatOwnTweets() = %q, want the empty marker", got)
	}
}
