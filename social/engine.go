package social

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/luvnft/memeo/ai"
	"github.com/luvnft/memeo/core"
	"github.com/luvnft/memeo/ledger"
)

// maxActionDelay bounds the randomized pause between consecutive social
// actions; uniform intervals trip the platform's rate limiter.
const maxActionDelay = 5 * time.Second

// ownTweetContext is how many of the agent's own latest tweets go into the
// decision prompt.
const ownTweetContext = 5

// Engine drives the social side effects of a round: the engagement pass
// over other agents' tweets and the single-post announcement pass. All
// external calls go through the Client and LLM collaborators; dedup state
// lives in the Ledger.
type Engine struct {
	Client Client
	LLM    ai.Client
	Ledger *ledger.Ledger

	// Sleep and Now are injectable for tests.
	Sleep func(time.Duration)
	Now   func() int64
}

// NewEngine wires an engine with real clock functions.
func NewEngine(client Client, llm ai.Client, ldg *ledger.Ledger) *Engine {
	return &Engine{
		Client: client,
		LLM:    llm,
		Ledger: ldg,
		Sleep:  time.Sleep,
		Now:    func() int64 { return time.Now().Unix() },
	}
}

// Engage runs the engagement pass: collect each handle's latest tweet, drop
// everything already interacted with, ask the model for a decision list and
// execute it in order. New interactions are merged into the ledger only
// when the pass completes with DONE.
func (e *Engine) Engage(ctx context.Context, persona string, handles []string) (core.Event, []int64) {
	interacted := make(map[int64]bool)
	for _, id := range e.Ledger.InteractedTweetIDs() {
		interacted[id] = true
	}

	pending := e.collectPending(ctx, handles, interacted)

	event, newIDs := e.Interact(ctx, persona, pending)

	if event == core.EventDone {
		if err := e.Ledger.AddInteractions(newIDs); err != nil {
			log.Printf("Failed to persist interacted tweet ids: %v", err)
		}
	}
	return event, newIDs
}

// collectPending fetches at most the single latest tweet per handle and
// keeps those not yet acted on, keyed by tweet id.
func (e *Engine) collectPending(ctx context.Context, handles []string, interacted map[int64]bool) map[string]core.PendingTweet {
	pending := make(map[string]core.PendingTweet)

	for _, handle := range handles {
		tweets, err := e.Client.GetUserPosts(ctx, handle)
		if err != nil || len(tweets) == 0 {
			log.Printf("Couldn't get any tweets from %s", handle)
			continue
		}
		latest := tweets[0]

		id, err := core.TweetID(latest.ID).Int64()
		if err != nil {
			log.Printf("Skipping tweet with non-numeric id %q", latest.ID)
			continue
		}
		if interacted[id] {
			log.Printf("Tweet %d was already interacted with", id)
			continue
		}

		pending[latest.ID] = core.PendingTweet{
			TweetID:  latest.ID,
			Text:     latest.Text,
			UserName: latest.UserName,
		}
	}
	return pending
}

// Interact asks the model for a decision list over the pending tweets and
// executes each decision in list order. Per-action failures are logged and
// skipped; only an undecodable model response fails the pass.
func (e *Engine) Interact(ctx context.Context, persona string, pending map[string]core.PendingTweet) (core.Event, []int64) {
	newInteracted := []int64{}

	prompt := fmt.Sprintf(decisionPrompt, persona, e.formatOwnTweets(), formatPendingTweets(pending))

	response, err := e.LLM.Complete(ctx, prompt)
	if err != nil {
		log.Printf("Error getting a response from the LLM: %v", err)
		return core.EventError, newInteracted
	}
	log.Printf("LLM response for engagement decision: %s", response)

	parsed := ai.ParseJSONFromLLM(response)
	if parsed == nil {
		log.Println("Could not locate JSON in the LLM response")
		return core.EventError, newInteracted
	}

	decisions, err := decodeDecisions(parsed)
	if err != nil {
		log.Printf("Could not decode the decision list: %v", err)
		return core.EventError, newInteracted
	}

	for _, decision := range decisions {
		if decision.Action == core.InteractNone {
			continue
		}

		tweetKey := string(decision.TweetID)
		target, known := pending[tweetKey]
		// Guard against the model hallucinating tweet ids.
		if decision.Action != core.InteractTweet && !known {
			continue
		}

		e.Sleep(randomDelay())

		if decision.Action == core.InteractTweet {
			if _, err := e.PostTweet(ctx, []string{decision.Text}, true); err != nil {
				log.Printf("Failed posting a new tweet: %v", err)
			}
			continue
		}

		log.Printf("Trying to %s tweet %s", decision.Action, tweetKey)
		id, err := decision.TweetID.Int64()
		if err != nil {
			continue
		}

		switch decision.Action {
		case core.InteractLike:
			if ok, _ := e.Client.Like(ctx, tweetKey); ok {
				newInteracted = append(newInteracted, id)
			}
			continue
		case core.InteractFollow:
			if ok, _ := e.Client.Follow(ctx, tweetKey); ok {
				newInteracted = append(newInteracted, id)
			}
			continue
		case core.InteractRetweet:
			if ok, _ := e.Client.Retweet(ctx, tweetKey); ok {
				newInteracted = append(newInteracted, id)
			}
			continue
		}

		if !IsTweetValid(decision.Text) {
			log.Println("The tweet is too long.")
			continue
		}

		switch decision.Action {
		case core.InteractReply:
			if e.RespondTweet(ctx, tweetKey, decision.Text, false, "") {
				newInteracted = append(newInteracted, id)
			}
		case core.InteractQuote:
			if e.RespondTweet(ctx, tweetKey, decision.Text, true, target.UserName) {
				newInteracted = append(newInteracted, id)
			}
		}
	}

	return core.EventDone, newInteracted
}

// Announce runs the single-post pass: publish one pre-composed text as-is,
// without touching the tweet log.
func (e *Engine) Announce(ctx context.Context, text string) core.Event {
	log.Println("Sending the action tweet...")
	if _, err := e.PostTweet(ctx, []string{text}, false); err != nil {
		log.Printf("Failed posting to the social network: %v", err)
		return core.EventError
	}
	return core.EventDone
}

// PostTweet submits one or more texts as top-level posts in a single call.
// An empty id list is total failure. When store is set, the first post is
// appended to the persisted tweet log.
func (e *Engine) PostTweet(ctx context.Context, texts []string, store bool) (*core.Tweet, error) {
	log.Printf("Posting tweet: %v", texts)

	posts := make([]Post, 0, len(texts))
	for _, text := range texts {
		posts = append(posts, Post{Text: text})
	}

	ids, err := e.Client.Post(ctx, posts)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no tweet ids returned")
	}

	latest := &core.Tweet{
		TweetID:   ids[0],
		Text:      strings.Join(texts, "\n"),
		Timestamp: e.Now(),
	}

	if store {
		if err := e.Ledger.StoreTweet(*latest); err != nil {
			log.Printf("Failed to store tweet: %v", err)
		} else {
			log.Println("Wrote latest tweet to db")
		}
	}

	return latest, nil
}

// RespondTweet posts a reply, or a quote with an attachment URL composed
// from the quoted user's handle and tweet id.
func (e *Engine) RespondTweet(ctx context.Context, tweetID, text string, quote bool, userName string) bool {
	post := Post{Text: text}
	if quote {
		post.AttachmentURL = fmt.Sprintf("https://x.com/%s/status/%s", userName, tweetID)
	} else {
		post.ReplyTo = tweetID
	}

	ids, err := e.Client.Post(ctx, []Post{post})
	return err == nil && len(ids) > 0
}

// Feedback searches replies to the agent's latest tweet and returns them
// ranked by engagement. A nil error with an empty slice means no matches;
// an error means the search API itself failed.
func (e *Engine) Feedback(ctx context.Context) ([]map[string]interface{}, error) {
	tweets := e.Ledger.Tweets()
	if len(tweets) == 0 {
		log.Println("No tweets yet")
		return []map[string]interface{}{}, nil
	}
	latest := tweets[len(tweets)-1]

	query := fmt.Sprintf("conversation_id:%s", latest.TweetID)
	replies, err := e.Client.Search(ctx, query, 100)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve any replies: %w", err)
	}
	if len(replies) == 0 {
		log.Println("No tweets match the query")
		return []map[string]interface{}{}, nil
	}

	log.Printf("Retrieved %d replies", len(replies))
	return RankFeedback(replies), nil
}

func (e *Engine) formatOwnTweets() string {
	tweets := e.Ledger.Tweets()
	if len(tweets) > ownTweetContext {
		tweets = tweets[len(tweets)-ownTweetContext:]
	}
	if len(tweets) == 0 {
		return noPreviousTweets
	}

	lines := make([]string, 0, len(tweets))
	for _, tweet := range tweets {
		lines = append(lines, fmt.Sprintf("tweet_id: %s\ntweet_text: %s\ntimestamp: %d",
			tweet.TweetID, tweet.Text, tweet.Timestamp))
	}
	return strings.Join(lines, "\n\n")
}

func formatPendingTweets(pending map[string]core.PendingTweet) string {
	lines := make([]string, 0, len(pending))
	for id, tweet := range pending {
		lines = append(lines, fmt.Sprintf("tweet_id: %s\ntweet_text: %s", id, tweet.Text))
	}
	return strings.Join(lines, "\n\n")
}

// decodeDecisions normalizes the parsed model JSON to a decision list,
// accepting both a single object and an array.
func decodeDecisions(parsed interface{}) ([]core.InteractionDecision, error) {
	if _, ok := parsed.(map[string]interface{}); ok {
		parsed = []interface{}{parsed}
	}

	raw, err := json.Marshal(parsed)
	if err != nil {
		return nil, err
	}

	var decisions []core.InteractionDecision
	if err := json.Unmarshal(raw, &decisions); err != nil {
		return nil, err
	}
	return decisions, nil
}

// randomDelay draws 0-4 seconds from a CSPRNG so the inter-action spacing
// has no fixed signature.
func randomDelay() time.Duration {
	n, err := crand.Int(crand.Reader, big.NewInt(int64(maxActionDelay/time.Second)))
	if err != nil {
		return 0
	}
	return time.Duration(n.Int64()) * time.Second
}
