package ledger

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/luvnft/memeo/core"
	"github.com/luvnft/memeo/storage"
)

// Persisted collection keys. Each key is owned by exactly one behaviour role
// per round, so whole-value read-modify-write needs no in-process locking.
const (
	KeyHeartedMemes       = "hearted_memes"
	KeySummonedTokens     = "summoned_tokens"
	KeyTweets             = "tweets"
	KeyInteractedTweetIDs = "interacted_tweet_ids"
)

// Ledger is the agent's durable memory across consensus rounds: which tweet
// ids were already acted on, which token nonces were hearted, the agent's
// own tweet log and summoned tokens. Collections are append-only and
// duplicate-tolerant; a store or decode failure degrades to "no prior data"
// rather than aborting the round.
type Ledger struct {
	store storage.Store
}

// New creates a Ledger over the given store.
func New(store storage.Store) *Ledger {
	return &Ledger{store: store}
}

// load reads one collection into out, leaving out untouched (its empty
// default) on a read miss, store failure or decode failure.
func (l *Ledger) load(key string, out interface{}) {
	values, err := l.store.Read([]string{key})
	if err != nil {
		log.Printf("Error while loading the database: %v", err)
		return
	}
	raw, ok := values[key]
	if !ok || raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("Failed to decode %s: %v", key, err)
	}
}

// save writes the whole collection back under its key.
func (l *Ledger) save(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %v", key, err)
	}
	return l.store.Write(map[string]string{key: string(data)})
}

// HeartedMemes returns the ordered list of hearted token nonces.
func (l *Ledger) HeartedMemes() []int64 {
	nonces := []int64{}
	l.load(KeyHeartedMemes, &nonces)
	return nonces
}

// HasHearted reports whether the nonce was already hearted. Membership, not
// count: duplicate appends do not change the answer.
func (l *Ledger) HasHearted(nonce int64) bool {
	for _, n := range l.HeartedMemes() {
		if n == nonce {
			return true
		}
	}
	return false
}

// AddHeart appends a token nonce to the hearted set. Re-appending an
// existing nonce is a tolerated no-op duplicate; entries are never removed.
func (l *Ledger) AddHeart(nonce int64) error {
	nonces := l.HeartedMemes()
	nonces = append(nonces, nonce)
	return l.save(KeyHeartedMemes, nonces)
}

// SummonedTokens returns the ordered sequence of summoned tokens.
func (l *Ledger) SummonedTokens() []core.SummonedToken {
	tokens := []core.SummonedToken{}
	l.load(KeySummonedTokens, &tokens)
	return tokens
}

// AddSummonedToken appends a summoned token record.
func (l *Ledger) AddSummonedToken(token core.SummonedToken) error {
	tokens := l.SummonedTokens()
	tokens = append(tokens, token)
	return l.save(KeySummonedTokens, tokens)
}

// Tweets returns the agent's own tweet log, newest last.
func (l *Ledger) Tweets() []core.Tweet {
	tweets := []core.Tweet{}
	l.load(KeyTweets, &tweets)
	return tweets
}

// StoreTweet appends one tweet to the tweet log.
func (l *Ledger) StoreTweet(tweet core.Tweet) error {
	tweets := l.Tweets()
	tweets = append(tweets, tweet)
	return l.save(KeyTweets, tweets)
}

// InteractedTweetIDs returns the ids already liked, followed, retweeted,
// replied or quoted.
func (l *Ledger) InteractedTweetIDs() []int64 {
	ids := []int64{}
	l.load(KeyInteractedTweetIDs, &ids)
	return ids
}

// HasInteracted reports whether the tweet id was already acted on.
func (l *Ledger) HasInteracted(id int64) bool {
	for _, known := range l.InteractedTweetIDs() {
		if known == id {
			return true
		}
	}
	return false
}

// AddInteractions merges the new ids into the interacted set and persists
// the whole collection.
func (l *Ledger) AddInteractions(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	known := l.InteractedTweetIDs()
	known = append(known, ids...)
	return l.save(KeyInteractedTweetIDs, known)
}
