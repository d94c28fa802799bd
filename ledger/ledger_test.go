package ledger

import (
	"errors"
	"testing"

	"github.com/luvnft/memeo/core"
	"github.com/luvnft/memeo/storage"
)

// failingStore errors on every read to exercise the degraded path.
type failingStore struct{}

func (f *failingStore) Read(keys []string) (map[string]string, error) {
	return nil, errors.New("store unavailable")
}

func (f *failingStore) Write(values map[string]string) error {
	return errors.New("store unavailable")
}

func (f *failingStore) Close() error { return nil }

func TestLedgerEmptyDefaults(t *testing.T) {
	led := New(storage.NewMemoryStore())

	if got := led.HeartedMemes(); len(got) != 0 {
		t.Errorf("expected no hearted memes, got %v", got)
	}
	if got := led.SummonedTokens(); len(got) != 0 {
		t.Errorf("expected no summoned tokens, got %v", got)
	}
	if got := led.Tweets(); len(got) != 0 {
		t.Errorf("expected no tweets, got %v", got)
	}
	if got := led.InteractedTweetIDs(); len(got) != 0 {
		t.Errorf("expected no interacted ids, got %v", got)
	}
}

func TestLedgerEmptyOnCorruptValue(t *testing.T) {
	store := storage.NewMemoryStore()
	if err := store.Write(map[string]string{KeyHeartedMemes: "{not json"}); err != nil {
		t.Fatal(err)
	}

	led := New(store)
	if got := led.HeartedMemes(); len(got) != 0 {
		t.Errorf("corrupt value must degrade to empty, got %v", got)
	}
}

func TestLedgerEmptyOnStoreFailure(t *testing.T) {
	led := New(&failingStore{})
	if got := led.InteractedTweetIDs(); len(got) != 0 {
		t.Errorf("store failure must degrade to empty, got %v", got)
	}
}

func TestAddHeartPersistsAcrossReloads(t *testing.T) {
	store := storage.NewMemoryStore()
	led := New(store)

	if err := led.AddHeart(42); err != nil {
		t.Fatal(err)
	}
	if err := led.AddHeart(7); err != nil {
		t.Fatal(err)
	}

	// A fresh ledger over the same store sees the persisted values.
	reloaded := New(store)
	got := reloaded.HeartedMemes()
	if len(got) != 2 || got[0] != 42 || got[1] != 7 {
		t.Errorf("unexpected hearted memes %v", got)
	}
	if !reloaded.HasHearted(42) {
		t.Errorf("nonce 42 should be hearted")
	}
	if reloaded.HasHearted(99) {
		t.Errorf("nonce 99 was never hearted")
	}
}

func TestAddHeartToleratesDuplicates(t *testing.T) {
	led := New(storage.NewMemoryStore())

	for i := 0; i < 3; i++ {
		if err := led.AddHeart(42); err != nil {
			t.Fatal(err)
		}
	}

	// Membership is what matters, not count.
	if !led.HasHearted(42) {
		t.Errorf("nonce 42 should be hearted")
	}
	if got := led.HeartedMemes(); len(got) != 3 {
		t.Errorf("duplicates are kept as-is, got %v", got)
	}
}

func TestAddInteractions(t *testing.T) {
	led := New(storage.NewMemoryStore())

	if err := led.AddInteractions([]int64{111, 222}); err != nil {
		t.Fatal(err)
	}
	if err := led.AddInteractions([]int64{333}); err != nil {
		t.Fatal(err)
	}

	got := led.InteractedTweetIDs()
	if len(got) != 3 || got[0] != 111 || got[1] != 222 || got[2] != 333 {
		t.Errorf("unexpected interacted ids %v", got)
	}
	if !led.HasInteracted(222) {
		t.Errorf("tweet 222 should be marked as interacted")
	}
	if led.HasInteracted(444) {
		t.Errorf("tweet 444 was never interacted with")
	}
}

func TestAddInteractionsEmptyIsNoop(t *testing.T) {
	led := New(&failingStore{})

	// An empty merge must not even touch the store.
	if err := led.AddInteractions(nil); err != nil {
		t.Errorf("empty merge should be a no-op, got %v", err)
	}
}

func TestStoreTweetAppends(t *testing.T) {
	led := New(storage.NewMemoryStore())

	if err := led.StoreTweet(core.Tweet{TweetID: "1", Text: "first", Timestamp: 100}); err != nil {
		t.Fatal(err)
	}
	if err := led.StoreTweet(core.Tweet{TweetID: "2", Text: "second", Timestamp: 200}); err != nil {
		t.Fatal(err)
	}

	tweets := led.Tweets()
	if len(tweets) != 2 {
		t.Fatalf("expected 2 tweets, got %d", len(tweets))
	}
	if tweets[1].TweetID != "2" || tweets[1].Text != "second" {
		t.Errorf("newest tweet must be last, got %+v", tweets[1])
	}
}

func TestAddSummonedToken(t *testing.T) {
	led := New(storage.NewMemoryStore())

	token := core.SummonedToken{
		TokenName:   "Doge Classic",
		TokenTicker: "DOGC",
		TotalSupply: 1_000_000,
		TokenNonce:  5,
	}
	if err := led.AddSummonedToken(token); err != nil {
		t.Fatal(err)
	}

	got := led.SummonedTokens()
	if len(got) != 1 || got[0] != token {
		t.Errorf("unexpected summoned tokens %v", got)
	}
}
