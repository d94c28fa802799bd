package social

import (
	"encoding/json"
	"sort"
	"strconv"
)

// feedbackLimit caps how many replies are forwarded to the LLM.
const feedbackLimit = 10

// RankFeedback orders reply records by engagement and keeps the top ten.
// Score is views + 3*retweets + 5*quotes; missing or non-numeric counters
// count as zero rather than failing the whole ranking. The sort is stable,
// so identical input always produces identical output.
func RankFeedback(feedback []map[string]interface{}) []map[string]interface{} {
	ranked := make([]map[string]interface{}, len(feedback))
	copy(ranked, feedback)

	sort.SliceStable(ranked, func(i, j int) bool {
		return feedbackScore(ranked[i]) > feedbackScore(ranked[j])
	})

	if len(ranked) > feedbackLimit {
		ranked = ranked[:feedbackLimit]
	}
	return ranked
}

func feedbackScore(record map[string]interface{}) int64 {
	return counter(record, "view_count") +
		3*counter(record, "retweet_count") +
		5*counter(record, "quote_count")
}

// counter coerces a loosely-typed counter field to int64, defaulting to 0.
func counter(record map[string]interface{}, key string) int64 {
	switch v := record[key].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
	case float64:
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
