package social

import "regexp"

// MaxTweetChars is the platform's maximum weighted tweet length.
const MaxTweetChars = 280

// urlWeight is the fixed weighted length the platform assigns to any URL
// regardless of its actual length.
const urlWeight = 23

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// Weight-1 code point ranges from the platform's length config. Everything
// outside these ranges (emoji, CJK, ...) counts double.
var lightRanges = [][2]rune{
	{0, 4351},
	{8192, 8205},
	{8208, 8223},
	{8242, 8247},
}

// WeightedLength computes the platform's weighted character count: URLs
// count a fixed 23, runes in the light ranges count 1, all others count 2.
func WeightedLength(text string) int {
	length := 0

	text = urlPattern.ReplaceAllStringFunc(text, func(string) string {
		length += urlWeight
		return ""
	})

	for _, r := range text {
		length += runeWeight(r)
	}
	return length
}

func runeWeight(r rune) int {
	for _, rng := range lightRanges {
		if r >= rng[0] && r <= rng[1] {
			return 1
		}
	}
	return 2
}

// IsTweetValid checks a tweet against the weighted length limit.
func IsTweetValid(text string) bool {
	return WeightedLength(text) <= MaxTweetChars
}
