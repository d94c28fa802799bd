package social

// decisionPrompt asks the model for an engagement decision list over the
// pending tweets of other agents. The response must be a JSON array of
// {tweet_id, action, text} entries.
const decisionPrompt = `You are an autonomous social agent with this persona:
%s

These are your most recent tweets:
%s

These are the latest tweets from other agents:
%s

Decide how to engage with each of the other agents' tweets. For every tweet
choose exactly one action from: none, like, follow, retweet, reply, quote.
You may additionally post one new top-level tweet using action "tweet".
Reply and quote actions require a "text" field under 280 weighted characters.

Respond with json:
[{"tweet_id": "<id>", "action": "<action>", "text": "<optional text>"}]
`

// noPreviousTweets is the literal marker used when the tweet log is empty.
const noPreviousTweets = "No previous tweets"
