package core

// ActionType enumerates the meme-factory operations an agent can request.
type ActionType string

const (
	ActionSummon  ActionType = "summon"
	ActionHeart   ActionType = "heart"
	ActionUnleash ActionType = "unleash"
	ActionCollect ActionType = "collect"
	ActionPurge   ActionType = "purge"
)

// TokenAction is a token operation decided in a previous round. It is
// produced externally and immutable once read.
type TokenAction struct {
	Action       ActionType `json:"action"`
	TokenName    string     `json:"token_name,omitempty"`
	TokenTicker  string     `json:"token_ticker,omitempty"`
	TokenSupply  int64      `json:"token_supply,omitempty"`
	TokenNonce   int64      `json:"token_nonce,omitempty"`
	TokenAddress string     `json:"token_address,omitempty"`
	Amount       string     `json:"amount,omitempty"` // smallest unit, decimal string
	Tweet        string     `json:"tweet,omitempty"`  // announcement text for the action-tweet round
}

// SummonedToken is one entry of the persisted summoned-token sequence.
type SummonedToken struct {
	TokenName   string `json:"token_name"`
	TokenTicker string `json:"token_ticker"`
	TotalSupply int64  `json:"total_supply"`
	TokenNonce  int64  `json:"token_nonce"`
}
