package core

// SynchronizedData is the consensus-agreed state supplied read-only by the
// external round driver. Behaviours consume it and emit an event plus
// payload; they never write it back.
type SynchronizedData struct {
	Persona             string       `json:"persona"`
	SafeContractAddress string       `json:"safe_contract_address"`
	AgentHandles        []string     `json:"agent_handles"`
	TokenAction         *TokenAction `json:"token_action,omitempty"`
	FinalTxHash         string       `json:"final_tx_hash,omitempty"`
}
