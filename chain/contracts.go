package chain

import (
	"context"
	"encoding/hex"
	"math/big"
	"strings"
)

// ResponseKind tags a collaborator response. Callers check the kind
// explicitly; anything other than the expected kind is a hard failure for
// that call.
type ResponseKind string

const (
	KindState          ResponseKind = "state"
	KindRawTransaction ResponseKind = "raw_transaction"
	KindError          ResponseKind = "error"
)

// Response is the generic collaborator reply envelope.
type Response struct {
	Kind ResponseKind
	Body map[string]interface{}
}

// CallRequest addresses one contract callable with keyword arguments.
type CallRequest struct {
	ContractID string
	Callable   string
	Address    string
	ChainID    string
	Kwargs     map[string]interface{}
}

// ContractCaller is the contract-interaction collaborator. This module
// never encodes ABIs itself; it routes callables and arguments through
// this contract and validates the response kind.
type ContractCaller interface {
	Call(ctx context.Context, req CallRequest) (*Response, error)
}

// SafeTxHasher is the safe-transaction collaborator producing the raw
// multisig transaction hash for a prepared call.
type SafeTxHasher interface {
	GetRawHash(ctx context.Context, safeAddress, to string, value *big.Int, data []byte, safeTxGas uint64, chainID string) (*Response, error)
}

// LedgerAPI is the chain-node collaborator used for balance and block
// queries outside of contract calls.
type LedgerAPI interface {
	NativeBalance(ctx context.Context, address, chainID string) (*big.Int, error)
	BlockNumber(ctx context.Context, chainID string) (uint64, error)
}

// dataBytes extracts the raw transaction bytes from a response body,
// accepting both raw bytes and a hex string ("0x"-prefixed or not).
func dataBytes(body map[string]interface{}) ([]byte, bool) {
	switch v := body["data"].(type) {
	case []byte:
		return v, v != nil
	case string:
		decoded, err := hex.DecodeString(strings.TrimPrefix(v, "0x"))
		if err != nil {
			return nil, false
		}
		return decoded, true
	}
	return nil, false
}
