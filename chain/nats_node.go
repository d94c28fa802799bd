package chain

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/luvnft/memeo/communication"
)

// NATSNode reaches the chain service over NATS request/reply. It backs all
// three collaborator contracts: contract calls, safe hash computation and
// plain node queries.
type NATSNode struct {
	messenger *communication.Messenger
	subject   string
}

type nodeEnvelope struct {
	ID     string                 `json:"id"`
	Method string                 `json:"method"`
	Kwargs map[string]interface{} `json:"kwargs"`
}

type nodeReply struct {
	Kind  ResponseKind           `json:"kind"`
	Body  map[string]interface{} `json:"body"`
	Error string                 `json:"error,omitempty"`
}

// NewNATSNode creates a chain-service client bound to a request subject.
func NewNATSNode(m *communication.Messenger, subject string) *NATSNode {
	return &NATSNode{messenger: m, subject: subject}
}

func (n *NATSNode) call(ctx context.Context, method string, kwargs map[string]interface{}) (*Response, error) {
	envelope := nodeEnvelope{
		ID:     uuid.New().String(),
		Method: method,
		Kwargs: kwargs,
	}
	data, err := n.messenger.Request(ctx, n.subject, envelope)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", method, err)
	}

	var reply nodeReply
	if err := json.Unmarshal(data, &reply); err != nil {
		return nil, fmt.Errorf("%s reply is not valid JSON: %w", method, err)
	}
	if reply.Error != "" {
		return nil, fmt.Errorf("%s failed: %s", method, reply.Error)
	}
	return &Response{Kind: reply.Kind, Body: reply.Body}, nil
}

func (n *NATSNode) Call(ctx context.Context, req CallRequest) (*Response, error) {
	return n.call(ctx, "contract_call", map[string]interface{}{
		"contract_id": req.ContractID,
		"callable":    req.Callable,
		"address":     req.Address,
		"chain_id":    req.ChainID,
		"kwargs":      req.Kwargs,
	})
}

func (n *NATSNode) GetRawHash(ctx context.Context, safeAddress, to string, value *big.Int, data []byte, safeTxGas uint64, chainID string) (*Response, error) {
	return n.call(ctx, "safe_tx_hash", map[string]interface{}{
		"safe_address": safeAddress,
		"to":           to,
		"value":        value.String(),
		"data":         hex.EncodeToString(data),
		"safe_tx_gas":  safeTxGas,
		"chain_id":     chainID,
	})
}

func (n *NATSNode) NativeBalance(ctx context.Context, address, chainID string) (*big.Int, error) {
	resp, err := n.call(ctx, "native_balance", map[string]interface{}{
		"address":  address,
		"chain_id": chainID,
	})
	if err != nil {
		return nil, err
	}
	if resp.Kind != KindState {
		return nil, fmt.Errorf("native_balance returned %s response", resp.Kind)
	}
	raw, ok := resp.Body["balance"].(string)
	if !ok {
		return nil, fmt.Errorf("native_balance response has no balance field")
	}
	balance, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("native_balance returned a non-numeric balance %q", raw)
	}
	return balance, nil
}

func (n *NATSNode) BlockNumber(ctx context.Context, chainID string) (uint64, error) {
	resp, err := n.call(ctx, "block_number", map[string]interface{}{
		"chain_id": chainID,
	})
	if err != nil {
		return 0, err
	}
	if resp.Kind != KindState {
		return 0, fmt.Errorf("block_number returned %s response", resp.Kind)
	}
	var block uint64
	switch v := resp.Body["block"].(type) {
	case float64:
		block = uint64(v)
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("block_number returned a non-numeric block %q", v)
		}
		block = uint64(parsed)
	default:
		return 0, fmt.Errorf("block_number response has no block field")
	}
	return block, nil
}
