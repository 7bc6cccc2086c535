package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yourorg/rango-go/internal/model"
)

// ErrNilTransaction is returned when there is no transaction to encode.
var ErrNilTransaction = errors.New("nil transaction")

// EncodeTransaction renders tx in wire form with its "type" tag. The output
// decodes back to an equal value with DecodeTransaction.
func EncodeTransaction(tx model.Transaction) ([]byte, error) {
	if isNilTransaction(tx) {
		return nil, ErrNilTransaction
	}
	data, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("encode %s transaction: %w", tx.Type(), err)
	}
	return data, nil
}

// EncodeSwapResponse renders resp in wire form; DecodeSwapResponse reverses it.
func EncodeSwapResponse(resp model.SwapResponse) ([]byte, error) {
	if isNilTransaction(resp.Tx) {
		return nil, ErrNilTransaction
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode swap response: %w", err)
	}
	return data, nil
}

func isNilTransaction(tx model.Transaction) bool {
	switch t := tx.(type) {
	case nil:
		return true
	case *model.EvmTransaction:
		return t == nil
	case *model.CosmosTransaction:
		return t == nil
	case *model.TransferTransaction:
		return t == nil
	}
	return false
}
