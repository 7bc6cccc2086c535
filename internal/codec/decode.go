// Package codec decodes and encodes aggregator payloads whose shape depends on
// a discriminator, most importantly the "tx" member of a swap response.
//
// Decoding is two-phase: the payload is first parsed into a generic tree, the
// "type" tag is read, and only then is the same subtree decoded into the
// matching variant. Every failure is returned as a *DecodeError; nothing is
// defaulted and no partially populated value is returned.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/yourorg/rango-go/internal/model"
)

const resultTypeChoices = "one of OK, HIGH_IMPACT, INPUT_LIMIT_ISSUE, NO_ROUTE"

// DecodeSwapResponse decodes the body of the swap endpoint.
func DecodeSwapResponse(data []byte) (model.SwapResponse, error) {
	root, err := parseRoot(data)
	if err != nil {
		return model.SwapResponse{}, err
	}
	if err := root.check(swapResponseShape); err != nil {
		return model.SwapResponse{}, err
	}

	var resp model.SwapResponse
	if resp.RequestID, err = root.str("requestId"); err != nil {
		return model.SwapResponse{}, err
	}

	rt, err := root.str("resultType")
	if err != nil {
		return model.SwapResponse{}, err
	}
	var ok bool
	if resp.ResultType, ok = model.ParseResultType(rt); !ok {
		raw, _ := root.get("resultType")
		return model.SwapResponse{}, mismatch("resultType", resultTypeChoices, raw)
	}

	if raw, ok := root.get("route"); ok {
		var route model.QuoteSimulationResult
		if err := json.Unmarshal(raw, &route); err != nil {
			return model.SwapResponse{}, fromUnmarshal("route", err)
		}
		resp.Route = &route
	}

	if _, ok := root.get("error"); ok {
		msg, err := root.str("error")
		if err != nil {
			return model.SwapResponse{}, err
		}
		resp.Error = &msg
	}

	txRaw, ok := root.get("tx")
	if !ok {
		return model.SwapResponse{}, missing("tx")
	}
	if resp.Tx, err = decodeTransaction(txRaw, "tx"); err != nil {
		return model.SwapResponse{}, err
	}

	return resp, nil
}

// DecodeTransaction decodes a standalone transaction object.
func DecodeTransaction(data []byte) (model.Transaction, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, malformed(err)
	}
	return decodeTransaction(raw, "")
}

func decodeTransaction(raw json.RawMessage, path string) (model.Transaction, error) {
	obj, err := asObject(raw, path)
	if err != nil {
		return nil, err
	}

	tag, err := obj.str("type")
	if err != nil {
		return nil, err
	}
	kind, ok := model.ParseTransactionType(tag)
	if !ok {
		return nil, unknownVariant(join(path, "type"), tag)
	}

	switch kind {
	case model.TypeEVM:
		var tx model.EvmTransaction
		if err := obj.decode(evmShape, &tx); err != nil {
			return nil, err
		}
		return &tx, nil

	case model.TypeCosmos:
		var tx model.CosmosTransaction
		if err := obj.decode(cosmosShape, &tx); err != nil {
			return nil, err
		}
		sign, ok := model.ParseSignType(string(tx.Data.SignType))
		if !ok {
			return nil, &DecodeError{
				Kind:     KindTypeMismatch,
				Path:     join(path, "data.signType"),
				Expected: "one of AMINO, DIRECT",
				Actual:   fmt.Sprintf("string %q", tx.Data.SignType),
			}
		}
		tx.Data.SignType = sign
		return &tx, nil

	case model.TypeTransfer:
		var tx model.TransferTransaction
		if err := obj.decode(transferShape, &tx); err != nil {
			return nil, err
		}
		return &tx, nil
	}

	// ParseTransactionType and the switch above list the same variants.
	return nil, unknownVariant(join(path, "type"), tag)
}

func parseRoot(data []byte) (object, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return object{}, malformed(err)
	}
	return asObject(raw, "")
}
