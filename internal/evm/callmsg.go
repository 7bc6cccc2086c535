// Package evm converts decoded EVM transactions into go-ethereum call
// messages that a caller can simulate or estimate against a node.
package evm

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/yourorg/rango-go/internal/model"
)

// CallMsg builds the main swap call of tx.
func CallMsg(tx model.EvmTransaction) (ethereum.CallMsg, error) {
	var msg ethereum.CallMsg

	to, err := parseAddress("txTo", tx.TxTo)
	if err != nil {
		return msg, err
	}
	msg.To = &to

	if tx.From != nil {
		if msg.From, err = parseAddress("from", *tx.From); err != nil {
			return msg, err
		}
	}
	if tx.TxData != nil {
		if msg.Data, err = parseData("txData", *tx.TxData); err != nil {
			return msg, err
		}
	}
	if tx.Value != nil {
		if msg.Value, err = parseBig("value", *tx.Value); err != nil {
			return msg, err
		}
	}
	if tx.GasPrice != nil {
		if msg.GasPrice, err = parseBig("gasPrice", *tx.GasPrice); err != nil {
			return msg, err
		}
	}
	if tx.GasLimit != nil {
		gas, ok := math.ParseUint64(*tx.GasLimit)
		if !ok {
			return msg, fmt.Errorf("invalid gasLimit %q", *tx.GasLimit)
		}
		msg.Gas = gas
	}
	return msg, nil
}

// ApprovalCallMsg builds the token approval that must be mined before the
// swap call. ok is false when tx needs no approval.
func ApprovalCallMsg(tx model.EvmTransaction) (msg ethereum.CallMsg, ok bool, err error) {
	if !tx.NeedsApproval() {
		return msg, false, nil
	}

	to, err := parseAddress("approveTo", *tx.ApproveTo)
	if err != nil {
		return msg, false, err
	}
	msg.To = &to

	if tx.From != nil {
		if msg.From, err = parseAddress("from", *tx.From); err != nil {
			return msg, false, err
		}
	}
	if msg.Data, err = parseData("approveData", *tx.ApproveData); err != nil {
		return msg, false, err
	}
	if tx.GasPrice != nil {
		if msg.GasPrice, err = parseBig("gasPrice", *tx.GasPrice); err != nil {
			return msg, false, err
		}
	}
	return msg, true, nil
}

func parseAddress(field, s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid %s address %q", field, s)
	}
	return common.HexToAddress(s), nil
}

func parseData(field, s string) ([]byte, error) {
	if s == "" || s == "0x" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	data, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", field, err)
	}
	return data, nil
}

// parseBig accepts 0x-prefixed hex or decimal, as the API uses both.
func parseBig(field, s string) (*big.Int, error) {
	v, ok := math.ParseBig256(s)
	if !ok {
		return nil, fmt.Errorf("invalid %s %q", field, s)
	}
	return v, nil
}
