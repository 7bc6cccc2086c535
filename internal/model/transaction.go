package model

import (
	"encoding/json"
	"strings"
)

// TransactionType is the discriminator carried in the "type" field of a tx payload.
type TransactionType string

const (
	TypeEVM      TransactionType = "EVM"
	TypeCosmos   TransactionType = "COSMOS"
	TypeTransfer TransactionType = "TRANSFER"
)

// ParseTransactionType matches s case-insensitively against the known variants.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch t := TransactionType(strings.ToUpper(s)); t {
	case TypeEVM, TypeCosmos, TypeTransfer:
		return t, true
	}
	return "", false
}

// Transaction is the closed set of transaction shapes a swap can return:
// *EvmTransaction, *CosmosTransaction or *TransferTransaction values.
// Callers inspect it with a type switch.
type Transaction interface {
	Type() TransactionType
	isTransaction()
}

// EvmTransaction is an unsigned EVM call.
type EvmTransaction struct {
	BlockChain  string  `json:"blockChain"`
	From        *string `json:"from,omitempty"`
	ApproveTo   *string `json:"approveTo,omitempty"`
	ApproveData *string `json:"approveData,omitempty"`
	TxTo        string  `json:"txTo"`
	TxData      *string `json:"txData,omitempty"`
	Value       *string `json:"value,omitempty"`
	GasLimit    *string `json:"gasLimit,omitempty"`
	GasPrice    *string `json:"gasPrice,omitempty"`
}

// NeedsApproval reports whether a token approval must precede the call.
func (t EvmTransaction) NeedsApproval() bool {
	return t.ApproveTo != nil && t.ApproveData != nil
}

// SignType is the Cosmos signing mode.
type SignType string

const (
	SignAmino  SignType = "AMINO"
	SignDirect SignType = "DIRECT"
)

// ParseSignType matches s case-insensitively.
func ParseSignType(s string) (SignType, bool) {
	switch t := SignType(strings.ToUpper(s)); t {
	case SignAmino, SignDirect:
		return t, true
	}
	return "", false
}

type CosmosCoin struct {
	Amount string `json:"amount"`
	Denom  string `json:"denom"`
}

type CosmosStdFee struct {
	Amount []CosmosCoin `json:"amount"`
	Gas    string       `json:"gas"`
}

// CosmosMessage holds signing metadata for a Cosmos transaction.
type CosmosMessage struct {
	SignType      SignType      `json:"signType"`
	Sequence      *string       `json:"sequence,omitempty"`
	Source        *uint32       `json:"source,omitempty"`
	AccountNumber *uint32       `json:"accountNumber,omitempty"`
	RPCURL        *string       `json:"rpcUrl,omitempty"`
	ChainID       *string       `json:"chainId,omitempty"`
	Memo          *string       `json:"memo,omitempty"`
	Fee           *CosmosStdFee `json:"fee,omitempty"`
}

type CosmosRawTransferData struct {
	Amount    string          `json:"amount"`
	Asset     AssetWithTicker `json:"asset"`
	Decimals  uint32          `json:"decimals"`
	Memo      *string         `json:"memo,omitempty"`
	Method    string          `json:"method"`
	Recipient string          `json:"recipient"`
}

// CosmosTransaction is an unsigned Cosmos SDK transaction.
type CosmosTransaction struct {
	BlockChain        string                `json:"blockChain"`
	FromWalletAddress string                `json:"fromWalletAddress"`
	Data              CosmosMessage         `json:"data"`
	RawTransfer       CosmosRawTransferData `json:"rawTransfer"`
}

// TransferTransaction is a same-chain native transfer.
type TransferTransaction struct {
	Method            string          `json:"method"`
	Asset             AssetWithTicker `json:"asset"`
	Amount            string          `json:"amount"`
	Decimals          uint32          `json:"decimals"`
	FromWalletAddress string          `json:"fromWalletAddress"`
	RecipientAddress  string          `json:"recipientAddress"`
	Memo              *string         `json:"memo,omitempty"`
}

func (*EvmTransaction) Type() TransactionType      { return TypeEVM }
func (*CosmosTransaction) Type() TransactionType   { return TypeCosmos }
func (*TransferTransaction) Type() TransactionType { return TypeTransfer }

func (*EvmTransaction) isTransaction()      {}
func (*CosmosTransaction) isTransaction()   {}
func (*TransferTransaction) isTransaction() {}

// MarshalJSON emits the variant with its "type" discriminator first.
func (t *EvmTransaction) MarshalJSON() ([]byte, error) {
	type fields EvmTransaction
	return json.Marshal(struct {
		Type TransactionType `json:"type"`
		fields
	}{TypeEVM, fields(*t)})
}

// MarshalJSON emits the variant with its "type" discriminator first.
func (t *CosmosTransaction) MarshalJSON() ([]byte, error) {
	type fields CosmosTransaction
	return json.Marshal(struct {
		Type TransactionType `json:"type"`
		fields
	}{TypeCosmos, fields(*t)})
}

// MarshalJSON emits the variant with its "type" discriminator first.
func (t *TransferTransaction) MarshalJSON() ([]byte, error) {
	type fields TransferTransaction
	return json.Marshal(struct {
		Type TransactionType `json:"type"`
		fields
	}{TypeTransfer, fields(*t)})
}
