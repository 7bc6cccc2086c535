package evm

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.openly.dev/pointy"

	"github.com/yourorg/rango-go/internal/model"
)

const (
	router = "0x1111111254eeb25477b68fb85ed929f73a960582"
	wallet = "0x6f9bb7e454f5b3eb2310343f0e99269dc2bb8a1d"
	usdt   = "0xdac17f958d2ee523a2206206994597c13d831ec7"
)

func TestCallMsg(t *testing.T) {
	tx := model.EvmTransaction{
		BlockChain: "ETH",
		From:       pointy.String(wallet),
		TxTo:       router,
		TxData:     pointy.String("0x12aa3caf"),
		Value:      pointy.String("0x2386f26fc10000"),
		GasLimit:   pointy.String("0x5208"),
		GasPrice:   pointy.String("30000000000"),
	}

	msg, err := CallMsg(tx)
	require.NoError(t, err)

	require.NotNil(t, msg.To)
	assert.Equal(t, common.HexToAddress(router), *msg.To)
	assert.Equal(t, common.HexToAddress(wallet), msg.From)
	assert.Equal(t, []byte{0x12, 0xaa, 0x3c, 0xaf}, msg.Data)
	assert.Equal(t, big.NewInt(10000000000000000), msg.Value)
	assert.Equal(t, uint64(21000), msg.Gas)
	assert.Equal(t, big.NewInt(30000000000), msg.GasPrice)
}

func TestCallMsg_MinimalTransaction(t *testing.T) {
	msg, err := CallMsg(model.EvmTransaction{BlockChain: "ETH", TxTo: router})
	require.NoError(t, err)

	assert.Equal(t, common.Address{}, msg.From)
	assert.Nil(t, msg.Value)
	assert.Nil(t, msg.Data)
	assert.Zero(t, msg.Gas)
}

func TestCallMsg_Invalid(t *testing.T) {
	tests := []struct {
		name string
		tx   model.EvmTransaction
		want string
	}{
		{"bad to", model.EvmTransaction{TxTo: "0x123"}, "txTo"},
		{"bad from", model.EvmTransaction{TxTo: router, From: pointy.String("alice")}, "from"},
		{"bad data", model.EvmTransaction{TxTo: router, TxData: pointy.String("0xzz")}, "txData"},
		{"bad value", model.EvmTransaction{TxTo: router, Value: pointy.String("ten")}, "value"},
		{"bad gas limit", model.EvmTransaction{TxTo: router, GasLimit: pointy.String("-1")}, "gasLimit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CallMsg(tt.tx)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestApprovalCallMsg(t *testing.T) {
	tx := model.EvmTransaction{
		BlockChain:  "ETH",
		From:        pointy.String(wallet),
		ApproveTo:   pointy.String(usdt),
		ApproveData: pointy.String("0x095ea7b3"),
		TxTo:        router,
	}

	msg, ok, err := ApprovalCallMsg(tx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, common.HexToAddress(usdt), *msg.To)
	assert.Equal(t, []byte{0x09, 0x5e, 0xa7, 0xb3}, msg.Data)
	assert.Nil(t, msg.Value, "approvals never carry value")
}

func TestApprovalCallMsg_NotNeeded(t *testing.T) {
	_, ok, err := ApprovalCallMsg(model.EvmTransaction{TxTo: router, ApproveTo: pointy.String(usdt)})
	require.NoError(t, err)
	assert.False(t, ok)
}
