package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.openly.dev/pointy"

	"github.com/yourorg/rango-go/internal/model"
)

var (
	eth  = model.Asset{Blockchain: "ETH", Symbol: "ETH"}
	usdc = model.Asset{Blockchain: "ETH", Symbol: "USDC", Address: pointy.String("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")}
)

func TestFeeTotals(t *testing.T) {
	fees := []model.SwapFee{
		{Asset: eth, Amount: "0.1", Name: "Network Fee"},
		{Asset: usdc, Amount: "1.25", Name: "Swapper Fee"},
		{Asset: eth, Amount: "0.2", Name: "Bridge Fee"},
	}

	totals, err := FeeTotals(fees)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.Equal(t, eth, totals[0].Asset)
	assert.True(t, decimal.RequireFromString("0.3").Equal(totals[0].Total), "0.1+0.2 must be exact, got %s", totals[0].Total)
	assert.Equal(t, "1.25", totals[1].Total.String())
}

func TestFeeTotals_AddressCaseFolded(t *testing.T) {
	lower := usdc
	lower.Address = pointy.String("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")

	totals, err := FeeTotals([]model.SwapFee{
		{Asset: usdc, Amount: "1"},
		{Asset: lower, Amount: "2"},
	})
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, "3", totals[0].Total.String())
}

func TestFeeTotals_InvalidAmount(t *testing.T) {
	_, err := FeeTotals([]model.SwapFee{{Asset: eth, Amount: "n/a", Name: "Network Fee"}})
	assert.ErrorContains(t, err, "Network Fee")
}

func TestWalletTotals(t *testing.T) {
	wallets := []model.WalletDetail{
		{
			BlockChain: "ETH",
			Address:    "0x1",
			Balances: []model.AssetAndAmount{
				{Asset: eth, Amount: model.Amount{Amount: "1500000000000000000", Decimals: 18}},
				{Asset: usdc, Amount: model.Amount{Amount: "2500000", Decimals: 6}},
			},
		},
		{
			BlockChain: "ETH",
			Address:    "0x2",
			Balances: []model.AssetAndAmount{
				{Asset: eth, Amount: model.Amount{Amount: "500000000000000001", Decimals: 18}},
			},
		},
		{
			Failed:     true,
			BlockChain: "ETH",
			Address:    "0x3",
			Balances: []model.AssetAndAmount{
				{Asset: eth, Amount: model.Amount{Amount: "100000000000000000000", Decimals: 18}},
			},
		},
	}

	totals, err := WalletTotals(wallets)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.Equal(t, "2.000000000000000001", totals[0].Total.String())
	assert.Equal(t, "2.5", totals[1].Total.String())
}

func TestWalletTotals_Empty(t *testing.T) {
	totals, err := WalletTotals(nil)
	require.NoError(t, err)
	assert.Empty(t, totals)
}

func TestWalletTotals_InvalidAmount(t *testing.T) {
	_, err := WalletTotals([]model.WalletDetail{{
		BlockChain: "ETH",
		Address:    "0x1",
		Balances:   []model.AssetAndAmount{{Asset: eth, Amount: model.Amount{Amount: "0x10", Decimals: 18}}},
	}})
	assert.ErrorContains(t, err, "0x1")
}
