// Package model defines the value types exchanged with the swap aggregation API.
package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Asset identifies a fungible unit on a blockchain.
type Asset struct {
	// Blockchain is the aggregator's chain identifier, e.g. "ETH" or "BSC"
	Blockchain string `json:"blockchain"`

	// Address of the token contract; nil for the chain's native asset
	Address *string `json:"address,omitempty"`

	// Symbol is the ticker shown to users
	Symbol string `json:"symbol"`
}

// IsNative reports whether the asset is the native asset of its chain.
func (a Asset) IsNative() bool {
	return a.Address == nil || *a.Address == ""
}

// String renders the asset in the query format accepted by the API:
// BLOCKCHAIN.SYMBOL for native assets and BLOCKCHAIN.SYMBOL--ADDRESS for tokens.
func (a Asset) String() string {
	if a.IsNative() {
		return a.Blockchain + "." + a.Symbol
	}
	return a.Blockchain + "." + a.Symbol + "--" + *a.Address
}

// Equal compares two assets. Addresses are compared case-insensitively.
func (a Asset) Equal(other Asset) bool {
	if a.Blockchain != other.Blockchain || a.Symbol != other.Symbol {
		return false
	}
	if a.IsNative() || other.IsNative() {
		return a.IsNative() == other.IsNative()
	}
	return strings.EqualFold(*a.Address, *other.Address)
}

// ParseAsset parses the BLOCKCHAIN.SYMBOL[--ADDRESS] form produced by Asset.String.
func ParseAsset(s string) (Asset, error) {
	head, address, hasAddress := strings.Cut(s, "--")
	chain, symbol, ok := strings.Cut(head, ".")
	if !ok || chain == "" || symbol == "" {
		return Asset{}, fmt.Errorf("invalid asset %q: expected BLOCKCHAIN.SYMBOL[--ADDRESS]", s)
	}

	asset := Asset{Blockchain: chain, Symbol: symbol}
	if hasAddress {
		if address == "" {
			return Asset{}, fmt.Errorf("invalid asset %q: empty address", s)
		}
		asset.Address = &address
	}
	return asset, nil
}

// AssetWithTicker is the asset shape embedded in transaction payloads.
type AssetWithTicker struct {
	Blockchain string  `json:"blockchain"`
	Address    *string `json:"address,omitempty"`
	Symbol     string  `json:"symbol"`
	Ticker     string  `json:"ticker"`
}

// Asset drops the ticker.
func (a AssetWithTicker) Asset() Asset {
	return Asset{Blockchain: a.Blockchain, Address: a.Address, Symbol: a.Symbol}
}

// Token is an asset with display and precision metadata.
type Token struct {
	Blockchain string  `json:"blockchain"`
	Address    *string `json:"address,omitempty"`
	Symbol     string  `json:"symbol"`

	// Decimals is the fixed-point scale of on-chain amounts
	Decimals uint32 `json:"decimals"`

	// Image is a logo URL
	Image string `json:"image"`

	Name     *string  `json:"name,omitempty"`
	USDPrice *float64 `json:"usdPrice,omitempty"`
}

// Asset returns the identifying part of the token.
func (t Token) Asset() Asset {
	return Asset{Blockchain: t.Blockchain, Address: t.Address, Symbol: t.Symbol}
}

// Amount is a monetary value kept as a decimal string to avoid precision loss.
type Amount struct {
	// Amount in the smallest on-chain unit
	Amount string `json:"amount"`

	// Decimals gives the fixed-point scale of Amount
	Decimals uint32 `json:"decimals"`
}

// Decimal returns the exact human-readable value, i.e. Amount / 10^Decimals.
func (a Amount) Decimal() (decimal.Decimal, error) {
	raw, err := decimal.NewFromString(a.Amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", a.Amount, err)
	}
	if a.Decimals > math.MaxInt32 {
		return decimal.Zero, fmt.Errorf("decimals %d out of range", a.Decimals)
	}
	return raw.Shift(-int32(a.Decimals)), nil
}

// AssetAndAmount pairs a balance with the asset it is denominated in.
type AssetAndAmount struct {
	Asset  Asset  `json:"asset"`
	Amount Amount `json:"amount"`
}
