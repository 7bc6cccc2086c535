// Package aggregate rolls decoded fees and balances up into exact per-asset totals.
package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yourorg/rango-go/internal/model"
)

// AssetTotal is the sum of all amounts of one asset.
type AssetTotal struct {
	Asset model.Asset     `json:"asset"`
	Total decimal.Decimal `json:"total"`
}

// totals accumulates amounts keyed by asset identity.
type totals struct {
	order []string
	byKey map[string]*AssetTotal
}

func newTotals() *totals {
	return &totals{byKey: map[string]*AssetTotal{}}
}

func (t *totals) add(asset model.Asset, amount decimal.Decimal) {
	key := assetKey(asset)
	if cur, ok := t.byKey[key]; ok {
		cur.Total = cur.Total.Add(amount)
		return
	}
	t.byKey[key] = &AssetTotal{Asset: asset, Total: amount}
	t.order = append(t.order, key)
}

// list returns the totals sorted by asset.
func (t *totals) list() []AssetTotal {
	sort.Strings(t.order)
	out := make([]AssetTotal, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, *t.byKey[key])
	}
	return out
}

// assetKey folds the address case so checksummed and lower-case EVM
// addresses land in the same bucket.
func assetKey(a model.Asset) string {
	return strings.ToLower(a.String())
}

// FeeTotals sums the fees of a route per asset. Fee amounts are already in
// human units.
func FeeTotals(fees []model.SwapFee) ([]AssetTotal, error) {
	t := newTotals()
	for i, fee := range fees {
		amount, err := decimal.NewFromString(fee.Amount)
		if err != nil {
			return nil, fmt.Errorf("fee %d (%s): invalid amount %q: %w", i, fee.Name, fee.Amount, err)
		}
		t.add(fee.Asset, amount)
	}
	return t.list(), nil
}

// WalletTotals sums the usable balances of all wallets per asset, scaling
// each on-chain amount by its decimals. Failed wallets are skipped.
func WalletTotals(wallets []model.WalletDetail) ([]AssetTotal, error) {
	t := newTotals()
	for _, w := range wallets {
		balances, ok := w.UsableBalances()
		if !ok {
			continue
		}
		for _, b := range balances {
			amount, err := b.Amount.Decimal()
			if err != nil {
				return nil, fmt.Errorf("wallet %s on %s: %w", w.Address, w.BlockChain, err)
			}
			t.add(b.Asset, amount)
		}
	}
	return t.list(), nil
}
