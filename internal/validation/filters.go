// Package validation provides structural checks over decoded aggregator responses.
package validation

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourorg/rango-go/internal/model"
)

// UsableWallets drops wallets the aggregator failed to query, along with
// any wallet that reports no balances.
func UsableWallets(wallets []model.WalletDetail) []model.WalletDetail {
	usable := make([]model.WalletDetail, 0, len(wallets))
	for _, w := range wallets {
		if _, ok := w.UsableBalances(); !ok {
			logrus.WithFields(logrus.Fields{
				"blockchain": w.BlockChain,
				"address":    w.Address,
				"failed":     w.Failed,
			}).Debug("Skipping wallet without usable balances")
			continue
		}
		usable = append(usable, w)
	}
	return usable
}

// CheckRequestID verifies that id is a request id issued by the aggregator.
func CheckRequestID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid request id %q: %w", id, err)
	}
	return nil
}

// ErrInvalidRoute is wrapped by every CheckRoute failure.
var ErrInvalidRoute = errors.New("invalid route")

// CheckRoute verifies the internal consistency of a priced route: amounts are
// decimal strings, restriction bounds are ordered and consecutive path hops
// hand over the same asset.
func CheckRoute(route model.QuoteSimulationResult) error {
	if err := checkDecimal("outputAmount", route.OutputAmount); err != nil {
		return err
	}

	for i, fee := range route.Fee {
		if err := checkDecimal(fmt.Sprintf("fee[%d].amount", i), fee.Amount); err != nil {
			return err
		}
	}

	if r := route.AmountRestriction; r != nil {
		if err := checkRestriction(*r); err != nil {
			return err
		}
	}

	path := route.Path
	for i, hop := range path {
		if err := checkDecimal(fmt.Sprintf("path[%d].expectedOutput", i), hop.ExpectedOutput); err != nil {
			return err
		}
		if i == 0 {
			continue
		}
		prev := path[i-1].To.Asset()
		if !prev.Equal(hop.From.Asset()) {
			return fmt.Errorf("%w: path[%d] starts at %s but path[%d] ends at %s", ErrInvalidRoute, i, hop.From.Asset(), i-1, prev)
		}
	}
	return nil
}

func checkRestriction(r model.AmountRestriction) error {
	switch r.Type {
	case model.RestrictionInclusive, model.RestrictionExclusive:
	default:
		return fmt.Errorf("%w: unknown restriction type %q", ErrInvalidRoute, r.Type)
	}
	if r.Min == nil || r.Max == nil {
		return nil
	}

	lo, err := decimal.NewFromString(*r.Min)
	if err != nil {
		return fmt.Errorf("%w: amountRestriction.min %q is not a decimal", ErrInvalidRoute, *r.Min)
	}
	hi, err := decimal.NewFromString(*r.Max)
	if err != nil {
		return fmt.Errorf("%w: amountRestriction.max %q is not a decimal", ErrInvalidRoute, *r.Max)
	}
	if lo.GreaterThan(hi) {
		return fmt.Errorf("%w: amountRestriction.min %s exceeds max %s", ErrInvalidRoute, lo, hi)
	}
	return nil
}

func checkDecimal(field, value string) error {
	if _, err := decimal.NewFromString(value); err != nil {
		return fmt.Errorf("%w: %s %q is not a decimal", ErrInvalidRoute, field, value)
	}
	return nil
}
