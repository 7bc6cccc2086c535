package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/yourorg/rango-go/internal/model"
)

// WalletRef names one address on one blockchain.
type WalletRef struct {
	Blockchain string
	Address    string
}

// Balances looks up several wallets concurrently. A lookup that fails is
// reported as a failed WalletDetail so the other wallets are still usable;
// an error is returned only when every lookup failed.
func (c *Client) Balances(ctx context.Context, refs []WalletRef) (model.BalanceResponse, error) {
	type result struct {
		index   int
		wallets []model.WalletDetail
		err     error
	}

	var wg sync.WaitGroup
	resultCh := make(chan result, len(refs))
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref WalletRef) {
			defer wg.Done()
			resp, err := c.Balance(ctx, ref.Blockchain, ref.Address)
			resultCh <- result{index: i, wallets: resp.Wallets, err: err}
		}(i, ref)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// Keep request order in the output.
	perRef := make([][]model.WalletDetail, len(refs))
	var errs []error
	for r := range resultCh {
		if r.err != nil {
			ref := refs[r.index]
			c.log.WithFields(logrus.Fields{
				"blockchain": ref.Blockchain,
				"address":    ref.Address,
			}).WithError(r.err).Warn("Balance lookup failed")

			errs = append(errs, fmt.Errorf("%s %s: %w", ref.Blockchain, ref.Address, r.err))
			perRef[r.index] = []model.WalletDetail{{Failed: true, BlockChain: ref.Blockchain, Address: ref.Address}}
			continue
		}
		perRef[r.index] = r.wallets
	}

	if len(refs) > 0 && len(errs) == len(refs) {
		return model.BalanceResponse{}, fmt.Errorf("all balance lookups failed: %w", errors.Join(errs...))
	}

	var resp model.BalanceResponse
	for _, wallets := range perRef {
		resp.Wallets = append(resp.Wallets, wallets...)
	}
	c.log.Debugf("Fetched balances for %d/%d wallets", len(refs)-len(errs), len(refs))
	return resp, nil
}
