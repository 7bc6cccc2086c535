package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.openly.dev/pointy"

	"github.com/yourorg/rango-go/internal/aggregate"
	"github.com/yourorg/rango-go/internal/client"
	"github.com/yourorg/rango-go/internal/codec"
	"github.com/yourorg/rango-go/internal/evm"
	"github.com/yourorg/rango-go/internal/model"
	"github.com/yourorg/rango-go/internal/security"
	"github.com/yourorg/rango-go/internal/validation"
)

func runMeta(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("meta", flag.ContinueOnError)
	chain := fs.String("chain", "", "only list tokens of this blockchain")
	if err := fs.Parse(args); err != nil {
		return err
	}

	meta, err := a.client.Meta(ctx)
	if err != nil {
		return err
	}
	if *chain == "" {
		return a.print(meta)
	}

	tokens := make([]model.Token, 0)
	for _, t := range meta.Tokens {
		if t.Blockchain == *chain {
			tokens = append(tokens, t)
		}
	}
	return a.print(tokens)
}

// quoteFlags registers the flags shared by quote and swap.
func quoteFlags(fs *flag.FlagSet, req *client.QuoteRequest) {
	fs.Func("from", "source asset", assetFlag(&req.From))
	fs.Func("to", "destination asset", assetFlag(&req.To))
	fs.StringVar(&req.Amount, "amount", "", "input amount in human units")
}

func assetFlag(dst *model.Asset) func(string) error {
	return func(s string) error {
		asset, err := model.ParseAsset(s)
		if err != nil {
			return err
		}
		*dst = asset
		return nil
	}
}

func runQuote(ctx context.Context, a *app, args []string) error {
	var req client.QuoteRequest
	fs := flag.NewFlagSet("quote", flag.ContinueOnError)
	quoteFlags(fs, &req)
	if err := fs.Parse(args); err != nil {
		return err
	}

	quote, err := a.client.Quote(ctx, req)
	if err != nil {
		return err
	}
	if quote.Route != nil {
		if err := validation.CheckRoute(*quote.Route); err != nil {
			logrus.WithError(err).Warn("Quote route is inconsistent")
		}
	}
	return a.print(quote)
}

type swapOutput struct {
	model.SwapResponse
	Fingerprint security.Fingerprint   `json:"fingerprint"`
	FeeTotals   []aggregate.AssetTotal `json:"feeTotals,omitempty"`
	Approval    *callSummary           `json:"approval,omitempty"`
}

type callSummary struct {
	To   string `json:"to"`
	Data int    `json:"dataBytes"`
}

func runSwap(ctx context.Context, a *app, args []string) error {
	var req client.SwapRequest
	fs := flag.NewFlagSet("swap", flag.ContinueOnError)
	quoteFlags(fs, &req.QuoteRequest)
	fs.StringVar(&req.FromAddress, "from-address", "", "source wallet")
	fs.StringVar(&req.ToAddress, "to-address", "", "destination wallet")
	fs.StringVar(&req.Slippage, "slippage", "1", "slippage tolerance in percent")
	disableEstimate := fs.Bool("disable-estimate", false, "skip the aggregator's balance and fee estimation")
	referrer := fs.String("referrer", "", "referrer wallet")
	referrerFee := fs.String("referrer-fee", "", "referrer fee in percent")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *disableEstimate {
		req.DisableEstimate = pointy.Bool(true)
	}
	if *referrer != "" {
		req.ReferrerAddress = pointy.String(*referrer)
	}
	if *referrerFee != "" {
		req.ReferrerFee = pointy.String(*referrerFee)
	}

	resp, err := a.client.Swap(ctx, req)
	if err != nil {
		return err
	}

	out := swapOutput{SwapResponse: resp}
	if out.Fingerprint, err = security.FingerprintOf(resp.Tx); err != nil {
		return err
	}
	if resp.Route != nil {
		if err := validation.CheckRoute(*resp.Route); err != nil {
			logrus.WithError(err).Warn("Swap route is inconsistent")
		}
		if out.FeeTotals, err = aggregate.FeeTotals(resp.Route.Fee); err != nil {
			return err
		}
	}

	switch tx := resp.Tx.(type) {
	case *model.EvmTransaction:
		if _, err := evm.CallMsg(*tx); err != nil {
			return fmt.Errorf("swap returned an unusable EVM call: %w", err)
		}
		msg, needed, err := evm.ApprovalCallMsg(*tx)
		if err != nil {
			return fmt.Errorf("swap returned an unusable approval: %w", err)
		}
		if needed {
			out.Approval = &callSummary{To: msg.To.Hex(), Data: len(msg.Data)}
		}
	case *model.CosmosTransaction:
		logrus.WithField("signType", tx.Data.SignType).Debug("Cosmos transaction received")
	case *model.TransferTransaction:
		logrus.WithField("recipient", tx.RecipientAddress).Debug("Transfer transaction received")
	}

	return a.print(out)
}

// idFlags registers the request and transaction id flags.
func idFlags(fs *flag.FlagSet) (requestID, txID *string) {
	requestID = fs.String("request", "", "request id returned by swap")
	txID = fs.String("tx", "", "transaction hash")
	return requestID, txID
}

func runApproval(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("approval", flag.ContinueOnError)
	requestID, txID := idFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	approval, err := a.client.ApprovalStatus(ctx, *requestID, *txID)
	if err != nil {
		return err
	}
	return a.print(approval)
}

func runStatus(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	requestID, txID := idFlags(fs)
	wait := fs.Bool("wait", false, "poll until the transaction succeeds or fails")
	interval := fs.Duration("interval", 10*time.Second, "polling interval with -wait")
	if err := fs.Parse(args); err != nil {
		return err
	}

	for {
		status, err := a.client.Status(ctx, *requestID, *txID)
		if err != nil {
			return err
		}
		if !*wait || status.Done() {
			return a.print(status)
		}

		state := "unknown"
		if status.Status != nil {
			state = string(*status.Status)
		}
		logrus.WithField("status", state).Info("Transaction still in progress")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(*interval):
		}
	}
}

type balanceOutput struct {
	Wallets []model.WalletDetail   `json:"wallets"`
	Totals  []aggregate.AssetTotal `json:"totals"`
}

// runBalance looks up one wallet via -chain/-address, or several given as
// CHAIN:ADDRESS arguments.
func runBalance(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("balance", flag.ContinueOnError)
	chain := fs.String("chain", "", "blockchain name, e.g. ETH")
	address := fs.String("address", "", "wallet address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var refs []client.WalletRef
	if *chain != "" || *address != "" {
		refs = append(refs, client.WalletRef{Blockchain: *chain, Address: *address})
	}
	for _, arg := range fs.Args() {
		chain, address, ok := strings.Cut(arg, ":")
		if !ok {
			return fmt.Errorf("invalid wallet %q: expected CHAIN:ADDRESS", arg)
		}
		refs = append(refs, client.WalletRef{Blockchain: chain, Address: address})
	}
	if len(refs) == 0 {
		return errors.New("balance: no wallet given")
	}

	balance, err := a.client.Balances(ctx, refs)
	if err != nil {
		return err
	}
	wallets := validation.UsableWallets(balance.Wallets)
	totals, err := aggregate.WalletTotals(wallets)
	if err != nil {
		return err
	}
	return a.print(balanceOutput{Wallets: wallets, Totals: totals})
}

func runReport(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	requestID := fs.String("request", "", "request id returned by swap")
	reason := fs.String("reason", "", "why the transaction failed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *reason == "" {
		return errors.New("report: -reason is required")
	}

	err := a.client.ReportFailure(ctx, model.ReportRequest{
		RequestID: *requestID,
		EventType: model.EventTxFail,
		Reason:    *reason,
	})
	if err != nil {
		return err
	}
	logrus.WithField("request_id", *requestID).Info("Failure reported")
	return nil
}

// runDecode decodes a saved swap response (or a bare transaction with -tx)
// from a file or stdin and prints it in canonical form.
func runDecode(_ context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	txOnly := fs.Bool("tx", false, "input is a bare transaction object")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	var tx model.Transaction
	if *txOnly {
		tx, err = codec.DecodeTransaction(data)
	} else {
		var resp model.SwapResponse
		resp, err = codec.DecodeSwapResponse(data)
		tx = resp.Tx
	}
	if err != nil {
		var decErr *codec.DecodeError
		if errors.As(err, &decErr) {
			logrus.WithFields(logrus.Fields{
				"kind": decErr.Kind.String(),
				"path": decErr.Path,
			}).Error("Payload rejected")
		}
		return err
	}

	encoded, err := codec.EncodeTransaction(tx)
	if err != nil {
		return err
	}
	fp, err := security.FingerprintOf(tx)
	if err != nil {
		return err
	}
	return a.print(struct {
		Tx          json.RawMessage      `json:"tx"`
		Fingerprint security.Fingerprint `json:"fingerprint"`
	}{encoded, fp})
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
