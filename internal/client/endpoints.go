package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/yourorg/rango-go/internal/codec"
	"github.com/yourorg/rango-go/internal/model"
	"github.com/yourorg/rango-go/internal/validation"
)

// QuoteRequest asks for the best route converting Amount of From into To.
type QuoteRequest struct {
	From   model.Asset
	To     model.Asset
	Amount string
}

func (r QuoteRequest) query() url.Values {
	q := url.Values{}
	q.Set("from", r.From.String())
	q.Set("to", r.To.String())
	q.Set("amount", r.Amount)
	return q
}

// SwapRequest is a QuoteRequest plus the wallets and slippage needed to build
// an executable transaction.
type SwapRequest struct {
	QuoteRequest

	FromAddress string
	ToAddress   string

	// Slippage tolerance in percent, e.g. "1.5"
	Slippage string

	DisableEstimate *bool
	ReferrerAddress *string
	ReferrerFee     *string
}

func (r SwapRequest) query() url.Values {
	q := r.QuoteRequest.query()
	q.Set("fromAddress", r.FromAddress)
	q.Set("toAddress", r.ToAddress)
	q.Set("slippage", r.Slippage)
	if r.DisableEstimate != nil {
		q.Set("disableEstimate", strconv.FormatBool(*r.DisableEstimate))
	}
	if r.ReferrerAddress != nil {
		q.Set("referrerAddress", *r.ReferrerAddress)
	}
	if r.ReferrerFee != nil {
		q.Set("referrerFee", *r.ReferrerFee)
	}
	return q
}

// Meta lists supported blockchains, tokens and swappers.
func (c *Client) Meta(ctx context.Context) (model.MetaResponse, error) {
	var meta model.MetaResponse
	if err := c.getJSON(ctx, "meta", "basic/meta", nil, &meta); err != nil {
		return model.MetaResponse{}, err
	}
	return meta, nil
}

// Quote prices a route without building a transaction.
func (c *Client) Quote(ctx context.Context, req QuoteRequest) (model.QuoteResponse, error) {
	if req.Amount == "" {
		return model.QuoteResponse{}, errors.New("quote: amount is required")
	}
	var quote model.QuoteResponse
	if err := c.getJSON(ctx, "quote", "basic/quote", req.query(), &quote); err != nil {
		return model.QuoteResponse{}, err
	}
	return quote, nil
}

// Swap builds the transaction for a route. The tx member is decoded into its
// concrete variant; a body that does not match a known variant is a
// *codec.DecodeError.
func (c *Client) Swap(ctx context.Context, req SwapRequest) (model.SwapResponse, error) {
	if req.Amount == "" || req.FromAddress == "" || req.ToAddress == "" {
		return model.SwapResponse{}, errors.New("swap: amount, fromAddress and toAddress are required")
	}

	body, err := c.do(ctx, "swap", http.MethodGet, "basic/swap", req.query(), nil)
	if err != nil {
		return model.SwapResponse{}, err
	}

	resp, err := codec.DecodeSwapResponse(body)
	if err != nil {
		var decErr *codec.DecodeError
		if errors.As(err, &decErr) {
			c.metrics.CollectDecodeFailure("swap", decErr.Kind.String())
			c.log.WithFields(logrus.Fields{
				"kind": decErr.Kind.String(),
				"path": decErr.Path,
			}).Debug("Cannot decode swap response")
		}
		return model.SwapResponse{}, fmt.Errorf("swap: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"request_id":  resp.RequestID,
		"result_type": resp.ResultType,
		"tx_type":     resp.Tx.Type(),
	}).Debug("Swap transaction received")
	return resp, nil
}

// ApprovalStatus reports whether the approval transaction txID of requestID
// has been mined.
func (c *Client) ApprovalStatus(ctx context.Context, requestID, txID string) (model.CheckApproval, error) {
	if err := checkIDs(requestID, txID); err != nil {
		return model.CheckApproval{}, err
	}
	q := url.Values{}
	q.Set("requestId", requestID)
	q.Set("txId", txID)

	var approval model.CheckApproval
	if err := c.getJSON(ctx, "is-approved", "basic/is-approved", q, &approval); err != nil {
		return model.CheckApproval{}, err
	}
	return approval, nil
}

// Status reports the progress of the swap transaction txID of requestID.
func (c *Client) Status(ctx context.Context, requestID, txID string) (model.TransactionStatus, error) {
	if err := checkIDs(requestID, txID); err != nil {
		return model.TransactionStatus{}, err
	}
	q := url.Values{}
	q.Set("requestId", requestID)
	q.Set("txId", txID)

	var status model.TransactionStatus
	if err := c.getJSON(ctx, "status", "basic/status", q, &status); err != nil {
		return model.TransactionStatus{}, err
	}
	return status, nil
}

// Balance returns the balances of address on blockchain.
func (c *Client) Balance(ctx context.Context, blockchain, address string) (model.BalanceResponse, error) {
	if blockchain == "" || address == "" {
		return model.BalanceResponse{}, errors.New("balance: blockchain and address are required")
	}
	q := url.Values{}
	q.Set("blockchain", blockchain)
	q.Set("address", address)

	var balance model.BalanceResponse
	if err := c.getJSON(ctx, "balance", "basic/balance", q, &balance); err != nil {
		return model.BalanceResponse{}, err
	}
	return balance, nil
}

// ReportFailure tells the aggregator that the transaction of a request could
// not be completed on the client side.
func (c *Client) ReportFailure(ctx context.Context, report model.ReportRequest) error {
	if err := validation.CheckRequestID(report.RequestID); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if report.EventType == "" {
		report.EventType = model.EventTxFail
	}
	_, err := c.do(ctx, "report-tx", http.MethodPost, "basic/report-tx", nil, report)
	return err
}

func checkIDs(requestID, txID string) error {
	if err := validation.CheckRequestID(requestID); err != nil {
		return err
	}
	if txID == "" {
		return errors.New("transaction id is required")
	}
	return nil
}
