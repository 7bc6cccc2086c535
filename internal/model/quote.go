package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ResultType classifies the outcome of a quote or swap request.
type ResultType string

// Result types as sent by the API.
const (
	ResultOK              ResultType = "OK"
	ResultHighImpact      ResultType = "HIGH_IMPACT"
	ResultInputLimitIssue ResultType = "INPUT_LIMIT_ISSUE"
	ResultNoRoute         ResultType = "NO_ROUTE"
)

var resultTypes = map[string]ResultType{
	"OK":              ResultOK,
	"HIGHIMPACT":      ResultHighImpact,
	"INPUTLIMITISSUE": ResultInputLimitIssue,
	"NOROUTE":         ResultNoRoute,
}

// ParseResultType accepts both the API's upper snake case ("HIGH_IMPACT") and
// the camel case spelling ("HighImpact").
func ParseResultType(s string) (ResultType, bool) {
	key := strings.ToUpper(strings.ReplaceAll(s, "_", ""))
	rt, ok := resultTypes[key]
	return rt, ok
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *ResultType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	rt, ok := ParseResultType(s)
	if !ok {
		return fmt.Errorf("unknown result type %q", s)
	}
	*r = rt
	return nil
}

// RestrictionType tells whether amount bounds are inclusive.
type RestrictionType string

const (
	RestrictionInclusive RestrictionType = "INCLUSIVE"
	RestrictionExclusive RestrictionType = "EXCLUSIVE"
)

// AmountRestriction bounds the input amount a route accepts.
type AmountRestriction struct {
	Min  *string         `json:"min,omitempty"`
	Max  *string         `json:"max,omitempty"`
	Type RestrictionType `json:"type"`
}

// SwapFee is one fee charged along a route.
type SwapFee struct {
	Asset       Asset  `json:"asset"`
	ExpenseType string `json:"expenseType"`
	Amount      string `json:"amount"`
	Name        string `json:"name"`
}

// SwapperMeta describes a DEX or bridge the aggregator routes through.
type SwapperMeta struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Logo         string   `json:"logo"`
	SwapperGroup string   `json:"swapperGroup"`
	Types        []string `json:"types"`
}

// QuotePath is a single hop of a multi-step route.
type QuotePath struct {
	From                   Token       `json:"from"`
	To                     Token       `json:"to"`
	Swapper                SwapperMeta `json:"swapper"`
	SwapperType            string      `json:"swapperType"`
	ExpectedOutput         string      `json:"expectedOutput"`
	EstimatedTimeInSeconds int64       `json:"estimatedTimeInSeconds"`
}

// QuoteSimulationResult is a priced route.
type QuoteSimulationResult struct {
	OutputAmount string      `json:"outputAmount"`
	Swapper      SwapperMeta `json:"swapper"`

	// Path is nil for direct transfers
	Path []QuotePath `json:"path"`

	Fee                    []SwapFee          `json:"fee"`
	AmountRestriction      *AmountRestriction `json:"amountRestriction,omitempty"`
	EstimatedTimeInSeconds int64              `json:"estimatedTimeInSeconds"`
}

// QuoteResponse is the body of the quote endpoint.
type QuoteResponse struct {
	RequestID  string                 `json:"requestId"`
	ResultType ResultType             `json:"resultType"`
	Route      *QuoteSimulationResult `json:"route,omitempty"`
	Error      *string                `json:"error,omitempty"`
}
