package model

// SwapResponse is the body of the swap endpoint. Tx is always present on the
// wire, whatever the ResultType; Route and Error are independent of it.
type SwapResponse struct {
	RequestID  string                 `json:"requestId"`
	ResultType ResultType             `json:"resultType"`
	Route      *QuoteSimulationResult `json:"route,omitempty"`
	Error      *string                `json:"error,omitempty"`
	Tx         Transaction            `json:"tx"`
}

// CheckApproval is the body of the is-approved endpoint.
type CheckApproval struct {
	IsApproved             bool    `json:"isApproved"`
	TxStatus               *string `json:"txStatus,omitempty"`
	CurrentApprovedAmount  *string `json:"currentApprovedAmount,omitempty"`
	RequiredApprovedAmount *string `json:"requiredApprovedAmount,omitempty"`
}

// TxStatus is the lifecycle state reported by the status endpoint.
type TxStatus string

const (
	TxRunning TxStatus = "running"
	TxFailed  TxStatus = "failed"
	TxSuccess TxStatus = "success"
)

type ExplorerURL struct {
	URL         string  `json:"url"`
	Description *string `json:"description,omitempty"`
}

type StatusOutput struct {
	Amount        string `json:"amount"`
	Type          string `json:"type"`
	ReceivedToken Token  `json:"receivedToken"`
}

// TransactionStatus is the body of the status endpoint.
type TransactionStatus struct {
	// Status is nil while the aggregator has not seen the transaction yet
	Status      *TxStatus     `json:"status,omitempty"`
	Error       *string       `json:"error,omitempty"`
	Output      *StatusOutput `json:"output,omitempty"`
	ExplorerURL []ExplorerURL `json:"explorerUrl,omitempty"`
}

// Done reports whether the transaction reached a terminal state.
func (s TransactionStatus) Done() bool {
	return s.Status != nil && (*s.Status == TxFailed || *s.Status == TxSuccess)
}

// BlockchainMeta describes a chain supported by the aggregator.
type BlockchainMeta struct {
	Name            string   `json:"name"`
	DefaultDecimals uint32   `json:"defaultDecimals"`
	AddressPatterns []string `json:"addressPatterns"`
	FeeAssets       []Asset  `json:"feeAssets"`
	Type            string   `json:"type"`
	ChainID         *string  `json:"chainId,omitempty"`
	Enabled         bool     `json:"enabled"`
}

// MetaResponse is the body of the meta endpoint.
type MetaResponse struct {
	Blockchains []BlockchainMeta `json:"blockchains"`
	Tokens      []Token          `json:"tokens"`
	Swappers    []SwapperMeta    `json:"swappers"`
}

// FindToken looks a token up by asset identity.
func (m MetaResponse) FindToken(asset Asset) (Token, bool) {
	for _, t := range m.Tokens {
		if t.Asset().Equal(asset) {
			return t, true
		}
	}
	return Token{}, false
}

// ReportEvent is the kind of client-side failure being reported.
type ReportEvent string

const (
	EventTxFail ReportEvent = "TX_FAIL"
)

// ReportRequest tells the aggregator a transaction could not be completed.
type ReportRequest struct {
	RequestID string            `json:"requestId"`
	EventType ReportEvent       `json:"eventType"`
	Reason    string            `json:"reason"`
	Data      map[string]string `json:"data,omitempty"`
}
