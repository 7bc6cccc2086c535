package model

// WalletDetail is one chain's balance snapshot for an address.
type WalletDetail struct {
	// Failed marks a lookup that did not complete; Balances must not be trusted
	Failed bool `json:"failed"`

	BlockChain  string           `json:"blockChain"`
	Address     string           `json:"address"`
	Balances    []AssetAndAmount `json:"balances"`
	ExplorerURL string           `json:"explorerUrl"`
}

// UsableBalances returns the balances only when the lookup succeeded.
// A failed wallet reports no balances regardless of its payload, and so does
// one whose balances are null or absent. An empty list is a usable result.
func (w WalletDetail) UsableBalances() ([]AssetAndAmount, bool) {
	if w.Failed || w.Balances == nil {
		return nil, false
	}
	return w.Balances, true
}

// BalanceResponse is the body of the balance endpoint.
type BalanceResponse struct {
	Wallets []WalletDetail `json:"wallets"`
}
