// Package security provides integrity checks for transactions received from
// the aggregator.
package security

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/yourorg/rango-go/internal/codec"
	"github.com/yourorg/rango-go/internal/model"
)

// Fingerprint identifies a transaction by the hashes of its canonical wire
// encoding. Two decoded transactions with equal fields have equal fingerprints.
type Fingerprint struct {
	Type      model.TransactionType `json:"type"`
	Keccak256 string                `json:"keccak256"`
	SHA256    string                `json:"sha256"`
	CreatedAt time.Time             `json:"createdAt"`
}

// FingerprintOf hashes the encoding produced by codec.EncodeTransaction.
func FingerprintOf(tx model.Transaction) (Fingerprint, error) {
	data, err := codec.EncodeTransaction(tx)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("failed to encode transaction: %w", err)
	}
	return Fingerprint{
		Type:      tx.Type(),
		Keccak256: crypto.Keccak256Hash(data).Hex(),
		SHA256:    fmt.Sprintf("%x", sha256.Sum256(data)),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Verify reports an error when tx no longer matches fp, e.g. because it was
// modified between being fetched and being handed to a signer.
func Verify(tx model.Transaction, fp Fingerprint) error {
	actual, err := FingerprintOf(tx)
	if err != nil {
		return err
	}
	if actual.Type != fp.Type {
		return fmt.Errorf("transaction type mismatch: expected %s, got %s", fp.Type, actual.Type)
	}
	if common.HexToHash(fp.Keccak256) != common.HexToHash(actual.Keccak256) {
		return fmt.Errorf("Keccak256 hash mismatch")
	}
	if fp.SHA256 != actual.SHA256 {
		return fmt.Errorf("SHA256 hash mismatch")
	}
	return nil
}
