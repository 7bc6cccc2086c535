package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/rango-go/internal/client"
	"github.com/yourorg/rango-go/internal/codec"
	"github.com/yourorg/rango-go/internal/config"
)

// testApp returns an app writing to a temp file, plus a func reading it back.
func testApp(t *testing.T, baseURL string) (*app, func() []byte) {
	t.Helper()
	out, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	t.Cleanup(func() { out.Close() })

	c, err := client.New(config.Config{BaseURL: baseURL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	return &app{client: c, out: out}, func() []byte {
		data, err := os.ReadFile(out.Name())
		require.NoError(t, err)
		return data
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunDecode_SwapResponse(t *testing.T) {
	a, output := testApp(t, "http://localhost/")
	path := writeFile(t, `{"requestId":"id","resultType":"OK","tx":{"type":"evm","blockChain":"ETH","txTo":"0xabc"}}`)

	require.NoError(t, runDecode(context.Background(), a, []string{path}))

	var got struct {
		Tx          json.RawMessage `json:"tx"`
		Fingerprint struct {
			Type      string `json:"type"`
			Keccak256 string `json:"keccak256"`
		} `json:"fingerprint"`
	}
	require.NoError(t, json.Unmarshal(output(), &got))
	assert.JSONEq(t, `{"type":"EVM","blockChain":"ETH","txTo":"0xabc"}`, string(got.Tx))
	assert.Equal(t, "EVM", got.Fingerprint.Type)
	assert.NotEmpty(t, got.Fingerprint.Keccak256)
}

func TestRunDecode_Rejected(t *testing.T) {
	a, _ := testApp(t, "http://localhost/")
	path := writeFile(t, `{"type":"FOO"}`)

	err := runDecode(context.Background(), a, []string{"-tx", path})
	assert.ErrorIs(t, err, codec.ErrUnknownVariant)
}

func TestRunBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"wallets":[
			{"failed":false,"blockChain":"ETH","address":"0xa","explorerUrl":"","balances":[{"asset":{"blockchain":"ETH","symbol":"ETH"},"amount":{"amount":"250000000000000000","decimals":18}}]},
			{"failed":true,"blockChain":"ETH","address":"0xa","explorerUrl":"","balances":[{"asset":{"blockchain":"ETH","symbol":"ETH"},"amount":{"amount":"1","decimals":0}}]}
		]}`)
	}))
	defer srv.Close()

	a, output := testApp(t, srv.URL)
	require.NoError(t, runBalance(context.Background(), a, []string{"-chain", "ETH", "-address", "0xa"}))

	var got struct {
		Wallets []json.RawMessage `json:"wallets"`
		Totals  []struct {
			Total string `json:"total"`
		} `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(output(), &got))
	assert.Len(t, got.Wallets, 1)
	require.Len(t, got.Totals, 1)
	assert.Equal(t, "0.25", got.Totals[0].Total)
}

func TestRunReport_RequiresReason(t *testing.T) {
	a, _ := testApp(t, "http://localhost/")
	assert.Error(t, runReport(context.Background(), a, []string{"-request", "967efbd7-797e-429b-a587-ac973d8c8bea"}))
}
