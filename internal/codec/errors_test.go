package codec

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestDecodeError_Is(t *testing.T) {
	err := fmt.Errorf("swap: %w", missing("tx.txTo"))

	assert.ErrorIs(t, err, ErrMissingField)
	assert.NotErrorIs(t, err, ErrTypeMismatch)
	assert.NotErrorIs(t, err, ErrUnknownVariant)
	assert.NotErrorIs(t, err, ErrMalformedJSON)
}

func TestDecodeError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  *DecodeError
		want string
	}{
		{
			name: "missing",
			err:  missing("tx.blockChain"),
			want: `missing field "tx.blockChain"`,
		},
		{
			name: "mismatch at root",
			err:  mismatch("", "object", []byte(`[1,2]`)),
			want: `type mismatch at "(root)": expected object, got array`,
		},
		{
			name: "mismatch string",
			err:  mismatch("tx.type", "string", []byte(`12`)),
			want: `type mismatch at "tx.type": expected string, got number 12`,
		},
		{
			name: "unknown variant",
			err:  unknownVariant("tx.type", "SOLANA"),
			want: `unknown transaction variant "SOLANA" at "tx.type"`,
		},
		{
			name: "malformed",
			err:  malformed(errors.New("unexpected end of JSON input")),
			want: "malformed json: unexpected end of JSON input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestDecodeError_Field(t *testing.T) {
	assert.Equal(t, "signType", missing("tx.data.signType").Field())
	assert.Equal(t, "tx", missing("tx").Field())
	assert.Equal(t, "", mismatch("", "object", nil).Field())
}

func TestDescribe_Truncates(t *testing.T) {
	long := `"` + strings.Repeat("a", 100) + `"`
	got := describe([]byte(long))
	assert.Contains(t, got, "...")
	assert.Contains(t, got, "string ")
}

func TestDescribe_TruncatesOnRuneBoundary(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "two byte runes",
			raw:  `"` + strings.Repeat("é", 50) + `"`,
			want: `string "` + strings.Repeat("é", 31) + "...",
		},
		{
			name: "three byte runes",
			raw:  `"a` + strings.Repeat("€", 30) + `"`,
			want: `string "a` + strings.Repeat("€", 20) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := describe([]byte(tt.raw))
			assert.True(t, utf8.ValidString(got), "got %q", got)
			assert.Equal(t, tt.want, got)
		})
	}
}
