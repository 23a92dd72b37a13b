package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnauthenticated is returned when an operation requires a resolved
	// identity and none is available.
	ErrUnauthenticated = errors.New("no authenticated identity")

	// ErrRejected is returned when the remote gateway refuses a request.
	// The gateway does not distinguish not-found, constraint violations,
	// permission denials and transient network failures any further.
	ErrRejected = errors.New("request rejected by gateway")
)

// Eq is an equality predicate on a single column.
type Eq struct {
	Column string
	Value  any
}

// Order is a single ordering key.
type Order struct {
	Column     string
	Descending bool
}

//go:generate mockgen -source=gateway.go -destination=gateway_mock.go -package=gateway

// Client is the narrow contract the collection stores consume. All durable
// state lives behind it; rows are exchanged as raw JSON and decoded into
// strict entity shapes by the caller.
type Client interface {
	// CurrentIdentity returns the authenticated identity, or
	// ErrUnauthenticated when none is resolved.
	CurrentIdentity() (uuid.UUID, error)

	// Select returns a JSON array of rows matching every predicate in match,
	// ordered by the given keys.
	Select(ctx context.Context, collection string, match []Eq, order []Order) (json.RawMessage, error)

	// Insert stores row and returns the canonical server-side record.
	Insert(ctx context.Context, collection string, row any) (json.RawMessage, error)

	// Upsert stores row, merging with an existing row on conflict. Used for
	// idempotent writes such as watch-status marks.
	Upsert(ctx context.Context, collection string, row any) error

	// Update patches every row matching match and returns the canonical
	// record of the patched row.
	Update(ctx context.Context, collection string, match []Eq, patch any) (json.RawMessage, error)

	// Delete removes every row matching match. Deleting zero rows is not an
	// error.
	Delete(ctx context.Context, collection string, match []Eq) error

	// AdjustWalletBalance applies a signed delta to a wallet's remote
	// balance via the adjust_wallet_balance procedure.
	AdjustWalletBalance(ctx context.Context, walletID uuid.UUID, delta decimal.Decimal) error
}

// DecodeRows decodes a Select result into a slice of entity records.
// A decode failure means the remote sent something outside the contract and
// is reported as ErrRejected.
func DecodeRows[T any](raw json.RawMessage) ([]T, error) {
	var rows []T
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("%w: decoding rows: %v", ErrRejected, err)
	}

	return rows, nil
}

// DecodeRow decodes a canonical single-record response.
func DecodeRow[T any](raw json.RawMessage) (T, error) {
	var row T
	if err := json.Unmarshal(raw, &row); err != nil {
		return row, fmt.Errorf("%w: decoding row: %v", ErrRejected, err)
	}

	return row, nil
}
