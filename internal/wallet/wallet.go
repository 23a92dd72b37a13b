package wallet

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Collection is the remote collection mirrored by this package.
const Collection = "wallets"

var (
	ErrNameRequired     = errors.New("wallet name is required")
	ErrCurrencyRequired = errors.New("wallet currency is required")
)

// Wallet is a money container. The balance is authoritative remotely; the
// local copy can be stale after a transaction-driven adjustment until the
// next fetch reconciles it.
type Wallet struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	UserID    uuid.UUID       `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
}

func (w Wallet) EntityID() uuid.UUID { return w.ID }

type CreateParams struct {
	Name     string
	Currency string
	Balance  decimal.Decimal
}

func (p CreateParams) validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}

	if p.Currency == "" {
		return ErrCurrencyRequired
	}

	return nil
}

// Patch holds a partial update; nil fields are left untouched remotely.
type Patch struct {
	Name     *string          `json:"name,omitempty"`
	Currency *string          `json:"currency,omitempty"`
	Balance  *decimal.Decimal `json:"balance,omitempty"`
}
