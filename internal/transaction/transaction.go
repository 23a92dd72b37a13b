package transaction

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hamrotrack/internal/gateway"
)

const Collection = "transactions"

// Kind classifies a transaction. It is not stored as its own column: a row
// carries a signed amount plus a mutually exclusive income/expense pair, and
// the kind derives from whichever of the pair is populated.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

var (
	ErrAmountRequired      = errors.New("transaction amount is required")
	ErrDescriptionRequired = errors.New("transaction description is required")
	ErrWalletRequired      = errors.New("transaction wallet is required")
)

type Transaction struct {
	ID          uuid.UUID        `json:"id"`
	Amount      decimal.Decimal  `json:"amount"`
	Income      *decimal.Decimal `json:"income"`
	Expense     *decimal.Decimal `json:"expense"`
	Description string           `json:"description"`
	Date        gateway.Date     `json:"date"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	WalletID    uuid.UUID        `json:"wallet_id"`
	UserID      uuid.UUID        `json:"user_id"`
	CreatedAt   time.Time        `json:"created_at"`
}

func (t Transaction) EntityID() uuid.UUID { return t.ID }

func (t Transaction) Kind() Kind {
	switch {
	case t.Expense != nil:
		return KindExpense
	case t.Income != nil:
		return KindIncome
	case t.Amount.IsNegative():
		return KindExpense
	default:
		return KindIncome
	}
}

// Magnitude is the unsigned size of the transaction.
func (t Transaction) Magnitude() decimal.Decimal {
	return t.Amount.Abs()
}

type CreateParams struct {
	Kind        Kind
	Amount      decimal.Decimal // entered as a positive magnitude
	Description string
	Date        gateway.Date
	CategoryID  *uuid.UUID
	WalletID    uuid.UUID
}

func (p CreateParams) validate() error {
	if p.Amount.IsZero() {
		return ErrAmountRequired
	}

	if p.Description == "" {
		return ErrDescriptionRequired
	}

	if p.WalletID == uuid.Nil {
		return ErrWalletRequired
	}

	return nil
}

type Patch struct {
	Description *string
	Date        *gateway.Date
	CategoryID  *uuid.UUID
	WalletID    *uuid.UUID

	amount  *decimal.Decimal
	income  *decimal.Decimal
	expense *decimal.Decimal
}

// SetAmount repoints the patch at a new kind and positive magnitude. The
// signed amount and the income/expense pair always travel together, so a
// kind change nulls the stale pair column remotely.
func (p *Patch) SetAmount(kind Kind, magnitude decimal.Decimal) {
	magnitude = magnitude.Abs()
	signed := magnitude

	p.income, p.expense = nil, nil

	switch kind {
	case KindExpense:
		signed = magnitude.Neg()
		p.expense = &magnitude
	default:
		p.income = &magnitude
	}

	p.amount = &signed
}

// MarshalJSON emits only the fields being patched. Nil pointers are omitted
// except for the income/expense pair, which rides along with every amount
// change so the inactive column is explicitly nulled.
func (p Patch) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any)

	if p.Description != nil {
		fields["description"] = *p.Description
	}

	if p.Date != nil {
		fields["date"] = *p.Date
	}

	if p.CategoryID != nil {
		fields["category_id"] = *p.CategoryID
	}

	if p.WalletID != nil {
		fields["wallet_id"] = *p.WalletID
	}

	if p.amount != nil {
		fields["amount"] = p.amount
		fields["income"] = p.income
		fields["expense"] = p.expense
	}

	return json.Marshal(fields)
}

// Filter is the pure, local predicate over the cached set. All fields are
// optional and conjunctive; date bounds are inclusive.
type Filter struct {
	Kind      *Kind
	StartDate *gateway.Date
	EndDate   *gateway.Date
}

func (f Filter) matches(t Transaction) bool {
	if f.Kind != nil && t.Kind() != *f.Kind {
		return false
	}

	return t.Date.Within(f.StartDate, f.EndDate)
}
