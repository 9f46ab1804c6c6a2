// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryKind discriminates the three kinds of money movement.
type EntryKind string

const (
	KindIncome      EntryKind = "income"
	KindExpenditure EntryKind = "expenditure"
	KindTransfer    EntryKind = "transfer"
)

// AllKinds lists every entry kind in a stable order.
var AllKinds = []EntryKind{KindIncome, KindExpenditure, KindTransfer}

// Category is a kind-specific classification of a ledger entry.
type Category string

// Income categories.
const (
	IncomeSalary    Category = "SALARY"
	IncomeAllowance Category = "ALLOWANCE"
	IncomeBonus     Category = "BONUS"
	IncomeFinancial Category = "FINANCIAL"
	IncomeSideJob   Category = "SIDE_JOB"
)

// Expenditure categories.
const (
	ExpenditureFood           Category = "FOOD"
	ExpenditureTransportation Category = "TRANSPORTATION"
	ExpenditureHousing        Category = "HOUSING"
	ExpenditureCommunication  Category = "COMMUNICATION"
	ExpenditureShopping       Category = "SHOPPING"
	ExpenditureMedical        Category = "MEDICAL"
	ExpenditureEducation      Category = "EDUCATION"
	ExpenditureCulture        Category = "CULTURE"
)

// Transfer categories.
const (
	TransferDeposit    Category = "DEPOSIT"
	TransferWithdrawal Category = "WITHDRAWAL"
	TransferSavings    Category = "SAVINGS"
	TransferInvestment Category = "INVESTMENT"
	TransferLoan       Category = "LOAN"
)

// CategoryEtc is shared by every kind.
const CategoryEtc Category = "ETC"

var kindCategories = map[EntryKind][]Category{
	KindIncome: {
		IncomeSalary, IncomeAllowance, IncomeBonus, IncomeFinancial, IncomeSideJob, CategoryEtc,
	},
	KindExpenditure: {
		ExpenditureFood, ExpenditureTransportation, ExpenditureHousing, ExpenditureCommunication,
		ExpenditureShopping, ExpenditureMedical, ExpenditureEducation, ExpenditureCulture, CategoryEtc,
	},
	KindTransfer: {
		TransferDeposit, TransferWithdrawal, TransferSavings, TransferInvestment, TransferLoan, CategoryEtc,
	},
}

// IsValid reports whether k is one of the known entry kinds.
func (k EntryKind) IsValid() bool {
	_, ok := kindCategories[k]
	return ok
}

// Categories returns the fixed category enum of the kind.
func (k EntryKind) Categories() []Category {
	categories := kindCategories[k]
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// AllowsCategory reports whether c belongs to the enum of kind k.
func (k EntryKind) AllowsCategory(c Category) bool {
	for _, candidate := range kindCategories[k] {
		if candidate == c {
			return true
		}
	}
	return false
}

// LedgerEntry is a single money movement recorded by a member.
type LedgerEntry struct {
	ID          uuid.UUID
	MemberID    int64
	Kind        EntryKind
	Amount      decimal.Decimal // smallest currency unit, never negative
	OccurredAt  time.Time
	Description string
	Category    Category
	Latitude    string
	Longitude   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewLedgerEntry creates a new LedgerEntry entity.
// The identifier is a UUIDv7 so that identifier order follows insertion order.
func NewLedgerEntry(
	memberID int64,
	kind EntryKind,
	amount decimal.Decimal,
	occurredAt time.Time,
	description string,
	category Category,
	latitude, longitude string,
	now time.Time,
) *LedgerEntry {
	now = now.UTC().Truncate(time.Second)

	return &LedgerEntry{
		ID:          uuid.Must(uuid.NewV7()),
		MemberID:    memberID,
		Kind:        kind,
		Amount:      amount,
		OccurredAt:  occurredAt.UTC().Truncate(time.Second),
		Description: description,
		Category:    category,
		Latitude:    latitude,
		Longitude:   longitude,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// OccurredOn returns the calendar date of the entry in UTC.
func (e *LedgerEntry) OccurredOn() time.Time {
	y, m, d := e.OccurredAt.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
