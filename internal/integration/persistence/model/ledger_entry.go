// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bitbank/ledger/internal/domain/entity"
)

// LedgerEntryModel represents the ledger_entries table in the database.
type LedgerEntryModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MemberID    int64           `gorm:"not null;index:idx_ledger_entries_member_kind_occurred,priority:1"`
	Kind        string          `gorm:"type:varchar(16);not null;index:idx_ledger_entries_member_kind_occurred,priority:2"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null"`
	OccurredAt  time.Time       `gorm:"not null;index:idx_ledger_entries_member_kind_occurred,priority:3"`
	Description string          `gorm:"type:varchar(255);not null;default:''"`
	Category    string          `gorm:"type:varchar(32);not null"`
	Latitude    string          `gorm:"type:varchar(32)"`
	Longitude   string          `gorm:"type:varchar(32)"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the LedgerEntryModel.
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToEntity converts a LedgerEntryModel to a domain LedgerEntry entity.
func (m *LedgerEntryModel) ToEntity() *entity.LedgerEntry {
	return &entity.LedgerEntry{
		ID:          m.ID,
		MemberID:    m.MemberID,
		Kind:        entity.EntryKind(m.Kind),
		Amount:      m.Amount,
		OccurredAt:  m.OccurredAt.UTC(),
		Description: m.Description,
		Category:    entity.Category(m.Category),
		Latitude:    m.Latitude,
		Longitude:   m.Longitude,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

// LedgerEntryFromEntity creates a LedgerEntryModel from a domain LedgerEntry entity.
func LedgerEntryFromEntity(e *entity.LedgerEntry) *LedgerEntryModel {
	return &LedgerEntryModel{
		ID:          e.ID,
		MemberID:    e.MemberID,
		Kind:        string(e.Kind),
		Amount:      e.Amount,
		OccurredAt:  e.OccurredAt.UTC(),
		Description: e.Description,
		Category:    string(e.Category),
		Latitude:    e.Latitude,
		Longitude:   e.Longitude,
		CreatedAt:   e.CreatedAt.UTC(),
		UpdatedAt:   e.UpdatedAt.UTC(),
	}
}
