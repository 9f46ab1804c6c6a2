package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/bitbank/ledger/internal/domain/entity"
)

// MemberModel represents the members table. Rows are owned by the member service;
// the ledger only reads them.
type MemberModel struct {
	ID        int64          `gorm:"primaryKey;autoIncrement:false"`
	Name      string         `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for the MemberModel.
func (MemberModel) TableName() string {
	return "members"
}

// ToEntity converts a MemberModel to a domain Member entity.
func (m *MemberModel) ToEntity() *entity.Member {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}
	return &entity.Member{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		DeletedAt: deletedAt,
	}
}

// MemberFromEntity creates a MemberModel from a domain Member entity.
func MemberFromEntity(m *entity.Member) *MemberModel {
	model := &MemberModel{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
	if m.DeletedAt != nil {
		model.DeletedAt = gorm.DeletedAt{Time: *m.DeletedAt, Valid: true}
	}
	return model
}
