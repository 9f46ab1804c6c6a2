package entity

import "time"

// Member is the local read model of a member owned by the member service.
type Member struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	DeletedAt *time.Time
}

// IsActive reports whether the member has not been deleted.
func (m *Member) IsActive() bool {
	return m.DeletedAt == nil
}
