// Package ledger contains the ledger write use cases.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bitbank/ledger/internal/application/adapter"
	"github.com/bitbank/ledger/internal/application/usecase/member"
	"github.com/bitbank/ledger/internal/application/usecase/statistics"
	"github.com/bitbank/ledger/internal/domain/entity"
	domainerror "github.com/bitbank/ledger/internal/domain/error"
	"github.com/bitbank/ledger/internal/domain/valueobject"
)

// MaxDescriptionLength is the maximum allowed length for entry descriptions, in characters.
const MaxDescriptionLength = 255

// RecordEntryInput represents the input for recording a ledger entry.
type RecordEntryInput struct {
	MemberID    int64
	Kind        string
	Amount      decimal.Decimal
	OccurredAt  string // RFC3339 or YYYY-MM-DD
	Description string
	Category    string
	Latitude    string
	Longitude   string
}

// RecordEntryOutput represents the output of recording a ledger entry.
type RecordEntryOutput struct {
	Entry *entity.LedgerEntry
}

// EntryRecordedEvent is the payload published for every recorded entry.
type EntryRecordedEvent struct {
	EntryID    uuid.UUID        `json:"entry_id"`
	MemberID   int64            `json:"member_id"`
	Kind       entity.EntryKind `json:"kind"`
	Amount     decimal.Decimal  `json:"amount"`
	Category   entity.Category  `json:"category"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// RecordEntryUseCase handles recording a ledger entry.
type RecordEntryUseCase struct {
	ledgerRepo  adapter.LedgerRepository
	checkMember *member.CheckMemberUseCase
	cache       statistics.StatisticsCache
	clock       adapter.Clock
}

// NewRecordEntryUseCase creates a new RecordEntryUseCase instance. cache may be nil.
func NewRecordEntryUseCase(
	ledgerRepo adapter.LedgerRepository,
	checkMember *member.CheckMemberUseCase,
	cache statistics.StatisticsCache,
	clock adapter.Clock,
) *RecordEntryUseCase {
	return &RecordEntryUseCase{
		ledgerRepo:  ledgerRepo,
		checkMember: checkMember,
		cache:       cache,
		clock:       clock,
	}
}

// Execute validates and persists the entry together with its outbox event.
func (uc *RecordEntryUseCase) Execute(ctx context.Context, input RecordEntryInput) (*RecordEntryOutput, error) {
	kind := entity.EntryKind(strings.ToLower(strings.TrimSpace(input.Kind)))
	if !kind.IsValid() {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidKind,
			"kind must be: income, expenditure, or transfer",
			domainerror.ErrInvalidKind,
		)
	}

	category := entity.Category(strings.ToUpper(strings.TrimSpace(input.Category)))
	if !kind.AllowsCategory(category) {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidCategory,
			fmt.Sprintf("category %q is not valid for %s, allowed: %v", input.Category, kind, kind.Categories()),
			domainerror.ErrInvalidCategory,
		)
	}

	if input.Amount.IsNegative() || !input.Amount.Equal(input.Amount.Truncate(0)) {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be a non-negative whole number",
			domainerror.ErrInvalidAmount,
		)
	}

	occurredAt, err := parseOccurredAt(input.OccurredAt)
	if err != nil {
		return nil, err
	}

	if utf8.RuneCountInString(input.Description) > MaxDescriptionLength {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidRequest,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	if err := uc.checkMember.Execute(ctx, input.MemberID); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	entry := entity.NewLedgerEntry(
		input.MemberID,
		kind,
		input.Amount,
		occurredAt,
		strings.TrimSpace(input.Description),
		category,
		input.Latitude,
		input.Longitude,
		now,
	)

	payload, err := json.Marshal(EntryRecordedEvent{
		EntryID:    entry.ID,
		MemberID:   entry.MemberID,
		Kind:       entry.Kind,
		Amount:     entry.Amount,
		Category:   entry.Category,
		OccurredAt: entry.OccurredAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode entry event: %w", err)
	}
	event := entity.NewOutboxEvent(entity.EventTypeEntryRecorded, entry.ID, payload, now)

	if err := uc.ledgerRepo.Create(ctx, entry, event); err != nil {
		return nil, domainerror.NewStoreError("record entry", err)
	}

	if uc.cache != nil {
		key := statistics.KeyFor(entry.MemberID, entry.Kind, entry.OccurredAt)
		if err := uc.cache.Invalidate(ctx, key); err != nil {
			slog.Warn("Failed to invalidate cached ledger statistics",
				"error", err,
				"memberID", key.MemberID,
				"kind", key.Kind,
				"month", key.Month,
			)
		}
	}

	slog.Info("Ledger entry recorded", "entryID", entry.ID, "memberID", entry.MemberID, "kind", entry.Kind)

	return &RecordEntryOutput{Entry: entry}, nil
}

// parseOccurredAt accepts an RFC3339 timestamp or a bare calendar date.
func parseOccurredAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, domainerror.NewValidationError(
			domainerror.ErrCodeMissingOccurredAt,
			"occurred_at is required",
			domainerror.ErrMissingOccurredAt,
		)
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(valueobject.DateLayout, raw); err == nil {
		return t, nil
	}
	return time.Time{}, domainerror.NewValidationError(
		domainerror.ErrCodeInvalidDateFormat,
		"occurred_at must be RFC3339 or YYYY-MM-DD",
		domainerror.ErrInvalidDateFormat,
	)
}
