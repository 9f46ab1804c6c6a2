package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bitbank/ledger/internal/application/usecase/search"
	"github.com/bitbank/ledger/internal/domain/entity"
)

// RecordEntryRequest represents the request body for recording a ledger entry.
// MemberID may be omitted when the caller is authenticated.
type RecordEntryRequest struct {
	MemberID    *int64          `json:"member_id,omitempty"`
	Kind        string          `json:"kind" binding:"required,ledger_kind"`
	Amount      decimal.Decimal `json:"amount" binding:"integral_amount"`
	OccurredAt  string          `json:"occurred_at" binding:"required"`
	Description string          `json:"description" binding:"max=255"`
	Category    string          `json:"category" binding:"required"`
	Latitude    string          `json:"latitude,omitempty" binding:"omitempty,latitude"`
	Longitude   string          `json:"longitude,omitempty" binding:"omitempty,longitude"`
}

// SearchEntriesRequest represents the request body for a ledger search.
// Every field except member_id is optional.
type SearchEntriesRequest struct {
	MemberID         *int64   `json:"member_id,omitempty"`
	Keyword          string   `json:"keyword,omitempty"`
	SearchDateType   string   `json:"search_date_type,omitempty"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	Kind             string   `json:"kind,omitempty"`
	IncomeTypes      []string `json:"income_types,omitempty"`
	ExpenditureTypes []string `json:"expenditure_types,omitempty"`
	TransferTypes    []string `json:"transfer_types,omitempty"`
}

// ToSearchRequest converts the DTO into the use case request.
func (r SearchEntriesRequest) ToSearchRequest() search.SearchRequest {
	return search.SearchRequest{
		MemberID:         r.MemberID,
		Keyword:          r.Keyword,
		SearchDateType:   r.SearchDateType,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		Kind:             r.Kind,
		IncomeTypes:      r.IncomeTypes,
		ExpenditureTypes: r.ExpenditureTypes,
		TransferTypes:    r.TransferTypes,
	}
}

// LedgerEntryResponse represents a single ledger entry in API responses.
type LedgerEntryResponse struct {
	ID          string `json:"id"`
	MemberID    int64  `json:"member_id"`
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
	OccurredAt  string `json:"occurred_at"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Latitude    string `json:"latitude,omitempty"`
	Longitude   string `json:"longitude,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// KindEntriesResponse groups the matched entries of one kind.
type KindEntriesResponse struct {
	Kind    string                `json:"kind"`
	Variant int                   `json:"variant"`
	Filters string                `json:"filters"`
	Count   int                   `json:"count"`
	Entries []LedgerEntryResponse `json:"entries"`
}

// SearchEntriesResponse represents the response of a ledger search.
type SearchEntriesResponse struct {
	MemberID  int64                 `json:"member_id"`
	StartDate string                `json:"start_date,omitempty"`
	EndDate   string                `json:"end_date,omitempty"`
	Results   []KindEntriesResponse `json:"results"`
	Total     int                   `json:"total"`
}

// ToLedgerEntryResponse converts a domain LedgerEntry entity to a LedgerEntryResponse DTO.
func ToLedgerEntryResponse(entry *entity.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:          entry.ID.String(),
		MemberID:    entry.MemberID,
		Kind:        string(entry.Kind),
		Amount:      entry.Amount.String(),
		OccurredAt:  entry.OccurredAt.UTC().Format(time.RFC3339),
		Description: entry.Description,
		Category:    string(entry.Category),
		Latitude:    entry.Latitude,
		Longitude:   entry.Longitude,
		CreatedAt:   entry.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ToSearchEntriesResponse converts the search output to a SearchEntriesResponse DTO.
func ToSearchEntriesResponse(output *search.SearchEntriesOutput) SearchEntriesResponse {
	response := SearchEntriesResponse{
		MemberID: output.Criteria.MemberID,
		Results:  make([]KindEntriesResponse, 0, len(output.Results)),
		Total:    output.Total(),
	}
	if r := output.Criteria.DateRange; r != nil {
		response.StartDate = r.Start.Format("2006-01-02")
		response.EndDate = r.End.Format("2006-01-02")
	}

	for _, result := range output.Results {
		entries := make([]LedgerEntryResponse, len(result.Entries))
		for i, entry := range result.Entries {
			entries[i] = ToLedgerEntryResponse(entry)
		}
		response.Results = append(response.Results, KindEntriesResponse{
			Kind:    string(result.Kind),
			Variant: result.Variant.Number(),
			Filters: result.Variant.String(),
			Count:   len(entries),
			Entries: entries,
		})
	}

	return response
}
