package pipeline

import (
	"sort"
	"strings"

	"github.com/debtwatch/backend/internal/models"
)

// ViewState carries every knob of the transaction table explicitly. It is
// built from request parameters and passed into QueryView; nothing about the
// table lives in package state.
type ViewState struct {
	Filter   string `json:"filter" validate:"omitempty,oneof=all given returned"`
	Search   string `json:"search"`
	Sort     string `json:"sort" validate:"omitempty,oneof=asc desc"`
	Page     int    `json:"page" validate:"omitempty,gte=1"`
	PageSize int    `json:"pageSize" validate:"omitempty,gte=1,lte=100"`
}

// ViewPage is one rendered page of the transaction table.
type ViewPage struct {
	Items      []models.Classified `json:"items"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"totalPages"`
	TotalItems int                 `json:"totalItems"`
}

// QueryView filters, searches, sorts and paginates the classified sequence.
// It never mutates its input.
func QueryView(classified []models.Classified, state ViewState) ViewPage {
	if state.Filter == "" {
		state.Filter = "all"
	}
	if state.Sort == "" {
		state.Sort = "desc"
	}
	if state.Page < 1 {
		state.Page = 1
	}
	if state.PageSize < 1 {
		state.PageSize = 10
	}

	search := strings.ToLower(state.Search)
	filtered := make([]models.Classified, 0, len(classified))
	for _, c := range classified {
		if state.Filter == "given" && c.Kind != models.LoanGiven {
			continue
		}
		if state.Filter == "returned" && c.Kind != models.LoanReturned {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Note), search) {
			continue
		}
		filtered = append(filtered, c)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if state.Sort == "asc" {
			return filtered[i].RecordedAt.Before(filtered[j].RecordedAt)
		}
		return filtered[j].RecordedAt.Before(filtered[i].RecordedAt)
	})

	totalItems := len(filtered)
	totalPages := (totalItems + state.PageSize - 1) / state.PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if state.Page > totalPages {
		state.Page = totalPages
	}

	start := (state.Page - 1) * state.PageSize
	end := start + state.PageSize
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return ViewPage{
		Items:      filtered[start:end],
		Page:       state.Page,
		TotalPages: totalPages,
		TotalItems: totalItems,
	}
}
