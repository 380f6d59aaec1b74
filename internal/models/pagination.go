package models

// Default listing parameters
const (
	DefaultPage     = 1
	DefaultPageSize = 6
)

// PaginationInfo is the pagination block of a list envelope
type PaginationInfo struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalCount  int `json:"total_count"`
	PerPage     int `json:"per_page"`
}

// NewPaginationInfo creates pagination info. page and pageSize must be >= 1.
func NewPaginationInfo(page, pageSize, totalCount int) *PaginationInfo {
	// same as (totalCount + pageSize - 1) / pageSize without overflowing on huge pageSize
	totalPages := totalCount / pageSize
	if totalCount%pageSize != 0 {
		totalPages++
	}
	return &PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		PerPage:     pageSize,
	}
}

// Paginate returns the page window of items and the pagination info.
// Pages past the end yield an empty, non-nil slice.
func Paginate[T any](items []T, page, pageSize int) ([]T, *PaginationInfo) {
	total := len(items)
	info := NewPaginationInfo(page, pageSize, total)

	start := total
	if page-1 <= total/pageSize {
		start = (page - 1) * pageSize
		if start > total {
			start = total
		}
	}
	end := total
	if pageSize < total-start {
		end = start + pageSize
	}
	window := make([]T, end-start)
	copy(window, items[start:end])
	return window, info
}

// PaginatedResponse is the envelope for list endpoints
type PaginatedResponse struct {
	Success    bool            `json:"success"`
	Data       interface{}     `json:"data"`
	Pagination *PaginationInfo `json:"pagination"`
}

// DataResponse is the envelope for detail and stats endpoints
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// MessageResponse is the envelope for errors and acknowledgements
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
