package dto

// SearchSessionResponseDTO is returned when a typeahead session is opened
type SearchSessionResponseDTO struct {
	SessionID string `json:"sessionId"`
}

// TypeaheadRequestDTO is one keystroke's worth of search filters
type TypeaheadRequestDTO struct {
	Keyword    string   `json:"keyword"`
	CategoryID int64    `json:"categoryId,omitempty"`
	Level      string   `json:"level,omitempty"`
	IsFree     *bool    `json:"isFree,omitempty"`
	IsPaid     *bool    `json:"isPaid,omitempty"`
	MinPrice   *float64 `json:"minPrice,omitempty"`
	MaxPrice   *float64 `json:"maxPrice,omitempty"`
	SortBy     string   `json:"sortBy,omitempty"`
	Page       int      `json:"page,omitempty"`
	Size       int      `json:"size,omitempty"`
}

// SessionResultResponseDTO is the latest settled typeahead result. Pending is
// true while a debounced search has not fired or finished yet.
type SessionResultResponseDTO struct {
	Pending bool        `json:"pending"`
	Result  interface{} `json:"result"`
}

// CountResponseDTO is returned by the passive header count endpoints
type CountResponseDTO struct {
	Count int `json:"count"`
}
