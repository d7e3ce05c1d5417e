package dto

// TrackRequest records one check-in for an entity. Date defaults to today
// on the server when empty.
type TrackRequest struct {
	Date         string  `json:"date,omitempty"` // yyyy-MM-dd
	Value        int     `json:"value,omitempty"`
	DecimalValue float64 `json:"decimalValue,omitempty"`
	Note         string  `json:"note,omitempty"`
}
