package model

// Budget is a spending ceiling for one calendar month.
// Month is zero-based (0 = January), matching the backup wire format.
type Budget struct {
	ID     int64   `json:"id"`
	Amount float64 `json:"amount"`
	Month  int     `json:"month"`
	Year   int     `json:"year"`
}
