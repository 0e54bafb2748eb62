package model

// Hospital is a facility doctors belong to. City is stored lowercase so the
// nearby search can match case-insensitively.
type Hospital struct {
	Base
	Name  string  `db:"name" json:"name"`
	City  string  `db:"city" json:"city"`
	Email *string `db:"email" json:"email,omitempty"`
	Lat   float64 `db:"lat" json:"lat"`
	Lng   float64 `db:"lng" json:"lng"`
}
