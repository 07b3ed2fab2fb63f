package domain

import "time"

const (
	MinScore = 0
	MaxScore = 100
)

// Score is the numeric value bound to an opaque code. Once stored it never changes.
type Score struct {
	Code      string    `json:"code"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"-"`
}
