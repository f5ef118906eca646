package domain

import (
	"time"
)

// Rate is the conversion factor from Currency to Reference:
// 1 unit of Currency equals Value units of Reference.
type Rate struct {
	Currency  string
	Reference string
	Value     float64
	UpdatedAt time.Time
}
