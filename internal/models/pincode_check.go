package models

import (
	"encoding/json"
	"time"
)

// PincodeCheck records the outcome of processing one pincode. Checks are
// append-only; rerunning the collector on a code appends a superseding check.
type PincodeCheck struct {
	ID           uint            `gorm:"primaryKey" json:"-"`
	Pincode      string          `json:"pin_code"`
	Status       Status          `json:"status"`
	Reason       string          `json:"reason,omitempty"`
	DeliveryZone string          `json:"delivery_zone,omitempty"`
	RawFields    json.RawMessage `gorm:"type:jsonb" json:"raw_fields,omitempty"`
	CheckedAt    time.Time       `json:"checked_at"`
	CreatedAt    time.Time       `json:"-"`
	UpdatedAt    time.Time       `json:"-"`
}

// LatestChecks collapses a check list to the newest check per pincode.
// Order of first appearance is preserved; for equal timestamps the later
// entry wins, matching append order.
func LatestChecks(checks []PincodeCheck) []PincodeCheck {
	byCode := make(map[string]int, len(checks))
	out := make([]PincodeCheck, 0, len(checks))

	for _, check := range checks {
		i, seen := byCode[check.Pincode]
		if !seen {
			byCode[check.Pincode] = len(out)
			out = append(out, check)
			continue
		}
		if !check.CheckedAt.Before(out[i].CheckedAt) {
			out[i] = check
		}
	}

	return out
}
