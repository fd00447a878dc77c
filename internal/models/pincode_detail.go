package models

import "time"

// PincodeDetail is one data row of the courier's pincode report table.
type PincodeDetail struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	Pincode      string    `json:"pin_code"`
	BranchName   string    `json:"branch_name"`
	AreaName     string    `json:"area_name"`
	ZoneType     string    `json:"zone_type"`
	DeliveryType string    `json:"delivery_type"`
	TransitDays  string    `json:"transit_days"`
	InsertedAt   time.Time `json:"inserted_at"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// Fields returns the parsed response columns as a flat mapping.
func (d PincodeDetail) Fields() map[string]string {
	return map[string]string{
		"branch_name":   d.BranchName,
		"area_name":     d.AreaName,
		"zone_type":     d.ZoneType,
		"delivery_type": d.DeliveryType,
		"transit_days":  d.TransitDays,
	}
}
