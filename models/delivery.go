package models

import "errors"

// WeekDays lists the seven selectable delivery day names, Sunday first.
var WeekDays = []string{
	"রবিবার",
	"সোমবার",
	"মঙ্গলবার",
	"বুধবার",
	"বৃহস্পতিবার",
	"শুক্রবার",
	"শনিবার",
}

// DeliveryInfoID is the fixed id of the delivery_info singleton row.
const DeliveryInfoID = 1

// DeliveryInfo is the singleton delivery configuration: which weekdays the
// shop delivers and the flat per-order charge in taka.
type DeliveryInfo struct {
	ID     int      `json:"id"`
	Days   []string `json:"days"`
	Charge int      `json:"charge"`
}

// DefaultDeliveryInfo is used when no row has been saved yet.
func DefaultDeliveryInfo() DeliveryInfo {
	return DeliveryInfo{ID: DeliveryInfoID, Days: []string{"রবিবার"}, Charge: 50}
}

var (
	ErrNoDeliveryDays = errors.New("at least one delivery day is required")
	ErrUnknownDay     = errors.New("unknown delivery day")
	ErrNegativeCharge = errors.New("delivery charge must not be negative")
)

// Validate enforces the singleton's invariants before any save.
func (d DeliveryInfo) Validate() error {
	if len(d.Days) == 0 {
		return ErrNoDeliveryDays
	}
	for _, day := range d.Days {
		known := false
		for _, w := range WeekDays {
			if day == w {
				known = true
				break
			}
		}
		if !known {
			return ErrUnknownDay
		}
	}
	if d.Charge < 0 {
		return ErrNegativeCharge
	}
	return nil
}
