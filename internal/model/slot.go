package model

import (
	"github.com/google/uuid"
)

type SlotPeriod string

const (
	SlotPeriodMorning   SlotPeriod = "Morning"
	SlotPeriodAfternoon SlotPeriod = "Afternoon"
	SlotPeriodEvening   SlotPeriod = "Evening"
)

// DefaultSlotPeriods returns the three periods materialized per doctor per
// day, in display order.
func DefaultSlotPeriods() []SlotPeriod {
	return []SlotPeriod{SlotPeriodMorning, SlotPeriodAfternoon, SlotPeriodEvening}
}

// Slot is a bookable (doctor, date, period) triple. Date is a plain
// YYYY-MM-DD string; the unique (doctor_id, date, period) index makes lazy
// generation idempotent.
type Slot struct {
	Base
	DoctorID uuid.UUID  `db:"doctor_id" json:"doctorId"`
	Date     string     `db:"date" json:"date"`
	Period   SlotPeriod `db:"period" json:"period"`
	IsBooked bool       `db:"is_booked" json:"isBooked"`
}
