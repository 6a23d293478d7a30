package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses. checked_out and cancelled are terminal.
const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusCheckedIn  = "checked_in"
	BookingStatusCheckedOut = "checked_out"
	BookingStatusCancelled  = "cancelled"
)

const (
	BookingSourceOnline = "online"
	BookingSourceWalkIn = "walk_in"
)

// Booking is one stay request. Its folio is created at check-in, never
// before, and there is at most one open primary folio per booking.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	GuestID    uint `gorm:"index;not null" json:"guest_id"`
	RoomID     uint `gorm:"index;not null" json:"room_id"`
	RoomTypeID uint `gorm:"index;not null" json:"room_type_id"`

	CheckInDate  time.Time `gorm:"type:date;not null;index:idx_booking_dates" json:"check_in_date"`
	CheckOutDate time.Time `gorm:"type:date;not null;index:idx_booking_dates" json:"check_out_date"`

	Source          string `gorm:"size:20;default:walk_in" json:"source"`
	Status          string `gorm:"size:20;default:pending;index" json:"status"`
	SpecialRequests string `gorm:"type:text" json:"special_requests"`

	CreatedByID *uint `gorm:"index" json:"created_by_id,omitempty"`

	// Self-service check-in: single-use token issued at creation, guest
	// submission and staff approval timestamps.
	SelfCheckinToken *string    `gorm:"size:64;uniqueIndex" json:"-"`
	SubmittedAt      *time.Time `json:"submitted_at,omitempty"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`

	Guest     Guest    `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Room      Room     `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	RoomType  RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
	CreatedBy *User    `gorm:"foreignKey:CreatedByID" json:"-"`
	Folios    []Folio  `gorm:"foreignKey:BookingID" json:"folios,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsTerminal reports whether no further transitions are allowed.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCheckedOut || b.Status == BookingStatusCancelled
}

// PrimaryFolio returns the primary folio from preloaded Folios, if any.
func (b *Booking) PrimaryFolio() *Folio {
	for i := range b.Folios {
		if b.Folios[i].IsPrimary {
			return &b.Folios[i]
		}
	}
	return nil
}
