package models

import (
	"gorm.io/gorm"
)

// Room status values. Occupied/vacant are driven by booking transitions;
// only maintenance is edited independently.
const (
	RoomStatusVacant      = "vacant"
	RoomStatusOccupied    = "occupied"
	RoomStatusReserved    = "reserved"
	RoomStatusMaintenance = "maintenance"
)

type Room struct {
	gorm.Model

	RoomTypeID *uint  `gorm:"column:room_type_id;index" json:"room_type_id,omitempty"`
	Number     string `gorm:"column:number;uniqueIndex;type:varchar(16)" json:"number"`
	Status     string `gorm:"size:20;default:vacant" json:"status"`
	Floor      string `gorm:"type:varchar(8)" json:"floor"`
	Notes      string `gorm:"type:text" json:"notes"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
}

func IsValidRoomStatus(s string) bool {
	switch s {
	case RoomStatusVacant, RoomStatusOccupied, RoomStatusReserved, RoomStatusMaintenance:
		return true
	}
	return false
}
