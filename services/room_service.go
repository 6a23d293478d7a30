// services/room_service.go
package services

import (
	"errors"
	"fmt"

	"kalongo-backend/apperrors"
	"kalongo-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RoomService manages the room inventory and room types. During an active
// stay room status follows booking transitions; the only independent edit
// allowed here is moving a vacant room in and out of maintenance.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

type RoomInput struct {
	Number     string `json:"number" binding:"required"`
	RoomTypeID *uint  `json:"room_type_id"`
	Floor      string `json:"floor"`
	Notes      string `json:"notes"`
}

func (s *RoomService) ListRooms(status string) ([]models.Room, error) {
	q := s.DB.Preload("RoomType").Order("number")
	if status != "" {
		if !models.IsValidRoomStatus(status) {
			return nil, apperrors.Validationf("unknown room status %q", status)
		}
		q = q.Where("status = ?", status)
	}
	var rooms []models.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) CreateRoom(actor *models.User, in RoomInput) (*models.Room, error) {
	if err := RequirePermission(actor, models.PermManageRooms); err != nil {
		return nil, err
	}
	room := models.Room{
		Number:     in.Number,
		RoomTypeID: in.RoomTypeID,
		Status:     models.RoomStatusVacant,
		Floor:      in.Floor,
		Notes:      in.Notes,
	}
	if err := s.DB.Create(&room).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return nil, apperrors.Validationf("room number %q already exists", in.Number)
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	recordAudit(s.DB, actor, "room.create", "Room", room.ID, nil)
	return &room, nil
}

func (s *RoomService) UpdateRoom(actor *models.User, id uint, in RoomInput) (*models.Room, error) {
	if err := RequirePermission(actor, models.PermManageRooms); err != nil {
		return nil, err
	}
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("room")
		}
		return nil, fmt.Errorf("failed to load room: %w", err)
	}
	room.Number = in.Number
	room.RoomTypeID = in.RoomTypeID
	room.Floor = in.Floor
	room.Notes = in.Notes
	if err := s.DB.Save(&room).Error; err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	recordAudit(s.DB, actor, "room.update", "Room", room.ID, nil)
	return &room, nil
}

// SetMaintenance toggles a room between vacant and maintenance. Reserved
// and occupied rooms cannot be taken offline until the stay ends.
func (s *RoomService) SetMaintenance(actor *models.User, id uint, underMaintenance bool) (*models.Room, error) {
	if err := RequirePermission(actor, models.PermManageRooms); err != nil {
		return nil, err
	}
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("room")
		}
		return nil, fmt.Errorf("failed to load room: %w", err)
	}
	if underMaintenance {
		if room.Status != models.RoomStatusVacant {
			return nil, apperrors.InvalidState(fmt.Sprintf("cannot take a %s room into maintenance", room.Status))
		}
		room.Status = models.RoomStatusMaintenance
	} else {
		if room.Status != models.RoomStatusMaintenance {
			return nil, apperrors.InvalidState("room is not under maintenance")
		}
		room.Status = models.RoomStatusVacant
	}
	if err := s.DB.Model(&room).Update("status", room.Status).Error; err != nil {
		return nil, fmt.Errorf("failed to update room status: %w", err)
	}
	recordAudit(s.DB, actor, "room.set_maintenance", "Room", room.ID, map[string]interface{}{
		"status": room.Status,
	})
	return &room, nil
}

func (s *RoomService) DeleteRoom(actor *models.User, id uint) error {
	if err := RequirePermission(actor, models.PermManageRooms); err != nil {
		return err
	}
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("room")
		}
		return fmt.Errorf("failed to load room: %w", err)
	}
	if room.Status == models.RoomStatusOccupied || room.Status == models.RoomStatusReserved {
		return apperrors.InvalidState(fmt.Sprintf("cannot delete a %s room", room.Status))
	}
	if err := s.DB.Delete(&room).Error; err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	recordAudit(s.DB, actor, "room.delete", "Room", id, nil)
	return nil
}

// ---------- Room types ----------

type RoomTypeInput struct {
	Name              string          `json:"name" binding:"required"`
	Description       string          `json:"description"`
	BasePricePerNight decimal.Decimal `json:"base_price_per_night"`
	IsActive          *bool           `json:"is_active"`
}

func (s *RoomService) ListRoomTypes() ([]models.RoomType, error) {
	var types []models.RoomType
	if err := s.DB.Order("name").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}
	return types, nil
}

func (s *RoomService) CreateRoomType(actor *models.User, in RoomTypeInput) (*models.RoomType, error) {
	if err := RequirePermission(actor, models.PermManageRoomTypes); err != nil {
		return nil, err
	}
	if in.BasePricePerNight.IsNegative() {
		return nil, apperrors.Validation("base_price_per_night cannot be negative")
	}
	rt := models.RoomType{
		Name:              in.Name,
		Description:       in.Description,
		BasePricePerNight: in.BasePricePerNight,
		IsActive:          true,
	}
	if in.IsActive != nil {
		rt.IsActive = *in.IsActive
	}
	if err := s.DB.Create(&rt).Error; err != nil {
		return nil, fmt.Errorf("failed to create room type: %w", err)
	}
	recordAudit(s.DB, actor, "room_type.create", "RoomType", rt.ID, nil)
	return &rt, nil
}

func (s *RoomService) UpdateRoomType(actor *models.User, id uint, in RoomTypeInput) (*models.RoomType, error) {
	if err := RequirePermission(actor, models.PermManageRoomTypes); err != nil {
		return nil, err
	}
	if in.BasePricePerNight.IsNegative() {
		return nil, apperrors.Validation("base_price_per_night cannot be negative")
	}
	var rt models.RoomType
	if err := s.DB.First(&rt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("room type")
		}
		return nil, fmt.Errorf("failed to load room type: %w", err)
	}
	rt.Name = in.Name
	rt.Description = in.Description
	rt.BasePricePerNight = in.BasePricePerNight
	if in.IsActive != nil {
		rt.IsActive = *in.IsActive
	}
	if err := s.DB.Save(&rt).Error; err != nil {
		return nil, fmt.Errorf("failed to update room type: %w", err)
	}
	recordAudit(s.DB, actor, "room_type.update", "RoomType", rt.ID, nil)
	return &rt, nil
}
