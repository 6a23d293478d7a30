// services/guest_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"kalongo-backend/apperrors"
	"kalongo-backend/models"

	"gorm.io/gorm"
)

// GuestService manages guest profiles. Guests are never hard-deleted;
// bookings keep pointing at the profile forever.
type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

type GuestInput struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	IDType      string `json:"id_type"`
	IDNumber    string `json:"id_number"`
	Nationality string `json:"nationality"`
	Address     string `json:"address"`
}

func (s *GuestService) List(actor *models.User, search string) ([]models.Guest, error) {
	if err := RequirePermission(actor, models.PermViewGuests); err != nil {
		return nil, err
	}
	q := s.DB.Order("id DESC")
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + search + "%"
		q = q.Where("full_name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}
	var guests []models.Guest
	if err := q.Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	return guests, nil
}

func (s *GuestService) GetByID(actor *models.User, id uint) (*models.Guest, error) {
	if err := RequirePermission(actor, models.PermViewGuests); err != nil {
		return nil, err
	}
	var guest models.Guest
	if err := s.DB.First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("guest")
		}
		return nil, fmt.Errorf("failed to load guest: %w", err)
	}
	return &guest, nil
}

func (s *GuestService) Create(actor *models.User, in GuestInput) (*models.Guest, error) {
	if err := RequirePermission(actor, models.PermViewGuests); err != nil {
		return nil, err
	}
	guest := models.Guest{
		FullName:    in.FullName,
		Email:       in.Email,
		Phone:       in.Phone,
		IDType:      in.IDType,
		IDNumber:    in.IDNumber,
		Nationality: in.Nationality,
		Address:     in.Address,
	}
	if err := s.DB.Create(&guest).Error; err != nil {
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}
	recordAudit(s.DB, actor, "guest.create", "Guest", guest.ID, nil)
	return &guest, nil
}

func (s *GuestService) Update(actor *models.User, id uint, in GuestInput) (*models.Guest, error) {
	if err := RequirePermission(actor, models.PermViewGuests); err != nil {
		return nil, err
	}
	var guest models.Guest
	if err := s.DB.First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("guest")
		}
		return nil, fmt.Errorf("failed to load guest: %w", err)
	}
	guest.FullName = in.FullName
	guest.Email = in.Email
	guest.Phone = in.Phone
	guest.IDType = in.IDType
	guest.IDNumber = in.IDNumber
	guest.Nationality = in.Nationality
	guest.Address = in.Address
	if err := s.DB.Save(&guest).Error; err != nil {
		return nil, fmt.Errorf("failed to update guest: %w", err)
	}
	recordAudit(s.DB, actor, "guest.update", "Guest", guest.ID, nil)
	return &guest, nil
}

// BookingHistory lists the guest's bookings newest first.
func (s *GuestService) BookingHistory(actor *models.User, guestID uint) ([]models.Booking, error) {
	if err := RequirePermission(actor, models.PermViewGuests); err != nil {
		return nil, err
	}
	var bookings []models.Booking
	if err := s.DB.Preload("Room").Preload("RoomType").
		Where("guest_id = ?", guestID).Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to load booking history: %w", err)
	}
	return bookings, nil
}
