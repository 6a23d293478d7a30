// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"kalongo-backend/apperrors"
	"kalongo-backend/models"
	"kalongo-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService owns the booking lifecycle and its 1:1 binding to a folio.
// Room status is always a side effect of booking transitions here, never
// edited independently during an active stay.
type BookingService struct {
	DB     *gorm.DB
	Folios *FolioService
}

func NewBookingService(db *gorm.DB, folios *FolioService) *BookingService {
	return &BookingService{DB: db, Folios: folios}
}

// canCheckIn: check-in is permitted only from pending or confirmed.
func canCheckIn(status string) bool {
	return status == models.BookingStatusPending || status == models.BookingStatusConfirmed
}

// canCancel: cancelled is reachable from any non-terminal state.
func canCancel(status string) bool {
	return status != models.BookingStatusCheckedOut && status != models.BookingStatusCancelled
}

type CreateBookingInput struct {
	GuestID         uint   `json:"guest_id" binding:"required"`
	RoomID          uint   `json:"room_id" binding:"required"`
	RoomTypeID      uint   `json:"room_type_id" binding:"required"`
	CheckInDate     string `json:"check_in_date" binding:"required"`
	CheckOutDate    string `json:"check_out_date" binding:"required"`
	Source          string `json:"source"`
	SpecialRequests string `json:"special_requests"`
}

func parseBookingDates(in CreateBookingInput) (time.Time, time.Time, error) {
	ci, err := time.Parse("2006-01-02", in.CheckInDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.Validationf("invalid check_in_date: %v", err)
	}
	co, err := time.Parse("2006-01-02", in.CheckOutDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.Validationf("invalid check_out_date: %v", err)
	}
	if co.Before(ci) {
		return time.Time{}, time.Time{}, apperrors.Validation("check_out_date must not be before check_in_date")
	}
	return ci, co, nil
}

// Create makes a booking in pending with a fresh single-use self-service
// token. No folio exists until check-in.
func (s *BookingService) Create(actor *models.User, in CreateBookingInput) (*models.Booking, error) {
	if err := RequirePermission(actor, models.PermCreateBooking); err != nil {
		return nil, err
	}

	ci, co, err := parseBookingDates(in)
	if err != nil {
		return nil, err
	}

	source := in.Source
	if source == "" {
		source = models.BookingSourceWalkIn
	}
	if source != models.BookingSourceOnline && source != models.BookingSourceWalkIn {
		return nil, apperrors.Validationf("invalid source %q", source)
	}

	var guest models.Guest
	if err := s.DB.First(&guest, in.GuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("guest")
		}
		return nil, fmt.Errorf("db error checking guest: %w", err)
	}
	var room models.Room
	if err := s.DB.First(&room, in.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("room")
		}
		return nil, fmt.Errorf("db error checking room: %w", err)
	}
	var roomType models.RoomType
	if err := s.DB.First(&roomType, in.RoomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("room type")
		}
		return nil, fmt.Errorf("db error checking room type: %w", err)
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate self-checkin token: %w", err)
	}

	booking := models.Booking{
		GuestID:          in.GuestID,
		RoomID:           in.RoomID,
		RoomTypeID:       in.RoomTypeID,
		CheckInDate:      ci,
		CheckOutDate:     co,
		Source:           source,
		Status:           models.BookingStatusPending,
		SpecialRequests:  in.SpecialRequests,
		SelfCheckinToken: &token,
	}
	if actor != nil {
		id := actor.ID
		booking.CreatedByID = &id
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		// Mark a vacant room reserved so the board reflects the booking.
		if room.Status == models.RoomStatusVacant {
			if err := tx.Model(&models.Room{}).Where("id = ?", room.ID).
				Update("status", models.RoomStatusReserved).Error; err != nil {
				return fmt.Errorf("failed to reserve room: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	recordAudit(s.DB, actor, "booking.create", "Booking", booking.ID, map[string]interface{}{"room_id": booking.RoomID})

	if err := s.DB.Preload("Guest").Preload("Room").Preload("RoomType").First(&booking, booking.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}
	return &booking, nil
}

// List returns bookings. Booking data belongs to the rooms/front office
// sectors; other departments see nothing unless the actor is a manager.
func (s *BookingService) List(actor *models.User, status string) ([]models.Booking, error) {
	if err := RequirePermission(actor, models.PermViewBookings); err != nil {
		return nil, err
	}
	visible := VisibleSectors(actor)
	if visible != nil {
		allowed := false
		for _, sec := range visible {
			if sec == models.SectorRooms || sec == models.SectorFrontOffice {
				allowed = true
			}
		}
		if !allowed {
			return []models.Booking{}, nil
		}
	}

	q := s.DB.Preload("Guest").Preload("Room").Preload("RoomType").Preload("Folios").
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.Booking
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

func (s *BookingService) GetByID(actor *models.User, id uint) (*models.Booking, error) {
	if err := RequirePermission(actor, models.PermViewBookings); err != nil {
		return nil, err
	}
	var booking models.Booking
	if err := s.DB.Preload("Guest").Preload("Room").Preload("RoomType").Preload("Folios").
		First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking")
		}
		return nil, fmt.Errorf("failed to retrieve booking: %w", err)
	}
	return &booking, nil
}

// CheckIn opens the primary folio, occupies the room and moves the booking
// to checked_in, all in one transaction. The booking row is locked so a
// concurrent second check-in re-reads the updated status and fails.
func (s *BookingService) CheckIn(actor *models.User, bookingID uint) (*models.Folio, error) {
	if err := RequirePermission(actor, models.PermCreateBooking); err != nil {
		return nil, err
	}

	var folio models.Folio
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("booking")
			}
			return err
		}

		if !canCheckIn(booking.Status) {
			return apperrors.InvalidState(fmt.Sprintf("cannot check in booking in status %q", booking.Status))
		}

		folio = models.Folio{
			BookingID: booking.ID,
			IsPrimary: true,
			Status:    models.FolioStatusOpen,
		}
		if err := tx.Create(&folio).Error; err != nil {
			return fmt.Errorf("failed to create folio: %w", err)
		}

		if err := tx.Model(&models.Room{}).Where("id = ?", booking.RoomID).
			Update("status", models.RoomStatusOccupied).Error; err != nil {
			return fmt.Errorf("failed to update room status: %w", err)
		}
		if err := tx.Model(&booking).Update("status", models.BookingStatusCheckedIn).Error; err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	recordAudit(s.DB, actor, "booking.check_in", "Booking", bookingID, map[string]interface{}{"folio_id": folio.ID})
	return &folio, nil
}

// InvoiceSnapshot is a read-time projection computed at check-out, not a
// stored entity.
type InvoiceSnapshot struct {
	TotalCharges  string `json:"total_charges"`
	TotalPayments string `json:"total_payments"`
	Balance       string `json:"balance"`
}

// CheckOut closes the folio, vacates the room and moves the booking to
// checked_out atomically, returning the folio and an invoice snapshot.
func (s *BookingService) CheckOut(actor *models.User, bookingID uint) (*models.Folio, *InvoiceSnapshot, error) {
	if err := RequirePermission(actor, models.PermCheckOutBooking); err != nil {
		return nil, nil, err
	}

	var folio models.Folio
	var snapshot InvoiceSnapshot
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("booking")
			}
			return err
		}

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("booking_id = ? AND is_primary = ?", booking.ID, true).
			First(&folio).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNoFolio
			}
			return err
		}
		if folio.Status == models.FolioStatusClosed {
			return apperrors.ErrAlreadyClosed
		}

		now := time.Now().UTC()
		if err := tx.Model(&folio).Updates(map[string]interface{}{
			"status":    models.FolioStatusClosed,
			"closed_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to close folio: %w", err)
		}
		folio.Status = models.FolioStatusClosed
		folio.ClosedAt = &now

		if err := tx.Model(&models.Room{}).Where("id = ?", booking.RoomID).
			Update("status", models.RoomStatusVacant).Error; err != nil {
			return fmt.Errorf("failed to update room status: %w", err)
		}
		if err := tx.Model(&booking).Update("status", models.BookingStatusCheckedOut).Error; err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		totals, err := s.Folios.totalsTx(tx, folio.ID)
		if err != nil {
			return err
		}
		snapshot = InvoiceSnapshot{
			TotalCharges:  totals.TotalCharges.String(),
			TotalPayments: totals.TotalPayments.String(),
			Balance:       totals.Balance.String(),
		}
		return nil
	})
	if txErr != nil {
		return nil, nil, txErr
	}

	recordAudit(s.DB, actor, "booking.check_out", "Booking", bookingID, map[string]interface{}{"folio_id": folio.ID})
	return &folio, &snapshot, nil
}

// Cancel moves any non-terminal booking to cancelled, releasing the room
// and closing an open folio if check-in had already happened.
func (s *BookingService) Cancel(actor *models.User, bookingID uint) (*models.Booking, error) {
	if err := RequirePermission(actor, models.PermCancelBooking); err != nil {
		return nil, err
	}

	var booking models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("booking")
			}
			return err
		}
		if !canCancel(booking.Status) {
			return apperrors.InvalidState(fmt.Sprintf("cannot cancel booking in status %q", booking.Status))
		}

		if err := tx.Model(&booking).Update("status", models.BookingStatusCancelled).Error; err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}
		booking.Status = models.BookingStatusCancelled

		now := time.Now().UTC()
		if err := tx.Model(&models.Folio{}).
			Where("booking_id = ? AND status = ?", booking.ID, models.FolioStatusOpen).
			Updates(map[string]interface{}{"status": models.FolioStatusClosed, "closed_at": now}).Error; err != nil {
			return fmt.Errorf("failed to close folio: %w", err)
		}

		if err := tx.Model(&models.Room{}).
			Where("id = ? AND status IN ?", booking.RoomID, []string{models.RoomStatusReserved, models.RoomStatusOccupied}).
			Update("status", models.RoomStatusVacant).Error; err != nil {
			return fmt.Errorf("failed to release room: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	recordAudit(s.DB, actor, "booking.cancel", "Booking", bookingID, nil)
	return &booking, nil
}

// ---------- Self-service check-in (public, token-gated) ----------

// FindByToken fetches a booking by its self-service token. Public.
func (s *BookingService) FindByToken(token string) (*models.Booking, error) {
	if token == "" {
		return nil, apperrors.NotFound("booking")
	}
	var booking models.Booking
	if err := s.DB.Preload("Guest").Preload("Room").Preload("RoomType").
		Where("self_checkin_token = ?", token).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking")
		}
		return nil, fmt.Errorf("failed to find booking by token: %w", err)
	}
	return &booking, nil
}

type SelfCheckinInput struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	IDType      string `json:"id_type"`
	IDNumber    string `json:"id_number"`
	Nationality string `json:"nationality"`
}

// SubmitByToken lets the guest update their own profile exactly once.
// Booking status is untouched; staff approval and check-in come later.
func (s *BookingService) SubmitByToken(token string, in SelfCheckinInput) (*models.Booking, error) {
	var booking models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("self_checkin_token = ?", token).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("booking")
			}
			return err
		}
		if booking.SubmittedAt != nil {
			return apperrors.ErrDuplicateSubmission
		}

		updates := map[string]interface{}{}
		if in.FullName != "" {
			updates["full_name"] = in.FullName
		}
		if in.Email != "" {
			updates["email"] = in.Email
		}
		if in.Phone != "" {
			updates["phone"] = in.Phone
		}
		if in.IDType != "" {
			updates["id_type"] = in.IDType
		}
		if in.IDNumber != "" {
			updates["id_number"] = in.IDNumber
		}
		if in.Nationality != "" {
			updates["nationality"] = in.Nationality
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Guest{}).Where("id = ?", booking.GuestID).
				Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update guest: %w", err)
			}
		}

		now := time.Now().UTC()
		if err := tx.Model(&booking).Update("submitted_at", now).Error; err != nil {
			return fmt.Errorf("failed to mark submission: %w", err)
		}
		booking.SubmittedAt = &now
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &booking, nil
}

// Approve marks the guest's self-service submission approved. It does not
// change booking status; check-in stays a separate staff action.
func (s *BookingService) Approve(actor *models.User, bookingID uint) (*models.Booking, error) {
	if err := RequirePermission(actor, models.PermCreateBooking); err != nil {
		return nil, err
	}
	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking")
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	now := time.Now().UTC()
	if err := s.DB.Model(&booking).Update("approved_at", now).Error; err != nil {
		return nil, fmt.Errorf("failed to approve submission: %w", err)
	}
	booking.ApprovedAt = &now
	recordAudit(s.DB, actor, "booking.approve_submission", "Booking", bookingID, nil)
	return &booking, nil
}
