// internal/services/contact_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/javajoker/orders-backend/internal/models"
	"github.com/javajoker/orders-backend/internal/utils"
)

type ContactService struct {
	db *gorm.DB
}

type CreateContactRequest struct {
	City      string `json:"city" validate:"required,max=50"`
	Street    string `json:"street" validate:"required,max=100"`
	House     string `json:"house" validate:"max=15"`
	Structure string `json:"structure" validate:"max=15"`
	Building  string `json:"building" validate:"max=15"`
	Apartment string `json:"apartment" validate:"max=15"`
	Phone     string `json:"phone" validate:"required,max=20"`
}

// UpdateContactRequest identifies the contact by ID; nil fields are left untouched.
type UpdateContactRequest struct {
	ID        uint    `json:"id" validate:"required"`
	City      *string `json:"city" validate:"omitempty,max=50"`
	Street    *string `json:"street" validate:"omitempty,max=100"`
	House     *string `json:"house" validate:"omitempty,max=15"`
	Structure *string `json:"structure" validate:"omitempty,max=15"`
	Building  *string `json:"building" validate:"omitempty,max=15"`
	Apartment *string `json:"apartment" validate:"omitempty,max=15"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

func (s *ContactService) List(ctx context.Context, userID uint) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

func (s *ContactService) Create(ctx context.Context, userID uint, req *CreateContactRequest) (*models.Contact, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	contact := &models.Contact{
		UserID:    userID,
		City:      req.City,
		Street:    req.Street,
		House:     req.House,
		Structure: req.Structure,
		Building:  req.Building,
		Apartment: req.Apartment,
		Phone:     req.Phone,
	}

	if err := s.db.WithContext(ctx).Create(contact).Error; err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	return contact, nil
}

// Update modifies a contact owned by userID. Contacts of other users are reported as not found.
func (s *ContactService) Update(ctx context.Context, userID uint, req *UpdateContactRequest) (*models.Contact, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var contact models.Contact
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", req.ID, userID).First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{}
	setIfPresent(updates, "city", req.City)
	setIfPresent(updates, "street", req.Street)
	setIfPresent(updates, "house", req.House)
	setIfPresent(updates, "structure", req.Structure)
	setIfPresent(updates, "building", req.Building)
	setIfPresent(updates, "apartment", req.Apartment)
	setIfPresent(updates, "phone", req.Phone)

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&contact).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update contact: %w", err)
		}
	}

	return &contact, nil
}

// Delete removes the listed contacts owned by userID and returns how many were deleted.
func (s *ContactService) Delete(ctx context.Context, userID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := s.db.WithContext(ctx).
		Where("id IN ? AND user_id = ?", ids, userID).
		Delete(&models.Contact{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete contacts: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func setIfPresent(updates map[string]interface{}, column string, value *string) {
	if value != nil {
		updates[column] = *value
	}
}
