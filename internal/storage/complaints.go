package storage

import (
	"context"
	"errors"
	"log"

	"complaintwall/backend/internal/models"

	"gorm.io/gorm"
)

// CreateComplaint inserts a new complaint row. A collision on the unique
// complaint number surfaces as ErrDuplicateNumber.
func (s *Service) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	if err := s.DB.WithContext(ctx).Create(c).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateNumber
		}
		log.Printf("ERROR: Failed to create complaint %s: %v", c.ComplaintNumber, err)
		return err
	}
	return nil
}

// GetComplaintByNumber finds a complaint by its public number.
func (s *Service) GetComplaintByNumber(ctx context.Context, number string) (*models.Complaint, error) {
	var c models.Complaint
	err := s.DB.WithContext(ctx).Where("complaint_number = ?", number).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetComplaintByID finds a complaint by primary key.
func (s *Service) GetComplaintByID(ctx context.Context, id uint) (*models.Complaint, error) {
	var c models.Complaint
	err := s.DB.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListComplaints returns all complaints, newest first.
func (s *Service) ListComplaints(ctx context.Context) ([]models.Complaint, error) {
	var complaints []models.Complaint
	if err := s.DB.WithContext(ctx).Order("created_at desc").Find(&complaints).Error; err != nil {
		log.Printf("ERROR: Failed to list complaints: %v", err)
		return nil, err
	}
	return complaints, nil
}

// UpdateComplaint applies the given fields to one complaint row and
// returns the fresh record. Only status and admin_note flow through this
// path; everything else is write-once at creation.
func (s *Service) UpdateComplaint(ctx context.Context, id uint, fields map[string]any) (*models.Complaint, error) {
	res := s.DB.WithContext(ctx).
		Model(&models.Complaint{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		log.Printf("ERROR: Failed to update complaint %d: %v", id, res.Error)
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetComplaintByID(ctx, id)
}

// CountByCategory groups complaint counts by category, highest first.
func (s *Service) CountByCategory(ctx context.Context) ([]CategoryCount, error) {
	var rows []CategoryCount
	err := s.DB.WithContext(ctx).
		Model(&models.Complaint{}).
		Select("category, count(*) as count").
		Group("category").
		Order("count desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByResolution groups complaints into Resolved vs Unresolved.
func (s *Service) CountByResolution(ctx context.Context) ([]ResolutionCount, error) {
	var rows []ResolutionCount
	err := s.DB.WithContext(ctx).
		Model(&models.Complaint{}).
		Select("case when status = ? then 'Resolved' else 'Unresolved' end as status, count(*) as count", models.StatusResolved).
		Group("1").
		Order("count desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByPriority groups complaint counts by priority level.
func (s *Service) CountByPriority(ctx context.Context) ([]PriorityCount, error) {
	var rows []PriorityCount
	err := s.DB.WithContext(ctx).
		Model(&models.Complaint{}).
		Select("priority, count(*) as count").
		Group("priority").
		Order("priority asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
