// Package storage provides persistence for users and complaints on top of
// PostgreSQL (via GORM) with Redis for the status cache and rate-limit
// counters.
package storage

import (
	"context"
	"errors"
	"time"

	"complaintwall/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a looked-up row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when registering an already-used email.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrDuplicateNumber is returned when a complaint number collides on
	// insert. The caller regenerates and retries once.
	ErrDuplicateNumber = errors.New("complaint number already exists")
)

// CategoryCount is one row of the by-category analytics grouping.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// ResolutionCount is one row of the resolved-vs-unresolved grouping.
type ResolutionCount struct {
	Status string `json:"status"` // "Resolved" or "Unresolved"
	Count  int64  `json:"count"`
}

// PriorityCount is one row of the by-priority grouping.
type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int64  `json:"count"`
}

type Storage interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, id, hash string) error

	// Complaints
	CreateComplaint(ctx context.Context, c *models.Complaint) error
	GetComplaintByNumber(ctx context.Context, number string) (*models.Complaint, error)
	GetComplaintByID(ctx context.Context, id uint) (*models.Complaint, error)
	ListComplaints(ctx context.Context) ([]models.Complaint, error)
	UpdateComplaint(ctx context.Context, id uint, fields map[string]any) (*models.Complaint, error)

	// Analytics (read-only)
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
	CountByResolution(ctx context.Context) ([]ResolutionCount, error)
	CountByPriority(ctx context.Context) ([]PriorityCount, error)

	// Status cache (no-ops without Redis)
	GetCachedStatus(ctx context.Context, number string) (string, error)
	SetCachedStatus(ctx context.Context, number, payload string, ttl time.Duration) error
	InvalidateStatus(ctx context.Context, number string) error

	// Rate limiting (always allows without Redis)
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Service implements Storage. Redis may be nil (admin CLI, tests); cache
// and rate-limit methods degrade to no-ops then.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// NewService creates the storage service.
func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{DB: db, Redis: rdb}
}
