// Package complaint implements the complaint lifecycle: submission with
// number generation, the public status lookup, admin status transitions
// and authorization-scoped attachment retrieval.
package complaint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"complaintwall/backend/internal/auth"
	"complaintwall/backend/internal/config"
	"complaintwall/backend/internal/feed"
	"complaintwall/backend/internal/filestore"
	"complaintwall/backend/internal/models"
	"complaintwall/backend/internal/storage"
)

// FileStore is the slice of the file area the service needs.
type FileStore interface {
	Save(originalName, mimeType string, r io.Reader) (models.Attachment, error)
	Open(att models.Attachment) (io.ReadCloser, error)
}

// Notifier delivers the resolution notice. Called in a detached
// goroutine; errors are logged, never returned to the update caller.
type Notifier interface {
	NotifyResolved(c *models.Complaint, note string) error
}

// Alerter hears about fresh submissions (admin Telegram channel).
type Alerter interface {
	ComplaintSubmitted(c *models.Complaint)
}

// Publisher pushes lifecycle events to the admin live feed.
type Publisher interface {
	Publish(event feed.Event)
}

// Service orchestrates the complaint workflow over its collaborators.
// Mailer, Alerter and Feed may be nil; the corresponding side effect is
// then skipped.
type Service struct {
	Storage storage.Storage
	Files   FileStore
	Mailer  Notifier
	Alerter Alerter
	Feed    Publisher
}

// NewService creates the lifecycle service.
func NewService(s storage.Storage, files FileStore) *Service {
	return &Service{Storage: s, Files: files}
}

// Upload is an incoming attachment stream plus its client-supplied
// metadata. Validation of MIME type and size happens at the HTTP
// boundary before the stream reaches the service.
type Upload struct {
	OriginalName string
	MIMEType     string
	Reader       io.Reader
}

// SubmitInput carries one submission. SubmitterID is nil for anonymous
// complaints and never changes afterwards.
type SubmitInput struct {
	Category     string
	Description  string
	Priority     string
	ContactEmail string
	ContactPhone string
	SubmitterID  *string
	File         *Upload
}

// Submit validates and stores a new complaint. The attachment (if any) is
// persisted before the record; a duplicate complaint number triggers
// exactly one regeneration retry before surfacing ErrConflict.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*models.Complaint, error) {
	if in.Category == "" || in.Description == "" || in.Priority == "" {
		return nil, fmt.Errorf("%w: missing required fields: category, description, priority", ErrValidation)
	}
	priority, ok := models.ParsePriority(in.Priority)
	if !ok {
		return nil, fmt.Errorf("%w: invalid priority, must be High, Medium, or Low", ErrValidation)
	}

	c := &models.Complaint{
		ComplaintNumber: NewNumber(),
		SubmitterID:     in.SubmitterID,
		Category:        in.Category,
		Description:     in.Description,
		Priority:        priority,
		Status:          models.StatusOpen,
		ContactEmail:    in.ContactEmail,
		ContactPhone:    in.ContactPhone,
	}

	if in.File != nil {
		att, err := s.Files.Save(in.File.OriginalName, in.File.MIMEType, in.File.Reader)
		if err != nil {
			return nil, fmt.Errorf("store attachment: %w", err)
		}
		c.File = att
	}

	err := s.Storage.CreateComplaint(ctx, c)
	if errors.Is(err, storage.ErrDuplicateNumber) {
		c.ComplaintNumber = NewNumber()
		err = s.Storage.CreateComplaint(ctx, c)
		if errors.Is(err, storage.ErrDuplicateNumber) {
			return nil, ErrConflict
		}
	}
	if err != nil {
		return nil, err
	}

	s.publish(feed.EventSubmitted, c)
	if s.Alerter != nil {
		go s.Alerter.ComplaintSubmitted(c)
	}

	return c, nil
}

// GetPublicStatus returns the submitter-safe projection for a complaint
// number, serving from the Redis cache when possible.
func (s *Service) GetPublicStatus(ctx context.Context, number string) (models.PublicStatus, error) {
	if payload, err := s.Storage.GetCachedStatus(ctx, number); err == nil && payload != "" {
		var view models.PublicStatus
		if err := json.Unmarshal([]byte(payload), &view); err == nil {
			return view, nil
		}
	}

	c, err := s.Storage.GetComplaintByNumber(ctx, number)
	if errors.Is(err, storage.ErrNotFound) {
		return models.PublicStatus{}, ErrNotFound
	}
	if err != nil {
		return models.PublicStatus{}, err
	}

	view := c.PublicView()
	if payload, err := json.Marshal(view); err == nil {
		if err := s.Storage.SetCachedStatus(ctx, number, string(payload), config.StatusCacheTTL); err != nil {
			log.Printf("WARN: failed to cache status for %s: %v", number, err)
		}
	}
	return view, nil
}

// ListAll returns every complaint, newest first. Role gating happens at
// the middleware layer.
func (s *Service) ListAll(ctx context.Context) ([]models.Complaint, error) {
	return s.Storage.ListComplaints(ctx)
}

// UpdateInput carries an admin update; nil fields are left untouched.
type UpdateInput struct {
	Status    *string
	AdminNote *string
}

// UpdateStatus applies an admin update to one complaint. Any target
// status is accepted from any current state (Resolved complaints may be
// reopened). A transition to Resolved with a contact email on file fires
// one detached notification attempt whose outcome never affects the
// caller.
func (s *Service) UpdateStatus(ctx context.Context, id uint, in UpdateInput) (*models.Complaint, error) {
	if in.Status == nil && in.AdminNote == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}

	fields := map[string]any{}
	var resolved bool
	if in.Status != nil {
		status, ok := models.ParseStatus(*in.Status)
		if !ok {
			return nil, fmt.Errorf("%w: invalid status, must be Open, Under Review, or Resolved", ErrValidation)
		}
		fields["status"] = status
		resolved = status == models.StatusResolved
	}
	if in.AdminNote != nil {
		fields["admin_note"] = *in.AdminNote
	}

	updated, err := s.Storage.UpdateComplaint(ctx, id, fields)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.Storage.InvalidateStatus(ctx, updated.ComplaintNumber); err != nil {
		log.Printf("WARN: failed to invalidate status cache for %s: %v", updated.ComplaintNumber, err)
	}
	s.publish(feed.EventStatusUpdated, updated)

	if resolved && updated.ContactEmail != "" && s.Mailer != nil {
		note := updated.AdminNote
		c := *updated
		// Detached from the request: committed update first, one delivery
		// attempt after, failure logged only.
		go func() {
			if err := s.Mailer.NotifyResolved(&c, note); err != nil {
				log.Printf("ERROR: resolution notification failed for %s: %v", c.ComplaintNumber, err)
			}
		}()
	}

	return updated, nil
}

// Download is a ready-to-stream attachment.
type Download struct {
	Reader       io.ReadCloser
	OriginalName string
	MIMEType     string
	Size         int64
}

// DownloadAttachment resolves a complaint's attachment for an
// authenticated caller. Admins read everything; a submitter reads their
// own; anonymous complaints are admin-only. A complaint without an
// attachment and an attachment whose file vanished from disk are distinct
// not-found conditions.
func (s *Service) DownloadAttachment(ctx context.Context, id uint, claims *auth.Claims) (*Download, error) {
	if claims == nil {
		return nil, ErrForbidden
	}

	c, err := s.Storage.GetComplaintByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if !c.File.Present() {
		return nil, ErrNoAttachment
	}
	if !claims.CanAccessComplaint(c.SubmitterID) {
		return nil, ErrForbidden
	}

	r, err := s.Files.Open(c.File)
	if errors.Is(err, filestore.ErrMissing) {
		return nil, ErrFileMissing
	}
	if err != nil {
		return nil, err
	}

	return &Download{
		Reader:       r,
		OriginalName: c.File.OriginalName,
		MIMEType:     c.File.MIMEType,
		Size:         c.File.Size,
	}, nil
}

func (s *Service) publish(eventType string, c *models.Complaint) {
	if s.Feed == nil {
		return
	}
	s.Feed.Publish(feed.Event{
		Type:            eventType,
		ComplaintNumber: c.ComplaintNumber,
		Category:        c.Category,
		Priority:        c.Priority,
		Status:          c.Status,
		At:              time.Now(),
	})
}
