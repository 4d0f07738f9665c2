package models

import "time"

// Status is the complaint workflow state. Any status may be set from any
// other by an admin update; Resolved complaints can be reopened.
type Status string

const (
	StatusOpen        Status = "Open"
	StatusUnderReview Status = "Under Review"
	StatusResolved    Status = "Resolved"
)

// ParseStatus validates a status value coming from the outside.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusOpen, StatusUnderReview, StatusResolved:
		return Status(s), true
	}
	return "", false
}

// Priority levels accepted at submission.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority validates a priority value coming from the outside.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s), true
	}
	return "", false
}

// Attachment holds the metadata of an uploaded proof file. The bytes live
// in the upload directory; FileName is the stored (disk) name.
type Attachment struct {
	FileName     string `json:"filename,omitempty"`
	OriginalName string `json:"originalName,omitempty"`
	MIMEType     string `json:"mimetype,omitempty"`
	Size         int64  `json:"size,omitempty"`
	Path         string `json:"path,omitempty"`
}

// Present reports whether an attachment was stored for the complaint.
func (a Attachment) Present() bool { return a.FileName != "" }

// Complaint is a single submitted complaint. ComplaintNumber is assigned
// exactly once at creation and never regenerated; SubmitterID is nil for
// anonymous submissions and stays that way.
type Complaint struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	ComplaintNumber string     `gorm:"uniqueIndex;not null" json:"complaintNumber"`
	SubmitterID     *string    `gorm:"index" json:"submitterId,omitempty"`
	Category        string     `gorm:"index;not null" json:"category"`
	Description     string     `gorm:"not null" json:"description"`
	Priority        Priority   `gorm:"type:varchar(16);index;not null" json:"priority"`
	Status          Status     `gorm:"type:varchar(32);default:Open;index" json:"status"`
	AdminNote       string     `json:"adminNote,omitempty"`
	ContactEmail    string     `json:"contactEmail,omitempty"`
	ContactPhone    string     `json:"contactPhone,omitempty"`
	File            Attachment `gorm:"embedded;embeddedPrefix:file_" json:"file"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// PublicStatus is the projection returned by the unauthenticated status
// lookup. It must never carry submitter or contact fields; the complaint
// number itself is the lookup capability.
type PublicStatus struct {
	ComplaintNumber string    `json:"complaintNumber"`
	Category        string    `json:"category"`
	Priority        Priority  `json:"priority"`
	Status          Status    `json:"status"`
	AdminNote       string    `json:"adminNote,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// PublicView builds the projection for the status endpoint.
func (c *Complaint) PublicView() PublicStatus {
	return PublicStatus{
		ComplaintNumber: c.ComplaintNumber,
		Category:        c.Category,
		Priority:        c.Priority,
		Status:          c.Status,
		AdminNote:       c.AdminNote,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// Receipt is what a submitter gets back right after creating a complaint.
type Receipt struct {
	ComplaintNumber string    `json:"complaintNumber"`
	Category        string    `json:"category"`
	Priority        Priority  `json:"priority"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ReceiptView builds the submission receipt projection.
func (c *Complaint) ReceiptView() Receipt {
	return Receipt{
		ComplaintNumber: c.ComplaintNumber,
		Category:        c.Category,
		Priority:        c.Priority,
		Status:          c.Status,
		CreatedAt:       c.CreatedAt,
	}
}
