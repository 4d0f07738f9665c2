package complaint_test

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"complaintwall/backend/internal/feed"
	"complaintwall/backend/internal/filestore"
	"complaintwall/backend/internal/models"
	"complaintwall/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify/mock implementation of storage.Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) UpdateUserPassword(ctx context.Context, id, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *MockStorage) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockStorage) GetComplaintByNumber(ctx context.Context, number string) (*models.Complaint, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) GetComplaintByID(ctx context.Context, id uint) (*models.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) ListComplaints(ctx context.Context) ([]models.Complaint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) UpdateComplaint(ctx context.Context, id uint, fields map[string]any) (*models.Complaint, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) CountByCategory(ctx context.Context) ([]storage.CategoryCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.CategoryCount), args.Error(1)
}

func (m *MockStorage) CountByResolution(ctx context.Context) ([]storage.ResolutionCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.ResolutionCount), args.Error(1)
}

func (m *MockStorage) CountByPriority(ctx context.Context) ([]storage.PriorityCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.PriorityCount), args.Error(1)
}

func (m *MockStorage) GetCachedStatus(ctx context.Context, number string) (string, error) {
	args := m.Called(ctx, number)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) SetCachedStatus(ctx context.Context, number, payload string, ttl time.Duration) error {
	args := m.Called(ctx, number, payload, ttl)
	return args.Error(0)
}

func (m *MockStorage) InvalidateStatus(ctx context.Context, number string) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}

func (m *MockStorage) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	args := m.Called(ctx, key, window)
	return args.Get(0).(int64), args.Error(1)
}

// fakeFileStore keeps attachments in memory.
type fakeFileStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	saveErr error
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: map[string][]byte{}}
}

func (f *fakeFileStore) Save(originalName, mimeType string, r io.Reader) (models.Attachment, error) {
	if f.saveErr != nil {
		return models.Attachment{}, f.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return models.Attachment{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := "stored-" + originalName
	f.files[stored] = data
	return models.Attachment{
		FileName:     stored,
		OriginalName: originalName,
		MIMEType:     mimeType,
		Size:         int64(len(data)),
		Path:         "/tmp/" + stored,
	}, nil
}

func (f *fakeFileStore) Open(att models.Attachment) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[att.FileName]
	if !ok {
		return nil, filestore.ErrMissing
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// recordingNotifier counts delivery attempts and signals each one.
type recordingNotifier struct {
	mu       sync.Mutex
	attempts []*models.Complaint
	notes    []string
	signal   chan struct{}
	err      error
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{signal: make(chan struct{}, 8)}
}

func (n *recordingNotifier) NotifyResolved(c *models.Complaint, note string) error {
	n.mu.Lock()
	n.attempts = append(n.attempts, c)
	n.notes = append(n.notes, note)
	n.mu.Unlock()
	n.signal <- struct{}{}
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.attempts)
}

// recordingPublisher collects feed events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []feed.Event
}

func (p *recordingPublisher) Publish(event feed.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) list() []feed.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]feed.Event(nil), p.events...)
}
