package handler_test

import (
	"context"
	"strconv"
	"sync"
	"time"

	"complaintwall/backend/internal/models"
	"complaintwall/backend/internal/storage"

	"github.com/google/uuid"
)

// memStore is an in-memory storage.Storage for handler tests. It mirrors
// the database-backed behavior closely enough for end-to-end routing:
// normalized unique emails, unique complaint numbers, newest-first lists
// and a working status cache and rate-limit counter.
type memStore struct {
	mu         sync.Mutex
	users      map[string]*models.User // by id
	complaints map[uint]*models.Complaint
	nextID     uint
	cache      map[string]string
	counters   map[string]int64
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[string]*models.User{},
		complaints: map[uint]*models.Complaint{},
		nextID:     1,
		cache:      map[string]string{},
		counters:   map[string]int64{},
	}
}

func (m *memStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	email := models.NormalizeEmail(user.Email)
	for _, u := range m.users {
		if u.Email == email {
			return storage.ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.Email = email
	user.CreatedAt = time.Now()
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = models.NormalizeEmail(email)
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) UpdateUserPassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.Password = hash
	return nil
}

func (m *memStore) CreateComplaint(_ context.Context, c *models.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.complaints {
		if existing.ComplaintNumber == c.ComplaintNumber {
			return storage.ErrDuplicateNumber
		}
	}
	c.ID = m.nextID
	m.nextID++
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	cp := *c
	m.complaints[c.ID] = &cp
	return nil
}

func (m *memStore) GetComplaintByNumber(_ context.Context, number string) (*models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.complaints {
		if c.ComplaintNumber == number {
			cp := *c
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memStore) GetComplaintByID(_ context.Context, id uint) (*models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.complaints[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memStore) ListComplaints(_ context.Context) ([]models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Complaint, 0, len(m.complaints))
	// Descending ID order doubles as newest-first here.
	for id := m.nextID; id > 0; id-- {
		if c, ok := m.complaints[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memStore) UpdateComplaint(_ context.Context, id uint, fields map[string]any) (*models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.complaints[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if v, ok := fields["status"]; ok {
		c.Status = v.(models.Status)
	}
	if v, ok := fields["admin_note"]; ok {
		c.AdminNote = v.(string)
	}
	c.UpdatedAt = time.Now()
	cp := *c
	return &cp, nil
}

func (m *memStore) CountByCategory(_ context.Context) ([]storage.CategoryCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]int64{}
	for _, c := range m.complaints {
		counts[c.Category]++
	}
	out := make([]storage.CategoryCount, 0, len(counts))
	for category, n := range counts {
		out = append(out, storage.CategoryCount{Category: category, Count: n})
	}
	return out, nil
}

func (m *memStore) CountByResolution(_ context.Context) ([]storage.ResolutionCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var resolved, unresolved int64
	for _, c := range m.complaints {
		if c.Status == models.StatusResolved {
			resolved++
		} else {
			unresolved++
		}
	}
	return []storage.ResolutionCount{
		{Status: "Resolved", Count: resolved},
		{Status: "Unresolved", Count: unresolved},
	}, nil
}

func (m *memStore) CountByPriority(_ context.Context) ([]storage.PriorityCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]int64{}
	for _, c := range m.complaints {
		counts[string(c.Priority)]++
	}
	out := make([]storage.PriorityCount, 0, len(counts))
	for priority, n := range counts {
		out = append(out, storage.PriorityCount{Priority: priority, Count: n})
	}
	return out, nil
}

func (m *memStore) GetCachedStatus(_ context.Context, number string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache["status:"+number], nil
}

func (m *memStore) SetCachedStatus(_ context.Context, number, payload string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache["status:"+number] = payload
	return nil
}

func (m *memStore) InvalidateStatus(_ context.Context, number string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cache, "status:"+number)
	return nil
}

func (m *memStore) IncrWindow(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[key]++
	return m.counters[key], nil
}

// seedComplaint inserts a complaint directly, bypassing the service.
func (m *memStore) seedComplaint(c models.Complaint) *models.Complaint {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.nextID
	m.nextID++
	if c.ComplaintNumber == "" {
		c.ComplaintNumber = "DCW-SEED-" + strconv.Itoa(int(c.ID))
	}
	if c.Status == "" {
		c.Status = models.StatusOpen
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	cp := c
	m.complaints[c.ID] = &cp
	return &cp
}
