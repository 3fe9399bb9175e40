package usecase

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"vidshare/pkg/logger"
	"vidshare/pkg/queue"
	"vidshare/services/api/internal/entity"
	"vidshare/services/api/internal/repo/persistent"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func testLogger() *logger.Logger {
	return logger.NewWithOptions("error", "json", io.Discard)
}

// memUserRepo is an in-memory persistent.UserRepository.
type memUserRepo struct {
	mu            sync.Mutex
	users         map[string]*entity.User
	notifications map[string][]entity.Notification
	failWith      error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users:         map[string]*entity.User{},
		notifications: map[string][]entity.Notification{},
	}
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	user.Email = strings.ToLower(user.Email)
	for _, u := range r.users {
		if u.Email == user.Email {
			return persistent.ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, u := range r.users {
		if u.Email == strings.ToLower(strings.TrimSpace(email)) {
			found := *u
			return &found, nil
		}
	}
	return nil, persistent.ErrNotFound
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, persistent.ErrNotFound
	}
	found := *u
	return &found, nil
}

func (r *memUserRepo) AppendNotification(ctx context.Context, userID, message string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return persistent.ErrNotFound
	}
	r.notifications[userID] = append(r.notifications[userID], entity.Notification{
		ID:      uuid.New().String(),
		UserID:  userID,
		Message: message,
		Date:    at,
	})
	return nil
}

func (r *memUserRepo) ListNotifications(ctx context.Context, userID string) ([]entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return nil, persistent.ErrNotFound
	}
	list := append([]entity.Notification{}, r.notifications[userID]...)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return list, nil
}

// memVideoRepo is an in-memory persistent.VideoRepository.
type memVideoRepo struct {
	mu     sync.Mutex
	videos map[string]*entity.Video
	clock  time.Time
}

func newMemVideoRepo() *memVideoRepo {
	return &memVideoRepo{
		videos: map[string]*entity.Video{},
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *memVideoRepo) Create(ctx context.Context, video *entity.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if video.ID == "" {
		video.ID = uuid.New().String()
	}
	r.clock = r.clock.Add(time.Second)
	video.CreatedAt = r.clock
	stored := *video
	r.videos[video.ID] = &stored
	return nil
}

func (r *memVideoRepo) GetByID(ctx context.Context, id string) (*entity.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok {
		return nil, persistent.ErrNotFound
	}
	found := *v
	return &found, nil
}

func (r *memVideoRepo) List(ctx context.Context, filter persistent.VideoFilter) ([]*entity.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.Video{}
	for _, v := range r.videos {
		if filter.CreatorID != "" && v.CreatorID != filter.CreatorID {
			continue
		}
		if filter.ApprovedOnly && !v.Settings.IsApproved {
			continue
		}
		if filter.Category != "" && v.Category != filter.Category {
			continue
		}
		found := *v
		out = append(out, &found)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memVideoRepo) Update(ctx context.Context, id string, c entity.VideoChanges) (*entity.Video, error) {
	r.mu.Lock()
	v, ok := r.videos[id]
	if !ok {
		r.mu.Unlock()
		return nil, persistent.ErrNotFound
	}
	if c.Title != nil {
		v.Title = *c.Title
	}
	if c.Description != nil {
		v.Description = *c.Description
	}
	if c.BannerURL != nil {
		v.BannerURL = *c.BannerURL
	}
	if c.Category != nil {
		v.Category = *c.Category
	}
	if c.Chapters != nil {
		v.Chapters = *c.Chapters
	}
	if c.IsMuted != nil {
		v.Settings.IsMuted = *c.IsMuted
	}
	if c.Visibility != nil {
		v.Settings.Visibility = *c.Visibility
	}
	if c.IsApproved != nil {
		v.Settings.IsApproved = *c.IsApproved
	}
	if c.AdminMuteOverride != nil {
		v.Settings.AdminMuteOverride = *c.AdminMuteOverride
	}
	r.mu.Unlock()
	return r.GetByID(ctx, id)
}

func (r *memVideoRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.videos[id]; !ok {
		return persistent.ErrNotFound
	}
	delete(r.videos, id)
	return nil
}

func (r *memVideoRepo) IncrementViews(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok {
		return 0, persistent.ErrNotFound
	}
	v.Stats.Views++
	return v.Stats.Views, nil
}

// fakeStore records removals; removing a URL in failOn returns an error.
type fakeStore struct {
	mu      sync.Mutex
	saved   map[string][]byte
	removed []string
	failOn  map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: map[string][]byte{}, failOn: map[string]bool{}}
}

func (s *fakeStore) Save(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[filename] = data
	return "/uploads/" + filename, nil
}

func (s *fakeStore) Remove(ctx context.Context, mediaURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, mediaURL)
	if s.failOn[mediaURL] {
		return io.ErrUnexpectedEOF
	}
	return nil
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event queue.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) AppendNotification(ctx context.Context, userID, message string) error {
	args := m.Called(ctx, userID, message)
	return args.Error(0)
}
