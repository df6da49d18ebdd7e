package content

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"learnhub/internal/domain"
	"learnhub/internal/domain/models"
	contentModels "learnhub/internal/domain/models/content"
	"learnhub/internal/domain/repositories"
	"learnhub/internal/domain/services"
	serviceAuth "learnhub/internal/service/auth"

	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func authorizer() services.ContentAuthorizer {
	return serviceAuth.NewRoleBasedAuthorizer()
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

var (
	teacher = models.Actor{UserID: "6b0f5f8e-1f7a-4c55-9a0e-3c1d2b7a9e01", Role: models.RoleTeacher}
	student = models.Actor{UserID: "0d8a5c1e-7f43-4b6a-8e2d-91c4f0a3b702", Role: models.RoleStudent}
)

// fakeContentRepo is an in-memory ContentRepository that lists items in insertion order.
// Topic locks are held until the fakeTxManager transaction that took them ends.
type fakeContentRepo struct {
	mu              sync.Mutex
	items           []*contentModels.ContentItem
	nextID          int
	listErr         error
	positionUpdates map[string]int
	topicLocks      map[contentModels.TopicPath]*sync.Mutex
	lockedTopics    []contentModels.TopicPath
}

func newFakeContentRepo(items ...contentModels.ContentItem) *fakeContentRepo {
	repo := &fakeContentRepo{
		positionUpdates: map[string]int{},
		topicLocks:      map[contentModels.TopicPath]*sync.Mutex{},
	}
	for i := range items {
		item := items[i]
		if item.ID == "" {
			repo.nextID++
			item.ID = "item-" + strconv.Itoa(repo.nextID)
		}
		repo.items = append(repo.items, &item)
	}
	return repo
}

func (r *fakeContentRepo) Create(_ context.Context, item *contentModels.ContentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	item.ID = "item-" + strconv.Itoa(r.nextID)
	stored := *item
	r.items = append(r.items, &stored)
	return nil
}

func (r *fakeContentRepo) find(id string) *contentModels.ContentItem {
	for _, item := range r.items {
		if item.ID == id && item.DeletedAt == nil {
			return item
		}
	}
	return nil
}

func (r *fakeContentRepo) GetByID(_ context.Context, id string) (*contentModels.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := r.find(id)
	if item == nil {
		return nil, domain.ErrNotFound
	}
	found := *item
	return &found, nil
}

func (r *fakeContentRepo) List(_ context.Context) ([]contentModels.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	items := make([]contentModels.ContentItem, 0, len(r.items))
	for _, item := range r.items {
		if item.DeletedAt == nil {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (r *fakeContentRepo) ListByTopic(_ context.Context, path contentModels.TopicPath) ([]contentModels.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []contentModels.ContentItem
	for _, item := range r.items {
		if item.DeletedAt == nil && item.Path() == path {
			items = append(items, *item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })
	return items, nil
}

func (r *fakeContentRepo) LockTopic(ctx context.Context, path contentModels.TopicPath) error {
	tx, ok := ctx.Value(fakeTxKey{}).(*fakeTx)
	if !ok {
		return errors.New("lock topic outside a transaction")
	}

	r.mu.Lock()
	lock, ok := r.topicLocks[path]
	if !ok {
		lock = &sync.Mutex{}
		r.topicLocks[path] = lock
	}
	r.lockedTopics = append(r.lockedTopics, path)
	r.mu.Unlock()

	lock.Lock()
	tx.release = append(tx.release, lock.Unlock)
	return nil
}

func (r *fakeContentRepo) NextPosition(_ context.Context, path contentModels.TopicPath) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := 0
	for _, item := range r.items {
		if item.DeletedAt == nil && item.Path() == path && item.Position >= next {
			next = item.Position + 1
		}
	}
	return next, nil
}

func (r *fakeContentRepo) Update(_ context.Context, item *contentModels.ContentItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.find(item.ID)
	if stored == nil {
		return domain.ErrNotFound
	}
	*stored = *item
	return nil
}

func (r *fakeContentRepo) UpdatePosition(_ context.Context, id string, position int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.find(id)
	if stored == nil {
		return domain.ErrNotFound
	}
	stored.Position = position
	r.positionUpdates[id] = position
	return nil
}

func (r *fakeContentRepo) Delete(_ context.Context, id string) (*contentModels.ContentItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.find(id)
	if stored == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	stored.DeletedAt = &now
	deleted := *stored
	return &deleted, nil
}

type fakeTxKey struct{}

// fakeTx collects locks to release when the transaction ends
type fakeTx struct {
	release []func()
}

// fakeTxManager runs fn directly and counts transactions
type fakeTxManager struct {
	mu    sync.Mutex
	calls int
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	tx := &fakeTx{}
	defer func() {
		for _, release := range tx.release {
			release()
		}
	}()
	return fn(context.WithValue(ctx, fakeTxKey{}, tx))
}

// fakePrefsService keeps expanded node ids and the show_counts setting per user in memory
type fakePrefsService struct {
	mu         sync.Mutex
	expanded   map[uuid.UUID][]string
	hideCounts bool
	getErr     error
}

func newFakePrefsService() *fakePrefsService {
	return &fakePrefsService{expanded: map[uuid.UUID][]string{}}
}

func (s *fakePrefsService) GetPreferences(_ context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}

	prefs := &models.UserPreferences{UserID: userID, Preferences: models.JSONMap{}}
	showCounts := !s.hideCounts
	if err := prefs.SetUI(&models.UIPreferences{Theme: "light", ShowCounts: &showCounts}); err != nil {
		return nil, err
	}
	expanded := append([]string{}, s.expanded[userID]...)
	if err := prefs.SetContentTree(&models.ContentTreePreferences{Expanded: expanded}); err != nil {
		return nil, err
	}
	return prefs, nil
}

func (s *fakePrefsService) UpdatePreferences(_ context.Context, userID uuid.UUID, _ *models.UpdatePreferencesRequest) (*models.UserPreferences, error) {
	return &models.UserPreferences{UserID: userID, Preferences: models.JSONMap{}}, nil
}

// UpdateExpandedNodes holds the lock across read, fn and write like the row lock does
func (s *fakePrefsService) UpdateExpandedNodes(_ context.Context, userID uuid.UUID, fn func(ids []string) []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}

	ids := fn(append([]string{}, s.expanded[userID]...))
	s.expanded[userID] = append([]string{}, ids...)
	return ids, nil
}

func newItem(id, institute, subject, chapter, topic, title string) contentModels.ContentItem {
	return contentModels.ContentItem{
		ID:        id,
		Title:     title,
		Institute: institute,
		Subject:   subject,
		Chapter:   chapter,
		Topic:     topic,
		Type:      contentModels.ContentTypeVideo,
		URL:       strPtr("https://example.com/" + id),
	}
}

// sampleItems is the A / Math / Science catalog used across tests
func sampleItems() []contentModels.ContentItem {
	return []contentModels.ContentItem{
		newItem("v1", "A", "Math", "Algebra", "Linear", "Video 1"),
		newItem("v2", "A", "Math", "Algebra", "Linear", "Video 2"),
		newItem("d1", "A", "Science", "Physics", "Motion", "Doc 1"),
	}
}
