package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sync"
	"testing"

	"github.com/google/uuid"
	"learnhub/internal/domain/models"
	"learnhub/internal/domain/repositories"
)

// mockPrefsRepo stores preferences in memory, handing out copies the way rows are read
type mockPrefsRepo struct {
	mu      sync.Mutex
	stored  map[uuid.UUID]*models.UserPreferences
	upserts int
	getErr  error
}

func newMockPrefsRepo() *mockPrefsRepo {
	return &mockPrefsRepo{stored: map[uuid.UUID]*models.UserPreferences{}}
}

func clonePrefs(prefs *models.UserPreferences) *models.UserPreferences {
	data, err := json.Marshal(prefs)
	if err != nil {
		panic(err)
	}
	var clone models.UserPreferences
	if err := json.Unmarshal(data, &clone); err != nil {
		panic(err)
	}
	return &clone
}

func (m *mockPrefsRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	prefs, ok := m.stored[userID]
	if !ok {
		return nil, nil
	}
	return clonePrefs(prefs), nil
}

func (m *mockPrefsRepo) GetForUpdate(ctx context.Context, defaults *models.UserPreferences) (*models.UserPreferences, error) {
	if !lockedTx(ctx) {
		return nil, errors.New("GetForUpdate outside a transaction")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if _, ok := m.stored[defaults.UserID]; !ok {
		m.stored[defaults.UserID] = clonePrefs(defaults)
	}
	return clonePrefs(m.stored[defaults.UserID]), nil
}

func (m *mockPrefsRepo) Upsert(_ context.Context, prefs *models.UserPreferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	m.stored[prefs.UserID] = clonePrefs(prefs)
	return nil
}

type lockedTxKey struct{}

func lockedTx(ctx context.Context) bool {
	locked, _ := ctx.Value(lockedTxKey{}).(bool)
	return locked
}

// lockingTxManager runs one transaction at a time, standing in for the row lock
type lockingTxManager struct {
	mu    sync.Mutex
	calls int
}

func (m *lockingTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return fn(context.WithValue(ctx, lockedTxKey{}, true))
}

func newTestPrefsService(repo *mockPrefsRepo) *UserPreferencesService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewUserPreferencesService(repo, &lockingTxManager{}, logger).(*UserPreferencesService)
}

func expandedNodes(t *testing.T, svc *UserPreferencesService, userID uuid.UUID) []string {
	t.Helper()
	prefs, err := svc.GetPreferences(context.Background(), userID)
	if err != nil {
		t.Fatalf("get preferences: %v", err)
	}
	tree, err := prefs.GetContentTree()
	if err != nil {
		t.Fatalf("decode content_tree: %v", err)
	}
	return tree.Expanded
}

func TestGetPreferences_Defaults(t *testing.T) {
	svc := newTestPrefsService(newMockPrefsRepo())
	userID := uuid.New()

	prefs, err := svc.GetPreferences(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefs.UserID != userID {
		t.Errorf("expected user %s, got %s", userID, prefs.UserID)
	}

	ui, err := prefs.GetUI()
	if err != nil {
		t.Fatalf("decode ui: %v", err)
	}
	if ui.Theme != "light" {
		t.Errorf("expected light theme, got %q", ui.Theme)
	}

	tree, err := prefs.GetContentTree()
	if err != nil {
		t.Fatalf("decode content_tree: %v", err)
	}
	if tree.Expanded == nil || len(tree.Expanded) != 0 {
		t.Errorf("expected empty expanded list, got %#v", tree.Expanded)
	}
}

func TestUpdatePreferences_PartialNamespaces(t *testing.T) {
	repo := newMockPrefsRepo()
	svc := newTestPrefsService(repo)
	ctx := context.Background()
	userID := uuid.New()

	showCounts := false
	_, err := svc.UpdatePreferences(ctx, userID, &models.UpdatePreferencesRequest{
		UI: &models.UIPreferences{Theme: "dark", ShowCounts: &showCounts},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.UpdatePreferences(ctx, userID, &models.UpdatePreferencesRequest{
		ContentTree: &models.ContentTreePreferences{Expanded: []string{"A", "A-Math", "A"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prefs, err := svc.GetPreferences(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ui, _ := prefs.GetUI()
	if ui.Theme != "dark" || ui.CountsVisible() {
		t.Errorf("expected ui namespace kept, got %+v", ui)
	}

	tree, _ := prefs.GetContentTree()
	if !reflect.DeepEqual(tree.Expanded, []string{"A", "A-Math"}) {
		t.Errorf("expected deduplicated ids, got %v", tree.Expanded)
	}
	if repo.upserts != 2 {
		t.Errorf("expected 2 upserts, got %d", repo.upserts)
	}
}

func TestUpdateExpandedNodes(t *testing.T) {
	repo := newMockPrefsRepo()
	svc := newTestPrefsService(repo)
	ctx := context.Background()
	userID := uuid.New()

	if ids := expandedNodes(t, svc, userID); len(ids) != 0 {
		t.Errorf("expected no expanded nodes, got %v", ids)
	}

	saved, err := svc.UpdateExpandedNodes(ctx, userID, func(ids []string) []string {
		if len(ids) != 0 {
			t.Errorf("expected empty current ids, got %v", ids)
		}
		return []string{"B", "B-Art", "B"}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(saved, []string{"B", "B-Art"}) {
		t.Errorf("expected [B B-Art] saved, got %v", saved)
	}
	if ids := expandedNodes(t, svc, userID); !reflect.DeepEqual(ids, []string{"B", "B-Art"}) {
		t.Errorf("expected [B B-Art], got %v", ids)
	}

	prefs, _ := svc.GetPreferences(ctx, userID)
	if ui, _ := prefs.GetUI(); ui.Theme != "light" {
		t.Errorf("expected default ui kept on first save, got %+v", ui)
	}
}

func TestUpdateExpandedNodes_Concurrent(t *testing.T) {
	repo := newMockPrefsRepo()
	svc := newTestPrefsService(repo)
	userID := uuid.New()

	const updates = 50
	var wg sync.WaitGroup
	errs := make(chan error, updates)
	for i := 0; i < updates; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.UpdateExpandedNodes(context.Background(), userID, func(ids []string) []string {
				return append(ids, fmt.Sprintf("A-%02d", i))
			})
			if err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
	if got := len(expandedNodes(t, svc, userID)); got != updates {
		t.Errorf("expected %d expanded ids, got %d", updates, got)
	}
}

func TestGetPreferences_RepositoryError(t *testing.T) {
	repo := newMockPrefsRepo()
	repo.getErr = errors.New("db down")
	svc := newTestPrefsService(repo)

	if _, err := svc.GetPreferences(context.Background(), uuid.New()); !errors.Is(err, repo.getErr) {
		t.Errorf("expected wrapped repository error, got %v", err)
	}
	_, err := svc.UpdateExpandedNodes(context.Background(), uuid.New(), func(ids []string) []string { return ids })
	if !errors.Is(err, repo.getErr) {
		t.Errorf("expected wrapped repository error from update, got %v", err)
	}
}
