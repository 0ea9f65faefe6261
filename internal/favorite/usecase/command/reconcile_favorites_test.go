package command

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troyan365/marketplace/internal/favorite/domain"
	"github.com/troyan365/marketplace/kafka"
)

type fakeRemote struct {
	mu       sync.Mutex
	refs     map[string]struct{}
	addCalls []string
	failAdd  map[string]error
	listErr  error
}

func newFakeRemote(listingIDs ...string) *fakeRemote {
	refs := make(map[string]struct{}, len(listingIDs))
	for _, id := range listingIDs {
		refs[id] = struct{}{}
	}
	return &fakeRemote{refs: refs, failAdd: map[string]error{}}
}

func (f *fakeRemote) ListByUser(ctx context.Context, userID uint) ([]domain.FavoriteRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.FavoriteRef, 0, len(f.refs))
	for id := range f.refs {
		out = append(out, domain.FavoriteRef{ListingID: id})
	}
	return out, nil
}

func (f *fakeRemote) Add(ctx context.Context, userID uint, listingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls = append(f.addCalls, listingID)
	if err, ok := f.failAdd[listingID]; ok {
		return err
	}
	if _, ok := f.refs[listingID]; ok {
		return domain.NewBackendError(domain.ErrKindConstraint, "favorites.add", errors.New("duplicate key"))
	}
	f.refs[listingID] = struct{}{}
	return nil
}

func (f *fakeRemote) Remove(ctx context.Context, userID uint, listingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.refs, listingID)
	return nil
}

func (f *fakeRemote) has(listingID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.refs[listingID]
	return ok
}

func (f *fakeRemote) addCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.addCalls)
}

type fakeLocal struct {
	refs      []domain.FavoriteRef
	err       error
	readCalls int
}

func (f *fakeLocal) ReadAll(ctx context.Context, deviceID string) ([]domain.FavoriteRef, error) {
	f.readCalls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.FavoriteRef{}, f.refs...), nil
}

func (f *fakeLocal) Toggle(ctx context.Context, deviceID, listingID string) ([]domain.FavoriteRef, error) {
	panic("reconciliation must never mutate the device set")
}

type fakeChecker struct {
	mu      sync.Mutex
	deleted map[string]bool
	errs    map[string]error
	calls   []string
}

func newFakeChecker() *fakeChecker {
	return &fakeChecker{deleted: map[string]bool{}, errs: map[string]error{}}
}

func (f *fakeChecker) Exists(ctx context.Context, listingID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, listingID)
	if err, ok := f.errs[listingID]; ok {
		return false, err
	}
	return !f.deleted[listingID], nil
}

func (f *fakeChecker) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []kafka.FavoritesReconciledEvent
}

func (f *fakePublisher) PublishFavoritesReconciled(ctx context.Context, event kafka.FavoritesReconciledEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func refs(listingIDs ...string) []domain.FavoriteRef {
	out := make([]domain.FavoriteRef, 0, len(listingIDs))
	for _, id := range listingIDs {
		out = append(out, domain.FavoriteRef{ListingID: id})
	}
	return out
}

func connectivityErr(op string) error {
	return domain.NewBackendError(domain.ErrKindConnectivity, op, errors.New("connection refused"))
}

func remoteConstraintErr() error {
	return domain.NewBackendError(domain.ErrKindConstraint, "favorites.add", errors.New("duplicate key"))
}

func TestReconcileMergesLocalIntoEmptyRemote(t *testing.T) {
	remote := newFakeRemote()
	local := &fakeLocal{refs: refs("A", "B")}
	checker := newFakeChecker()

	h := NewReconcileFavoritesHandler(remote, local, checker, nil)
	result := h.Handle(context.Background(), ReconcileFavoritesCommand{UserID: 1, DeviceID: "dev-1"})

	assert.Equal(t, 2, result.Added)
	assert.Zero(t, result.Pruned)
	assert.Zero(t, result.Failed)
	assert.False(t, result.Incomplete)
	assert.True(t, remote.has("A"))
	assert.True(t, remote.has("B"))
	assert.ElementsMatch(t, refs("A", "B"), result.Favorites)
}

func TestReconcileSkipsRefsAlreadyRemote(t *testing.T) {
	remote := newFakeRemote("A")
	local := &fakeLocal{refs: refs("A")}
	checker := newFakeChecker()

	h := NewReconcileFavoritesHandler(remote, local, checker, nil)
	result := h.Handle(context.Background(), ReconcileFavoritesCommand{UserID: 1, DeviceID: "dev-1"})

	assert.Zero(t, remote.addCount(), "fully overlapping sets must trigger no adds")
	assert.Zero(t, result.Added)
	assert.False(t, result.Incomplete)
	assert.ElementsMatch(t, refs("A"), result.Favorites)
}

func TestReconcilePrunesDeletedListings(t *testing.T) {
	remote := newFakeRemote()
	local := &fakeLocal{refs: refs("X")}
	checker := newFakeChecker()
	checker.deleted["X"] = true

	h := NewReconcileFavoritesHandler(remote, local, checker, nil)
	result := h.Handle(context.Background(), ReconcileFavoritesCommand{UserID: 1, DeviceID: "dev-1"})

	assert.Equal(t, 1, result.Pruned)
	assert.Zero(t, remote.addCount(), "a deleted listing must never be added")
	assert.False(t, remote.has("X"))
	assert.False(t, result.Incomplete)
	assert.Empty(t, result.Favorites)
}

func TestReconcileEmptyLocalFetchesRemoteOnly(t *testing.T) {
	remote := newFakeRemote("A")
	local := &fakeLocal{}
	checker := newFakeChecker()

	h := NewReconcileFavoritesHandler(remote, local, checker, nil)
	result := h.Handle(context.Background(), ReconcileFavoritesCommand{UserID: 1, DeviceID: "dev-1"})

	assert.Zero(t, checker.callCount())
	assert.Zero(t, remote.addCount())
	assert.False(t, result.Incomplete)
	assert.ElementsMatch(t, refs("A"), result.Favorites)
}

func TestReconcileKeepsUnresolvedOnCheckFailure(t *testing.T) {
	remote := newFakeRemote()
	local := &fakeLocal{refs: refs("Y")}
	checker := newFakeChecker()
	checker.errs["Y"] = connectivityErr("listings.exists")

	h := NewReconcileFavoritesHandler(remote, local, checker, nil)
	result := h.Handle(context.Background(), ReconcileFavoritesCommand{UserID: 1, DeviceID: "dev-1"})

	assert.Equal(t, 1, result.Unresolved)
	assert.Zero(t, result.Pruned, "an unresolved ref is not a pruned ref")
	assert.Zero(t, remote.addCount(), "an unresolved ref must not be added")
	assert.True(t, result.Incomplete)
}

func TestReconcileIdempotent(t *testing.T) {
	remote := newFakeRemote()
	local := &fakeLocal{refs: refs("A", "B")}
	checker := newFakeChecker()

	h := NewReconcileFavoritesHandler(remote, local, checker, nil)

	first := h.Handle(context.Background(), ReconcileFavoritesCommand{UserID: 1, DeviceID: "dev-1"})
	require.Equal(t, 2, first.Added)

	second := h.Handle(context.Background(), ReconcileFavoritesCommand{UserID: 1, DeviceID: "dev-1"})
	assert.Zero(t, second.Added, "a repeat run with no new favorites must add nothing")
	assert.ElementsMatch(t, first.Favorites, second.Favorites)
}

func TestReconcileToleratesPartialAddFailure(t *testing.T) {
	remote := newFakeRemote()
	local := &fakeLocal{refs: refs("A", "B", "C")}
	checker := newFakeChecker()
	remote.failAdd["B"] = connectivityErr("favorites.add")

	h := NewReconcileFavoritesHandler(remote, local, checker, nil)
	result := h.Handle(context.Background(), ReconcileFavoritesCommand{UserID: 1, DeviceID: "dev-1"})

	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 1, result.Failed)
	assert.True(t, result.Incomplete)
	assert.True(t, remote.has("A"))
	assert.True(t, remote.has("C"))
	assert.False(t, remote.has("B"))
	assert.ElementsMatch(t, refs("A", "C"), result.Favorites)
}

func TestReconcileConstraintViolationTreatedAsSatisfied(t *testing.T) {
	remote := newFakeRemote()
	local := &fakeLocal{refs: refs("A")}
	checker := newFakeChecker()
	// Simulates a concurrent run inserting the pair between diff and write
	remote.failAdd["A"] = domain.NewBackendError(domain.ErrKindConstraint, "favorites.add", errors.New("duplicate key"))

	h := NewReconcileFavoritesHandler(remote, local, checker, nil)
	result := h.Handle(context.Background(), ReconcileFavoritesCommand{UserID: 1, DeviceID: "dev-1"})

	assert.Zero(t, result.Added)
	assert.Zero(t, result.Failed)
	assert.False(t, result.Incomplete)
	assert.ElementsMatch(t, refs("A"), result.Favorites, "an already-present pair still belongs to the published set")
}

func TestReconcileRemoteFetchFailurePublishesEmpty(t *testing.T) {
	remote := newFakeRemote()
	remote.listErr = connectivityErr("favorites.list")
	local := &fakeLocal{refs: refs("A")}
	checker := newFakeChecker()

	h := NewReconcileFavoritesHandler(remote, local, checker, nil)
	result := h.Handle(context.Background(), ReconcileFavoritesCommand{UserID: 1, DeviceID: "dev-1"})

	assert.True(t, result.Incomplete)
	assert.Empty(t, result.Favorites)
	assert.Zero(t, local.readCalls, "without a dedup baseline the local set must stay untouched")
	assert.Zero(t, remote.addCount())
}

func TestReconcileDeviceStoreFailureFallsBackToRemote(t *testing.T) {
	remote := newFakeRemote("A")
	local := &fakeLocal{err: connectivityErr("device_favorites.read")}
	checker := newFakeChecker()

	h := NewReconcileFavoritesHandler(remote, local, checker, nil)
	result := h.Handle(context.Background(), ReconcileFavoritesCommand{UserID: 1, DeviceID: "dev-1"})

	assert.True(t, result.Incomplete)
	assert.ElementsMatch(t, refs("A"), result.Favorites)
	assert.Zero(t, remote.addCount())
}

func TestReconcileWithoutDeviceSkipsLocalRead(t *testing.T) {
	remote := newFakeRemote("A")
	local := &fakeLocal{refs: refs("B")}
	checker := newFakeChecker()

	h := NewReconcileFavoritesHandler(remote, local, checker, nil)
	result := h.Handle(context.Background(), ReconcileFavoritesCommand{UserID: 1})

	assert.Zero(t, local.readCalls)
	assert.ElementsMatch(t, refs("A"), result.Favorites)
}

func TestReconcileDedupesRepeatedLocalRefs(t *testing.T) {
	remote := newFakeRemote()
	local := &fakeLocal{refs: refs("A", "A")}
	checker := newFakeChecker()

	h := NewReconcileFavoritesHandler(remote, local, checker, nil)
	result := h.Handle(context.Background(), ReconcileFavoritesCommand{UserID: 1, DeviceID: "dev-1"})

	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 1, remote.addCount())
}

func TestReconcilePublishesOutcomeEvent(t *testing.T) {
	remote := newFakeRemote()
	local := &fakeLocal{refs: refs("A", "X", "Y")}
	checker := newFakeChecker()
	checker.deleted["X"] = true
	checker.errs["Y"] = connectivityErr("listings.exists")
	publisher := &fakePublisher{}

	h := NewReconcileFavoritesHandler(remote, local, checker, publisher)
	h.Handle(context.Background(), ReconcileFavoritesCommand{UserID: 7, DeviceID: "dev-7"})

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, uint(7), event.UserID)
	assert.Equal(t, "dev-7", event.DeviceID)
	assert.Equal(t, 1, event.Added)
	assert.Equal(t, 1, event.Pruned)
	assert.Equal(t, 1, event.Unresolved)
	assert.Zero(t, event.Failed)
}
