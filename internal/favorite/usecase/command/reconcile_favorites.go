package command

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/troyan365/marketplace/internal/favorite/domain"
	"github.com/troyan365/marketplace/kafka"
	"github.com/troyan365/marketplace/pkg/logger"
)

// ReconcileState names the phases of one reconciliation run
type ReconcileState string

const (
	StateIdle               ReconcileState = "idle"
	StateFetchingRemote     ReconcileState = "fetching_remote"
	StateFetchingLocal      ReconcileState = "fetching_local"
	StateValidatingListings ReconcileState = "validating_listings"
	StateDiffing            ReconcileState = "diffing"
	StateWriting            ReconcileState = "writing"
	StatePublished          ReconcileState = "published"
)

// existsCheckConcurrency caps the fan-out against the listing service
const existsCheckConcurrency = 8

// ReconcileFavoritesCommand triggers one reconciliation run for a sign-in
type ReconcileFavoritesCommand struct {
	UserID   uint
	DeviceID string
}

// ReconcileResult is the outcome of a run. Favorites is the set published to
// callers; the counters describe what the run did to reach it.
type ReconcileResult struct {
	Favorites []domain.FavoriteRef `json:"favorites"`
	// Added counts device favorites merged into the remote set this run.
	Added int `json:"added"`
	// Pruned counts device favorites dropped because their listing is gone.
	Pruned int `json:"pruned"`
	// Unresolved counts device favorites whose listing could not be checked.
	// They stay on the device and are retried on the next run.
	Unresolved int `json:"unresolved"`
	// Failed counts merge writes that errored for reasons other than the
	// pair already existing.
	Failed int `json:"failed"`
	// Incomplete is set when any backend fault kept the run from fully
	// converging. The published set is still valid, just possibly stale.
	Incomplete bool `json:"incomplete"`
}

// ReconcilePublisher emits the reconciliation outcome event
type ReconcilePublisher interface {
	PublishFavoritesReconciled(ctx context.Context, event kafka.FavoritesReconciledEvent) error
}

// ReconcileFavoritesHandler merges a device's anonymous favorite set into the
// signed-in user's remote set. A run always terminates in the published
// state: backend faults degrade the outcome instead of aborting it.
type ReconcileFavoritesHandler struct {
	remote    domain.FavoriteRepository
	local     domain.DeviceFavoriteStore
	listings  domain.ListingChecker
	publisher ReconcilePublisher
}

// NewReconcileFavoritesHandler creates a new reconcile handler.
// The publisher may be nil; the outcome event is then skipped.
func NewReconcileFavoritesHandler(
	remote domain.FavoriteRepository,
	local domain.DeviceFavoriteStore,
	listings domain.ListingChecker,
	publisher ReconcilePublisher,
) *ReconcileFavoritesHandler {
	return &ReconcileFavoritesHandler{
		remote:    remote,
		local:     local,
		listings:  listings,
		publisher: publisher,
	}
}

// Handle runs one reconciliation. It never returns an error: every failure
// mode ends in a published result, and repeating the run is always safe
// because merges deduplicate against the remote set.
func (h *ReconcileFavoritesHandler) Handle(ctx context.Context, cmd ReconcileFavoritesCommand) *ReconcileResult {
	start := time.Now()
	result := &ReconcileResult{Favorites: []domain.FavoriteRef{}}

	h.transition(ctx, cmd, StateFetchingRemote)
	remote, err := h.remote.ListByUser(ctx, cmd.UserID)
	if err != nil {
		// Without the remote set there is no dedup baseline, so merging
		// would risk duplicates. Publish empty and let the next sign-in
		// retry; the device set is untouched.
		logger.Warn(ctx).
			Uint("user_id", cmd.UserID).
			Err(err).
			Msg("Remote favorites unavailable, skipping merge")
		result.Incomplete = true
		return h.publish(ctx, cmd, result, start)
	}

	h.transition(ctx, cmd, StateFetchingLocal)
	local := h.readLocal(ctx, cmd, result)
	if len(local) == 0 {
		result.Favorites = remote
		return h.publish(ctx, cmd, result, start)
	}

	h.transition(ctx, cmd, StateValidatingListings)
	valid := h.validateListings(ctx, local, result)

	h.transition(ctx, cmd, StateDiffing)
	remoteSet := domain.RefSet(remote)
	var missing []domain.FavoriteRef
	for _, ref := range valid {
		if _, ok := remoteSet[ref.ListingID]; !ok {
			missing = append(missing, ref)
		}
	}

	h.transition(ctx, cmd, StateWriting)
	merged := h.mergeMissing(ctx, cmd.UserID, missing, result)

	result.Favorites = append(remote, merged...)
	return h.publish(ctx, cmd, result, start)
}

// readLocal loads the device set; when the device is unknown or the store is
// unreachable the run proceeds with an empty local set.
func (h *ReconcileFavoritesHandler) readLocal(ctx context.Context, cmd ReconcileFavoritesCommand, result *ReconcileResult) []domain.FavoriteRef {
	if cmd.DeviceID == "" {
		return nil
	}
	local, err := h.local.ReadAll(ctx, cmd.DeviceID)
	if err != nil {
		logger.Warn(ctx).
			Str("device_id", cmd.DeviceID).
			Err(err).
			Msg("Device favorites unavailable, merging nothing")
		result.Incomplete = true
		return nil
	}
	return dedupeRefs(local)
}

// validateListings checks each local favorite against the listing service
// concurrently. Gone listings are pruned; refs whose check failed stay
// unresolved and are neither merged nor discarded.
func (h *ReconcileFavoritesHandler) validateListings(ctx context.Context, local []domain.FavoriteRef, result *ReconcileResult) []domain.FavoriteRef {
	type outcome struct {
		exists bool
		err    error
	}
	outcomes := make([]outcome, len(local))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(existsCheckConcurrency)
	for i, ref := range local {
		g.Go(func() error {
			exists, err := h.listings.Exists(gctx, ref.ListingID)
			outcomes[i] = outcome{exists: exists, err: err}
			return nil
		})
	}
	g.Wait()

	var valid []domain.FavoriteRef
	for i, ref := range local {
		switch {
		case outcomes[i].err != nil:
			logger.Warn(ctx).
				Str("listing_id", ref.ListingID).
				Err(outcomes[i].err).
				Msg("Listing existence check failed, keeping favorite for retry")
			result.Unresolved++
			result.Incomplete = true
		case !outcomes[i].exists:
			result.Pruned++
		default:
			valid = append(valid, ref)
		}
	}
	return valid
}

// mergeMissing writes the refs absent from the remote set, tolerating
// per-ref failures. A constraint violation means a concurrent run already
// wrote the pair, which is the desired end state.
func (h *ReconcileFavoritesHandler) mergeMissing(ctx context.Context, userID uint, missing []domain.FavoriteRef, result *ReconcileResult) []domain.FavoriteRef {
	var (
		mu     sync.Mutex
		merged []domain.FavoriteRef
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(existsCheckConcurrency)
	for _, ref := range missing {
		g.Go(func() error {
			err := h.remote.Add(gctx, userID, ref.ListingID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				result.Added++
				merged = append(merged, ref)
			case domain.IsConstraint(err):
				merged = append(merged, ref)
			default:
				logger.Warn(gctx).
					Uint("user_id", userID).
					Str("listing_id", ref.ListingID).
					Err(err).
					Msg("Failed to merge device favorite")
				result.Failed++
				result.Incomplete = true
			}
			return nil
		})
	}
	g.Wait()
	return merged
}

// publish finalizes the run: the published state is terminal and always
// reached, whatever happened before it.
func (h *ReconcileFavoritesHandler) publish(ctx context.Context, cmd ReconcileFavoritesCommand, result *ReconcileResult, start time.Time) *ReconcileResult {
	h.transition(ctx, cmd, StatePublished)

	if h.publisher != nil {
		event := kafka.FavoritesReconciledEvent{
			UserID:     cmd.UserID,
			DeviceID:   cmd.DeviceID,
			Added:      result.Added,
			Pruned:     result.Pruned,
			Unresolved: result.Unresolved,
			Failed:     result.Failed,
		}
		if err := h.publisher.PublishFavoritesReconciled(ctx, event); err != nil {
			logger.Warn(ctx).
				Uint("user_id", cmd.UserID).
				Err(err).
				Msg("Failed to publish favorites reconciled event")
		}
	}

	logger.Info(ctx).
		Uint("user_id", cmd.UserID).
		Str("device_id", cmd.DeviceID).
		Int("added", result.Added).
		Int("pruned", result.Pruned).
		Int("unresolved", result.Unresolved).
		Int("failed", result.Failed).
		Bool("incomplete", result.Incomplete).
		Dur("duration", time.Since(start)).
		Msg("Favorites reconciled")

	return result
}

func (h *ReconcileFavoritesHandler) transition(ctx context.Context, cmd ReconcileFavoritesCommand, state ReconcileState) {
	logger.Debug(ctx).
		Uint("user_id", cmd.UserID).
		Str("state", string(state)).
		Msg("Reconciliation state change")
}

func dedupeRefs(refs []domain.FavoriteRef) []domain.FavoriteRef {
	seen := make(map[string]struct{}, len(refs))
	out := refs[:0]
	for _, ref := range refs {
		if _, ok := seen[ref.ListingID]; ok {
			continue
		}
		seen[ref.ListingID] = struct{}{}
		out = append(out, ref)
	}
	return out
}
