package episode

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"hamrotrack/internal/gateway"
	"hamrotrack/internal/notify"
)

// Store mirrors one show's episodes joined with the current identity's watch
// status. The two source collections load independently; the join happens in
// memory.
type Store struct {
	gw       gateway.Client
	notifier notify.Notifier

	mu      sync.Mutex
	items   []Episode
	loading bool
}

func NewStore(gw gateway.Client, notifier notify.Notifier) *Store {
	return &Store{gw: gw, notifier: notifier}
}

// Items returns a snapshot of the cached episodes in (season, episode)
// order.
func (s *Store) Items() []Episode {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Episode, len(s.items))
	copy(out, s.items)

	return out
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loading
}

// Progress derives the watch progress of the cached show.
func (s *Store) Progress() ShowProgress {
	return Progress(s.Items())
}

type statusRow struct {
	EpisodeID uuid.UUID `json:"episode_id"`
}

// Fetch loads the show's episodes and the identity's watched set with two
// independent queries and joins them locally. A rejected query degrades to
// an empty cache with a log line.
func (s *Store) Fetch(ctx context.Context, showID uuid.UUID) error {
	owner, err := s.gw.CurrentIdentity()
	if err != nil {
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	var (
		episodesRaw json.RawMessage
		watchedRaw  json.RawMessage
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		episodesRaw, err = s.gw.Select(gctx, Collection,
			[]gateway.Eq{{Column: "show_id", Value: showID}},
			[]gateway.Order{
				{Column: "season_number"},
				{Column: "episode_number"},
			},
		)

		return err
	})

	g.Go(func() error {
		var err error
		watchedRaw, err = s.gw.Select(gctx, StatusCollection,
			[]gateway.Eq{
				{Column: "user_id", Value: owner},
				{Column: "status", Value: statusWatched},
			},
			nil,
		)

		return err
	})

	err = g.Wait()

	var episodes []Episode

	var watched []statusRow

	if err == nil {
		episodes, err = gateway.DecodeRows[Episode](episodesRaw)
	}

	if err == nil {
		watched, err = gateway.DecodeRows[statusRow](watchedRaw)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		slog.Error("fetching episodes", "show_id", showID, "error", err)
		s.items = nil

		return nil
	}

	watchedSet := make(map[uuid.UUID]struct{}, len(watched))
	for _, w := range watched {
		watchedSet[w.EpisodeID] = struct{}{}
	}

	for i := range episodes {
		_, episodes[i].Watched = watchedSet[episodes[i].ID]
	}

	s.items = episodes

	return nil
}

// Toggle flips the watch status of the given episode. Marking is an upsert
// and unmarking a scoped delete, so repeating either call is a no-op
// remotely; two toggles in a row land back on the original state.
func (s *Store) Toggle(ctx context.Context, episodeID uuid.UUID) error {
	owner, err := s.gw.CurrentIdentity()
	if err != nil {
		s.notifier.Notify("Failed to update watch status", err.Error(), notify.Error)
		return err
	}

	s.mu.Lock()
	watched := false
	found := false

	for _, e := range s.items {
		if e.ID == episodeID {
			watched = e.Watched
			found = true

			break
		}
	}
	s.mu.Unlock()

	if !found {
		return nil
	}

	if watched {
		err = s.gw.Delete(ctx, StatusCollection, []gateway.Eq{
			{Column: "user_id", Value: owner},
			{Column: "episode_id", Value: episodeID},
		})
	} else {
		err = s.gw.Upsert(ctx, StatusCollection, struct {
			UserID    uuid.UUID `json:"user_id"`
			EpisodeID uuid.UUID `json:"episode_id"`
			Status    string    `json:"status"`
			WatchedAt time.Time `json:"watched_at"`
		}{
			UserID:    owner,
			EpisodeID: episodeID,
			Status:    statusWatched,
			WatchedAt: time.Now().UTC(),
		})
	}

	if err != nil {
		s.notifier.Notify("Failed to update watch status", err.Error(), notify.Error)
		return err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == episodeID {
			s.items[i].Watched = !watched
			break
		}
	}
	s.mu.Unlock()

	if watched {
		s.notifier.Notify("Episode marked as unwatched", "", notify.Success)
	} else {
		s.notifier.Notify("Episode marked as watched", "", notify.Success)
	}

	return nil
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
