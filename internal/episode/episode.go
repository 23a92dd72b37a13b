package episode

import (
	"github.com/google/uuid"

	"hamrotrack/internal/gateway"
)

const (
	// Collection is the shared episode catalog. Episodes carry no owner;
	// only the watch status rows are per-identity.
	Collection = "episodes"

	// StatusCollection holds one row per (user, episode) watched mark.
	StatusCollection = "user_episode_status"
)

const statusWatched = "watched"

type Episode struct {
	ID            uuid.UUID     `json:"id"`
	ShowID        uuid.UUID     `json:"show_id"`
	Title         string        `json:"title"`
	SeasonNumber  int           `json:"season_number"`
	EpisodeNumber int           `json:"episode_number"`
	AirDate       *gateway.Date `json:"air_date"`
	Description   string        `json:"description"`

	// Watched is joined locally from StatusCollection, never stored on the
	// episode row itself.
	Watched bool `json:"-"`
}

func (e Episode) EntityID() uuid.UUID { return e.ID }
