// Package show mirrors the shared show catalog. Shows carry no owner; the
// per-identity data lives on the episode watch-status rows.
package show

import "github.com/google/uuid"

const Collection = "shows"

type Show struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

func (s Show) EntityID() uuid.UUID { return s.ID }
