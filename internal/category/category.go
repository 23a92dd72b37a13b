package category

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const Collection = "categories"

var ErrNameRequired = errors.New("category name is required")

// FallbackColor labels expenses whose category is missing or no longer
// resolvable.
const FallbackColor = "#999999"

type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (c Category) EntityID() uuid.UUID { return c.ID }

type CreateParams struct {
	Name  string
	Color string
}

type Patch struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}
