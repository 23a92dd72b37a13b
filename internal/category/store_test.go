package category_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hamrotrack/internal/category"
	"hamrotrack/internal/gateway"
	"hamrotrack/internal/notify"
)

func rows(cs ...category.Category) json.RawMessage {
	b, err := json.Marshal(cs)
	if err != nil {
		panic(err)
	}

	return b
}

func TestStore_Fetch_ScopesToOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()
	mine := category.Category{ID: uuid.New(), Name: "Food", Color: "#ef4444", UserID: owner}

	gw := gateway.NewMockClient(ctrl)
	gw.EXPECT().CurrentIdentity().Return(owner, nil)
	gw.EXPECT().
		Select(gomock.Any(), category.Collection,
			[]gateway.Eq{{Column: "user_id", Value: owner}},
			[]gateway.Order{{Column: "created_at", Descending: true}}).
		Return(rows(mine), nil)

	s := category.NewStore(gw, &notify.Recorder{})
	require.NoError(t, s.Fetch(context.Background()))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, owner, items[0].UserID)
}

func TestStore_Create_DefaultsColor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()
	created := category.Category{ID: uuid.New(), Name: "Misc", Color: category.FallbackColor, UserID: owner}

	gw := gateway.NewMockClient(ctrl)
	gw.EXPECT().CurrentIdentity().Return(owner, nil)
	gw.EXPECT().
		Insert(gomock.Any(), category.Collection, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, row any) (json.RawMessage, error) {
			b, err := json.Marshal(row)
			require.NoError(t, err)
			assert.Contains(t, string(b), category.FallbackColor)

			return json.Marshal(created)
		})

	s := category.NewStore(gw, &notify.Recorder{})
	require.NoError(t, s.Create(context.Background(), category.CreateParams{Name: "Misc"}))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, category.FallbackColor, items[0].Color)
}

func TestStore_Create_RequiresName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := gateway.NewMockClient(ctrl)
	rec := &notify.Recorder{}
	s := category.NewStore(gw, rec)

	err := s.Create(context.Background(), category.CreateParams{Color: "#fff"})
	assert.ErrorIs(t, err, category.ErrNameRequired)
	require.Len(t, rec.Entries, 1)
	assert.Equal(t, notify.Error, rec.Entries[0].Severity)
}

func TestStore_Delete_NoResurrection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()
	food := category.Category{ID: uuid.New(), Name: "Food", UserID: owner}
	rent := category.Category{ID: uuid.New(), Name: "Rent", UserID: owner}

	gw := gateway.NewMockClient(ctrl)
	gw.EXPECT().CurrentIdentity().Return(owner, nil).Times(3)
	gw.EXPECT().
		Select(gomock.Any(), category.Collection, gomock.Any(), gomock.Any()).
		Return(rows(food, rent), nil)
	gw.EXPECT().
		Delete(gomock.Any(), category.Collection,
			[]gateway.Eq{{Column: "id", Value: food.ID}, {Column: "user_id", Value: owner}}).
		Return(nil)
	gw.EXPECT().
		Select(gomock.Any(), category.Collection, gomock.Any(), gomock.Any()).
		Return(rows(rent), nil)

	s := category.NewStore(gw, &notify.Recorder{})
	require.NoError(t, s.Fetch(context.Background()))
	require.NoError(t, s.Delete(context.Background(), food.ID))

	// Refetch must not bring the deleted row back.
	require.NoError(t, s.Fetch(context.Background()))

	for _, c := range s.Items() {
		assert.NotEqual(t, food.ID, c.ID)
	}
}

func TestStore_Delete_RejectedKeepsItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()
	food := category.Category{ID: uuid.New(), Name: "Food", UserID: owner}

	gw := gateway.NewMockClient(ctrl)
	gw.EXPECT().CurrentIdentity().Return(owner, nil).Times(2)
	gw.EXPECT().
		Select(gomock.Any(), category.Collection, gomock.Any(), gomock.Any()).
		Return(rows(food), nil)
	gw.EXPECT().
		Delete(gomock.Any(), category.Collection, gomock.Any()).
		Return(fmt.Errorf("%w: row is referenced", gateway.ErrRejected))

	s := category.NewStore(gw, &notify.Recorder{})
	require.NoError(t, s.Fetch(context.Background()))

	err := s.Delete(context.Background(), food.ID)
	assert.ErrorIs(t, err, gateway.ErrRejected)
	assert.Len(t, s.Items(), 1)
}
