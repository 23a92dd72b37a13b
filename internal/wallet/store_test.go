package wallet_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hamrotrack/internal/gateway"
	"hamrotrack/internal/notify"
	"hamrotrack/internal/wallet"
)

func walletJSON(w wallet.Wallet) json.RawMessage {
	b, err := json.Marshal(w)
	if err != nil {
		panic(err)
	}

	return b
}

func walletsJSON(ws ...wallet.Wallet) json.RawMessage {
	b, err := json.Marshal(ws)
	if err != nil {
		panic(err)
	}

	return b
}

func TestStore_Fetch(t *testing.T) {
	owner := uuid.New()
	cached := wallet.Wallet{ID: uuid.New(), Name: "Cash", Currency: "NPR", UserID: owner}

	type testCase struct {
		name      string
		setupMock func(m *gateway.MockClient)
		wantErr   error
		wantItems int
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *gateway.MockClient) {
				m.EXPECT().CurrentIdentity().Return(owner, nil)
				m.EXPECT().
					Select(gomock.Any(), wallet.Collection,
						[]gateway.Eq{{Column: "user_id", Value: owner}},
						[]gateway.Order{{Column: "created_at", Descending: true}}).
					Return(walletsJSON(cached), nil)
			},
			wantItems: 1,
		},
		{
			name: "RejectedDegradesToEmpty",
			setupMock: func(m *gateway.MockClient) {
				m.EXPECT().CurrentIdentity().Return(owner, nil)
				m.EXPECT().
					Select(gomock.Any(), wallet.Collection, gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: boom", gateway.ErrRejected))
			},
			wantItems: 0,
		},
		{
			name: "MalformedRowsDegradeToEmpty",
			setupMock: func(m *gateway.MockClient) {
				m.EXPECT().CurrentIdentity().Return(owner, nil)
				m.EXPECT().
					Select(gomock.Any(), wallet.Collection, gomock.Any(), gomock.Any()).
					Return(json.RawMessage(`{"not":"an array"}`), nil)
			},
			wantItems: 0,
		},
		{
			name: "Unauthenticated",
			setupMock: func(m *gateway.MockClient) {
				m.EXPECT().CurrentIdentity().Return(uuid.Nil, gateway.ErrUnauthenticated)
			},
			wantErr: gateway.ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			gw := gateway.NewMockClient(ctrl)
			tt.setupMock(gw)

			s := wallet.NewStore(gw, &notify.Recorder{})

			err := s.Fetch(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, s.Items(), tt.wantItems)
			assert.False(t, s.Loading())
		})
	}
}

func TestStore_Create_PrependsCanonicalRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()
	existing := wallet.Wallet{ID: uuid.New(), Name: "Old", UserID: owner}
	created := wallet.Wallet{ID: uuid.New(), Name: "Cash", Currency: "NPR", UserID: owner}

	gw := gateway.NewMockClient(ctrl)
	gw.EXPECT().CurrentIdentity().Return(owner, nil).Times(2)
	gw.EXPECT().
		Select(gomock.Any(), wallet.Collection, gomock.Any(), gomock.Any()).
		Return(walletsJSON(existing), nil)
	gw.EXPECT().
		Insert(gomock.Any(), wallet.Collection, gomock.Any()).
		Return(walletJSON(created), nil)

	rec := &notify.Recorder{}
	s := wallet.NewStore(gw, rec)
	require.NoError(t, s.Fetch(context.Background()))

	err := s.Create(context.Background(), wallet.CreateParams{
		Name:     "Cash",
		Currency: "NPR",
		Balance:  decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, created.ID, items[0].ID)
	assert.Equal(t, existing.ID, items[1].ID)

	require.Len(t, rec.Entries, 1)
	assert.Equal(t, notify.Success, rec.Entries[0].Severity)
}

func TestStore_Create_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := gateway.NewMockClient(ctrl) // no calls expected: validation is local
	rec := &notify.Recorder{}
	s := wallet.NewStore(gw, rec)

	err := s.Create(context.Background(), wallet.CreateParams{Currency: "USD"})
	assert.ErrorIs(t, err, wallet.ErrNameRequired)

	err = s.Create(context.Background(), wallet.CreateParams{Name: "Cash"})
	assert.ErrorIs(t, err, wallet.ErrCurrencyRequired)

	require.Len(t, rec.Entries, 2)
	assert.Equal(t, notify.Error, rec.Entries[0].Severity)
}

func TestStore_Update_RefreshesCacheAndSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()
	w := wallet.Wallet{ID: uuid.New(), Name: "Cash", Currency: "NPR", UserID: owner}
	renamed := w
	renamed.Name = "Daily Cash"

	gw := gateway.NewMockClient(ctrl)
	gw.EXPECT().CurrentIdentity().Return(owner, nil).Times(2)
	gw.EXPECT().
		Select(gomock.Any(), wallet.Collection, gomock.Any(), gomock.Any()).
		Return(walletsJSON(w), nil)
	gw.EXPECT().
		Update(gomock.Any(), wallet.Collection,
			[]gateway.Eq{{Column: "id", Value: w.ID}, {Column: "user_id", Value: owner}},
			gomock.Any()).
		Return(walletJSON(renamed), nil)

	s := wallet.NewStore(gw, &notify.Recorder{})
	require.NoError(t, s.Fetch(context.Background()))
	s.Select(w.ID)

	name := "Daily Cash"
	require.NoError(t, s.Update(context.Background(), w.ID, wallet.Patch{Name: &name}))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Daily Cash", items[0].Name)

	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "Daily Cash", sel.Name)
}

func TestStore_Update_RejectedLeavesCacheUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()
	w := wallet.Wallet{ID: uuid.New(), Name: "Cash", UserID: owner}

	gw := gateway.NewMockClient(ctrl)
	gw.EXPECT().CurrentIdentity().Return(owner, nil).Times(2)
	gw.EXPECT().
		Select(gomock.Any(), wallet.Collection, gomock.Any(), gomock.Any()).
		Return(walletsJSON(w), nil)
	gw.EXPECT().
		Update(gomock.Any(), wallet.Collection, gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: permission denied", gateway.ErrRejected))

	rec := &notify.Recorder{}
	s := wallet.NewStore(gw, rec)
	require.NoError(t, s.Fetch(context.Background()))

	name := "Other"
	err := s.Update(context.Background(), w.ID, wallet.Patch{Name: &name})
	assert.ErrorIs(t, err, gateway.ErrRejected)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Cash", items[0].Name)

	require.Len(t, rec.Entries, 1)
	assert.Equal(t, notify.Error, rec.Entries[0].Severity)
}

func TestStore_Delete_RemovesAndClearsSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := uuid.New()
	w := wallet.Wallet{ID: uuid.New(), Name: "Cash", UserID: owner}

	gw := gateway.NewMockClient(ctrl)
	gw.EXPECT().CurrentIdentity().Return(owner, nil).Times(2)
	gw.EXPECT().
		Select(gomock.Any(), wallet.Collection, gomock.Any(), gomock.Any()).
		Return(walletsJSON(w), nil)
	gw.EXPECT().
		Delete(gomock.Any(), wallet.Collection,
			[]gateway.Eq{{Column: "id", Value: w.ID}, {Column: "user_id", Value: owner}}).
		Return(nil)

	s := wallet.NewStore(gw, &notify.Recorder{})
	require.NoError(t, s.Fetch(context.Background()))
	s.Select(w.ID)

	require.NoError(t, s.Delete(context.Background(), w.ID))
	assert.Empty(t, s.Items())

	_, ok := s.Selected()
	assert.False(t, ok)
}
