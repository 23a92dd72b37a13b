package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, subject string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return signed
}

func TestREST_CurrentIdentity(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name    string
		token   string
		want    uuid.UUID
		wantErr error
	}{
		{
			name:  "FromTokenSubject",
			token: signedToken(t, userID.String()),
			want:  userID,
		},
		{
			name:    "NoToken",
			token:   "",
			wantErr: ErrUnauthenticated,
		},
		{
			name:    "MalformedToken",
			token:   "not-a-jwt",
			wantErr: ErrUnauthenticated,
		},
		{
			name:    "NonUUIDSubject",
			token:   signedToken(t, "service-role"),
			wantErr: ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewREST("http://localhost", "anon", tt.token, time.Second)

			got, err := r.CurrentIdentity()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestREST_Select(t *testing.T) {
	owner := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/wallets", r.URL.Path)
		assert.Equal(t, "eq."+owner.String(), r.URL.Query().Get("user_id"))
		assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		assert.Contains(t, r.Header.Get("Authorization"), "Bearer ")

		w.Write([]byte(`[{"id":"` + uuid.NewString() + `"}]`))
	}))
	defer srv.Close()

	r := NewREST(srv.URL, "anon", signedToken(t, owner.String()), time.Second)

	raw, err := r.Select(context.Background(), "wallets",
		[]Eq{{Column: "user_id", Value: owner}},
		[]Order{{Column: "created_at", Descending: true}},
	)
	require.NoError(t, err)

	rows, err := DecodeRows[struct {
		ID uuid.UUID `json:"id"`
	}](raw)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestREST_Insert_UnwrapsRepresentation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[{"name":"Cash"}]`))
	}))
	defer srv.Close()

	r := NewREST(srv.URL, "anon", "", time.Second)

	raw, err := r.Insert(context.Background(), "wallets", map[string]string{"name": "Cash"})
	require.NoError(t, err)

	row, err := DecodeRow[struct {
		Name string `json:"name"`
	}](raw)
	require.NoError(t, err)
	assert.Equal(t, "Cash", row.Name)
}

func TestREST_RejectedCarriesRemoteMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"duplicate key value"}`))
	}))
	defer srv.Close()

	r := NewREST(srv.URL, "anon", "", time.Second)

	_, err := r.Insert(context.Background(), "categories", map[string]string{"name": "Food"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "duplicate key value")
}

func TestREST_Delete(t *testing.T) {
	id := uuid.New()
	owner := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "eq."+id.String(), r.URL.Query().Get("id"))
		assert.Equal(t, "eq."+owner.String(), r.URL.Query().Get("user_id"))

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	r := NewREST(srv.URL, "anon", "", time.Second)

	err := r.Delete(context.Background(), "transactions", []Eq{
		{Column: "id", Value: id},
		{Column: "user_id", Value: owner},
	})
	assert.NoError(t, err)
}

func TestREST_AdjustWalletBalance(t *testing.T) {
	walletID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/rpc/adjust_wallet_balance", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	r := NewREST(srv.URL, "anon", "", time.Second)

	err := r.AdjustWalletBalance(context.Background(), walletID, decimal.NewFromInt(-25))
	assert.NoError(t, err)
}

func TestDate_RoundTrip(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	require.NoError(t, err)

	b, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-15"`, string(b))

	var decoded Date
	require.NoError(t, decoded.UnmarshalJSON(b))
	assert.True(t, decoded.Equal(d.Time))
}

func TestDate_Within(t *testing.T) {
	start := NewDate(2024, time.January, 1)
	end := NewDate(2024, time.January, 31)

	assert.True(t, NewDate(2024, time.January, 1).Within(&start, &end))
	assert.True(t, NewDate(2024, time.January, 31).Within(&start, &end))
	assert.False(t, NewDate(2024, time.February, 1).Within(&start, &end))
	assert.True(t, NewDate(1999, time.June, 5).Within(nil, &end))
	assert.True(t, NewDate(2030, time.June, 5).Within(&start, nil))
	assert.True(t, NewDate(2030, time.June, 5).Within(nil, nil))
}
