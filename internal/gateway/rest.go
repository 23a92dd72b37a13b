package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// REST talks to a PostgREST-style data service. Authentication, persistence
// and row-level security are the service's job; REST only carries the
// identity token along.
type REST struct {
	baseURL  string
	anonKey  string
	token    string
	identity uuid.UUID
	client   *http.Client
}

// NewREST builds a client for the service at baseURL. The identity is the
// subject claim of accessToken; the token is parsed without verification
// since the remote end is the one enforcing it. An empty or malformed token
// leaves the client unauthenticated rather than failing construction.
func NewREST(baseURL, anonKey, accessToken string, timeout time.Duration) *REST {
	r := &REST{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		token:   accessToken,
		client:  &http.Client{Timeout: timeout},
	}

	if accessToken != "" {
		var claims jwt.RegisteredClaims
		if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims); err == nil {
			if id, err := uuid.Parse(claims.Subject); err == nil {
				r.identity = id
			}
		}
	}

	return r
}

func (r *REST) CurrentIdentity() (uuid.UUID, error) {
	if r.identity == uuid.Nil {
		return uuid.Nil, ErrUnauthenticated
	}

	return r.identity, nil
}

func (r *REST) Select(ctx context.Context, collection string, match []Eq, order []Order) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("select", "*")

	for _, m := range match {
		q.Set(m.Column, "eq."+fmt.Sprint(m.Value))
	}

	if len(order) > 0 {
		keys := make([]string, len(order))

		for i, o := range order {
			dir := "asc"
			if o.Descending {
				dir = "desc"
			}

			keys[i] = o.Column + "." + dir
		}

		q.Set("order", strings.Join(keys, ","))
	}

	return r.do(ctx, http.MethodGet, r.collectionURL(collection, q), nil, nil)
}

func (r *REST) Insert(ctx context.Context, collection string, row any) (json.RawMessage, error) {
	body, err := r.do(ctx, http.MethodPost, r.collectionURL(collection, nil), row, map[string]string{
		"Prefer": "return=representation",
	})
	if err != nil {
		return nil, err
	}

	return firstRow(body)
}

func (r *REST) Upsert(ctx context.Context, collection string, row any) error {
	_, err := r.do(ctx, http.MethodPost, r.collectionURL(collection, nil), row, map[string]string{
		"Prefer": "return=minimal,resolution=merge-duplicates",
	})

	return err
}

func (r *REST) Update(ctx context.Context, collection string, match []Eq, patch any) (json.RawMessage, error) {
	q := url.Values{}
	for _, m := range match {
		q.Set(m.Column, "eq."+fmt.Sprint(m.Value))
	}

	body, err := r.do(ctx, http.MethodPatch, r.collectionURL(collection, q), patch, map[string]string{
		"Prefer": "return=representation",
	})
	if err != nil {
		return nil, err
	}

	return firstRow(body)
}

func (r *REST) Delete(ctx context.Context, collection string, match []Eq) error {
	q := url.Values{}
	for _, m := range match {
		q.Set(m.Column, "eq."+fmt.Sprint(m.Value))
	}

	_, err := r.do(ctx, http.MethodDelete, r.collectionURL(collection, q), nil, nil)

	return err
}

func (r *REST) AdjustWalletBalance(ctx context.Context, walletID uuid.UUID, delta decimal.Decimal) error {
	payload := map[string]any{
		"wallet_id": walletID,
		"delta":     delta,
	}

	_, err := r.do(ctx, http.MethodPost, r.baseURL+"/rest/v1/rpc/adjust_wallet_balance", payload, nil)

	return err
}

func (r *REST) collectionURL(collection string, q url.Values) string {
	u := r.baseURL + "/rest/v1/" + collection
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	return u
}

func (r *REST) do(ctx context.Context, method, rawURL string, body any, headers map[string]string) (json.RawMessage, error) {
	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("apikey", r.anonKey)
	req.Header.Set("Accept", "application/json")

	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrRejected, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s (status %d)", ErrRejected, remoteMessage(payload), resp.StatusCode)
	}

	return payload, nil
}

// remoteMessage extracts the service's error description, falling back to the
// raw body.
func remoteMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}

	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}

	return strings.TrimSpace(string(body))
}

// firstRow unwraps the single-element array the service returns for writes
// with return=representation.
func firstRow(body json.RawMessage) (json.RawMessage, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		// Some deployments return a bare object.
		return body, nil
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty representation", ErrRejected)
	}

	return rows[0], nil
}
