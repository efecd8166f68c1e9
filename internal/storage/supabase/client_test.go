package supabase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"portfolio/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return New(Config{URL: srv.URL, APIKey: "anon-key"}, WithHTTPClient(srv.Client()))
}

func TestQuery_Encode(t *testing.T) {
	c := New(Config{URL: "http://example.test", APIKey: "k"})

	q := c.From("projects").
		Select(`id, title,
			technologies (id, name, icon_url)`).
		Eq("is_featured", true).
		Order("sort_order", Ascending, true).
		Order("created_at", Descending)

	values, err := url.ParseQuery(q.Encode())
	require.NoError(t, err)

	assert.Equal(t, "id,title,technologies(id,name,icon_url)", values.Get("select"))
	assert.Equal(t, "eq.true", values.Get("is_featured"))
	assert.Equal(t, "sort_order.asc.nullsfirst,created_at.desc", values.Get("order"))
}

func TestQuery_In(t *testing.T) {
	c := New(Config{URL: "http://example.test", APIKey: "k"})

	values, err := url.ParseQuery(c.From("posts").In("id", []string{"a", `b"c`}).Encode())
	require.NoError(t, err)

	assert.Equal(t, `in.("a","b\"c")`, values.Get("id"))
}

func TestExecute_List(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/posts", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		assert.Equal(t, "eq.true", r.URL.Query().Get("is_published"))
		assert.Equal(t, "published_at.desc", r.URL.Query().Get("order"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"1","slug":"hello-world"},{"id":"2","slug":"second"}]`))
	})

	var rows []row
	err := c.From("posts").Select("id,slug").Eq("is_published", true).Order("published_at", Descending).Execute(context.Background(), &rows)

	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "hello-world", rows[0].Slug)
}

func TestExecute_SingleNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, singleObjectMediaType, r.Header.Get("Accept"))

		w.WriteHeader(http.StatusNotAcceptable)
		w.Write([]byte(`{"code":"PGRST116","details":"The result contains 0 rows","hint":null,"message":"JSON object requested, multiple (or no) rows returned"}`))
	})

	var r row
	err := c.From("posts").Select("id,slug").Eq("slug", "missing").Single().Execute(context.Background(), &r)

	assert.ErrorIs(t, err, ErrNoRows)
}

func TestExecute_SingleMalformedFilter(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"22P02","details":null,"hint":null,"message":"invalid input syntax for type uuid: \"not-a-uuid\""}`))
	})

	var r row
	err := c.From("tags").Select("id,name").Eq("id", "not-a-uuid").Single().Execute(context.Background(), &r)
	assert.ErrorIs(t, err, ErrNoRows)

	var rows []row
	err = c.From("tags").Eq("id", "not-a-uuid").Execute(context.Background(), &rows)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "22P02", apiErr.Code)
}

func TestExecute_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"code":"PGRST000","message":"could not connect"}`))
	})

	var rows []row
	err := c.From("posts").Execute(context.Background(), &rows)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, "PGRST000", apiErr.Code)
	assert.NotErrorIs(t, err, ErrNoRows)
}

func TestExecute_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL, APIKey: "k", Timeout: 50 * time.Millisecond})

	var rows []row
	err := c.From("posts").Execute(context.Background(), &rows)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInertClient(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "no url", cfg: Config{APIKey: "k"}},
		{name: "no key", cfg: Config{URL: srv.URL}},
		{name: "nothing", cfg: Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.cfg)
			assert.False(t, c.Configured())

			var rows []row
			require.NoError(t, c.From("posts").Execute(context.Background(), &rows))
			assert.NotNil(t, rows)
			assert.Empty(t, rows)

			var r row
			assert.ErrorIs(t, c.From("posts").Eq("slug", "x").Single().Execute(context.Background(), &r), ErrNoRows)

			_, err := c.SignInWithPassword(context.Background(), "a@b.c", "secret")
			assert.ErrorIs(t, err, storage.ErrNotConfigured)

			assert.NoError(t, c.SignOut(context.Background(), "token"))
		})
	}

	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestNewAuthenticated(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":"u1","slug":""}`))
	})

	authed := NewAuthenticated(Config{URL: c.baseURL, APIKey: "anon-key"}, "user-token", WithHTTPClient(c.http))

	var r row
	require.NoError(t, authed.From("profiles").Eq("id", "u1").Single().Execute(context.Background(), &r))
	assert.Equal(t, "u1", r.ID)
}

func TestSignInWithPassword(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour).Unix()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))

		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusUnsupportedMediaType)
			return
		}

		w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_in":3600,"expires_at":` +
			strconv.FormatInt(expiresAt, 10) + `,"user":{"id":"u1","email":"me@example.com"}}`))
	})

	sess, err := c.SignInWithPassword(context.Background(), "me@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "at", sess.AccessToken)
	assert.Equal(t, "rt", sess.RefreshToken)
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, expiresAt, sess.ExpiresAt.Unix())
}

func TestSignInWithPassword_InvalidCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	})

	_, err := c.SignInWithPassword(context.Background(), "me@example.com", "wrong")

	assert.ErrorIs(t, err, storage.ErrInvalidCredentials)
}

func TestSignOut(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/logout", r.URL.Path)
		assert.Equal(t, "Bearer at", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, c.SignOut(context.Background(), "at"))
}
