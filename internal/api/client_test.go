package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := New(srv.URL, opts...)
	require.NoError(t, err)
	return client
}

func TestCommandSendsHistoryAndDecodesReply(t *testing.T) {
	var got CommandRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/command", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"reply":"hi there"}`))
	}, WithRequestIDs(func() string { return "req-1" }))

	resp, err := client.Command(context.Background(), CommandRequest{
		Command: "hello",
		History: []Turn{{Role: RoleUser, Content: "earlier"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "hi there", resp.Reply)
	assert.Equal(t, "hello", got.Command)
	require.Len(t, got.History, 1)
	assert.Equal(t, RoleUser, got.History[0].Role)
}

func TestCommandNilHistoryEncodesEmptyList(t *testing.T) {
	var raw map[string]json.RawMessage
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"reply":"ok"}`))
	})

	_, err := client.Command(context.Background(), CommandRequest{Command: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw["history"]))
}

func TestCommandMissingReplyIsMalformed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"legacy"}`))
	})

	_, err := client.Command(context.Background(), CommandRequest{Command: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestUnauthorizedMatchesSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Not authenticated"}`))
	})

	_, err := client.Command(context.Background(), CommandRequest{Command: "x"})
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
	assert.Equal(t, "Not authenticated", httpErr.Detail)
}

func TestServerErrorIsNotUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.SendEmail(context.Background(), SendEmailRequest{To: "a@b.c"})
	require.Error(t, err)
	assert.False(t, IsUnauthorized(err))
	assert.False(t, IsNetwork(err))
}

func TestSendEmailAcceptsEmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/email/send", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	resp, err := client.SendEmail(context.Background(), SendEmailRequest{To: "a@b.c", Subject: "Hi", Body: "Hello"})
	require.NoError(t, err)
	assert.Empty(t, resp.Reply)
}

func TestNetworkErrorWhenServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	client, err := New(url)
	require.NoError(t, err)

	err = client.Health(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
}

func TestDrafts(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{name: "well formed", body: `{"data":{"drafts":[{"subject":"A","body":"a"},{"subject":"B","body":"b"}]}}`, want: 2},
		{name: "empty list", body: `{"data":{"drafts":[]}}`, wantErr: true},
		{name: "missing data", body: `{"drafts":[{"subject":"A"}]}`, wantErr: true},
		{name: "blank entry", body: `{"data":{"drafts":[{"subject":" ","body":""}]}}`, wantErr: true},
		{name: "not json", body: `<html>`, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got DraftRequest
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/email/draft", r.URL.Path)
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				_, _ = w.Write([]byte(tc.body))
			})
			drafts, err := client.Drafts(context.Background(), DraftRequest{Intent: "ask", Receiver: "bob@example.com", Tone: "friendly"})
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedResponse)
				assert.Nil(t, drafts)
				return
			}
			require.NoError(t, err)
			assert.Len(t, drafts, tc.want)
			assert.Equal(t, "friendly", got.Tone)
			assert.Equal(t, "bob@example.com", got.Receiver)
		})
	}
}

func TestCreateMeetingAcceptsLegacyLink(t *testing.T) {
	for _, body := range []string{
		`{"data":{"meet_link":"https://meet.example/abc"}}`,
		`{"data":{"meetLink":"https://meet.example/abc"}}`,
	} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var req MeetingRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, []string{"a@example.com"}, req.Recipients)
			_, _ = w.Write([]byte(body))
		})
		resp, err := client.CreateMeeting(context.Background(), MeetingRequest{Recipients: []string{"a@example.com"}})
		require.NoError(t, err)
		assert.Equal(t, "https://meet.example/abc", resp.MeetLink)
	}
}

func TestCreateMeetingWithoutLinkIsMalformed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	})
	_, err := client.CreateMeeting(context.Background(), MeetingRequest{})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestAuthStatusShapes(t *testing.T) {
	cases := map[string]AuthStatus{
		`{"authenticated":true,"email":"me@example.com"}`: {LoggedIn: true, User: "me@example.com"},
		`{"authenticated":false,"email":null}`:            {},
		`{"logged_in":true,"user":"old@example.com"}`:     {LoggedIn: true, User: "old@example.com"},
	}
	for body, want := range cases {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			_, _ = w.Write([]byte(body))
		})
		got, err := client.AuthStatus(context.Background())
		require.NoError(t, err, body)
		assert.Equal(t, want, got, body)
	}
}

func TestSessionCookieRoundTrip(t *testing.T) {
	var seen []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(SessionCookie); err == nil {
			seen = append(seen, c.Value)
		} else {
			seen = append(seen, "")
		}
		switch r.URL.Path {
		case "/auth/logout":
			_, _ = w.Write([]byte(`{"success":true}`))
		default:
			_, _ = w.Write([]byte(`{"authenticated":true,"email":"me@example.com"}`))
		}
	})

	client.SetSession("abc123")
	_, err := client.AuthStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", client.Session())

	require.NoError(t, client.Logout(context.Background()))
	assert.Equal(t, "", client.Session())

	_, err = client.AuthStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"abc123", "abc123", ""}, seen)
}

func TestSessionHookSeesServerCookie(t *testing.T) {
	var hooked []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "fresh", Path: "/"})
		_, _ = w.Write([]byte(`{"authenticated":true,"email":"me@example.com"}`))
	}, WithSessionHook(func(v string) { hooked = append(hooked, v) }))

	_, err := client.AuthStatus(context.Background())
	require.NoError(t, err)
	_, err = client.AuthStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, hooked)
}

func TestSessionHookConcurrentRequests(t *testing.T) {
	var (
		mu     sync.Mutex
		hooked []string
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "resigned", Path: "/"})
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}, WithSessionHook(func(v string) {
		mu.Lock()
		hooked = append(hooked, v)
		mu.Unlock()
	}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				assert.NoError(t, client.Health(context.Background()))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, "resigned", client.Session())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"resigned"}, hooked)
}

func TestParseBaseURL(t *testing.T) {
	u, err := ParseBaseURL(" https://example.com/ ")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", u.String())

	for _, bad := range []string{"", "ftp://example.com", "https://", "::"} {
		_, err := ParseBaseURL(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoginURL(t *testing.T) {
	client, err := New("https://backend.example")
	require.NoError(t, err)
	assert.Equal(t, "https://backend.example/auth/google", client.LoginURL())
}
