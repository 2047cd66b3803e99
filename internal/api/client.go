// Package api talks to the InboxAI backend over HTTP. Authenticated calls rely
// on the backend session cookie, which the client keeps in its cookie jar.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultBaseURL is the hosted backend the extension shipped with.
	DefaultBaseURL = "https://inboxai-backend-tb5j.onrender.com"

	// SessionCookie is the name of the backend session cookie.
	SessionCookie = "inboxai_session"

	defaultTimeout  = 30 * time.Second
	maxBodyBytes    = 4 << 20
	requestIDHeader = "X-Request-ID"
)

// Client issues requests against a fixed backend origin.
type Client struct {
	base      *url.URL
	http      *http.Client
	requestID func() string
	onSession func(string)

	// mu guards session, the last value reported to onSession.
	mu      sync.Mutex
	session string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A client without a
// cookie jar gets a fresh one.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithSessionHook registers fn to receive the session cookie value whenever
// the backend changes it. An empty value means the session was cleared.
func WithSessionHook(fn func(string)) Option {
	return func(c *Client) { c.onSession = fn }
}

// WithRequestIDs overrides the request ID generator.
func WithRequestIDs(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.requestID = fn
		}
	}
}

// New builds a client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		base:      base,
		http:      &http.Client{Timeout: defaultTimeout},
		requestID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	return c, nil
}

// ParseBaseURL validates a backend origin.
func ParseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("base url required")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must use http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", raw)
	}
	return u, nil
}

// BaseURL returns the backend origin.
func (c *Client) BaseURL() string { return c.base.String() }

// LoginURL is the page that starts the OAuth flow in a browser.
func (c *Client) LoginURL() string { return c.endpoint("/auth/google") }

// SetSession installs a session cookie value, e.g. one restored from disk or
// pasted after a browser login.
func (c *Client) SetSession(value string) {
	value = strings.TrimSpace(value)
	cookie := &http.Cookie{Name: SessionCookie, Value: value, Path: "/"}
	if value == "" {
		cookie.MaxAge = -1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.http.Jar.SetCookies(c.base, []*http.Cookie{cookie})
	c.session = value
}

// Session returns the session cookie value currently held by the jar.
func (c *Client) Session() string {
	for _, cookie := range c.http.Jar.Cookies(c.base) {
		if cookie.Name == SessionCookie {
			return cookie.Value
		}
	}
	return ""
}

// Command sends a chat command with its trailing history.
func (c *Client) Command(ctx context.Context, req CommandRequest) (CommandResponse, error) {
	if req.History == nil {
		req.History = []Turn{}
	}
	var resp CommandResponse
	if err := c.do(ctx, http.MethodPost, "/command", req, &resp); err != nil {
		return CommandResponse{}, err
	}
	if strings.TrimSpace(resp.Reply) == "" {
		return CommandResponse{}, malformed("/command", "missing reply")
	}
	return resp, nil
}

// Drafts asks the backend for candidate emails.
func (c *Client) Drafts(ctx context.Context, req DraftRequest) ([]Draft, error) {
	var env draftEnvelope
	if err := c.do(ctx, http.MethodPost, "/email/draft", req, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, malformed("/email/draft", "missing data")
	}
	if len(env.Data.Drafts) == 0 {
		return nil, malformed("/email/draft", "no drafts")
	}
	for i, d := range env.Data.Drafts {
		if strings.TrimSpace(d.Subject) == "" && strings.TrimSpace(d.Body) == "" {
			return nil, malformed("/email/draft", fmt.Sprintf("draft %d is empty", i))
		}
	}
	return env.Data.Drafts, nil
}

// SendEmail delivers a composed email. Only the status code matters.
func (c *Client) SendEmail(ctx context.Context, req SendEmailRequest) (SendEmailResponse, error) {
	var resp SendEmailResponse
	if err := c.do(ctx, http.MethodPost, "/email/send", req, &resp); err != nil {
		return SendEmailResponse{}, err
	}
	return resp, nil
}

// CreateMeeting schedules a meeting and returns its link.
func (c *Client) CreateMeeting(ctx context.Context, req MeetingRequest) (MeetingResponse, error) {
	if req.Recipients == nil {
		req.Recipients = []string{}
	}
	var env meetingEnvelope
	if err := c.do(ctx, http.MethodPost, "/meeting/create", req, &env); err != nil {
		return MeetingResponse{}, err
	}
	if env.Data == nil {
		return MeetingResponse{}, malformed("/meeting/create", "missing data")
	}
	link := strings.TrimSpace(env.Data.MeetLink)
	if link == "" {
		link = strings.TrimSpace(env.Data.LegacyMeetLink)
	}
	if link == "" {
		return MeetingResponse{}, malformed("/meeting/create", "missing meet_link")
	}
	return MeetingResponse{MeetLink: link}, nil
}

// AuthStatus reports the login state of the current session.
func (c *Client) AuthStatus(ctx context.Context) (AuthStatus, error) {
	var env authEnvelope
	if err := c.do(ctx, http.MethodGet, "/auth/status", nil, &env); err != nil {
		return AuthStatus{}, err
	}
	status, ok := env.status()
	if !ok {
		return AuthStatus{}, malformed("/auth/status", "missing authenticated flag")
	}
	return status, nil
}

// Logout ends the backend session and drops the local cookie.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return err
	}
	c.SetSession("")
	if c.onSession != nil {
		c.onSession("")
	}
	return nil
}

// Health checks that the backend answers on its root path.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/", nil, nil)
}

func (c *Client) endpoint(path string) string {
	return c.base.String() + path
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", path, err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(requestIDHeader, c.requestID())

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()
	c.notifySession()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &NetworkError{Endpoint: path, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{Endpoint: path, Status: resp.StatusCode, Detail: errorDetail(data)}
	}
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		if o, ok := out.(optionalBody); ok && o.optional() {
			return nil
		}
		return malformed(path, "empty body")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return malformed(path, err.Error())
	}
	return nil
}

// optionalBody is implemented by responses whose 2xx body may be empty.
type optionalBody interface {
	optional() bool
}

// notifySession reports session cookie changes to the registered hook.
// The hook runs outside the lock; concurrent responses report each change
// once.
func (c *Client) notifySession() {
	c.mu.Lock()
	current := c.Session()
	if current == c.session {
		c.mu.Unlock()
		return
	}
	c.session = current
	c.mu.Unlock()
	if c.onSession != nil {
		c.onSession(current)
	}
}
