package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Request is one call received by a Backend.
type Request struct {
	Method string
	Path   string
	Body   map[string]interface{}
	Cookie string
}

// Response is a canned reply for one endpoint.
type Response struct {
	Status int
	Body   string
}

// Backend is a fake InboxAI server that records every request. Endpoints
// without a canned response answer as a healthy, logged in backend.
type Backend struct {
	Server *httptest.Server

	mu        sync.Mutex
	requests  []Request
	responses map[string][]Response
}

// DefaultUser is reported by /auth/status unless overridden.
const DefaultUser = "me@example.com"

// NewBackend starts a fake backend that is closed when the test ends.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{responses: map[string][]Response{}}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Server.Close)
	return b
}

// URL is the base URL of the server.
func (b *Backend) URL() string { return b.Server.URL }

// Respond queues responses for method+path. The last one repeats once the
// queue drains.
func (b *Backend) Respond(method, path string, responses ...Response) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.responses[method+" "+path] = append([]Response(nil), responses...)
}

// JSON is a 200 response with body.
func JSON(body string) Response { return Response{Status: http.StatusOK, Body: body} }

// Status is an error response carrying a FastAPI style detail.
func Status(code int, detail string) Response {
	payload, _ := json.Marshal(map[string]string{"detail": detail})
	return Response{Status: code, Body: string(payload)}
}

// Requests returns the calls made to path, in order. An empty path returns
// every call.
func (b *Backend) Requests(path string) []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Request
	for _, r := range b.requests {
		if path == "" || r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Count reports how many calls path received.
func (b *Backend) Count(path string) int {
	return len(b.Requests(path))
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	rec := Request{Method: r.Method, Path: r.URL.Path}
	if c, err := r.Cookie("inboxai_session"); err == nil {
		rec.Cookie = c.Value
	}
	if data, err := io.ReadAll(r.Body); err == nil && len(data) > 0 {
		_ = json.Unmarshal(data, &rec.Body)
	}

	b.mu.Lock()
	b.requests = append(b.requests, rec)
	resp, ok := b.next(r.Method + " " + r.URL.Path)
	b.mu.Unlock()

	if !ok {
		resp = defaultResponse(r.Method, r.URL.Path)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = io.WriteString(w, resp.Body)
}

func (b *Backend) next(key string) (Response, bool) {
	queue := b.responses[key]
	if len(queue) == 0 {
		return Response{}, false
	}
	resp := queue[0]
	if len(queue) > 1 {
		b.responses[key] = queue[1:]
	}
	return resp, true
}

func defaultResponse(method, path string) Response {
	switch method + " " + path {
	case "GET /":
		return JSON(`{"message":"InboxAI backend is running"}`)
	case "GET /auth/status":
		return JSON(`{"authenticated":true,"email":"` + DefaultUser + `"}`)
	case "POST /auth/logout":
		return JSON(`{"message":"logged out"}`)
	case "POST /email/send":
		return Response{Status: http.StatusOK}
	default:
		return Status(http.StatusNotFound, "Not Found")
	}
}
