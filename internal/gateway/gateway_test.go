package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"entity-journal-cli/internal/pkg/logger"
	"entity-journal-cli/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreds struct {
	mu     sync.Mutex
	token  string
	resets int
}

func (f *fakeCreds) Credential() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.token != ""
}

func (f *fakeCreds) Invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.token != "" {
		f.token = ""
		f.resets++
	}
}

func (f *fakeCreds) Resets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resets
}

func newTestGateway(t *testing.T, serverURL, token string) (*Gateway, *fakeCreds, *events.Bus, *[]time.Duration) {
	t.Helper()
	creds := &fakeCreds{token: token}
	bus := events.NewBus()
	t.Cleanup(func() { bus.Close() })

	g := New(serverURL, 5*time.Second, creds, bus, logger.Noop{})
	delays := &[]time.Duration{}
	var mu sync.Mutex
	g.sleep = func(d time.Duration) {
		mu.Lock()
		*delays = append(*delays, d)
		mu.Unlock()
	}
	return g, creds, bus, delays
}

func collectTopic(t *testing.T, bus *events.Bus, topic string) <-chan events.Envelope {
	t.Helper()
	ch := make(chan events.Envelope, 8)
	err := bus.Listen(context.Background(), topic, func(env events.Envelope) {
		ch <- env
	})
	require.NoError(t, err)
	return ch
}

func waitEnvelope(t *testing.T, ch <-chan events.Envelope) events.Envelope {
	t.Helper()
	select {
	case env := <-ch:
		return env
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for signal")
		return events.Envelope{}
	}
}

func assertNoEnvelope(t *testing.T, ch <-chan events.Envelope) {
	t.Helper()
	select {
	case env := <-ch:
		t.Fatalf("unexpected signal: %+v", env)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCredentialInjection(t *testing.T) {
	var gotAuth, gotRequestId string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestId = r.Header.Get("X-Request-Id")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	g, _, _, _ := newTestGateway(t, srv.URL, "tok-1")

	var out map[string]bool
	require.NoError(t, g.Get(context.Background(), "/api/notes", nil, &out))
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.NotEmpty(t, gotRequestId)
	assert.True(t, out["ok"])
}

func TestAnonymousRequestHasNoAuthHeader(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	g, _, _, _ := newTestGateway(t, srv.URL, "")
	require.NoError(t, g.Get(context.Background(), "/auth/login", nil, nil))
	assert.False(t, sawAuth)
}

func TestRateLimitRetrySucceeds(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"id":"n1"}`))
	}))
	defer srv.Close()

	g, _, _, delays := newTestGateway(t, srv.URL, "tok")

	var out map[string]string
	require.NoError(t, g.Get(context.Background(), "/api/notes/n1", nil, &out))
	assert.Equal(t, 3, calls)
	require.Len(t, *delays, 2)
	assert.Equal(t, 1000*time.Millisecond, (*delays)[0])
	assert.Equal(t, 2000*time.Millisecond, (*delays)[1])
	assert.Equal(t, "n1", out["id"])
}

func TestRateLimitRetriesExhaust(t *testing.T) {
	var calls int
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		bodies = append(bodies, req["content"])
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g, _, _, delays := newTestGateway(t, srv.URL, "tok")

	err := g.Post(context.Background(), "/api/notes", map[string]string{"content": "hello"}, nil)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusTooManyRequests))
	assert.Equal(t, 3, calls, "initial attempt plus exactly 2 retries")
	assert.Len(t, *delays, 2)
	// Each retry must resend the identical body.
	assert.Equal(t, []string{"hello", "hello", "hello"}, bodies)
}

func TestUnauthorizedResetsSessionOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g, creds, bus, _ := newTestGateway(t, srv.URL, "tok")
	expired := collectTopic(t, bus, events.TopicSessionExpired)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = g.Get(context.Background(), "/api/notes", nil, nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.True(t, IsStatus(err, http.StatusUnauthorized))
	}
	// Both calls saw the rejection but the credential was cleared exactly once.
	assert.Equal(t, 1, creds.Resets())
	if _, ok := creds.Credential(); ok {
		t.Fatal("credential should be cleared")
	}
	waitEnvelope(t, expired)
}

func TestListenersRunBeforeCallerSeesRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g, _, bus, _ := newTestGateway(t, srv.URL, "tok")

	// A deliberately slow listener: if the broadcast were fire-and-forget,
	// the call below would return while handled is still zero.
	var handled int32
	err := bus.Listen(context.Background(), events.TopicSessionExpired, func(events.Envelope) {
		time.Sleep(50 * time.Millisecond)
		atomic.StoreInt32(&handled, 1)
	})
	require.NoError(t, err)

	err = g.Get(context.Background(), "/api/notes", nil, nil)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, int32(1), atomic.LoadInt32(&handled),
		"session-expired listener must have run before the caller sees the error")
}

func TestForbiddenBroadcastsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"plan limit reached"}`))
	}))
	defer srv.Close()

	g, creds, bus, _ := newTestGateway(t, srv.URL, "tok")
	forbidden := collectTopic(t, bus, events.TopicForbidden)
	expired := collectTopic(t, bus, events.TopicSessionExpired)

	err := g.Post(context.Background(), "/api/entities", map[string]string{"name": "x"}, nil)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusForbidden))

	env := waitEnvelope(t, forbidden)
	assert.Equal(t, "plan limit reached", env.Data["message"])

	// Forbidden must not also reset the session.
	assert.Equal(t, 0, creds.Resets())
	assertNoEnvelope(t, expired)
}

func TestServerFaultBroadcastsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"upstream down"}`))
	}))
	defer srv.Close()

	g, _, bus, _ := newTestGateway(t, srv.URL, "tok")
	faults := collectTopic(t, bus, events.TopicServerFault)

	err := g.Get(context.Background(), "/api/metrics/dashboard", nil, nil)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusBadGateway))

	env := waitEnvelope(t, faults)
	assert.Equal(t, float64(http.StatusBadGateway), env.Data["status"])
}

func TestCallerLocalFailuresFireNoSignal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"note not found"}`))
	}))
	defer srv.Close()

	g, creds, bus, _ := newTestGateway(t, srv.URL, "tok")
	expired := collectTopic(t, bus, events.TopicSessionExpired)
	forbidden := collectTopic(t, bus, events.TopicForbidden)
	faults := collectTopic(t, bus, events.TopicServerFault)

	err := g.Get(context.Background(), "/api/notes/missing", nil, nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "note not found", apiErr.Message)

	assert.Equal(t, 0, creds.Resets())
	assertNoEnvelope(t, expired)
	assertNoEnvelope(t, forbidden)
	assertNoEnvelope(t, faults)
}

func TestQueryParamsEncoded(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g, _, _, _ := newTestGateway(t, srv.URL, "tok")

	q := url.Values{}
	q.Set("q", "ru")
	q.Set("type", "HABIT")
	var out []struct{}
	require.NoError(t, g.Get(context.Background(), "/api/entities/search", q, &out))
	assert.Equal(t, "ru", gotQuery.Get("q"))
	assert.Equal(t, "HABIT", gotQuery.Get("type"))
}
