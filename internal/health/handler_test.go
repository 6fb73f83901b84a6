package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/eleven-am/video-rooms/internal/stats"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

type fakeVendor struct {
	err error
}

func (f *fakeVendor) Name() string { return "fake" }

func (f *fakeVendor) Ping(ctx context.Context) error { return f.err }

type fakeStats struct {
	hours int
	err   error
}

func (f *fakeStats) GetStats(ctx context.Context, hours int) ([]*stats.HourStats, error) {
	f.hours = hours
	if f.err != nil {
		return nil, f.err
	}
	return []*stats.HourStats{{Date: "2024-01-15", Hour: 10}}, nil
}

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLiveness(t *testing.T) {
	h := NewHandler(nil, nil, nil, "test")
	rec := serve(h, "/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != "ok" {
		t.Errorf("expected ok, got %s", body["status"])
	}
}

func TestReadiness_Healthy(t *testing.T) {
	client, _ := newTestRedis(t)
	h := NewHandler(client, &fakeVendor{}, nil, "test")
	h.IncrementRequests()

	rec := serve(h, "/health/ready")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if resp.Status != StatusHealthy {
		t.Errorf("expected healthy, got %s", resp.Status)
	}
	if resp.Provider != "fake" || resp.Version != "test" {
		t.Errorf("unexpected provider/version %s/%s", resp.Provider, resp.Version)
	}
	if resp.Stats.Requests.TotalRequests != 1 {
		t.Errorf("expected 1 request, got %d", resp.Stats.Requests.TotalRequests)
	}
	if len(resp.Components) != 2 {
		t.Errorf("expected 2 components, got %d", len(resp.Components))
	}
}

func TestReadiness_VendorDown(t *testing.T) {
	client, _ := newTestRedis(t)
	h := NewHandler(client, &fakeVendor{err: errors.New("401 Authenticate")}, nil, "test")

	rec := serve(h, "/health/ready")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var resp HealthResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Components[componentVendor].Error != "401 Authenticate" {
		t.Errorf("unexpected vendor component %+v", resp.Components[componentVendor])
	}
}

func TestReadiness_RedisDownDegrades(t *testing.T) {
	client, mr := newTestRedis(t)
	mr.Close()
	h := NewHandler(client, &fakeVendor{}, nil, "test")

	rec := serve(h, "/health/ready")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp HealthResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Status != StatusDegraded {
		t.Errorf("expected degraded, got %s", resp.Status)
	}
	if resp.Components[componentRedis].Status != StatusUnhealthy {
		t.Errorf("expected redis unhealthy, got %s", resp.Components[componentRedis].Status)
	}
}

func TestReadiness_NotConfigured(t *testing.T) {
	h := NewHandler(nil, nil, nil, "test")

	rec := serve(h, "/health/ready")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestCallStats(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantHours int
	}{
		{"default", "", http.StatusOK, 24},
		{"explicit", "?hours=6", http.StatusOK, 6},
		{"capped", "?hours=1000", http.StatusOK, 168},
		{"zero", "?hours=0", http.StatusBadRequest, 0},
		{"garbage", "?hours=abc", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &fakeStats{}
			h := NewHandler(nil, &fakeVendor{}, reader, "test")

			rec := serve(h, "/health/stats"+tt.query)
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if tt.wantCode != http.StatusOK {
				return
			}

			var resp CallStatsResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal error: %v", err)
			}
			if resp.Hours != tt.wantHours || reader.hours != tt.wantHours {
				t.Errorf("expected %d hours, got %d (reader %d)", tt.wantHours, resp.Hours, reader.hours)
			}
			if len(resp.Stats) != 1 {
				t.Errorf("expected 1 hour of stats, got %d", len(resp.Stats))
			}
		})
	}
}

func TestCallStats_StoreFailure(t *testing.T) {
	h := NewHandler(nil, &fakeVendor{}, &fakeStats{err: errors.New("redis down")}, "test")

	rec := serve(h, "/health/stats")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestCallStats_WithStore(t *testing.T) {
	client, _ := newTestRedis(t)
	store := stats.NewStore(client)
	_ = store.Record(context.Background(), stats.OpListRooms, 20*time.Millisecond, nil)

	h := NewHandler(client, &fakeVendor{}, store, "test")
	rec := serve(h, "/health/stats?hours=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp CallStatsResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Stats) != 1 || resp.Stats[0].Operations[0].Operation != stats.OpListRooms {
		t.Errorf("unexpected stats %s", rec.Body.String())
	}
}

func TestConnectionCounters(t *testing.T) {
	h := NewHandler(nil, nil, nil, "test")
	h.IncrementConnections()
	h.IncrementConnections()
	h.DecrementConnections()

	if h.activeConnections != 1 {
		t.Errorf("expected 1 active connection, got %d", h.activeConnections)
	}
}
