package events

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eleven-am/video-rooms/internal/dto"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

type mockFlusherWriter struct {
	*httptest.ResponseRecorder
}

func (m *mockFlusherWriter) Flush() {}

type nonFlusherWriter struct {
	header http.Header
}

func (w *nonFlusherWriter) Header() http.Header {
	if w.header == nil {
		w.header = make(http.Header)
	}
	return w.header
}

func (w *nonFlusherWriter) Write(data []byte) (int, error) {
	return len(data), nil
}

func (w *nonFlusherWriter) WriteHeader(statusCode int) {}

func newTestServer(t *testing.T) (*httptest.Server, *Bridge) {
	bridge, _ := newTestBridge(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := echo.New()
	NewHandler(bridge, logger).RegisterRoutes(e.Group("/rooms"))

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return server, bridge
}

func TestNewSSEConn_NoFlusher(t *testing.T) {
	if _, err := NewSSEConn(&nonFlusherWriter{}); err == nil {
		t.Error("expected error for non-flusher writer")
	}
}

func TestSSEConn_WritesEventFrames(t *testing.T) {
	w := &mockFlusherWriter{httptest.NewRecorder()}
	conn, err := NewSSEConn(w)
	if err != nil {
		t.Fatalf("NewSSEConn error: %v", err)
	}

	events := make(chan *Event, 1)
	events <- &Event{ID: "evt_1", Type: TypeRoomCreated, Room: dto.Room{Name: "standup", Sid: "RM1"}}
	close(events)

	if err := conn.Run(context.Background(), events); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	body := w.Body.String()
	if !strings.HasPrefix(body, "id: evt_1\nevent: room.created\ndata: {") {
		t.Errorf("unexpected frame: %q", body)
	}
	if !strings.HasSuffix(body, "}\n\n") {
		t.Errorf("frame should end with a blank line: %q", body)
	}
}

func TestSSEConn_KeepAlive(t *testing.T) {
	w := &mockFlusherWriter{httptest.NewRecorder()}
	conn, _ := NewSSEConn(w)
	conn.keepAlive = 10 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := conn.Run(ctx, make(chan *Event)); err != context.DeadlineExceeded {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if !strings.Contains(w.Body.String(), ":keepalive\n\n") {
		t.Errorf("expected keepalive comment, got %q", w.Body.String())
	}
}

func TestHandler_SSEStream(t *testing.T) {
	server, bridge := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/rooms/events", nil)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("expected text/event-stream, got %s", ct)
	}

	sent := NewEvent(TypeRoomCreated, dto.Room{Name: "standup", Sid: "RM1"})
	if err := bridge.Publish(context.Background(), sent); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	lines := make(chan string, 8)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				t.Fatal("stream closed before event arrived")
			}
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			var got Event
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &got); err != nil {
				t.Fatalf("unmarshal error: %v", err)
			}
			if got.ID != sent.ID {
				t.Errorf("expected %s, got %s", sent.ID, got.ID)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for SSE event")
		}
	}
}

func TestHandler_WebSocketStream(t *testing.T) {
	server, bridge := newTestServer(t)

	wsURL := "ws" + server.URL[4:] + "/rooms/events"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer ws.Close()

	sent := NewEvent(TypeRoomCompleted, dto.Room{Name: "standup", Sid: "RM1"})
	if err := bridge.Publish(context.Background(), sent); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	if err := ws.ReadJSON(&got); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if got.ID != sent.ID {
		t.Errorf("expected %s, got %s", sent.ID, got.ID)
	}
	if got.Type != TypeRoomCompleted {
		t.Errorf("expected room.completed, got %s", got.Type)
	}
}

func TestHandler_SubscribeFailure(t *testing.T) {
	bridge, mr := newTestBridge(t)
	mr.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(bridge, logger)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/rooms/events", nil)
	req.Header.Set("Accept", "text/event-stream")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.HandleConnect(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if he.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", he.Code)
	}
}
