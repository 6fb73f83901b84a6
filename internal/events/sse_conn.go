package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const sseKeepAliveInterval = 30 * time.Second

type SSEConn struct {
	writer    http.ResponseWriter
	flusher   http.Flusher
	keepAlive time.Duration
}

func NewSSEConn(w http.ResponseWriter) (*SSEConn, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, http.ErrNotSupported
	}

	return &SSEConn{
		writer:    w,
		flusher:   flusher,
		keepAlive: sseKeepAliveInterval,
	}, nil
}

// Run writes events until the channel closes or ctx is done.
func (c *SSEConn) Run(ctx context.Context, events <-chan *Event) error {
	ticker := time.NewTicker(c.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case evt, ok := <-events:
			if !ok {
				return nil
			}
			if err := c.writeEvent(evt); err != nil {
				return err
			}
		case <-ticker.C:
			if err := c.writeKeepAlive(); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *SSEConn) writeEvent(evt *Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(c.writer, "id: %s\nevent: %s\ndata: %s\n\n", evt.ID, evt.Type, data); err != nil {
		return err
	}

	c.flusher.Flush()
	return nil
}

func (c *SSEConn) writeKeepAlive() error {
	_, err := c.writer.Write([]byte(":keepalive\n\n"))
	if err != nil {
		return err
	}
	c.flusher.Flush()
	return nil
}
