// Package visualize hosts the optional websocket live feed: a read-only
// view onto the simulation's recorded history and tick-rate gauge. It
// never calls back into internal/simulation; it only ever reads
// completed snapshots off internal/history's subscriber channel.
package visualize

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"
)

const (
	writeWait      = 1 * time.Second
	pubResolution  = 100 * time.Millisecond
	pingResolution = 200 * time.Millisecond
	pongWait       = pingResolution * 4

	readDeadline     = time.Second
	writeDeadline    = time.Second
	closeGracePeriod = 10 * time.Second
)

var upgrader = websocket.Upgrader{}

// ErrPongDeadlineExceeded means the peer stopped answering pings.
var ErrPongDeadlineExceeded = errors.New("visualize: client disconnect, pong deadline exceeded")

// ErrSockCongestion means too many goroutines are waiting on the socket
// at once; a read or write couldn't get a turn in time.
var ErrSockCongestion = errors.New("visualize: socket operation failed due to congestion")

// client publishes a one-way stream of idempotent full-state updates to
// a single websocket peer. Each update fully supersedes the last, so
// updates arriving faster than pubResolution are simply dropped rather
// than queued.
type client[T any] struct {
	updates <-chan T
	sock    *websock
	rootCtx context.Context
}

// newClient upgrades an http request to a websocket and wraps it as a
// publisher fed by updates.
func newClient[T any](updates <-chan T, w http.ResponseWriter, r *http.Request) (*client[T], error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, err
	}
	return &client[T]{
		updates: updates,
		sock:    newWebsock(conn),
		rootCtx: r.Context(),
	}, nil
}

// sync runs the read/ping/publish loop until the peer disconnects, the
// request context is cancelled, or an unexpected error occurs.
func (c *client[T]) sync() error {
	group, ctx := errgroup.WithContext(c.rootCtx)
	group.Go(func() error { return c.readMessages(ctx) })
	group.Go(func() error { return c.pingPong(ctx) })
	group.Go(func() error { return c.publish(ctx) })
	return group.Wait()
}

func (c *client[T]) pingPong(ctx context.Context) error {
	pong := make(chan struct{})
	defer close(pong)
	c.sock.conn.SetPongHandler(func(string) error {
		select {
		case pong <- struct{}{}:
		case <-ctx.Done():
		}
		return nil
	})

	ticker := channerics.NewTicker(ctx.Done(), pingResolution)
	lastPong := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker:
			if time.Since(lastPong) > pongWait {
				return ErrPongDeadlineExceeded
			}
			if err := c.ping(ctx); err != nil {
				return err
			}
		case <-pong:
			lastPong = time.Now()
		}
	}
}

func (c *client[T]) ping(ctx context.Context) error {
	return c.sock.write(ctx, func(conn *websocket.Conn) error {
		return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
	})
}

// readMessages drains (and discards) client frames; this is a
// unidirectional feed, but a read loop must run for the pong handler to
// ever fire.
func (c *client[T]) readMessages(ctx context.Context) error {
	for {
		err := c.sock.read(ctx, func(conn *websocket.Conn) error {
			_, _, readErr := conn.ReadMessage()
			return readErr
		})
		if err != nil {
			return err
		}
	}
}

func (c *client[T]) publish(ctx context.Context) error {
	lastSync := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-c.updates:
			if !ok {
				return nil
			}
			if time.Since(lastSync) < pubResolution {
				continue
			}
			lastSync = time.Now()
			err := c.sock.write(ctx, func(conn *websocket.Conn) error {
				if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
					return fmt.Errorf("set write deadline: %w", err)
				}
				return conn.WriteJSON(update)
			})
			if err != nil {
				return err
			}
		}
	}
}

// websock serializes reads and writes against a single websocket
// connection, which only tolerates one concurrent reader and writer.
type websock struct {
	readSem  chan struct{}
	writeSem chan struct{}
	conn     *websocket.Conn
}

func newWebsock(conn *websocket.Conn) *websock {
	return &websock{
		readSem:  make(chan struct{}, 1),
		writeSem: make(chan struct{}, 1),
		conn:     conn,
	}
}

func (s *websock) read(ctx context.Context, fn func(*websocket.Conn) error) error {
	select {
	case <-ctx.Done():
		return nil
	case s.readSem <- struct{}{}:
		defer func() { <-s.readSem }()
		return fn(s.conn)
	case <-time.After(readDeadline):
		return ErrSockCongestion
	}
}

func (s *websock) write(ctx context.Context, fn func(*websocket.Conn) error) error {
	select {
	case <-ctx.Done():
		return nil
	case s.writeSem <- struct{}{}:
		defer func() { <-s.writeSem }()
		return fn(s.conn)
	case <-time.After(writeDeadline):
		return ErrSockCongestion
	}
}

func (s *websock) close() {
	s.writeSem <- struct{}{}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	time.Sleep(closeGracePeriod)
	s.conn.Close()
}
