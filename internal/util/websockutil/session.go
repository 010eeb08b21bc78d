package websockutil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/alex65536/fenboard/internal/util/slogx"
)

var ErrClosed = errors.New("session closed")

type frame struct {
	kind int
	data []byte
}

// ReceiverFunc is called from the read loop for every incoming text message.
// It must not block for long, as no messages are read while it runs.
type ReceiverFunc func(msg []byte) error

// LatestReceiver returns a receiver that keeps only the newest message in ch.
// The channel must have a buffer of exactly one message.
func LatestReceiver(ch chan []byte) ReceiverFunc {
	if cap(ch) != 1 {
		panic("latest receiver needs a channel of capacity 1")
	}
	return func(msg []byte) error {
		for {
			select {
			case ch <- msg:
				return nil
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	}
}

// Session runs the read and write loops of a single websocket connection.
// Writes go through one goroutine, which also sends pings.
type Session struct {
	conn *websocket.Conn
	log  *slog.Logger
	o    *Options
	recv ReceiverFunc

	writeCh   chan frame
	goingAway chan struct{}
	loops     sync.WaitGroup

	ctx       context.Context
	cancel    context.CancelCauseFunc
	closeOnce sync.Once
}

type SessionFactory struct {
	o        Options
	upgrader websocket.Upgrader
}

func NewSessionFactory(o Options) *SessionFactory {
	o.FillDefaults()
	return &SessionFactory{
		o:        o,
		upgrader: o.Upgrader(),
	}
}

func (f *SessionFactory) NewSession(
	w http.ResponseWriter,
	req *http.Request,
	log *slog.Logger,
	recv ReceiverFunc,
) (*Session, error) {
	conn, err := f.upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Warn("could not upgrade websocket", slogx.Err(err))
		return nil, fmt.Errorf("upgrade: %w", err)
	}
	ctx, cancel := context.WithCancelCause(context.Background())
	s := &Session{
		conn:      conn,
		log:       log,
		o:         &f.o,
		recv:      recv,
		writeCh:   make(chan frame),
		goingAway: make(chan struct{}, 1),
		ctx:       ctx,
		cancel:    cancel,
	}
	s.loops.Add(2)
	go s.readLoop()
	go s.writeLoop()
	return s, nil
}

func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Err returns the reason why the session ended, or nil if it is still alive.
func (s *Session) Err() error {
	if s.ctx.Err() == nil {
		return nil
	}
	return context.Cause(s.ctx)
}

func (s *Session) closeWithCause(cause error) {
	s.closeOnce.Do(func() {
		s.cancel(cause)
		if err := s.conn.Close(); err != nil {
			s.log.Info("could not close websocket", slogx.Err(err))
		}
	})
}

// Close drops the connection without the closing handshake and waits for the
// loops to finish.
func (s *Session) Close() {
	s.closeWithCause(ErrClosed)
	s.loops.Wait()
}

// Shutdown sends a close message to the peer and waits until the session
// ends.
func (s *Session) Shutdown() {
	select {
	case s.goingAway <- struct{}{}:
	default:
	}
	<-s.ctx.Done()
}

func (s *Session) readLoop() {
	defer s.loops.Done()
	s.conn.SetReadLimit(s.o.ReadMsgLimit)
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.o.PingTimeout))
	})
	for {
		_ = s.conn.SetReadDeadline(time.Now().Add(s.o.PingTimeout))
		kind, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Info("could not read from websocket", slogx.Err(err))
			}
			s.closeWithCause(fmt.Errorf("read: %w", err))
			return
		}
		if kind != websocket.TextMessage {
			s.log.Info("ignoring non-text websocket message", slog.Int("kind", kind))
			continue
		}
		if err := s.recv(data); err != nil {
			s.log.Info("could not receive message", slogx.Err(err))
			s.Shutdown()
			return
		}
	}
}

func (s *Session) writeLoop() {
	defer s.loops.Done()
	ticker := time.NewTicker(s.o.PingInterval)
	defer ticker.Stop()
	for {
		var cur frame
		last := false
		select {
		case <-s.goingAway:
			cur = frame{
				kind: websocket.CloseMessage,
				data: websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			}
			last = true
		case cur = <-s.writeCh:
		case <-ticker.C:
			cur = frame{kind: websocket.PingMessage}
		case <-s.ctx.Done():
			return
		}
		_ = s.conn.SetWriteDeadline(time.Now().Add(s.o.WriteDeadline))
		if err := s.conn.WriteMessage(cur.kind, cur.data); err != nil {
			s.log.Info("could not write to websocket", slogx.Err(err))
			s.closeWithCause(fmt.Errorf("write: %w", err))
			return
		}
		if last {
			s.closeWithCause(ErrClosed)
			return
		}
	}
}

func (s *Session) WriteText(data []byte) error {
	select {
	case s.writeCh <- frame{kind: websocket.TextMessage, data: data}:
		return nil
	case <-s.ctx.Done():
		return context.Cause(s.ctx)
	}
}
