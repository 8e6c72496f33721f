package websocket

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coder/websocket"
)

const (
	sendQueueSize = 64
	writeTimeout  = 10 * time.Second
	pingInterval  = 15 * time.Second
)

var (
	errClientClosed = errors.New("client closed")
	errQueueFull    = errors.New("send queue full")
)

// client is one websocket connection. Send never blocks: a full queue drops the message.
type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

func newClient(id string, conn *websocket.Conn) *client {
	return &client{
		id:   id,
		conn: conn,
		send: make(chan []byte, sendQueueSize),
		done: make(chan struct{}),
	}
}

func (that *client) Send(data []byte) error {
	select {
	case <-that.done:
		return errClientClosed
	default:
	}

	select {
	case that.send <- data:
		return nil
	default:
		return errQueueFull
	}
}

// writeLoop drains the send queue until ctx ends, pinging the peer in between.
func (that *client) writeLoop(ctx context.Context) error {
	defer close(that.done)

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-that.send:
			if err := that.write(ctx, msg); err != nil {
				return err
			}
		case <-ping.C:
			if err := that.conn.Ping(ctx); err != nil {
				return fmt.Errorf("failed to ping: %w", err)
			}
		}
	}
}

func (that *client) write(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := that.conn.Write(ctx, websocket.MessageText, msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
