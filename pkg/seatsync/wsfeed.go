package seatsync

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WSFeed implements ChangeFeed over the skybook websocket endpoint.
type WSFeed struct {
	baseURL string
	dialer  *websocket.Dialer
}

// NewWSFeed creates a feed for the server at baseURL, e.g.
// "ws://localhost:8080".
func NewWSFeed(baseURL string, dialer *websocket.Dialer) *WSFeed {
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	return &WSFeed{
		baseURL: strings.TrimRight(baseURL, "/"),
		dialer:  dialer,
	}
}

func (f *WSFeed) Subscribe(ctx context.Context, flightID uuid.UUID) (Subscription, error) {
	conn, _, err := f.dialer.DialContext(ctx, f.baseURL+"/ws/flights/"+flightID.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChannelUnavailable, err)
	}

	sub := &wsSubscription{
		conn:   conn,
		events: make(chan SeatChange, 16),
	}
	go sub.readLoop(ctx)
	return sub, nil
}

type wsSubscription struct {
	conn   *websocket.Conn
	events chan SeatChange
}

// wsFrame mirrors the server's websocket envelope.
type wsFrame struct {
	Event string     `json:"event"`
	Data  SeatChange `json:"data"`
}

func (s *wsSubscription) readLoop(ctx context.Context) {
	defer close(s.events)

	// Unblock the read when the subscriber's context ends.
	go func() {
		<-ctx.Done()
		s.conn.Close()
	}()

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var frame wsFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			continue
		}

		select {
		case s.events <- frame.Data:
		case <-ctx.Done():
			return
		}
	}
}

func (s *wsSubscription) Events() <-chan SeatChange {
	return s.events
}

func (s *wsSubscription) Close() error {
	return s.conn.Close()
}
