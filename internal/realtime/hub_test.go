package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"skybook/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(logger.GetDefault())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func subscribe(hub *Hub, flightID uuid.UUID) *client {
	c := &client{flightID: flightID, send: make(chan []byte, 8)}
	hub.register <- c
	return c
}

func receiveFrame(t *testing.T, c *client) Frame {
	t.Helper()
	select {
	case payload := <-c.send:
		var frame Frame
		require.NoError(t, json.Unmarshal(payload, &frame))
		return frame
	case <-time.After(time.Second):
		t.Fatal("no frame received")
		return Frame{}
	}
}

func TestHub_BroadcastReachesFlightSubscribers(t *testing.T) {
	hub := startHub(t)
	flightID := uuid.New()

	first := subscribe(hub, flightID)
	second := subscribe(hub, flightID)

	hub.Broadcast(ChangeEvent{FlightID: flightID, SeatNumber: "1A", Booked: true})

	for _, c := range []*client{first, second} {
		frame := receiveFrame(t, c)
		assert.Equal(t, EventSeatBooked, frame.Event)
		assert.Equal(t, "1A", frame.Data.SeatNumber)
		assert.True(t, frame.Data.Booked)
	}
}

func TestHub_BroadcastIsScopedToFlight(t *testing.T) {
	hub := startHub(t)
	flightA := uuid.New()
	flightB := uuid.New()

	watcherA := subscribe(hub, flightA)
	watcherB := subscribe(hub, flightB)

	hub.Broadcast(ChangeEvent{FlightID: flightA, SeatNumber: "2C", Booked: true})

	frame := receiveFrame(t, watcherA)
	assert.Equal(t, "2C", frame.Data.SeatNumber)

	select {
	case payload := <-watcherB.send:
		t.Fatalf("unexpected frame for other flight: %s", payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterStopsDelivery(t *testing.T) {
	hub := startHub(t)
	flightID := uuid.New()

	c := subscribe(hub, flightID)
	hub.unregister <- c

	// The send channel is closed on unregister.
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-c.send:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestHub_DropsSlowConsumer(t *testing.T) {
	hub := startHub(t)
	flightID := uuid.New()

	slow := &client{flightID: flightID, send: make(chan []byte)} // unbuffered, never read
	hub.register <- slow

	healthy := subscribe(hub, flightID)

	hub.Broadcast(ChangeEvent{FlightID: flightID, SeatNumber: "1A", Booked: true})
	receiveFrame(t, healthy)

	// The slow client's channel must be closed rather than wedging the hub.
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-slow.send:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestChangeEvent_WireShape(t *testing.T) {
	flightID := uuid.New()
	payload, err := ChangeEvent{FlightID: flightID, SeatNumber: "4D", Booked: true}.Marshal()
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.JSONEq(t, `"seatBooked"`, string(decoded["event"]))

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(decoded["data"], &data))
	assert.Equal(t, flightID.String(), data["flightId"])
	assert.Equal(t, "4D", data["seatNumber"])
	assert.Equal(t, true, data["isBooked"])
}
