package domain

import (
	"context"
	"time"
)

// EventType defines the category of a session event.
type EventType string

const (
	EventConnect      EventType = "CONNECT"
	EventSwipe        EventType = "SWIPE"
	EventLeaveCluster EventType = "LEAVE_CLUSTER"
	EventDisconnect   EventType = "DISCONNECT"
	EventNextState    EventType = "NEXT_STATE"
	EventClientAction EventType = "CLIENT_ACTION"
)

// Event is the envelope routed through the reducer. Data holds the typed
// payload matching Type (nil for NEXT_STATE). Unknown event types pass
// through the reducer without changing state.
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data,omitempty"`
}

// ConnectPayload announces a new device joining the session.
type ConnectPayload struct {
	ID   ClientID `json:"id" mapstructure:"id"`
	Size Size     `json:"size" mapstructure:"size"`
}

// SwipePayload carries one directional gesture from a device.
type SwipePayload struct {
	ID        ClientID  `json:"id" mapstructure:"id"`
	Direction Direction `json:"direction" mapstructure:"direction"`
	Position  Position  `json:"position" mapstructure:"position"`
}

// LeaveClusterPayload detaches a client from its cluster without
// disconnecting it.
type LeaveClusterPayload struct {
	ID ClientID `json:"id" mapstructure:"id"`
}

// DisconnectPayload removes a client from the session entirely.
type DisconnectPayload struct {
	ID ClientID `json:"id" mapstructure:"id"`
}

// ClientActionPayload dispatches a host-defined action against one client.
type ClientActionPayload struct {
	ID     ClientID `json:"id" mapstructure:"id"`
	Action string   `json:"action" mapstructure:"action"`
	Data   any      `json:"data,omitempty" mapstructure:"data"`
}

// Convenience constructors for the closed event union.

func NewConnectEvent(id ClientID, size Size) Event {
	return Event{Type: EventConnect, Data: ConnectPayload{ID: id, Size: size}}
}

func NewSwipeEvent(id ClientID, direction Direction, position Position) Event {
	return Event{Type: EventSwipe, Data: SwipePayload{ID: id, Direction: direction, Position: position}}
}

func NewLeaveClusterEvent(id ClientID) Event {
	return Event{Type: EventLeaveCluster, Data: LeaveClusterPayload{ID: id}}
}

func NewDisconnectEvent(id ClientID) Event {
	return Event{Type: EventDisconnect, Data: DisconnectPayload{ID: id}}
}

func NewNextStateEvent() Event {
	return Event{Type: EventNextState}
}

func NewClientActionEvent(id ClientID, action string, data any) Event {
	return Event{Type: EventClientAction, Data: ClientActionPayload{ID: id, Action: action, Data: data}}
}

// TransitionEvent describes one completed (or rejected) reducer transition.
type TransitionEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`

	// Err is set when the transition was rejected and the previous
	// snapshot remains authoritative.
	Err error `json:"-"`

	// Counts after the transition (zero values when Err is set).
	Clients       int `json:"clients"`
	Clusters      int `json:"clusters"`
	PendingSwipes int `json:"pending_swipes"`
}

// MergeEvent describes a successful cluster merge from a swipe pairing.
type MergeEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Survivor  ClusterID `json:"survivor"`
	Absorbed  ClusterID `json:"absorbed"`
	Anchor    ClientID  `json:"anchor"`
	Mover     ClientID  `json:"mover"`
	Direction Direction `json:"direction"`
}

// LifecycleHooks defines callbacks for reducer observability.
// All hooks are optional and invoked synchronously after the transition.
type LifecycleHooks struct {
	OnTransition func(context.Context, *TransitionEvent)
	OnMerge      func(context.Context, *MergeEvent)
}
