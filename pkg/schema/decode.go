package schema

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// DecodeEvent maps a loosely typed {type, data} envelope onto the closed
// event union. The event type must be one of the six core kinds; payload
// fields are validated per kind and failures are reported as
// ValidationError / AggregateError.
func DecodeEvent(raw map[string]any) (domain.Event, error) {
	typeValue, ok := raw["type"]
	if !ok {
		return domain.Event{}, &ValidationError{Key: "type", Reason: "required"}
	}
	typeStr, ok := typeValue.(string)
	if !ok {
		return domain.Event{}, &ValidationError{Key: "type", Reason: "expected string", Value: typeValue}
	}

	eventType := domain.EventType(typeStr)
	data, _ := raw["data"].(map[string]any)

	switch eventType {
	case domain.EventNextState:
		return domain.Event{Type: eventType}, nil

	case domain.EventConnect:
		var p domain.ConnectPayload
		if err := decodePayload(data, &p); err != nil {
			return domain.Event{}, err
		}
		errs := requireID(p.ID)
		if p.Size.Width <= 0 || p.Size.Height <= 0 {
			errs = append(errs, &ValidationError{Key: "size", Reason: "width and height must be positive", Value: p.Size})
		}
		if err := aggregate(errs); err != nil {
			return domain.Event{}, err
		}
		return domain.Event{Type: eventType, Data: p}, nil

	case domain.EventSwipe:
		var p domain.SwipePayload
		if err := decodePayload(data, &p); err != nil {
			return domain.Event{}, err
		}
		// Direction validity is the reducer's call (fatal there); the
		// codec only requires the field to be present.
		errs := requireID(p.ID)
		if p.Direction == "" {
			errs = append(errs, &ValidationError{Key: "direction", Reason: "required"})
		}
		if err := aggregate(errs); err != nil {
			return domain.Event{}, err
		}
		return domain.Event{Type: eventType, Data: p}, nil

	case domain.EventLeaveCluster:
		var p domain.LeaveClusterPayload
		if err := decodePayload(data, &p); err != nil {
			return domain.Event{}, err
		}
		if err := aggregate(requireID(p.ID)); err != nil {
			return domain.Event{}, err
		}
		return domain.Event{Type: eventType, Data: p}, nil

	case domain.EventDisconnect:
		var p domain.DisconnectPayload
		if err := decodePayload(data, &p); err != nil {
			return domain.Event{}, err
		}
		if err := aggregate(requireID(p.ID)); err != nil {
			return domain.Event{}, err
		}
		return domain.Event{Type: eventType, Data: p}, nil

	case domain.EventClientAction:
		var p domain.ClientActionPayload
		if err := decodePayload(data, &p); err != nil {
			return domain.Event{}, err
		}
		errs := requireID(p.ID)
		if p.Action == "" {
			errs = append(errs, &ValidationError{Key: "action", Reason: "required"})
		}
		if err := aggregate(errs); err != nil {
			return domain.Event{}, err
		}
		return domain.Event{Type: eventType, Data: p}, nil
	}

	return domain.Event{}, &ValidationError{Key: "type", Reason: "unknown event type", Value: typeStr}
}

// DecodeEventJSON parses a JSON envelope and decodes it.
func DecodeEventJSON(b []byte) (domain.Event, error) {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return domain.Event{}, fmt.Errorf("invalid event envelope: %w", err)
	}
	return DecodeEvent(raw)
}

func decodePayload(data map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true, // tolerate "375" for 375 etc. from query params
	})
	if err != nil {
		return fmt.Errorf("decoder setup: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return &ValidationError{Key: "data", Reason: err.Error()}
	}
	return nil
}

func requireID(id domain.ClientID) []error {
	if id == "" {
		return []error{&ValidationError{Key: "id", Reason: "required"}}
	}
	return nil
}

func aggregate(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &AggregateError{Errors: errs}
	}
}
