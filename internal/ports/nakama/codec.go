package nakama

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Wire format: every payload crosses the socket as a protojson-encoded
// structpb.Struct. Typed Go payloads round-trip through their JSON tags so
// non-Go clients see plain field names.

// marshalPayload converts an event payload into its wire form.
func marshalPayload(payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("payload not serializable: %w", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("payload is not an object: %w", err)
	}
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("payload rejected by struct encoding: %w", err)
	}
	return protojson.Marshal(st)
}

// unmarshalRequest decodes a client message into the given request struct.
func unmarshalRequest(data []byte, out any) error {
	st := &structpb.Struct{}
	if len(data) > 0 {
		if err := protojson.Unmarshal(data, st); err != nil {
			return fmt.Errorf("malformed request: %w", err)
		}
	}
	raw, err := json.Marshal(st.AsMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// marshalLabel builds the protojson match label used by the listing index.
func marshalLabel(open int, phase string) (string, error) {
	st, err := structpb.NewStruct(map[string]interface{}{
		"game":  MatchLabelGame,
		"open":  open,
		"phase": phase,
	})
	if err != nil {
		return "", err
	}
	bytes, err := protojson.Marshal(st)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
