package backend

import (
	"encoding/json"
	"fmt"
)

// The scripted endpoint has grown several response shapes over time:
//
//	{"success": true, "data": {...}, "message": "..."}
//	{"success": true, "orderId": "...", ...}          (payload beside success)
//	{"status": "success", "data": {...}}              (legacy)
//	{"status": "error", "message": "..."}             (legacy)
//	{"items": [...]} / {"orders": [...]} / ...        (bare payload)
//	[...]                                             (bare array)
//
// normalize flattens all of them to a single data payload, or *Error when
// the service reported a failure.
func normalize(body []byte) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		// Not a JSON object; arrays and scalars are the payload itself.
		if !json.Valid(body) {
			return nil, fmt.Errorf("malformed response: %w", err)
		}
		return json.RawMessage(body), nil
	}

	if rawSuccess, ok := fields["success"]; ok {
		var success bool
		if err := json.Unmarshal(rawSuccess, &success); err != nil {
			return nil, fmt.Errorf("malformed success field: %w", err)
		}
		if !success {
			return nil, &Error{Message: messageField(fields)}
		}
		if data, ok := fields["data"]; ok {
			return data, nil
		}
		// Payload delivered beside the envelope fields.
		rest := make(map[string]json.RawMessage, len(fields))
		for k, v := range fields {
			if k == "success" || k == "message" {
				continue
			}
			rest[k] = v
		}
		if len(rest) == 0 {
			return nil, nil
		}
		return json.Marshal(rest)
	}

	if rawStatus, ok := fields["status"]; ok {
		var status string
		if err := json.Unmarshal(rawStatus, &status); err == nil {
			switch status {
			case "success":
				if data, ok := fields["data"]; ok {
					return data, nil
				}
				return json.RawMessage(body), nil
			case "error":
				return nil, &Error{Message: messageField(fields)}
			}
		}
	}

	return json.RawMessage(body), nil
}

func messageField(fields map[string]json.RawMessage) string {
	raw, ok := fields["message"]
	if !ok {
		return "unknown error"
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil || msg == "" {
		return "unknown error"
	}
	return msg
}
