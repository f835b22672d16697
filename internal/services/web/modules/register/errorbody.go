package register

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// failureFallback is shown when the error body carries nothing usable.
const failureFallback = "Registration failed. Please try again."

type member struct {
	key   string
	value json.RawMessage
}

// DecodeErrorBody extracts the user-facing message from a failed
// registration response. Precedence: plain string body, then Message
// (replaced by ModelState entries joined with "; "), then message, then
// errors flattened and joined with ", ".
func DecodeErrorBody(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return failureFallback
	}
	if !json.Valid(trimmed) {
		return string(trimmed)
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		if text == "" {
			return failureFallback
		}
		return text
	}

	members, err := objectMembers(trimmed)
	if err != nil {
		return failureFallback
	}

	if message, ok := stringMember(members, "Message"); ok {
		if modelState, ok := lookup(members, "ModelState"); ok {
			if collected := flattenObject(modelState); len(collected) > 0 {
				return strings.Join(collected, "; ")
			}
		}
		return message
	}
	if message, ok := stringMember(members, "message"); ok {
		return message
	}
	if errs, ok := lookup(members, "errors"); ok {
		if collected := flattenObject(errs); len(collected) > 0 {
			return strings.Join(collected, ", ")
		}
	}
	return failureFallback
}

// objectMembers decodes a JSON object keeping key order.
func objectMembers(raw json.RawMessage) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("not an object")
	}
	var members []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		members = append(members, member{key: key, value: value})
	}
	return members, nil
}

func lookup(members []member, key string) (json.RawMessage, bool) {
	for _, m := range members {
		if m.key == key {
			return m.value, true
		}
	}
	return nil, false
}

// stringMember returns a non-empty string member.
func stringMember(members []member, key string) (string, bool) {
	raw, ok := lookup(members, key)
	if !ok {
		return "", false
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil || value == "" {
		return "", false
	}
	return value, true
}

// flattenObject collects an object's values in key order. A value may be
// a list, which is flattened one level, or a single scalar.
func flattenObject(raw json.RawMessage) []string {
	members, err := objectMembers(raw)
	if err != nil {
		return nil
	}
	var out []string
	for _, m := range members {
		out = append(out, valueTexts(m.value)...)
	}
	return out
}

func valueTexts(raw json.RawMessage) []string {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil && list != nil {
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, scalarText(item))
		}
		return out
	}
	return []string{scalarText(raw)}
}

func scalarText(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "null" {
		return ""
	}
	return trimmed
}
