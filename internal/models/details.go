package models

import "encoding/json"

// mergeDetails encodes typed and overlays it on the free-form details map.
// Typed fields win on key collisions.
func mergeDetails(typed interface{}, details map[string]interface{}) ([]byte, error) {
	raw, err := json.Marshal(typed)
	if err != nil || len(details) == 0 {
		return raw, err
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	out := make(map[string]interface{}, len(details)+len(fields))
	for k, v := range details {
		out[k] = v
	}
	for k, v := range fields {
		out[k] = v
	}
	return json.Marshal(out)
}

// SplitDetails removes the typed keys from a client payload and returns what is
// left, to be stored verbatim.
func SplitDetails(body map[string]interface{}, typed ...string) map[string]interface{} {
	rest := make(map[string]interface{}, len(body))
	for k, v := range body {
		rest[k] = v
	}
	for _, k := range typed {
		delete(rest, k)
	}
	return rest
}
