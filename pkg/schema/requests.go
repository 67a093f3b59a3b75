package schema

import "encoding/json"

// Built-in schema names.
const (
	ControlRequest = "control_request"
	HistoryRequest = "history_request"
)

// builtinSchemas are the request shapes accepted at the caller-facing
// boundary. Control values are constrained to the scalar types the vendor
// accepts for a resource write.
var builtinSchemas = map[string]string{
	ControlRequest: `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"deviceId": {"type": "string", "minLength": 1},
			"resourceId": {"type": "string", "minLength": 1},
			"value": {"type": ["string", "number", "boolean"]}
		},
		"required": ["deviceId", "resourceId", "value"],
		"additionalProperties": false
	}`,
	HistoryRequest: `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"deviceId": {"type": "string", "minLength": 1},
			"resourceId": {"type": "string", "minLength": 1},
			"startTime": {"type": "string", "minLength": 1},
			"endTime": {"type": "string", "minLength": 1},
			"page": {"type": "integer", "minimum": 1},
			"pageSize": {"type": "integer", "minimum": 1, "maximum": 100}
		},
		"required": ["deviceId", "resourceId", "startTime", "endTime"],
		"additionalProperties": false
	}`,
}

// Doc returns the raw document for a built-in schema, or nil for an
// unknown name. Useful for surfaces that publish their argument schemas.
func Doc(name string) json.RawMessage {
	doc, ok := builtinSchemas[name]
	if !ok {
		return nil
	}
	return json.RawMessage(doc)
}
