package bullet

import "encoding/json"

// Bullet is one captured network request: its method, URI, headers, an
// optional binary payload and the elapsed-time reading taken at capture.
//
// A Bullet with an empty ID has never been persisted. Save assigns the ID;
// it is immutable afterwards. IDs are opaque and string-comparable but not
// guaranteed to sort in any meaningful order. Chronological ordering comes
// from Time, never from the ID.
type Bullet struct {
	// ID is the store-assigned identity. Empty until saved.
	ID string `json:"id"`

	// Headers holds the captured request headers. Always a non-nil map
	// after New, regardless of the input shape.
	Headers map[string]string `json:"headers"`

	// URI is the request target.
	URI string `json:"uri"`

	// Method is the request verb.
	Method string `json:"method"`

	// Content is the raw payload. It is held in memory only: after a
	// Save with non-empty Content the payload lives in the blob store
	// and is reachable through FileRef.
	Content []byte `json:"-"`

	// Time is the elapsed-time reading in milliseconds taken from the
	// capture clock. Chronological queries order by this field.
	Time int64 `json:"time"`

	// FileRef is the blob store reference for the payload. Set at save
	// time if and only if Content was non-empty at the moment of the
	// Save call.
	FileRef string `json:"file,omitempty"`
}

// Fields enumerates the recognized fields for constructing a Bullet.
//
// Headers accepts a map[string]string, a JSON-encoded string or []byte, or
// nil; every other shape degrades to an empty map.
type Fields struct {
	Headers any
	URI     string
	Method  string
	Content []byte
	Time    int64
	File    string
}

// New builds an unsaved Bullet from the given fields. It never fails:
// malformed header input degrades to an empty header map rather than
// returning an error.
func New(fields Fields) *Bullet {
	return &Bullet{
		Headers: normalizeHeaders(fields.Headers),
		URI:     fields.URI,
		Method:  fields.Method,
		Content: fields.Content,
		Time:    fields.Time,
		FileRef: fields.File,
	}
}

// normalizeHeaders coerces any accepted header shape into a map. Serialized
// headers arrive as JSON strings from the metadata store; anything that does
// not decode to a string-to-string mapping becomes an empty map.
func normalizeHeaders(headers any) map[string]string {
	switch h := headers.(type) {
	case map[string]string:
		if h == nil {
			return map[string]string{}
		}
		out := make(map[string]string, len(h))
		for k, v := range h {
			out[k] = v
		}
		return out
	case string:
		return decodeHeaders([]byte(h))
	case []byte:
		return decodeHeaders(h)
	default:
		return map[string]string{}
	}
}

func decodeHeaders(raw []byte) map[string]string {
	var out map[string]string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return map[string]string{}
	}
	return out
}
