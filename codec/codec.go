// Package codec provides pluggable payload serialization for journal
// records.
package codec

// Codec defines the serialization contract for record payloads.
type Codec interface {
	// Encode serializes a value to bytes.
	Encode(v any) ([]byte, error)

	// Decode deserializes bytes into the given value.
	Decode(data []byte, v any) error

	// Name returns the codec identifier (e.g., "json", "msgpack").
	Name() string
}

// Name constants for codec selection.
const (
	NameJSON    = "json"
	NameMsgpack = "msgpack"
)

// Get returns a codec by name. Defaults to JSON.
func Get(name string) Codec {
	switch name {
	case NameMsgpack:
		return &MsgpackCodec{}
	case NameJSON, "":
		return &JSONCodec{}
	default:
		return &JSONCodec{}
	}
}
