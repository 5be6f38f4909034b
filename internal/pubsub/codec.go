package pubsub

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Encode serializes an event payload as MessagePack.
func Encode(data any) ([]byte, error) {
	b, err := msgpack.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("msgpack marshal: %w", err)
	}
	return b, nil
}

// Decode deserializes a MessagePack payload into returnValue.
func Decode(data []byte, returnValue any) error {
	if err := msgpack.Unmarshal(data, returnValue); err != nil {
		return fmt.Errorf("msgpack unmarshal: %w", err)
	}
	return nil
}
