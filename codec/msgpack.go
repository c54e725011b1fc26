package codec

import "github.com/vmihailenco/msgpack/v5"

// MsgpackCodec encodes/decodes payloads as MessagePack.
type MsgpackCodec struct{}

func (c *MsgpackCodec) Encode(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (c *MsgpackCodec) Decode(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

func (c *MsgpackCodec) Name() string { return NameMsgpack }
