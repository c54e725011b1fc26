package codec_test

import (
	"testing"

	"github.com/veldt/tap/codec"
	"github.com/veldt/tap/profile"
)

func TestGet(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"json", codec.NameJSON},
		{"msgpack", codec.NameMsgpack},
		{"", codec.NameJSON},
		{"unknown", codec.NameJSON},
	}

	for _, tt := range tests {
		if got := codec.Get(tt.in).Name(); got != tt.want {
			t.Errorf("Get(%q).Name() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	original := profile.Profile{
		Identity: "user42",
		Name:     "Ada",
		Friends: []profile.Profile{
			{Identity: "u1", Name: "Ben"},
			{Identity: "u2", Name: "Cleo"},
		},
	}

	for _, name := range []string{codec.NameJSON, codec.NameMsgpack} {
		t.Run(name, func(t *testing.T) {
			c := codec.Get(name)
			data, err := c.Encode(original)
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}

			var decoded profile.Profile
			if err := c.Decode(data, &decoded); err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if decoded.Identity != original.Identity || decoded.Name != original.Name {
				t.Errorf("round-trip mismatch: %+v", decoded)
			}
			if len(decoded.Friends) != 2 || decoded.Friends[0].Name != "Ben" {
				t.Errorf("friends not preserved: %+v", decoded.Friends)
			}
		})
	}
}
