package mqtt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	m := NewConnect("camfeed", "user", "pass")
	b := m.Bytes()

	require.Equal(t, byte(CONNECT), b[0])
	require.Equal(t, byte(len(b)-2), b[1]) // remaining length fits one byte
	require.Equal(t, []byte{0, 4, 'M', 'Q', 'T', 'T', 4}, b[2:9])
	require.Equal(t, byte(flagCleanStart|flagUsername|flagPassword), b[9])
}

func TestConnectAnonymous(t *testing.T) {
	m := NewConnect("camfeed", "", "")
	b := m.Bytes()

	require.Equal(t, byte(flagCleanStart), b[9])
	require.Equal(t, byte(len(b)-2), b[1])
}

func TestPublish(t *testing.T) {
	m := NewPublish("cameras/frames", []byte(`{"codec":"h264"}`))
	b := m.Bytes()

	require.Equal(t, byte(PUBLISH), b[0])
	require.Equal(t, byte(2+14+16), b[1])
	require.Equal(t, []byte{0, 14}, b[2:4])
	require.Equal(t, "cameras/frames", string(b[4:18]))
}

func TestWriteLen(t *testing.T) {
	m := &Message{}
	m.WriteLen(0)
	require.Equal(t, []byte{0}, m.Bytes())

	m = &Message{}
	m.WriteLen(321)
	require.Equal(t, []byte{0xC1, 0x02}, m.Bytes())
}
