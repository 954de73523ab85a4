package ingest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func pkt(pts int64, payload ...byte) *TransportPacket {
	return &TransportPacket{
		Payload:  payload,
		PTS:      pts,
		DTS:      pts,
		TimeBase: TimeBase{Num: 1, Den: 1000},
	}
}

func TestAssembler(t *testing.T) {
	asm := &Assembler{}

	require.Nil(t, asm.Push(pkt(100, 1)))
	require.Nil(t, asm.Push(pkt(100, 2)))

	frame := asm.Push(pkt(200, 3))
	require.NotNil(t, frame)
	require.Equal(t, []byte{1, 2}, frame.Payload)
	require.Equal(t, int64(100), frame.PTS)

	frame = asm.Flush()
	require.NotNil(t, frame)
	require.Equal(t, []byte{3}, frame.Payload)
	require.Equal(t, int64(200), frame.PTS)

	require.Nil(t, asm.Flush())
}

func TestAssemblerKeyframe(t *testing.T) {
	asm := &Assembler{}

	p1 := pkt(100, 1)
	p2 := pkt(100, 2)
	p2.IsKeyframe = true

	require.Nil(t, asm.Push(p1))
	require.Nil(t, asm.Push(p2))

	// any keyframe fragment marks the whole access unit
	frame := asm.Push(pkt(200, 3))
	require.True(t, frame.IsKeyframe)
}

func TestAssemblerDTSFallback(t *testing.T) {
	asm := &Assembler{}

	p1 := pkt(0, 1)
	p1.PTS = NoPTS
	p1.DTS = 100
	p2 := pkt(0, 2)
	p2.PTS = NoPTS
	p2.DTS = 200

	require.Nil(t, asm.Push(p1))

	frame := asm.Push(p2)
	require.NotNil(t, frame)
	require.Equal(t, int64(100), frame.PTS)
}

func TestAssemblerNoPayloadAliasing(t *testing.T) {
	asm := &Assembler{}

	buf := []byte{1, 2, 3}
	require.Nil(t, asm.Push(&TransportPacket{Payload: buf, PTS: 100, DTS: 100}))
	buf[0] = 9

	frame := asm.Push(pkt(200, 4))
	require.Equal(t, []byte{1, 2, 3}, frame.Payload)
}
