package ingest

// Assembler groups consecutive packets sharing a presentation
// timestamp into one access unit. A timestamp change flushes the
// previous group. The final in-flight group is returned by Flush on
// a clean end of stream and dropped on every other exit.
type Assembler struct {
	frame *Frame
}

// Push adds a packet to the current group. It returns the previous
// group as a completed Frame when the timestamp changes, nil
// otherwise.
func (a *Assembler) Push(pkt *TransportPacket) *Frame {
	key := pkt.PTS
	if key == NoPTS {
		key = pkt.DTS
	}

	if a.frame == nil {
		a.frame = newFrame(pkt, key)
		return nil
	}

	if a.frame.PTS != key {
		done := a.frame
		a.frame = newFrame(pkt, key)
		return done
	}

	a.frame.Payload = append(a.frame.Payload, pkt.Payload...)
	a.frame.IsKeyframe = a.frame.IsKeyframe || pkt.IsKeyframe
	return nil
}

// Flush returns the in-flight group, if any, and resets the
// assembler.
func (a *Assembler) Flush() *Frame {
	done := a.frame
	a.frame = nil
	return done
}

func newFrame(pkt *TransportPacket, key int64) *Frame {
	return &Frame{
		Payload:    append([]byte(nil), pkt.Payload...),
		PTS:        key,
		DTS:        pkt.DTS,
		Duration:   pkt.Duration,
		TimeBase:   pkt.TimeBase,
		IsKeyframe: pkt.IsKeyframe,
	}
}
