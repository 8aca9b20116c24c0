package core

import (
	"io"

	"samhal/protocol"
)

// Monitor is the firmware side of the pit64 debug link: peek/poke on
// registered register windows and reads of the 64-bit free-running counter.
// One request frame yields exactly one response frame.
type Monitor struct {
	windows map[uint8]RegisterWindow
	counter func() uint64
}

// NewMonitor returns a monitor with no windows exposed.
func NewMonitor() *Monitor {
	return &Monitor{windows: make(map[uint8]RegisterWindow)}
}

// AddWindow exposes w on the link under id. Registering an id again replaces
// the previous window.
func (m *Monitor) AddWindow(id uint8, w RegisterWindow) {
	m.windows[id] = w
}

// SetCounterSource installs the reader answering MsgCounter requests,
// normally the live clocksource's Read.
func (m *Monitor) SetCounterSource(read func() uint64) {
	m.counter = read
}

// HandleFrame processes one request frame and returns the encoded response
// frame.
func (m *Monitor) HandleFrame(f protocol.Frame) []byte {
	switch f.Type {
	case protocol.MsgPing:
		return respond(protocol.MsgPong, nil)

	case protocol.MsgPeek32:
		data := f.Payload
		win, err := protocol.ConsumeUvarint(&data)
		if err != nil {
			return respondError(protocol.ErrCodeBadRequest)
		}
		offset, err := protocol.ConsumeUvarint(&data)
		if err != nil {
			return respondError(protocol.ErrCodeBadRequest)
		}
		w, ok := m.windows[uint8(win)]
		if !ok {
			return respondError(protocol.ErrCodeUnknownWindow)
		}
		v := w.Read32(uint32(offset))
		return respond(protocol.MsgValue32, protocol.AppendUvarint(nil, uint64(v)))

	case protocol.MsgPoke32:
		data := f.Payload
		win, err := protocol.ConsumeUvarint(&data)
		if err != nil {
			return respondError(protocol.ErrCodeBadRequest)
		}
		offset, err := protocol.ConsumeUvarint(&data)
		if err != nil {
			return respondError(protocol.ErrCodeBadRequest)
		}
		value, err := protocol.ConsumeUvarint(&data)
		if err != nil {
			return respondError(protocol.ErrCodeBadRequest)
		}
		w, ok := m.windows[uint8(win)]
		if !ok {
			return respondError(protocol.ErrCodeUnknownWindow)
		}
		w.Write32(uint32(offset), uint32(value))
		return respond(protocol.MsgPokeDone, nil)

	case protocol.MsgCounter:
		if m.counter == nil {
			return respondError(protocol.ErrCodeNoCounter)
		}
		return respond(protocol.MsgCounterValue, protocol.AppendUvarint(nil, m.counter()))
	}

	return respondError(protocol.ErrCodeUnknownOp)
}

// Serve decodes requests from rw and writes responses until the reader is
// exhausted. Malformed input is skipped by the frame decoder's resync.
func (m *Monitor) Serve(rw io.ReadWriter) error {
	dec := protocol.NewDecoder()
	buf := make([]byte, protocol.FrameLengthMax)
	for {
		n, err := rw.Read(buf)
		if n > 0 {
			dec.Feed(buf[:n])
			for {
				f, ok := dec.Next()
				if !ok {
					break
				}
				if _, werr := rw.Write(m.HandleFrame(f)); werr != nil {
					return werr
				}
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func respond(typ byte, payload []byte) []byte {
	// Payloads here are at most one varint and always fit in a frame.
	resp, _ := protocol.AppendFrame(nil, typ, payload)
	return resp
}

func respondError(code uint64) []byte {
	return respond(protocol.MsgError, protocol.AppendUvarint(nil, code))
}
