package protocol

import "errors"

// ErrPayloadTooLarge reports a payload that does not fit in one frame.
var ErrPayloadTooLarge = errors.New("payload too large for frame")

// Frame is one decoded monitor message.
type Frame struct {
	Type    byte
	Payload []byte
}

// AppendFrame appends a complete frame carrying typ and payload to dst.
func AppendFrame(dst []byte, typ byte, payload []byte) ([]byte, error) {
	length := FrameLengthMin + len(payload)
	if length > FrameLengthMax {
		return dst, ErrPayloadTooLarge
	}
	start := len(dst)
	dst = append(dst, byte(length), typ)
	dst = append(dst, payload...)
	crc := CRC16(dst[start : len(dst)])
	dst = append(dst, byte(crc>>8), byte(crc), FrameSync)
	return dst, nil
}

// Decoder reassembles frames from a byte stream. Garbage between frames is
// skipped by hunting for the trailing sync byte, the same recovery the
// Klipper MCU transport performs after a framing error.
type Decoder struct {
	buf    []byte
	synced bool
}

// NewDecoder returns a decoder that treats the stream as initially
// synchronized (the link idles between frames, so the first byte received is
// normally a length byte).
func NewDecoder() *Decoder {
	return &Decoder{synced: true}
}

// Feed appends received bytes to the decoder's buffer.
func (d *Decoder) Feed(p []byte) {
	d.buf = append(d.buf, p...)
}

// Next extracts the next complete frame. It returns ok=false when more input
// is needed. The returned payload aliases the internal buffer and is only
// valid until the next call to Feed or Next.
func (d *Decoder) Next() (Frame, bool) {
	for {
		if !d.synced {
			sync := -1
			for i, b := range d.buf {
				if b == FrameSync {
					sync = i
					break
				}
			}
			if sync < 0 {
				d.buf = d.buf[:0]
				return Frame{}, false
			}
			d.buf = d.buf[sync+1:]
			d.synced = true
		}

		// Skip idle sync bytes between frames.
		for len(d.buf) > 0 && d.buf[0] == FrameSync {
			d.buf = d.buf[1:]
		}
		if len(d.buf) < FrameLengthMin {
			return Frame{}, false
		}

		length := int(d.buf[0])
		if length < FrameLengthMin || length > FrameLengthMax {
			d.synced = false
			continue
		}
		if len(d.buf) < length {
			return Frame{}, false
		}
		if d.buf[length-1] != FrameSync {
			d.synced = false
			continue
		}
		want := uint16(d.buf[length-3])<<8 | uint16(d.buf[length-2])
		if CRC16(d.buf[:length-FrameTrailerSize]) != want {
			d.synced = false
			continue
		}

		f := Frame{
			Type:    d.buf[1],
			Payload: d.buf[FrameHeaderSize : length-FrameTrailerSize],
		}
		d.buf = d.buf[length:]
		return f, true
	}
}
