package monitor

import (
	"errors"
	"fmt"
	"io"

	"samhal/protocol"
)

// ErrNoResponse is returned when the device stays silent for a full request's
// worth of read attempts.
var ErrNoResponse = errors.New("no response from device")

// RemoteError is an error frame returned by the device.
type RemoteError struct {
	Code uint64
}

func (e *RemoteError) Error() string {
	switch e.Code {
	case protocol.ErrCodeBadRequest:
		return "device error: bad request"
	case protocol.ErrCodeUnknownWindow:
		return "device error: unknown register window"
	case protocol.ErrCodeNoCounter:
		return "device error: no counter source"
	case protocol.ErrCodeUnknownOp:
		return "device error: unknown operation"
	}
	return fmt.Sprintf("device error: code %d", e.Code)
}

// maxReadAttempts bounds how many short reads a request waits through before
// giving up. With the serial layer's 100ms read timeout this is a few seconds.
const maxReadAttempts = 30

// Client is the host side of the monitor link. Requests are strictly
// sequential: one frame out, one frame back.
type Client struct {
	rw  io.ReadWriter
	dec *protocol.Decoder
	buf []byte
}

// NewClient returns a client speaking the monitor protocol over rw,
// typically an open serial port.
func NewClient(rw io.ReadWriter) *Client {
	return &Client{
		rw:  rw,
		dec: protocol.NewDecoder(),
		buf: make([]byte, protocol.FrameLengthMax),
	}
}

// Ping checks that the device is alive and speaking the protocol.
func (c *Client) Ping() error {
	resp, err := c.roundTrip(protocol.MsgPing, nil)
	if err != nil {
		return err
	}
	if resp.Type != protocol.MsgPong {
		return fmt.Errorf("ping: unexpected response type %#x", resp.Type)
	}
	return nil
}

// Peek32 reads the 32-bit register at offset inside the window named by id.
func (c *Client) Peek32(id uint8, offset uint32) (uint32, error) {
	payload := protocol.AppendUvarint(nil, uint64(id))
	payload = protocol.AppendUvarint(payload, uint64(offset))
	resp, err := c.roundTrip(protocol.MsgPeek32, payload)
	if err != nil {
		return 0, err
	}
	if resp.Type != protocol.MsgValue32 {
		return 0, fmt.Errorf("peek: unexpected response type %#x", resp.Type)
	}
	data := resp.Payload
	v, err := protocol.ConsumeUvarint(&data)
	if err != nil {
		return 0, fmt.Errorf("peek: malformed response: %w", err)
	}
	return uint32(v), nil
}

// Poke32 writes value to the 32-bit register at offset inside the window
// named by id.
func (c *Client) Poke32(id uint8, offset uint32, value uint32) error {
	payload := protocol.AppendUvarint(nil, uint64(id))
	payload = protocol.AppendUvarint(payload, uint64(offset))
	payload = protocol.AppendUvarint(payload, uint64(value))
	resp, err := c.roundTrip(protocol.MsgPoke32, payload)
	if err != nil {
		return err
	}
	if resp.Type != protocol.MsgPokeDone {
		return fmt.Errorf("poke: unexpected response type %#x", resp.Type)
	}
	return nil
}

// Counter reads the device's 64-bit free-running counter.
func (c *Client) Counter() (uint64, error) {
	resp, err := c.roundTrip(protocol.MsgCounter, nil)
	if err != nil {
		return 0, err
	}
	if resp.Type != protocol.MsgCounterValue {
		return 0, fmt.Errorf("counter: unexpected response type %#x", resp.Type)
	}
	data := resp.Payload
	v, err := protocol.ConsumeUvarint(&data)
	if err != nil {
		return 0, fmt.Errorf("counter: malformed response: %w", err)
	}
	return v, nil
}

// roundTrip sends one request frame and waits for the next frame back.
// An error frame becomes a *RemoteError.
func (c *Client) roundTrip(typ byte, payload []byte) (protocol.Frame, error) {
	req, err := protocol.AppendFrame(nil, typ, payload)
	if err != nil {
		return protocol.Frame{}, err
	}
	if _, err := c.rw.Write(req); err != nil {
		return protocol.Frame{}, fmt.Errorf("write request: %w", err)
	}

	for attempt := 0; attempt < maxReadAttempts; attempt++ {
		if f, ok := c.dec.Next(); ok {
			return c.checkFrame(f)
		}
		n, err := c.rw.Read(c.buf)
		if n > 0 {
			c.dec.Feed(c.buf[:n])
			continue
		}
		if err != nil && err != io.EOF {
			return protocol.Frame{}, fmt.Errorf("read response: %w", err)
		}
		if err == io.EOF {
			break
		}
	}
	return protocol.Frame{}, ErrNoResponse
}

func (c *Client) checkFrame(f protocol.Frame) (protocol.Frame, error) {
	if f.Type != protocol.MsgError {
		return f, nil
	}
	data := f.Payload
	code, err := protocol.ConsumeUvarint(&data)
	if err != nil {
		return protocol.Frame{}, fmt.Errorf("malformed error frame: %w", err)
	}
	return protocol.Frame{}, &RemoteError{Code: code}
}
