// Package protocol implements the wire format of the pit64 monitor link.
//
// The link is a strict command/response debug channel carried over a serial
// transport. Every message is a single frame; there is no sequence window or
// retransmission, and the decoder resynchronizes after corrupted input.
package protocol

// Frame layout: [length][type][payload...][crc16 hi][crc16 lo][sync]
const (
	FrameHeaderSize  = 2 // length + type
	FrameTrailerSize = 3 // crc16 + sync
	FrameLengthMin   = FrameHeaderSize + FrameTrailerSize
	FrameLengthMax   = 48
	FrameSync        = 0x7E
)

// Request message types.
const (
	MsgPing    = 0x01 // no payload
	MsgPeek32  = 0x02 // window, offset
	MsgPoke32  = 0x03 // window, offset, value
	MsgCounter = 0x04 // no payload
)

// Response message types.
const (
	MsgPong         = 0x81 // no payload
	MsgValue32      = 0x82 // value
	MsgPokeDone     = 0x83 // no payload
	MsgCounterValue = 0x84 // 64-bit value
	MsgError        = 0xFF // error code
)

// Error codes carried in a MsgError payload.
const (
	ErrCodeBadRequest    = 1 // malformed payload
	ErrCodeUnknownWindow = 2 // window id not registered
	ErrCodeNoCounter     = 3 // no counter source configured
	ErrCodeUnknownOp     = 4 // unrecognized message type
)
