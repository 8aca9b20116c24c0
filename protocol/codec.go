package protocol

import "errors"

var (
	// ErrTruncated reports a varint cut short by the end of the payload.
	ErrTruncated = errors.New("truncated varint")
	// ErrVarintTooLong reports a varint with more continuation bytes than a
	// 64-bit value can produce.
	ErrVarintTooLong = errors.New("varint exceeds 64 bits")
)

// maxVarintLen is the byte length of the largest encodable value: ten 7-bit
// groups cover 70 bits.
const maxVarintLen = 10

// AppendUvarint appends v encoded as 7-bit groups, most significant group
// first, continuation bit set on every byte but the last. Counter values are
// 64-bit, so unlike the 32-bit Klipper VLQ this codec covers the full range.
func AppendUvarint(dst []byte, v uint64) []byte {
	groups := 1
	for x := v >> 7; x != 0; x >>= 7 {
		groups++
	}
	for i := groups - 1; i > 0; i-- {
		dst = append(dst, byte(v>>(uint(i)*7))&0x7F|0x80)
	}
	return append(dst, byte(v)&0x7F)
}

// ConsumeUvarint decodes a varint from the front of *data and advances the
// slice past the consumed bytes.
func ConsumeUvarint(data *[]byte) (uint64, error) {
	var v uint64
	for i := 0; ; i++ {
		if i >= len(*data) {
			return 0, ErrTruncated
		}
		if i >= maxVarintLen {
			return 0, ErrVarintTooLong
		}
		c := (*data)[i]
		v = v<<7 | uint64(c&0x7F)
		if c&0x80 == 0 {
			*data = (*data)[i+1:]
			return v, nil
		}
	}
}
