package protocol

import "testing"

func TestUvarintRoundTrip(t *testing.T) {
	testCases := []uint64{
		0,
		1,
		0x7F,
		0x80,
		0x3FFF,
		0x4000,
		0xFFFF,
		2461538,
		25000,
		1 << 31,
		1 << 32,
		1<<63 - 1,
		1 << 63,
		^uint64(0),
	}

	for _, expected := range testCases {
		encoded := AppendUvarint(nil, expected)

		data := encoded
		decoded, err := ConsumeUvarint(&data)
		if err != nil {
			t.Errorf("decode failed for %d: %v", expected, err)
			continue
		}
		if decoded != expected {
			t.Errorf("round trip mismatch: expected %d, got %d (encoded as %v)", expected, decoded, encoded)
		}
		if len(data) != 0 {
			t.Errorf("decode left %d bytes for value %d", len(data), expected)
		}
	}
}

func TestUvarintConsumesOnlyOneValue(t *testing.T) {
	buf := AppendUvarint(nil, 300)
	buf = AppendUvarint(buf, 7)

	data := buf
	first, err := ConsumeUvarint(&data)
	if err != nil {
		t.Fatalf("first decode failed: %v", err)
	}
	second, err := ConsumeUvarint(&data)
	if err != nil {
		t.Fatalf("second decode failed: %v", err)
	}

	if first != 300 || second != 7 {
		t.Errorf("expected 300 and 7, got %d and %d", first, second)
	}
	if len(data) != 0 {
		t.Errorf("expected empty remainder, got %d bytes", len(data))
	}
}

func TestUvarintTruncated(t *testing.T) {
	encoded := AppendUvarint(nil, 1<<40)

	for cut := 0; cut < len(encoded); cut++ {
		data := encoded[:cut]
		if _, err := ConsumeUvarint(&data); err != ErrTruncated {
			t.Errorf("cut at %d: expected ErrTruncated, got %v", cut, err)
		}
	}
}

func TestUvarintTooLong(t *testing.T) {
	// Eleven continuation bytes can never be produced by the encoder.
	data := []byte{0x81, 0x81, 0x81, 0x81, 0x81, 0x81, 0x81, 0x81, 0x81, 0x81, 0x01}
	if _, err := ConsumeUvarint(&data); err != ErrVarintTooLong {
		t.Errorf("expected ErrVarintTooLong, got %v", err)
	}
}
