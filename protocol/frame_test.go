package protocol

import (
	"bytes"
	"testing"
)

func TestEncodeFrameLayout(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	payload := []byte{0xAA, 0xBB}
	if err := enc.Encode(payload); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	frame := buf.Bytes()
	if len(frame) != 7 {
		t.Fatalf("Frame length %d, want 7", len(frame))
	}
	if frame[MessagePositionLen] != 7 {
		t.Errorf("Length byte = %d, want 7", frame[MessagePositionLen])
	}
	if frame[MessagePositionSeq] != MessageDest {
		t.Errorf("Sequence byte = 0x%02x, want 0x%02x", frame[MessagePositionSeq], MessageDest)
	}
	if !bytes.Equal(frame[2:4], payload) {
		t.Errorf("Payload = %v, want %v", frame[2:4], payload)
	}
	crc := CRC16(frame[:4])
	if frame[4] != uint8(crc>>8) || frame[5] != uint8(crc&0xFF) {
		t.Errorf("CRC bytes = %02x %02x, want %04x", frame[4], frame[5], crc)
	}
	if frame[6] != MessageValueSync {
		t.Errorf("Trailer byte = 0x%02x, want 0x%02x", frame[6], MessageValueSync)
	}
}

func TestEncodeSequenceRolls(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	for i := 0; i < 17; i++ {
		buf.Reset()
		if err := enc.Encode(nil); err != nil {
			t.Fatalf("Encode %d failed: %v", i, err)
		}
		seq := buf.Bytes()[MessagePositionSeq]
		want := uint8(i)&MessageSeqMask | MessageDest
		if seq != want {
			t.Errorf("Frame %d sequence = 0x%02x, want 0x%02x", i, seq, want)
		}
	}
}

func TestEncodePayloadTooLong(t *testing.T) {
	enc := NewEncoder(&bytes.Buffer{})
	if err := enc.Encode(make([]byte, MessagePayloadMax+1)); err == nil {
		t.Error("Encoding an oversized payload did not fail")
	}
	if err := enc.Encode(make([]byte, MessagePayloadMax)); err != nil {
		t.Errorf("Encoding a max-size payload failed: %v", err)
	}
}

type decoded struct {
	seq     uint8
	payload []byte
}

func collectFrames(got *[]decoded) func(seq uint8, payload []byte) {
	return func(seq uint8, payload []byte) {
		*got = append(*got, decoded{seq, payload})
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	payloads := [][]byte{
		{0x01},
		{0x02, 0x03, 0x04},
		{},
	}
	for _, p := range payloads {
		if err := enc.Encode(p); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}

	var got []decoded
	dec := NewDecoder(collectFrames(&got))
	dec.Feed(buf.Bytes())

	if len(got) != len(payloads) {
		t.Fatalf("Decoded %d frames, want %d", len(got), len(payloads))
	}
	for i, p := range payloads {
		if !bytes.Equal(got[i].payload, p) {
			t.Errorf("Frame %d payload = %v, want %v", i, got[i].payload, p)
		}
		want := uint8(i)&MessageSeqMask | MessageDest
		if got[i].seq != want {
			t.Errorf("Frame %d sequence = 0x%02x, want 0x%02x", i, got[i].seq, want)
		}
	}
	if dec.Frames() != uint32(len(payloads)) {
		t.Errorf("Frames() = %d, want %d", dec.Frames(), len(payloads))
	}
	if dec.Resyncs() != 0 {
		t.Errorf("Resyncs() = %d, want 0", dec.Resyncs())
	}
}

func TestDecodeChunked(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for i := 0; i < 5; i++ {
		if err := enc.Encode([]byte{byte(i), byte(i + 1)}); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}

	var got []decoded
	dec := NewDecoder(collectFrames(&got))
	// Feed one byte at a time, the worst case a serial read can give.
	for _, b := range buf.Bytes() {
		dec.Feed([]byte{b})
	}

	if len(got) != 5 {
		t.Fatalf("Decoded %d frames, want 5", len(got))
	}
	for i, d := range got {
		if want := []byte{byte(i), byte(i + 1)}; !bytes.Equal(d.payload, want) {
			t.Errorf("Frame %d payload = %v, want %v", i, d.payload, want)
		}
	}
}

func TestDecodeResyncAfterGarbage(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.Encode([]byte{0x11}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	first := append([]byte(nil), buf.Bytes()...)
	buf.Reset()
	if err := enc.Encode([]byte{0x22}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	second := append([]byte(nil), buf.Bytes()...)

	// Garbage with no sync byte desynchronizes the stream; recovery
	// happens at the first frame's trailing sync, so that frame is
	// sacrificed and the next one decodes.
	stream := append([]byte{0x01, 0x02, 0x03}, first...)
	stream = append(stream, second...)

	var got []decoded
	dec := NewDecoder(collectFrames(&got))
	dec.Feed(stream)

	if len(got) != 1 {
		t.Fatalf("Decoded %d frames, want 1", len(got))
	}
	if !bytes.Equal(got[0].payload, []byte{0x22}) {
		t.Errorf("Surviving payload = %v, want [0x22]", got[0].payload)
	}
	if dec.Resyncs() != 1 {
		t.Errorf("Resyncs() = %d, want 1", dec.Resyncs())
	}
}

func TestDecodeRejectsCorruptCRC(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.Encode([]byte{0x11, 0x22}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	corrupt := append([]byte(nil), buf.Bytes()...)
	corrupt[2] ^= 0xFF // flip a payload byte, CRC no longer matches
	buf.Reset()
	if err := enc.Encode([]byte{0x33}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var got []decoded
	dec := NewDecoder(collectFrames(&got))
	dec.Feed(append(corrupt, buf.Bytes()...))

	if len(got) != 1 {
		t.Fatalf("Decoded %d frames, want 1", len(got))
	}
	if !bytes.Equal(got[0].payload, []byte{0x33}) {
		t.Errorf("Surviving payload = %v, want [0x33]", got[0].payload)
	}
	if dec.Resyncs() != 1 {
		t.Errorf("Resyncs() = %d, want 1", dec.Resyncs())
	}
}
