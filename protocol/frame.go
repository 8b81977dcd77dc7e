// Package protocol implements the wake-report stream a wake-up
// firmware emits over its console UART. The framing follows Klipper's
// serial transport: a length byte, a rolling four-bit sequence, the
// payload, a big-endian CRC16 and a trailing sync byte, with the same
// hunt-for-sync recovery on corrupt input. On top of the framing sit
// the report messages: a hello banner, wake events, and group status
// snapshots.
package protocol

import (
	"fmt"
	"io"
	"sync/atomic"
)

const (
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePayloadMax  = MessageLengthMax - MessageHeaderSize - MessageTrailerSize

	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1

	MessageValueSync = 0x7E
	MessageDest      = 0x10
	MessageSeqMask   = 0x0F
)

// Encoder frames payloads onto a byte stream. Each frame carries a
// rolling four-bit sequence so the receiving side can spot dropped
// frames. Not safe for concurrent use.
type Encoder struct {
	w   io.Writer
	seq uint8
	buf [MessageLengthMax]byte
}

// NewEncoder returns an Encoder writing frames to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode frames one payload and writes it out.
func (e *Encoder) Encode(payload []byte) error {
	if len(payload) > MessagePayloadMax {
		return fmt.Errorf("payload too long: %d bytes (max %d)", len(payload), MessagePayloadMax)
	}

	msgLen := MessageHeaderSize + len(payload) + MessageTrailerSize
	e.buf[MessagePositionLen] = uint8(msgLen)
	e.buf[MessagePositionSeq] = e.seq&MessageSeqMask | MessageDest
	copy(e.buf[MessageHeaderSize:], payload)

	crc := CRC16(e.buf[:MessageHeaderSize+len(payload)])
	e.buf[msgLen-MessageTrailerCRC] = uint8(crc >> 8)
	e.buf[msgLen-MessageTrailerCRC+1] = uint8(crc & 0xFF)
	e.buf[msgLen-MessageTrailerSync] = MessageValueSync
	e.seq++

	_, err := e.w.Write(e.buf[:msgLen])
	return err
}

// EncodeMessages builds a payload with build and frames it. Several
// report messages can share one frame as long as they fit.
func (e *Encoder) EncodeMessages(build func(out OutputBuffer)) error {
	scratch := NewScratchOutput()
	build(scratch)
	return e.Encode(scratch.Result())
}

// Decoder reassembles frames from a raw byte stream. Input arrives in
// whatever chunks the serial layer produces; on a bad length, CRC or
// missing trailer the decoder drops to hunting for the next sync byte
// and picks up from there.
//
// Feed must be called from a single goroutine. The frame and resync
// counters may be read from others.
type Decoder struct {
	handler func(seq uint8, payload []byte)
	input   *FifoBuffer
	synced  bool
	frames  uint32
	resyncs uint32
}

// NewDecoder returns a Decoder invoking handler for every valid frame
// with the frame's sequence byte and a copy of its payload.
func NewDecoder(handler func(seq uint8, payload []byte)) *Decoder {
	return &Decoder{
		handler: handler,
		// Capacity must exceed MessageLengthMax so a full buffer
		// always contains something to parse or discard.
		input:  NewFifoBuffer(512),
		synced: true,
	}
}

// Feed consumes one chunk of stream input, dispatching every complete
// frame it contains.
func (d *Decoder) Feed(p []byte) {
	for len(p) > 0 {
		n := d.input.Write(p)
		p = p[n:]
		d.process()
	}
}

// Frames returns the number of frames decoded so far.
func (d *Decoder) Frames() uint32 {
	return atomic.LoadUint32(&d.frames)
}

// Resyncs returns the number of times the decoder lost the frame
// boundary and had to hunt for a sync byte.
func (d *Decoder) Resyncs() uint32 {
	return atomic.LoadUint32(&d.resyncs)
}

func (d *Decoder) desync() {
	d.synced = false
	atomic.AddUint32(&d.resyncs, 1)
}

func (d *Decoder) process() {
	data := d.input.Data()

	for len(data) > 0 {
		if !d.synced {
			// Look for a sync byte to resynchronize on.
			syncPos := -1
			for i, b := range data {
				if b == MessageValueSync {
					syncPos = i
					break
				}
			}
			if syncPos < 0 {
				// No sync byte; discard everything.
				data = nil
				break
			}
			data = data[syncPos+1:]
			d.synced = true
			continue
		}

		// Skip sync bytes between frames.
		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}

		if len(data) < MessageLengthMin {
			break
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			d.desync()
			continue
		}

		// Wait for the full frame.
		if len(data) < msgLen {
			break
		}

		if data[msgLen-MessageTrailerSync] != MessageValueSync {
			d.desync()
			continue
		}

		frameCRC := uint16(data[msgLen-MessageTrailerCRC])<<8 |
			uint16(data[msgLen-MessageTrailerCRC+1])
		if frameCRC != CRC16(data[:msgLen-MessageTrailerSize]) {
			d.desync()
			continue
		}

		seq := data[MessagePositionSeq]
		payload := make([]byte, msgLen-MessageHeaderSize-MessageTrailerSize)
		copy(payload, data[MessageHeaderSize:msgLen-MessageTrailerSize])
		data = data[msgLen:]

		atomic.AddUint32(&d.frames, 1)
		if d.handler != nil {
			d.handler(seq, payload)
		}
	}

	consumed := d.input.Available() - len(data)
	if consumed > 0 {
		d.input.Pop(consumed)
	}
}
