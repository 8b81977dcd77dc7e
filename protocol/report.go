package protocol

import "fmt"

// Version is reported in the hello banner.
const Version = "0.1.0"

// Report message identifiers. Every message starts with its VLQ
// identifier; the fields follow as VLQ integers or length-prefixed
// strings.
const (
	MessageHello       = 1 // version, chip
	MessageWakeEvent   = 2 // seq, line, level, tick
	MessageGroupStatus = 3 // controller, group, pending, enabled, tick
)

// Hello is sent once when the reporter starts.
type Hello struct {
	Version string
	Chip    string
}

// WakeEvent reports one dispatched wake: the wake counter, the line
// index, the input level sampled at dispatch, and a device timestamp.
type WakeEvent struct {
	Seq   uint32
	Line  uint8
	Level bool
	Tick  uint32
}

// GroupStatus is a snapshot of one group's pending and enable
// registers.
type GroupStatus struct {
	Controller uint8
	Group      uint8
	Pending    uint8
	Enabled    uint8
	Tick       uint32
}

// EncodeHello appends a hello message to out.
func EncodeHello(out OutputBuffer, m Hello) {
	EncodeVLQUint(out, MessageHello)
	EncodeVLQString(out, m.Version)
	EncodeVLQString(out, m.Chip)
}

// EncodeWakeEvent appends a wake event message to out.
func EncodeWakeEvent(out OutputBuffer, m WakeEvent) {
	EncodeVLQUint(out, MessageWakeEvent)
	EncodeVLQUint(out, m.Seq)
	EncodeVLQUint(out, uint32(m.Line))
	level := uint32(0)
	if m.Level {
		level = 1
	}
	EncodeVLQUint(out, level)
	EncodeVLQUint(out, m.Tick)
}

// EncodeGroupStatus appends a group status message to out.
func EncodeGroupStatus(out OutputBuffer, m GroupStatus) {
	EncodeVLQUint(out, MessageGroupStatus)
	EncodeVLQUint(out, uint32(m.Controller))
	EncodeVLQUint(out, uint32(m.Group))
	EncodeVLQUint(out, uint32(m.Pending))
	EncodeVLQUint(out, uint32(m.Enabled))
	EncodeVLQUint(out, m.Tick)
}

// SendHello frames a single hello message.
func (e *Encoder) SendHello(m Hello) error {
	return e.EncodeMessages(func(out OutputBuffer) { EncodeHello(out, m) })
}

// SendWakeEvent frames a single wake event message.
func (e *Encoder) SendWakeEvent(m WakeEvent) error {
	return e.EncodeMessages(func(out OutputBuffer) { EncodeWakeEvent(out, m) })
}

// SendGroupStatus frames a single group status message.
func (e *Encoder) SendGroupStatus(m GroupStatus) error {
	return e.EncodeMessages(func(out OutputBuffer) { EncodeGroupStatus(out, m) })
}

// Handlers receives decoded report messages. Nil fields skip their
// message type.
type Handlers struct {
	Hello       func(Hello)
	WakeEvent   func(WakeEvent)
	GroupStatus func(GroupStatus)
}

// DecodeMessages walks every message in the input buffer and pops the
// bytes it consumed. Decoding stops at the first malformed or unknown
// message, since the rest of the payload cannot be located past it.
func DecodeMessages(in InputBuffer, h Handlers) error {
	data := in.Data()
	defer func() {
		if consumed := in.Available() - len(data); consumed > 0 {
			in.Pop(consumed)
		}
	}()
	for len(data) > 0 {
		id, err := DecodeVLQUint(&data)
		if err != nil {
			return err
		}
		switch id {
		case MessageHello:
			var m Hello
			if m.Version, err = DecodeVLQString(&data); err != nil {
				return err
			}
			if m.Chip, err = DecodeVLQString(&data); err != nil {
				return err
			}
			if h.Hello != nil {
				h.Hello(m)
			}

		case MessageWakeEvent:
			var m WakeEvent
			if m.Seq, err = DecodeVLQUint(&data); err != nil {
				return err
			}
			line, err := DecodeVLQUint(&data)
			if err != nil {
				return err
			}
			m.Line = uint8(line)
			level, err := DecodeVLQUint(&data)
			if err != nil {
				return err
			}
			m.Level = level != 0
			if m.Tick, err = DecodeVLQUint(&data); err != nil {
				return err
			}
			if h.WakeEvent != nil {
				h.WakeEvent(m)
			}

		case MessageGroupStatus:
			var m GroupStatus
			fields := []*uint8{&m.Controller, &m.Group, &m.Pending, &m.Enabled}
			for _, f := range fields {
				v, err := DecodeVLQUint(&data)
				if err != nil {
					return err
				}
				*f = uint8(v)
			}
			if m.Tick, err = DecodeVLQUint(&data); err != nil {
				return err
			}
			if h.GroupStatus != nil {
				h.GroupStatus(m)
			}

		default:
			return fmt.Errorf("unknown message id %d", id)
		}
	}
	return nil
}
