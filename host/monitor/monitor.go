// Package monitor consumes a wake-report stream and keeps the decoded
// picture: the device banner, recent wake events, the last status of
// each group, and link statistics.
package monitor

import (
	"context"
	"fmt"
	"io"
	"sync"

	"gonpcx/protocol"
)

// historySize bounds the retained wake events; older ones fall off.
const historySize = 64

// Config wires optional callbacks. They run on the Run goroutine, in
// stream order, without internal locks held.
type Config struct {
	OnHello       func(protocol.Hello)
	OnWakeEvent   func(protocol.WakeEvent)
	OnGroupStatus func(protocol.GroupStatus)
}

// Stats summarizes link health.
type Stats struct {
	Frames    uint32 // complete frames decoded
	Resyncs   uint32 // times the frame boundary was lost
	Dropped   uint32 // frames missing between decoded ones, from sequence gaps
	BadFrames uint32 // frames whose payload failed to decode
	WakeCount uint32 // wake event messages seen
}

// Monitor decodes a wake-report stream. Run drives it; the accessors
// are safe from any goroutine.
type Monitor struct {
	cfg Config
	dec *protocol.Decoder

	mu      sync.Mutex
	hello   *protocol.Hello
	events  []protocol.WakeEvent
	status  map[[2]uint8]protocol.GroupStatus
	lastSeq uint8
	sawSeq  bool
	dropped uint32
	wakes   uint32
	bad     uint32
}

// New returns a Monitor with the given callbacks.
func New(cfg Config) *Monitor {
	m := &Monitor{
		cfg:    cfg,
		status: make(map[[2]uint8]protocol.GroupStatus),
	}
	m.dec = protocol.NewDecoder(m.handleFrame)
	return m
}

// Run feeds the monitor from r until EOF, a read error, or ctx
// cancellation. EOF is a clean shutdown. Cancellation is only
// noticed between reads; close the reader to unblock a pending read.
func (m *Monitor) Run(ctx context.Context, r io.Reader) error {
	buf := make([]byte, 256)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := r.Read(buf)
		if n > 0 {
			m.dec.Feed(buf[:n])
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("read wake-report stream: %w", err)
		}
	}
}

// Hello returns the device banner, if one has arrived.
func (m *Monitor) Hello() (protocol.Hello, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hello == nil {
		return protocol.Hello{}, false
	}
	return *m.hello, true
}

// Events returns the retained wake events, oldest first.
func (m *Monitor) Events() []protocol.WakeEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]protocol.WakeEvent, len(m.events))
	copy(out, m.events)
	return out
}

// GroupStatus returns the last reported status of one group.
func (m *Monitor) GroupStatus(controller, group uint8) (protocol.GroupStatus, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	gs, ok := m.status[[2]uint8{controller, group}]
	return gs, ok
}

// Stats returns current link statistics.
func (m *Monitor) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		Frames:    m.dec.Frames(),
		Resyncs:   m.dec.Resyncs(),
		Dropped:   m.dropped,
		BadFrames: m.bad,
		WakeCount: m.wakes,
	}
}

func (m *Monitor) handleFrame(seq uint8, payload []byte) {
	m.mu.Lock()
	if m.sawSeq {
		expect := (m.lastSeq + 1) & protocol.MessageSeqMask
		m.dropped += uint32((seq - expect) & protocol.MessageSeqMask)
	}
	m.lastSeq = seq & protocol.MessageSeqMask
	m.sawSeq = true
	m.mu.Unlock()

	err := protocol.DecodeMessages(protocol.NewSliceInputBuffer(payload), protocol.Handlers{
		Hello:       m.handleHello,
		WakeEvent:   m.handleWakeEvent,
		GroupStatus: m.handleGroupStatus,
	})
	if err != nil {
		m.mu.Lock()
		m.bad++
		m.mu.Unlock()
	}
}

func (m *Monitor) handleHello(h protocol.Hello) {
	m.mu.Lock()
	m.hello = &h
	m.mu.Unlock()

	if m.cfg.OnHello != nil {
		m.cfg.OnHello(h)
	}
}

func (m *Monitor) handleWakeEvent(ev protocol.WakeEvent) {
	m.mu.Lock()
	m.wakes++
	if len(m.events) == historySize {
		copy(m.events, m.events[1:])
		m.events[len(m.events)-1] = ev
	} else {
		m.events = append(m.events, ev)
	}
	m.mu.Unlock()

	if m.cfg.OnWakeEvent != nil {
		m.cfg.OnWakeEvent(ev)
	}
}

func (m *Monitor) handleGroupStatus(gs protocol.GroupStatus) {
	m.mu.Lock()
	m.status[[2]uint8{gs.Controller, gs.Group}] = gs
	m.mu.Unlock()

	if m.cfg.OnGroupStatus != nil {
		m.cfg.OnGroupStatus(gs)
	}
}
