package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonpcx/host/board"
	"gonpcx/host/monitor"
	"gonpcx/miwu"
	"gonpcx/protocol"
)

const evbYAML = `
board: npcx9 evb
lines:
  - {line: MIWU0_41, name: power-button, active: low}
`

func TestSimDeviceStreamsWakes(t *testing.T) {
	pr, pw := io.Pipe()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	go runSimDevice(pw, 3, logger)

	// If the device stalls, fail the pending read instead of hanging.
	guard := time.AfterFunc(10*time.Second, func() {
		pr.CloseWithError(errors.New("sim device stalled"))
	})
	defer guard.Stop()

	var events []protocol.WakeEvent
	mon := monitor.New(monitor.Config{
		OnWakeEvent: func(ev protocol.WakeEvent) { events = append(events, ev) },
	})
	require.NoError(t, mon.Run(context.Background(), pr))

	hello, ok := mon.Hello()
	require.True(t, ok)
	assert.Equal(t, "sim", hello.Chip)
	assert.Equal(t, protocol.Version, hello.Version)

	require.Len(t, events, 3)
	for i, ev := range events {
		assert.Equal(t, uint32(i+1), ev.Seq)
		assert.Equal(t, uint8(miwu.MIWU1_73), ev.Line)
		assert.Equal(t, i%2 == 0, ev.Level)
	}

	stats := mon.Stats()
	assert.Equal(t, uint32(3), stats.WakeCount)
	assert.Zero(t, stats.Dropped)
	assert.Zero(t, stats.BadFrames)
	assert.Zero(t, stats.Resyncs)

	co := miwu.MIWU1_73.Coord()
	_, ok = mon.GroupStatus(co.Controller, co.Group)
	assert.True(t, ok)
}

func TestLineName(t *testing.T) {
	brd, err := board.Parse([]byte(evbYAML))
	require.NoError(t, err)

	assert.Equal(t, "power-button", lineName(brd, uint8(miwu.MIWU0_41)))
	assert.Equal(t, "MIWU1_73", lineName(nil, uint8(miwu.MIWU1_73)))
	assert.Equal(t, "line-255", lineName(nil, 255))
}

func TestSignalState(t *testing.T) {
	brd, err := board.Parse([]byte(evbYAML))
	require.NoError(t, err)

	// power-button is active low: a low level means asserted.
	assert.Equal(t, " state=asserted", signalState(brd, uint8(miwu.MIWU0_41), false))
	assert.Equal(t, " state=idle", signalState(brd, uint8(miwu.MIWU0_41), true))
	assert.Equal(t, "", signalState(brd, uint8(miwu.MIWU1_73), false))
	assert.Equal(t, "", signalState(nil, uint8(miwu.MIWU0_41), false))
	assert.Equal(t, "", signalState(brd, 255, false))
}
