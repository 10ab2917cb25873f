package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/sweepsensor/internal/core/sensor"
)

func testOptions() options {
	return options{
		scene:    "testdata/scene.yaml",
		sensors:  "testdata/sensors.yaml",
		ticks:    2,
		interval: time.Millisecond,
		level:    "silent",
	}
}

func TestRun_Table(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), testOptions(), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 7)
	require.True(t, strings.HasPrefix(lines[0], "SENSOR"))
	require.Contains(t, out.String(), "forward")
	require.Contains(t, out.String(), "wall")
}

func TestRun_JSON(t *testing.T) {
	opts := testOptions()
	opts.sensors = "testdata/sensors.json"
	opts.asJSON = true

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), opts, &out))

	var entries []sensor.Entry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
	require.Len(t, entries, 2)

	require.Equal(t, "behind", entries[0].Name)
	require.False(t, entries[0].Result.Hit)

	forward := entries[1]
	require.Equal(t, "forward", forward.Name)
	require.True(t, forward.Result.Hit)
	require.Equal(t, "wall", forward.Result.Info.Collider, "the trigger in front of the wall is ignored")
	require.InDelta(t, 5.75, forward.Result.Info.Distance, 1e-9)
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer

	opts := testOptions()
	opts.scene = ""
	require.Error(t, run(context.Background(), opts, &out))

	opts = testOptions()
	opts.scene = "testdata/scene.txt"
	require.Error(t, run(context.Background(), opts, &out))

	opts = testOptions()
	opts.level = "loud"
	require.Error(t, run(context.Background(), opts, &out))

	opts = testOptions()
	opts.format = "xml"
	require.Error(t, run(context.Background(), opts, &out))

	opts = testOptions()
	opts.ticks = -1
	require.Error(t, run(context.Background(), opts, &out))
}
