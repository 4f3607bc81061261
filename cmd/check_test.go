package main

import (
	"bytes"
	"escaperoom/internal/gate"
	"escaperoom/pkg/probe"
	"escaperoom/pkg/serrors"
	"testing"
	"time"

	"github.com/go-faster/jx"
	"github.com/stretchr/testify/require"
)

func stuckAtGame() gate.Report {
	var r gate.Report
	for i := range r.Levels {
		r.Levels[i] = gate.Level{ID: i + 1, Evaluated: true, Passed: true, Message: "ok"}
	}
	r.Levels[4] = gate.Level{
		ID:        5,
		Evaluated: true,
		Message:   "❌ Level 5: Could not reach monkeytype at http://game.",
		Err:       serrors.With(serrors.ErrBadStatus, "status 502"),
		Probe: &probe.Result{
			URL:        "http://game",
			Outcome:    probe.OutcomeBadStatus,
			StatusCode: 502,
			Duration:   15 * time.Millisecond,
		},
	}

	return r
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeText(&buf, stuckAtGame()))

	out := buf.String()
	require.Contains(t, out, "❌ Level 5: Could not reach monkeytype at http://game. (BAD_STATUS: ")
	require.Contains(t, out, "progress: 4/5\n")
}

func TestWriteText_StopsAtUnevaluated(t *testing.T) {
	var r gate.Report
	r.Levels[0] = gate.Level{ID: 1, Evaluated: true, Passed: true, Message: "first"}
	r.Levels[1] = gate.Level{ID: 2, Evaluated: true, Message: "second"}
	r.Levels[2] = gate.Level{ID: 3}

	var buf bytes.Buffer
	require.NoError(t, writeText(&buf, r))
	require.Equal(t, "first\nsecond\nprogress: 1/5\n", buf.String())
}

func TestEncodeReport(t *testing.T) {
	data := encodeReport(stuckAtGame())
	require.True(t, jx.Valid(data))

	var (
		progress int
		escaped  bool
		levels   int
		outcome  string
	)
	err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "progress":
			v, err := d.Int()
			progress = v

			return err
		case "escaped":
			v, err := d.Bool()
			escaped = v

			return err
		case "levels":
			return d.Arr(func(d *jx.Decoder) error {
				levels++

				return d.Obj(func(d *jx.Decoder, key string) error {
					if key != "probe" {
						return d.Skip()
					}

					return d.Obj(func(d *jx.Decoder, key string) error {
						if key != "outcome" {
							return d.Skip()
						}
						v, err := d.Str()
						outcome = v

						return err
					})
				})
			})
		default:
			return d.Skip()
		}
	})
	require.NoError(t, err)

	require.Equal(t, 4, progress)
	require.False(t, escaped)
	require.Equal(t, gate.LevelCount, levels)
	require.Equal(t, string(probe.OutcomeBadStatus), outcome)
}
