// Package gate evaluates the five escape room levels. Each level is only
// evaluated once the previous one has passed.
package gate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"

	"escaperoom/pkg/logger"
	"escaperoom/pkg/metrics"
	"escaperoom/pkg/probe"
	"escaperoom/pkg/serrors"

	"go.uber.org/zap"
)

// LevelCount is the number of levels in the room.
const LevelCount = 5

// Level is the outcome of one level for a single evaluation.
type Level struct {
	// ID is the level number, 1 to LevelCount.
	ID int
	// Evaluated is false when an earlier level failed; Passed and Message are then zero.
	Evaluated bool
	Passed    bool
	Message   string
	// Err explains a failure. It is never shown to players.
	Err error
	// Probe is set for levels that call a downstream service.
	Probe *probe.Result
}

// Report holds the levels of one evaluation in ascending order.
type Report struct {
	Levels [LevelCount]Level
}

// Level returns level n (1-based). Out of range levels are returned
// unevaluated with only ID set.
func (r Report) Level(n int) Level {
	if n < 1 || n > LevelCount {
		return Level{ID: n}
	}

	return r.Levels[n-1]
}

// Passed reports whether level n passed. Out of range levels never pass.
func (r Report) Passed(n int) bool {
	if n < 1 || n > LevelCount {
		return false
	}

	return r.Levels[n-1].Passed
}

// Progress returns the highest level passed, 0 if none.
func (r Report) Progress() int {
	n := 0
	for _, l := range r.Levels {
		if !l.Passed {
			break
		}
		n = l.ID
	}

	return n
}

// Escaped reports whether every level passed.
func (r Report) Escaped() bool {
	return r.Progress() == LevelCount
}

// Deps are the capabilities the evaluator reads the world through.
type Deps struct {
	Env      Env
	Files    FileReader
	Prober   probe.Prober
	Recorder *metrics.Recorder
}

// Evaluator computes a Report from its Deps and Rules. It holds no mutable
// state and may be shared between requests.
type Evaluator struct {
	deps  Deps
	rules Rules
}

// New creates an Evaluator. Nil Env and Files default to the process
// environment and the local filesystem, a nil Recorder to a no-op one and a
// nil Prober to an HTTP client with probe.DefaultTimeout.
func New(deps Deps, rules Rules) *Evaluator {
	if deps.Env == nil {
		deps.Env = OSEnv{}
	}
	if deps.Files == nil {
		deps.Files = OSFiles{}
	}
	if deps.Recorder == nil {
		deps.Recorder = metrics.NewNoop()
	}
	if deps.Prober == nil {
		deps.Prober = probe.New(probe.Options{Recorder: deps.Recorder})
	}

	return &Evaluator{deps: deps, rules: rules}
}

// Rules returns the rules the evaluator checks against.
func (e *Evaluator) Rules() Rules {
	return e.rules
}

// Evaluate runs the levels in order, stopping at the first failure.
func (e *Evaluator) Evaluate(ctx context.Context) Report {
	checks := [LevelCount]func(context.Context) Level{
		e.checkPort,
		e.checkSecret,
		e.checkGoalFile,
		e.checkAPI,
		e.checkGame,
	}

	var report Report
	prevPassed := true
	for i, check := range checks {
		id := i + 1
		if !prevPassed {
			report.Levels[i] = Level{ID: id}

			continue
		}

		lvl := check(ctx)
		lvl.ID = id
		lvl.Evaluated = true
		report.Levels[i] = lvl

		e.deps.Recorder.LevelChecked(ctx, id, lvl.Passed)
		if !lvl.Passed && logger.IsDebug(ctx) {
			fields := []zap.Field{
				zap.Int("level", id),
				zap.String("reason", serrors.Name(lvl.Err)),
				zap.Error(lvl.Err),
			}
			if lvl.Probe != nil {
				fields = append(fields, zap.String("probe", lvl.Probe.String()))
			}
			logger.Debug(ctx, "level failed", fields...)
		}
		prevPassed = lvl.Passed
	}

	return report
}

// checkPort passes unconditionally: a client that received the page reached the port.
func (e *Evaluator) checkPort(context.Context) Level {
	return Level{Passed: true, Message: "✅ Level 1 complete: Port is exposed correctly!"}
}

func (e *Evaluator) checkSecret(context.Context) Level {
	fail := "❌ Level 2: SECRET_KEY is missing or incorrect."

	value, ok := e.deps.Env.Lookup(e.rules.SecretEnvVar)
	switch {
	case !ok:
		return Level{Message: fail, Err: serrors.With(serrors.ErrMissing, "%s is not set", e.rules.SecretEnvVar)}
	case value != e.rules.ExpectedSecret:
		return Level{Message: fail, Err: serrors.With(serrors.ErrMismatch, "%s has the wrong value", e.rules.SecretEnvVar)}
	}

	return Level{Passed: true, Message: "✅ Level 2 complete: SECRET_KEY detected!"}
}

func (e *Evaluator) checkGoalFile(context.Context) Level {
	fail := fmt.Sprintf("❌ Level 3: Missing or incorrect file %s.", e.rules.GoalPath)

	content, err := e.deps.Files.ReadFile(e.rules.GoalPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Level{Message: fail, Err: serrors.Wrap(serrors.ErrNotFound, err, "goal file not found")}
	case err != nil:
		return Level{Message: fail, Err: serrors.Wrap(serrors.ErrUnavailable, err, "could not read goal file")}
	case string(bytes.TrimSpace(content)) != e.rules.ExpectedGoal:
		return Level{Message: fail, Err: serrors.With(serrors.ErrMismatch, "goal file has the wrong content")}
	}

	return Level{Passed: true, Message: "✅ Level 3 complete: GOAL.txt file found with correct contents!"}
}

func (e *Evaluator) checkAPI(ctx context.Context) Level {
	res := e.deps.Prober.Probe(ctx, e.rules.APIURL)
	if !res.OK() {
		return Level{
			Message: fmt.Sprintf("❌ Level 4: Could not reach the API service at %s.", e.rules.APIURL),
			Err:     res.Err,
			Probe:   &res,
		}
	}

	return Level{Passed: true, Message: "✅ Level 4 complete: API service reachable!", Probe: &res}
}

func (e *Evaluator) checkGame(ctx context.Context) Level {
	res := e.deps.Prober.Probe(ctx, e.rules.GameURL)
	if !res.OK() {
		return Level{
			Message: fmt.Sprintf("❌ Level 5: Could not reach monkeytype at %s.", e.rules.GameURL),
			Err:     res.Err,
			Probe:   &res,
		}
	}

	return Level{
		Passed:  true,
		Message: fmt.Sprintf("✅ Level 5 complete: Monkeytype is live at %s!", e.rules.GameURL),
		Probe:   &res,
	}
}
