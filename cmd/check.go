package main

import (
	"errors"
	"fmt"
	"io"

	"escaperoom/internal/config"
	"escaperoom/internal/gate"
	"escaperoom/pkg/serrors"

	"github.com/go-faster/jx"
	"github.com/spf13/cobra"
)

var errNotEscaped = errors.New("not every level passed")

// writeText prints one line per evaluated level.
func writeText(w io.Writer, report gate.Report) error {
	for _, l := range report.Levels {
		if !l.Evaluated {
			break
		}
		line := l.Message
		if l.Err != nil {
			line = fmt.Sprintf("%s (%s: %v)", line, serrors.Name(l.Err), l.Err)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "progress: %d/%d\n", report.Progress(), gate.LevelCount)

	return err
}

// encodeReport writes report as an indented JSON document.
func encodeReport(report gate.Report) []byte {
	var e jx.Encoder
	e.SetIdent(2)

	e.ObjStart()
	e.FieldStart("progress")
	e.Int(report.Progress())
	e.FieldStart("escaped")
	e.Bool(report.Escaped())
	e.FieldStart("levels")
	e.ArrStart()
	for _, l := range report.Levels {
		e.ObjStart()
		e.FieldStart("level")
		e.Int(l.ID)
		e.FieldStart("evaluated")
		e.Bool(l.Evaluated)
		e.FieldStart("passed")
		e.Bool(l.Passed)
		e.FieldStart("message")
		e.Str(l.Message)
		if l.Err != nil {
			e.FieldStart("kind")
			e.Str(serrors.Name(l.Err))
			e.FieldStart("error")
			e.Str(l.Err.Error())
		}
		if p := l.Probe; p != nil {
			e.FieldStart("probe")
			e.ObjStart()
			e.FieldStart("url")
			e.Str(p.URL)
			e.FieldStart("outcome")
			e.Str(string(p.Outcome))
			e.FieldStart("status_code")
			e.Int(p.StatusCode)
			e.FieldStart("duration_ms")
			e.Int64(p.Duration.Milliseconds())
			e.ObjEnd()
		}
		e.ObjEnd()
	}
	e.ArrEnd()
	e.ObjEnd()

	return append(e.Bytes(), '\n')
}

func checkCommand(cfg *config.Config) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluates every level once and prints the result",
		Long:  "Evaluates every level once. Exits with a non-zero status unless all levels pass.",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := newEvaluator(cfg, nil).Evaluate(cmd.Context())

			switch output {
			case "text":
				if err := writeText(cmd.OutOrStdout(), report); err != nil {
					return fmt.Errorf("could not write report: %w", err)
				}
			case "json":
				if _, err := cmd.OutOrStdout().Write(encodeReport(report)); err != nil {
					return fmt.Errorf("could not write report: %w", err)
				}
			default:
				return fmt.Errorf("unknown output format %q", output)
			}

			if !report.Escaped() {
				return errNotEscaped
			}

			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text or json")

	return cmd
}
