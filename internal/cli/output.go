package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/render"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) error {
	switch o.format {
	case "json":
		return o.printJSON(data)
	case "yaml":
		return o.printYAML(data)
	default:
		return o.printText(data)
	}
}

func (o *Output) printJSON(data any) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (o *Output) printYAML(data any) error {
	enc := yaml.NewEncoder(o.w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}

func (o *Output) printText(data any) error {
	switch v := data.(type) {
	case []ShapeView:
		o.printShapes(v)
	case model.ViewSnapshot:
		fmt.Fprint(o.w, render.Board(v))
	case *SimulateReport:
		o.printReport(v)
	default:
		// YAML reads well enough for everything else
		return o.printYAML(data)
	}
	return nil
}

// ShapeView is one catalog entry with all of its rotations
type ShapeView struct {
	Kind   model.PieceKind `json:"kind" yaml:"kind"`
	Frames []model.Frame   `json:"frames" yaml:"frames"`
}

func (o *Output) printShapes(shapes []ShapeView) {
	for i, shape := range shapes {
		if i > 0 {
			fmt.Fprintln(o.w)
		}
		fmt.Fprintf(o.w, "%s (%d rotations)\n", shape.Kind, len(shape.Frames))
		fmt.Fprint(o.w, render.Frames(shape.Frames))
	}
}

// GameResult is the outcome of one simulated game
type GameResult struct {
	Game     int                 `json:"game" yaml:"game"`
	ID       model.GameID        `json:"id" yaml:"id"`
	Stats    model.Stats         `json:"stats" yaml:"stats"`
	Final    *model.ViewSnapshot `json:"final,omitempty" yaml:"final,omitempty"`
	Strategy string              `json:"strategy" yaml:"strategy"`
}

// SimulateReport is everything simulate prints
type SimulateReport struct {
	Games       []GameResult         `json:"games" yaml:"games"`
	Leaderboard []*model.GameSummary `json:"leaderboard" yaml:"leaderboard"`
}

func (o *Output) printReport(r *SimulateReport) {
	for _, g := range r.Games {
		fmt.Fprintf(o.w, "game %d  %s  score %d  lines %d  pieces %d\n",
			g.Game, g.Strategy, g.Stats.Score, g.Stats.Lines, g.Stats.Pieces)
		if g.Final != nil {
			fmt.Fprint(o.w, render.Board(*g.Final))
		}
	}

	fmt.Fprintln(o.w)
	fmt.Fprintln(o.w, "leaderboard")
	fmt.Fprintln(o.w, strings.Repeat("-", 40))
	for i, s := range r.Leaderboard {
		fmt.Fprintf(o.w, "%2d. %-14s %6d pts %4d lines %4d pieces\n",
			i+1, model.BotStrategyDisplayName(s.Strategy), s.Stats.Score, s.Stats.Lines, s.Stats.Pieces)
	}
}
