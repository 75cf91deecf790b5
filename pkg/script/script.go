// Package script replays recorded sequences of user actions.
//
// A script is a YAML document listing steps. Each step names a structure,
// an action and the action's arguments:
//
//	name: shortest-path demo
//	steps:
//	  - {structure: graph, action: init, vertices: 4}
//	  - {structure: graph, action: add-edge, from: 0, to: 1, weight: 5}
//	  - {structure: graph, action: run, algorithm: dijkstra, start: 0, frame: dijkstra}
//	  - {structure: heap, action: insert, value: 7}
//
// A step with a frame name asks the runner to capture a frame after it.
// The same [Step] type is accepted as JSON by the HTTP server.
package script

import (
	"bytes"
	"context"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/structviz/pkg/errors"
	"github.com/matzehuels/structviz/pkg/highlight"
	"github.com/matzehuels/structviz/pkg/session"
)

// Actions accepted per structure.
var actions = map[session.Structure][]string{
	session.Heap:  {"insert", "extract", "clear", "set-kind", "select"},
	session.AVL:   {"insert", "remove", "clear", "select"},
	session.Graph: {"init", "add-edge", "remove-edge", "add-vertex", "remove-vertex", "set-directed", "clear", "run", "select"},
	session.Hash:  {"insert", "search", "clear", "select"},
}

// Script is a named list of steps.
type Script struct {
	Name  string `yaml:"name" json:"name"`
	Steps []Step `yaml:"steps" json:"steps"`
}

// Step is one user action. Only the fields its action needs are read.
type Step struct {
	Structure string `yaml:"structure" json:"structure"`
	Action    string `yaml:"action" json:"action"`

	Value *int `yaml:"value,omitempty" json:"value,omitempty"`
	Key   *int `yaml:"key,omitempty" json:"key,omitempty"`

	// Heap ordering for set-kind: "min" or "max".
	Kind string `yaml:"kind,omitempty" json:"kind,omitempty"`

	Vertices  *int   `yaml:"vertices,omitempty" json:"vertices,omitempty"`
	From      *int   `yaml:"from,omitempty" json:"from,omitempty"`
	To        *int   `yaml:"to,omitempty" json:"to,omitempty"`
	Weight    *int   `yaml:"weight,omitempty" json:"weight,omitempty"`
	Vertex    *int   `yaml:"vertex,omitempty" json:"vertex,omitempty"`
	Directed  *bool  `yaml:"directed,omitempty" json:"directed,omitempty"`
	Algorithm string `yaml:"algorithm,omitempty" json:"algorithm,omitempty"`
	Start     *int   `yaml:"start,omitempty" json:"start,omitempty"`

	// Frame names a frame to capture after this step.
	Frame string `yaml:"frame,omitempty" json:"frame,omitempty"`
}

// Parse decodes a YAML script and validates every step. Unknown fields are
// rejected.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sc Script
	if err := dec.Decode(&sc); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeInvalidInput, "script is empty")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid script")
	}
	for i := range sc.Steps {
		if err := sc.Steps[i].Validate(); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "step %d: %s", i+1, errors.UserMessage(err))
		}
	}
	return &sc, nil
}

// ParseBytes is Parse on an in-memory document.
func ParseBytes(data []byte) (*Script, error) {
	return Parse(bytes.NewReader(data))
}

// Encode writes sc as YAML.
func (sc *Script) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(sc); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks that the step names a known action and carries the
// arguments it needs.
func (st *Step) Validate() error {
	structure, err := session.ParseStructure(st.Structure)
	if err != nil {
		return err
	}
	st.Structure = string(structure)
	st.Action = strings.ToLower(st.Action)
	if !slices.Contains(actions[structure], st.Action) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown %s action %q (want one of %s)",
			structure, st.Action, strings.Join(actions[structure], ", "))
	}
	if st.Frame != "" {
		if err := errors.ValidateFrameName(st.Frame); err != nil {
			return err
		}
	}

	need := func(name string, v any) error {
		switch p := v.(type) {
		case *int:
			if p == nil {
				return errors.New(errors.ErrCodeInvalidInput, "%s %s requires %q", structure, st.Action, name)
			}
		case *bool:
			if p == nil {
				return errors.New(errors.ErrCodeInvalidInput, "%s %s requires %q", structure, st.Action, name)
			}
		}
		return nil
	}

	switch structure {
	case session.Heap:
		switch st.Action {
		case "insert":
			return need("value", st.Value)
		case "set-kind":
			if st.Kind != "min" && st.Kind != "max" {
				return errors.New(errors.ErrCodeInvalidInput, "heap set-kind requires kind \"min\" or \"max\"")
			}
		}
	case session.AVL:
		if st.Action == "insert" || st.Action == "remove" {
			return need("value", st.Value)
		}
	case session.Graph:
		switch st.Action {
		case "init":
			return need("vertices", st.Vertices)
		case "add-edge", "remove-edge":
			if err := need("from", st.From); err != nil {
				return err
			}
			return need("to", st.To)
		case "remove-vertex":
			return need("vertex", st.Vertex)
		case "set-directed":
			return need("directed", st.Directed)
		case "run":
			alg, err := highlight.ParseAlgorithm(st.Algorithm)
			if err != nil {
				return err
			}
			if alg.NeedsStart() {
				return need("start", st.Start)
			}
		}
	case session.Hash:
		switch st.Action {
		case "insert":
			if err := need("key", st.Key); err != nil {
				return err
			}
			return need("value", st.Value)
		case "search":
			return need("key", st.Key)
		}
	}
	return nil
}

// Apply performs st on s. The step is validated first. Action failures are
// returned but also recorded in the session's message log.
func Apply(ctx context.Context, s *session.Session, st Step) error {
	if err := st.Validate(); err != nil {
		return err
	}
	structure := session.Structure(st.Structure)
	if st.Action == "select" {
		return s.Select(structure)
	}

	switch structure {
	case session.Heap:
		switch st.Action {
		case "insert":
			return s.InsertHeap(ctx, *st.Value)
		case "extract":
			_, _, err := s.ExtractHeap(ctx)
			return err
		case "clear":
			return s.ClearHeap(ctx)
		case "set-kind":
			return s.SetHeapKind(ctx, st.Kind == "min")
		}
	case session.AVL:
		switch st.Action {
		case "insert":
			return s.InsertTree(ctx, *st.Value)
		case "remove":
			return s.RemoveTree(ctx, *st.Value)
		case "clear":
			return s.ClearTree(ctx)
		}
	case session.Graph:
		switch st.Action {
		case "init":
			return s.InitGraph(ctx, *st.Vertices)
		case "add-edge":
			return s.AddEdge(ctx, *st.From, *st.To, weightOrDefault(st.Weight))
		case "remove-edge":
			return s.RemoveEdge(ctx, *st.From, *st.To)
		case "add-vertex":
			return s.AddVertex(ctx)
		case "remove-vertex":
			return s.RemoveVertex(ctx, *st.Vertex)
		case "set-directed":
			return s.SetDirected(ctx, *st.Directed)
		case "clear":
			return s.ClearGraph(ctx)
		case "run":
			alg, _ := highlight.ParseAlgorithm(st.Algorithm)
			start := 0
			if st.Start != nil {
				start = *st.Start
			}
			return s.RunAlgorithm(ctx, alg, start)
		}
	case session.Hash:
		switch st.Action {
		case "insert":
			return s.InsertHash(ctx, *st.Key, *st.Value)
		case "search":
			_, err := s.SearchHash(ctx, *st.Key)
			return err
		case "clear":
			return s.ClearHash(ctx)
		}
	}
	return errors.New(errors.ErrCodeInternal, "no handler for %s %s", structure, st.Action)
}

// weightOrDefault returns the edge weight, 1 when it is omitted.
func weightOrDefault(w *int) int {
	if w == nil {
		return 1
	}
	return *w
}

// Result summarizes a script run.
type Result struct {
	Applied int
	Failed  int
}

// FrameFunc is called after every step that names a frame.
type FrameFunc func(ctx context.Context, index int, st Step) error

// Run applies every step in order. A failing step is counted and the run
// continues, the way an interactive user would keep going after an error
// message. An error from onFrame or a cancelled context stops the run.
func Run(ctx context.Context, s *session.Session, sc *Script, onFrame FrameFunc) (Result, error) {
	var res Result
	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := Apply(ctx, s, st); err != nil {
			res.Failed++
		} else {
			res.Applied++
		}
		if st.Frame != "" && onFrame != nil {
			if err := onFrame(ctx, i, st); err != nil {
				return res, err
			}
		}
	}
	return res, nil
}
