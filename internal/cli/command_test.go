package cli

import (
	"testing"

	"github.com/matzehuels/structviz/pkg/errors"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line   string
		action string
	}{
		{line: "heap insert 5", action: "insert"},
		{line: "HEAP MAX", action: "set-kind"},
		{line: "avl remove 3", action: "remove"},
		{line: "graph init 4", action: "init"},
		{line: "graph add-edge 0 1", action: "add-edge"},
		{line: "graph directed on", action: "set-directed"},
		{line: "graph prim", action: "run"},
		{line: "graph bfs 2", action: "run"},
		{line: "hash insert 12 7", action: "insert"},
		{line: "hash search 12", action: "search"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			steps, err := parseCommand(tt.line)
			if err != nil {
				t.Fatalf("parseCommand(%q): %v", tt.line, err)
			}
			if len(steps) != 1 || steps[0].Action != tt.action {
				t.Errorf("parseCommand(%q) = %+v, want one %s step", tt.line, steps, tt.action)
			}
		})
	}
}

func TestParseCommandDirectedInit(t *testing.T) {
	steps, err := parseCommand("graph init 3 directed")
	if err != nil {
		t.Fatal(err)
	}
	if len(steps) != 2 || steps[0].Action != "set-directed" || !*steps[0].Directed || *steps[1].Vertices != 3 {
		t.Errorf("unexpected steps: %+v", steps)
	}
}

func TestParseCommandErrors(t *testing.T) {
	tests := []struct {
		line string
		code errors.Code
	}{
		{"heap", errors.ErrCodeInvalidInput},
		{"heap insert", errors.ErrCodeInvalidInput},
		{"heap insert x", errors.ErrCodeInvalidInput},
		{"queue push 1", errors.ErrCodeInvalidStructure},
		{"graph directed maybe", errors.ErrCodeInvalidInput},
		{"graph astar 0", errors.ErrCodeInvalidInput},
		{"graph dfs", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := parseCommand(tt.line)
			if !errors.Is(err, tt.code) {
				t.Errorf("parseCommand(%q) error = %v, want %s", tt.line, err, tt.code)
			}
		})
	}
}
