package cli

import (
	"strconv"
	"strings"

	"github.com/matzehuels/structviz/pkg/errors"
	"github.com/matzehuels/structviz/pkg/script"
)

// commandHelp lists the interactive commands.
const commandHelp = `heap insert <v> | extract | clear | min | max
avl insert <v> | remove <v> | clear
graph init <n> [directed] | add-edge <u> <v> [w] | remove-edge <u> <v>
graph add-vertex | remove-vertex <v> | directed on|off | clear
graph bfs|dfs|dijkstra <start> | prim
hash insert <k> <v> | search <k> | clear
save <file.svg> | tab switches structure | quit`

// parseCommand turns an interactive command line into script steps. Most
// commands map to one step; "graph init <n> directed" sets the direction
// first.
func parseCommand(line string) ([]script.Step, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "expected <structure> <action>, type help for commands")
	}
	structure, action, args := fields[0], fields[1], fields[2:]

	ints := make([]*int, len(args))
	for i, a := range args {
		if n, err := strconv.Atoi(a); err == nil {
			ints[i] = &n
		}
	}
	arg := func(i int) *int {
		if i < len(ints) {
			return ints[i]
		}
		return nil
	}
	step := script.Step{Structure: structure, Action: action}

	switch structure + " " + action {
	case "heap insert", "avl insert", "avl remove":
		step.Value = arg(0)
	case "heap min", "heap max":
		step.Action, step.Kind = "set-kind", action
	case "graph init":
		step.Vertices = arg(0)
		if len(args) > 1 && args[1] == "directed" {
			directed := true
			pre := script.Step{Structure: structure, Action: "set-directed", Directed: &directed}
			return validated(pre, step)
		}
	case "graph add-edge":
		step.From, step.To, step.Weight = arg(0), arg(1), arg(2)
	case "graph remove-edge":
		step.From, step.To = arg(0), arg(1)
	case "graph remove-vertex":
		step.Vertex = arg(0)
	case "graph directed":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			return nil, errors.New(errors.ErrCodeInvalidInput, "usage: graph directed on|off")
		}
		directed := args[0] == "on"
		step.Action, step.Directed = "set-directed", &directed
	case "graph bfs", "graph dfs", "graph dijkstra", "graph prim":
		step.Action, step.Algorithm, step.Start = "run", action, arg(0)
	case "hash insert":
		step.Key, step.Value = arg(0), arg(1)
	case "hash search":
		step.Key = arg(0)
	}
	return validated(step)
}

func validated(steps ...script.Step) ([]script.Step, error) {
	for i := range steps {
		if err := steps[i].Validate(); err != nil {
			return nil, err
		}
	}
	return steps, nil
}
