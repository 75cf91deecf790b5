// Package session holds the state of one interactive visualization session.
//
// A [Session] owns the backend handles for the four structures (heap, AVL
// tree, graph topology and hash table), the active structure, the current
// algorithm highlight and a bounded log of user-visible messages. Every user
// action is a method on Session. Actions return an error for callers that
// want to branch on it, and they also record a [Message], so no failure ends
// the session.
//
// Sessions are not safe for concurrent use. Callers that share one across
// goroutines (the HTTP server) serialize access themselves.
//
// # Usage
//
//	m := native.New()
//	if err := backend.WaitReady(ctx, m, backend.DefaultPolicy); err != nil {
//	    return err
//	}
//	s, err := session.New(m, session.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	s.InitGraph(ctx, 4)
//	s.AddEdge(ctx, 0, 1, 5)
//	s.RunAlgorithm(ctx, highlight.BFS, 0)
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/structviz/pkg/backend"
	"github.com/matzehuels/structviz/pkg/errors"
	"github.com/matzehuels/structviz/pkg/highlight"
	"github.com/matzehuels/structviz/pkg/observability"
	"github.com/matzehuels/structviz/pkg/topology"
)

// Structure names one of the four visualized data structures.
type Structure string

const (
	Heap  Structure = "heap"
	AVL   Structure = "avl"
	Graph Structure = "graph"
	Hash  Structure = "hash"
)

// Structures lists every structure in display order.
var Structures = []Structure{Heap, AVL, Graph, Hash}

// ParseStructure converts a case-insensitive name into a Structure.
func ParseStructure(name string) (Structure, error) {
	if err := errors.ValidateStructure(name); err != nil {
		return "", err
	}
	return Structure(strings.ToLower(name)), nil
}

// Title returns the heading shown above the structure's frame.
func (s Structure) Title() string {
	switch s {
	case Heap:
		return "Binary Heap"
	case AVL:
		return "AVL Tree"
	case Graph:
		return "Graph"
	case Hash:
		return "Hash Table"
	}
	return string(s)
}

// SearchResult is the outcome of the last hash table lookup.
type SearchResult struct {
	Key   int
	Value int
	Found bool
}

// Session is the explicit context of one visualization session.
type Session struct {
	ID      string
	Created time.Time

	logger   *log.Logger
	messages *messageLog

	heap  backend.Heap
	tree  backend.Tree
	topo  *topology.Topology
	table backend.HashTable

	active        Structure
	graphDirected bool
	hl            highlight.Set
	hlStart       int
	lastRotation  string
	lastSearch    *SearchResult
	closed        bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for action tracing. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMessageLimit bounds the message log. Values below 1 keep the default.
func WithMessageLimit(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.messages.limit = n
		}
	}
}

// New creates a session on a ready backend module. The heap (min ordering),
// tree and hash table are created immediately; the graph is created by
// [Session.InitGraph].
func New(m backend.Module, opts ...Option) (*Session, error) {
	if m == nil || !m.Ready() {
		return nil, errors.New(errors.ErrCodeBackendUnavailable, "backend module is not loaded")
	}

	s := &Session{
		ID:       uuid.NewString(),
		Created:  time.Now(),
		logger:   log.Default(),
		messages: newMessageLog(DefaultMessageLimit),
		active:   Heap,
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.heap, err = m.NewHeap(true); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackendUnavailable, err, "create heap")
	}
	if s.tree, err = m.NewTree(); err != nil {
		s.heap.Release()
		return nil, errors.Wrap(errors.ErrCodeBackendUnavailable, err, "create tree")
	}
	if s.table, err = m.NewHashTable(); err != nil {
		s.heap.Release()
		s.tree.Release()
		return nil, errors.Wrap(errors.ErrCodeBackendUnavailable, err, "create hash table")
	}
	s.topo = topology.New(m)
	s.topo.OnMutate(s.clearHighlight)
	s.lastRotation = backend.NoRotation

	s.logger.Debug("session created", "id", s.ID)
	s.record(LevelSuccess, "Data structures initialized")
	return s, nil
}

// Close releases every backend handle. Further actions fail with
// BACKEND_UNAVAILABLE.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.heap.Release()
	s.tree.Release()
	s.table.Release()
	s.topo.Close()
	s.logger.Debug("session closed", "id", s.ID)
}

// =============================================================================
// Accessors
// =============================================================================

// Active returns the structure currently shown.
func (s *Session) Active() Structure { return s.active }

// HeapHandle returns the heap backend handle.
func (s *Session) HeapHandle() backend.Heap { return s.heap }

// TreeHandle returns the AVL tree backend handle.
func (s *Session) TreeHandle() backend.Tree { return s.tree }

// Topology returns the graph topology.
func (s *Session) Topology() *topology.Topology { return s.topo }

// HashHandle returns the hash table backend handle.
func (s *Session) HashHandle() backend.HashTable { return s.table }

// Highlight returns the current algorithm highlight and its start vertex.
func (s *Session) Highlight() (highlight.Set, int) { return s.hl, s.hlStart }

// LastRotation returns the rotation message of the last tree mutation.
func (s *Session) LastRotation() string { return s.lastRotation }

// LastSearch returns the last hash lookup, or nil if none was made.
func (s *Session) LastSearch() *SearchResult { return s.lastSearch }

// GraphDirected reports the directedness used for the next InitGraph.
func (s *Session) GraphDirected() bool { return s.graphDirected }

// Messages returns the recorded messages, oldest first.
func (s *Session) Messages() []Message { return s.messages.all() }

// LastMessage returns the most recent message and whether one exists.
func (s *Session) LastMessage() (Message, bool) { return s.messages.last() }

// Select makes structure the active one.
func (s *Session) Select(structure Structure) error {
	if _, err := ParseStructure(string(structure)); err != nil {
		s.fail(err)
		return err
	}
	s.active = structure
	return nil
}

// =============================================================================
// Action plumbing
// =============================================================================

// do runs fn as a traced action on structure. The returned message is
// recorded at the returned level when fn succeeds.
func (s *Session) do(ctx context.Context, structure Structure, action string, fn func() (Level, string, error)) error {
	s.active = structure
	hooks := observability.Session()
	hooks.OnAction(ctx, string(structure), action)
	start := time.Now()

	var (
		level Level
		msg   string
		err   error
	)
	if s.closed {
		err = errors.New(errors.ErrCodeBackendUnavailable, "session is closed")
	} else {
		level, msg, err = fn()
	}

	elapsed := time.Since(start)
	hooks.OnActionComplete(ctx, string(structure), action, elapsed, err)

	if err != nil {
		s.logger.Debug("action failed", "structure", structure, "action", action, "err", err)
		s.fail(err)
		return err
	}
	s.logger.Debug("action", "structure", structure, "action", action, "elapsed", elapsed)
	if msg != "" {
		s.record(level, msg)
	}
	return nil
}

func (s *Session) record(level Level, text string) {
	s.messages.add(Message{Level: level, Text: text, Time: time.Now()})
}

// fail records err as a user-visible message. Input mistakes and unmet
// preconditions are warnings; everything else is an error.
func (s *Session) fail(err error) {
	level := LevelError
	if errors.IsUserError(err) {
		level = LevelWarning
	}
	s.record(level, errors.UserMessage(err))
}

func (s *Session) clearHighlight() {
	s.hl = highlight.Set{}
	s.hlStart = 0
}

func ok(msg string) (Level, string, error) { return LevelSuccess, msg, nil }

func info(msg string) (Level, string, error) { return LevelInfo, msg, nil }

func failed(err error) (Level, string, error) { return "", "", err }

func okf(format string, args ...any) (Level, string, error) {
	return ok(fmt.Sprintf(format, args...))
}
