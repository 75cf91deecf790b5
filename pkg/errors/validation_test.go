package errors

import (
	"testing"
)

func TestValidateStructure(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"heap", "heap", false},
		{"avl", "avl", false},
		{"graph", "graph", false},
		{"hash", "hash", false},
		{"mixed case", "Graph", false},

		{"empty", "", true},
		{"unknown", "trie", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStructure(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStructure(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidStructure) {
				t.Errorf("ValidateStructure(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateAlgorithm(t *testing.T) {
	for _, name := range []string{"bfs", "dfs", "dijkstra", "prim", "BFS"} {
		if err := ValidateAlgorithm(name); err != nil {
			t.Errorf("ValidateAlgorithm(%q) unexpected error: %v", name, err)
		}
	}
	if err := ValidateAlgorithm("kruskal"); !Is(err, ErrCodeInvalidAlgorithm) {
		t.Errorf("ValidateAlgorithm(kruskal) = %v, want INVALID_ALGORITHM", err)
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"svg", false},
		{"dot", false},
		{"SVG", false},
		{"png", false},
		{"jpeg", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateFrameName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "frame-001", false},
		{"with dots", "heap.v2", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"traversal", "..", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFrameName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFrameName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeMalformedSnapshot,
		ErrCodeInvalidVertex,
		ErrCodeInvalidVertexCount,
		ErrCodeVertexLimitExceeded,
		ErrCodeCannotRemoveLastVertex,
		ErrCodeInvalidWeight,
		ErrCodeBackendUnavailable,
		ErrCodeBackendContract,
		ErrCodeAlgorithmPrecondition,
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidStructure,
		ErrCodeInvalidAlgorithm,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
