package errors

import (
	"slices"
	"strings"
	"unicode"
)

// Structure names accepted on every outer surface (CLI, scripts, HTTP).
var structureNames = []string{"heap", "avl", "graph", "hash"}

// Algorithm names accepted on every outer surface.
var algorithmNames = []string{"bfs", "dfs", "dijkstra", "prim"}

// Output formats supported by the renderer.
var formatNames = []string{"svg", "dot", "png", "pdf"}

// ValidateStructure validates a structure name such as "heap" or "graph".
func ValidateStructure(name string) error {
	if name == "" {
		return New(ErrCodeInvalidStructure, "structure name cannot be empty")
	}
	if !slices.Contains(structureNames, strings.ToLower(name)) {
		return New(ErrCodeInvalidStructure, "unknown structure %q (want one of %s)", name, strings.Join(structureNames, ", "))
	}
	return nil
}

// ValidateAlgorithm validates a graph algorithm name.
func ValidateAlgorithm(name string) error {
	if !slices.Contains(algorithmNames, strings.ToLower(name)) {
		return New(ErrCodeInvalidAlgorithm, "unknown algorithm %q (want one of %s)", name, strings.Join(algorithmNames, ", "))
	}
	return nil
}

// ValidateFormat validates an output format name.
func ValidateFormat(name string) error {
	if !slices.Contains(formatNames, strings.ToLower(name)) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", name, strings.Join(formatNames, ", "))
	}
	return nil
}

// ValidateFrameName validates the base name used for a rendered frame file.
// It rejects names that could escape the output directory.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 128 characters
//   - No control characters
//   - No path separators or traversal sequences
func ValidateFrameName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "frame name cannot be empty")
	}

	const maxNameLength = 128
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "frame name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "frame name contains invalid characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "frame name cannot contain path separators")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "frame name cannot contain path traversal sequences (..)")
	}

	return nil
}
