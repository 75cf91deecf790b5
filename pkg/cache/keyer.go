package cache

// FrameKeyOpts holds the inputs that change a rendered frame besides the
// structure state itself.
type FrameKeyOpts struct {
	Format    string `json:"format"`    // "svg" or "dot"
	ThemeHash string `json:"themeHash"` // Hash of the encoded theme
}

// Keyer generates cache keys.
type Keyer interface {
	// FrameKey returns the key for a rendered frame of structure whose
	// state is summarized by stateHash.
	FrameKey(structure, stateHash string, opts FrameKeyOpts) string

	// ExportKey returns the key for a graph export produced by the graphviz
	// renderer.
	ExportKey(stateHash, format string) string
}

// DefaultKeyer hashes the key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// FrameKey returns "frame:<structure>:<hash>".
func (DefaultKeyer) FrameKey(structure, stateHash string, opts FrameKeyOpts) string {
	return hashKey("frame:"+structure, stateHash, opts)
}

// ExportKey returns "export:<hash>".
func (DefaultKeyer) ExportKey(stateHash, format string) string {
	return hashKey("export", stateHash, format)
}

var _ Keyer = DefaultKeyer{}
