package canvas

// AlgorithmColors is the palette for one graph algorithm's highlight.
type AlgorithmColors struct {
	Light  string `toml:"light"`
	Dark   string `toml:"dark"`
	Border string `toml:"border"`
}

// Theme holds every color the renderer uses.
type Theme struct {
	Font       string `toml:"font"`
	Background string `toml:"background"`
	Primary    string `toml:"primary"`   // node fill and graph edges
	Secondary  string `toml:"secondary"` // outer gradient stop
	Text       string `toml:"text"`
	Edge       string `toml:"edge"` // tree edges, bucket borders, info line
	Muted      string `toml:"muted"`
	Alert      string `toml:"alert"` // root and unbalanced markers
	Bucket     string `toml:"bucket"`
	Entry      string `toml:"entry"`
	NodeText   string `toml:"node_text"`

	Algorithms map[string]AlgorithmColors `toml:"algorithms"`
}

// DefaultTheme returns the green theme.
func DefaultTheme() Theme {
	return Theme{
		Font:       "Arial, sans-serif",
		Background: "#ffffff",
		Primary:    "#2e8b57",
		Secondary:  "#3cb371",
		Text:       "#2d3748",
		Edge:       "#4a5568",
		Muted:      "#a0aec0",
		Alert:      "#e53e3e",
		Bucket:     "#f7fafc",
		Entry:      "#9f7aea",
		NodeText:   "#ffffff",
		Algorithms: map[string]AlgorithmColors{
			"bfs":      {Light: "#68d391", Dark: "#38a169", Border: "#2f855a"},
			"dfs":      {Light: "#63b3ed", Dark: "#3182ce", Border: "#2c5282"},
			"dijkstra": {Light: "#f6ad55", Dark: "#dd6b20", Border: "#c05621"},
			"prim":     {Light: "#9f7aea", Dark: "#805ad5", Border: "#6b46c1"},
		},
	}
}

// Algorithm returns the palette for the named algorithm, falling back to
// the theme's node colors.
func (t Theme) Algorithm(name string) AlgorithmColors {
	if c, ok := t.Algorithms[name]; ok {
		return c
	}
	return AlgorithmColors{Light: t.Primary, Dark: t.Secondary, Border: t.Text}
}

// Merge returns t with every empty field taken from base.
func (t Theme) Merge(base Theme) Theme {
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	out := Theme{
		Font:       pick(t.Font, base.Font),
		Background: pick(t.Background, base.Background),
		Primary:    pick(t.Primary, base.Primary),
		Secondary:  pick(t.Secondary, base.Secondary),
		Text:       pick(t.Text, base.Text),
		Edge:       pick(t.Edge, base.Edge),
		Muted:      pick(t.Muted, base.Muted),
		Alert:      pick(t.Alert, base.Alert),
		Bucket:     pick(t.Bucket, base.Bucket),
		Entry:      pick(t.Entry, base.Entry),
		NodeText:   pick(t.NodeText, base.NodeText),
		Algorithms: make(map[string]AlgorithmColors, len(base.Algorithms)),
	}
	for k, v := range base.Algorithms {
		out.Algorithms[k] = v
	}
	for k, v := range t.Algorithms {
		d := out.Algorithms[k]
		out.Algorithms[k] = AlgorithmColors{
			Light:  pick(v.Light, d.Light),
			Dark:   pick(v.Dark, d.Dark),
			Border: pick(v.Border, d.Border),
		}
	}
	return out
}
