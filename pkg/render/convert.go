package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Convert turns SVG bytes into "pdf" or "png" using rsvg-convert. PNG output
// is drawn at scale (2.0 for a 2x image).
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func Convert(ctx context.Context, svg []byte, format string, scale float64) ([]byte, error) {
	switch format {
	case "pdf":
		return rsvgConvert(ctx, svg, "pdf")
	case "png":
		if scale <= 0 {
			scale = 2.0
		}
		return rsvgConvert(ctx, svg, "png", "-z", fmt.Sprintf("%.2f", scale))
	}
	return nil, fmt.Errorf("cannot convert SVG to %q", format)
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, fmt.Errorf("%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, "rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
