package layoutio

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/radek-zitek-cloud/tiler-omicron-sub000/pkg/grid"
)

// svgCanvasWidth is the fixed pixel width of an exported snapshot; cell
// width derives from it so any column count fills the canvas.
const svgCanvasWidth = 1200

const (
	svgTileStyle  = "fill:#2d3748;stroke:#4a5568;stroke-width:1;rx:4"
	svgGridStyle  = "fill:none;stroke:#1a202c;stroke-width:1"
	svgTitleStyle = "fill:#e2e8f0;font-family:sans-serif;font-size:14px"
	svgIDStyle    = "fill:#718096;font-family:monospace;font-size:10px"
)

// WriteSVG renders a static snapshot of the layout: the cell grid with one
// rect and title per tile, sized from cfg's row height, gap and padding.
// The snapshot backs `tiler export --format svg`.
func WriteSVG(w io.Writer, l *grid.Layout, cfg grid.Config) {
	cols := max(l.GridColumns, 1)
	rows := max(l.MaxY(), 1)

	cellW := (svgCanvasWidth - 2*cfg.Padding - (cols-1)*cfg.Gap) / cols
	cellH := cfg.RowHeight
	height := 2*cfg.Padding + rows*cellH + (rows-1)*cfg.Gap

	// A tile spanning n cells also spans the n-1 gaps between them.
	spanW := func(n int) int { return n*cellW + (n-1)*cfg.Gap }
	spanH := func(n int) int { return n*cellH + (n-1)*cfg.Gap }
	cellX := func(c int) int { return cfg.Padding + c*(cellW+cfg.Gap) }
	cellY := func(r int) int { return cfg.Padding + r*(cellH+cfg.Gap) }

	canvas := svg.New(w)
	canvas.Start(svgCanvasWidth, height)
	canvas.Title(l.Name)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			canvas.Rect(cellX(c), cellY(r), cellW, cellH, svgGridStyle)
		}
	}

	for _, t := range l.Tiles {
		x, y := cellX(t.X), cellY(t.Y)
		canvas.Rect(x, y, spanW(t.Width), spanH(t.Height), svgTileStyle)
		canvas.Text(x+10, y+22, t.Title, svgTitleStyle)
		canvas.Text(x+10, y+38, t.ID, svgIDStyle)
	}

	canvas.End()
}
