package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CellKind discriminates the value held by a Cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is one untyped worksheet cell. The source spreadsheet has no real
// schema, so a cell is either empty, free text, or a number the loader
// already recognized as numeric.
type Cell struct {
	Kind   CellKind
	Text   string
	Number decimal.Decimal
}

// EmptyCell returns the empty cell value.
func EmptyCell() Cell {
	return Cell{Kind: CellEmpty}
}

// TextCell returns a cell holding raw text.
func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// NumberCell returns a cell holding a typed number.
func NumberCell(d decimal.Decimal) Cell {
	return Cell{Kind: CellNumber, Number: d}
}

// String returns the cell content as text. Numbers render with the exact
// decimal representation the loader produced.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return c.Number.String()
	default:
		return ""
	}
}

// IsBlank reports whether the cell carries no usable value: empty cells,
// whitespace-only text, and the "nan" placeholder some exports emit for
// missing numerics.
func (c Cell) IsBlank() bool {
	switch c.Kind {
	case CellEmpty:
		return true
	case CellNumber:
		return false
	default:
		trimmed := strings.TrimSpace(c.Text)
		return trimmed == "" || strings.EqualFold(trimmed, "nan")
	}
}

// Grid is one month worksheet as a row-major matrix of untyped cells.
// Rows may have different widths; out-of-range cells read as empty.
type Grid [][]Cell

// GridFromStrings builds a Grid from the string matrix a spreadsheet
// reader produces. Empty strings become empty cells.
func GridFromStrings(rows [][]string) Grid {
	grid := make(Grid, len(rows))
	for i, row := range rows {
		cells := make([]Cell, len(row))
		for j, val := range row {
			if val == "" {
				cells[j] = EmptyCell()
			} else {
				cells[j] = TextCell(val)
			}
		}
		grid[i] = cells
	}
	return grid
}

// At returns the cell at (row, col), or an empty cell when the position
// lies outside the grid.
func (g Grid) At(row, col int) Cell {
	if row < 0 || row >= len(g) {
		return EmptyCell()
	}
	if col < 0 || col >= len(g[row]) {
		return EmptyCell()
	}
	return g[row][col]
}

// Width returns the widest row length.
func (g Grid) Width() int {
	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}
