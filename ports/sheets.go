package ports

import "context"

// SheetSource abstracts the spreadsheet backend: an ordered set of named
// tabs, each a grid of cell strings. Row indices passed to DeleteRow are
// 1-based absolute sheet rows (the header row is row 1).
type SheetSource interface {
	// Tabs lists every tab title in workbook order.
	Tabs(ctx context.Context) ([]string, error)

	// Rows returns all rows of one tab, header row first. A tab that exists
	// but is empty yields a nil slice and no error.
	Rows(ctx context.Context, tab string) ([][]string, error)

	// Append adds one row after the last populated row of a tab.
	Append(ctx context.Context, tab string, row []string) error

	// EnsureHeader writes the header row if row 1 is missing or blank.
	EnsureHeader(ctx context.Context, tab string, header []string) error

	// DeleteRow removes exactly one absolute sheet row from a tab.
	DeleteRow(ctx context.Context, tab string, rowIndex int) error
}
