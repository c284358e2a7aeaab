package excel

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
)

// WorkbookStore implements ports.SheetSource over a local .xlsx workbook.
// It stands in for the hosted spreadsheet backend: one intake tab plus N
// read-only event tabs. The workbook file is reopened per operation so
// external edits (organizers updating event tabs) are picked up; a mutex
// serializes access because writes rewrite the file.
type WorkbookStore struct {
	path string
	mu   sync.Mutex
}

// NewWorkbookStore creates a store over the workbook at path. The file does
// not have to exist yet at construction time; every operation reports its
// own availability so callers can fall back to cached or mock data.
func NewWorkbookStore(path string) (*WorkbookStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("workbook path is empty")
	}
	return &WorkbookStore{path: path}, nil
}

func (s *WorkbookStore) open() (*excelize.File, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("workbook not available: %w", err)
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return f, nil
}

// Tabs lists every sheet title in workbook order.
func (s *WorkbookStore) Tabs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// Rows returns all rows of one tab, header row first.
func (s *WorkbookStore) Rows(ctx context.Context, tab string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(tab)
	if err != nil {
		return nil, fmt.Errorf("failed to read tab %q: %w", tab, err)
	}
	return rows, nil
}

// Append adds one row after the last populated row of a tab.
func (s *WorkbookStore) Append(ctx context.Context, tab string, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	existing, err := f.GetRows(tab)
	if err != nil {
		return fmt.Errorf("failed to read tab %q: %w", tab, err)
	}

	cell, err := excelize.CoordinatesToCellName(1, len(existing)+1)
	if err != nil {
		return fmt.Errorf("failed to locate append row: %w", err)
	}
	if err := f.SetSheetRow(tab, cell, &row); err != nil {
		return fmt.Errorf("failed to write row to %q: %w", tab, err)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	log.Printf("[Workbook] Row appended to %q at %s", tab, cell)
	return nil
}

// EnsureHeader writes the header row when row 1 of the tab is missing or
// entirely blank.
func (s *WorkbookStore) EnsureHeader(ctx context.Context, tab string, header []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(tab)
	if err != nil {
		return fmt.Errorf("failed to read tab %q: %w", tab, err)
	}
	if len(rows) > 0 && !rowBlank(rows[0]) {
		return nil
	}

	if err := f.SetSheetRow(tab, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header to %q: %w", tab, err)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	log.Printf("[Workbook] Header row written to %q", tab)
	return nil
}

// DeleteRow removes one absolute sheet row (1-based, header at row 1).
func (s *WorkbookStore) DeleteRow(ctx context.Context, tab string, rowIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rowIndex < 1 {
		return fmt.Errorf("invalid row index %d", rowIndex)
	}

	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.RemoveRow(tab, rowIndex); err != nil {
		return fmt.Errorf("failed to delete row %d from %q: %w", rowIndex, tab, err)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	log.Printf("[Workbook] Deleted row %d from %q", rowIndex, tab)
	return nil
}

func rowBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
