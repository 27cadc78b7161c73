package export

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"declara/internal/domain"
	"declara/internal/port"
)

// entrySheet is the single worksheet of an entries export.
const entrySheet = "Entries"

var entryHeader = []string{
	"Entry ID", "Status", "Finalized", "Created At", "Validated At",
	"HS Code", "Declared Value", "Exchange Rate", "Duty", "VAT", "Total Tax", "Rate Source",
}

// Exporter renders entry listings, with their confirmed computations, to a
// spreadsheet for officer reporting.
type Exporter struct {
	entryRepo port.EntryRepository
	taxRepo   port.TaxComputationRepository
}

// NewExporter creates an Exporter.
func NewExporter(entryRepo port.EntryRepository, taxRepo port.TaxComputationRepository) *Exporter {
	return &Exporter{entryRepo: entryRepo, taxRepo: taxRepo}
}

// EntriesWorkbook builds an XLSX workbook of up to limit entries. The caller
// owns the returned file and should write and close it.
func (e *Exporter) EntriesWorkbook(ctx context.Context, limit int) (*excelize.File, error) {
	if limit <= 0 || limit > 1000 {
		limit = 500
	}
	entries, _, err := e.entryRepo.List(ctx, 0, limit)
	if err != nil {
		return nil, fmt.Errorf("export.Exporter: listing entries: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", entrySheet); err != nil {
		return nil, fmt.Errorf("export.Exporter: naming sheet: %w", err)
	}
	for col, h := range entryHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(entrySheet, cell, h); err != nil {
			return nil, fmt.Errorf("export.Exporter: writing header: %w", err)
		}
	}

	for i := range entries {
		entry := &entries[i]
		row := i + 2

		comp, err := e.taxRepo.GetByEntry(ctx, entry.ID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("export.Exporter: loading computation for %s: %w", entry.ID, err)
		}

		values := entryRow(entry, comp)
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(entrySheet, cell, v); err != nil {
				return nil, fmt.Errorf("export.Exporter: writing row %d: %w", row, err)
			}
		}
	}
	return f, nil
}

func entryRow(entry *domain.Entry, comp *domain.TaxComputation) []interface{} {
	validatedAt := ""
	if entry.ValidatedAt != nil {
		validatedAt = entry.ValidatedAt.Format("2006-01-02 15:04:05")
	}
	row := []interface{}{
		entry.ID.String(),
		string(entry.Status),
		strconv.FormatBool(comp != nil),
		entry.CreatedAt.Format("2006-01-02 15:04:05"),
		validatedAt,
	}
	if comp == nil {
		return append(row, "", "", "", "", "", "", "")
	}
	return append(row,
		comp.HSCode,
		comp.DeclaredValue.String(),
		comp.ExchangeRate.String(),
		comp.DutyAmount.String(),
		comp.VATAmount.String(),
		comp.TotalTax.String(),
		comp.RateSource,
	)
}
