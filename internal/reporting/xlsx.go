package reporting

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Burtinsaw/PROC-sub000/internal/comparison"
	"github.com/Burtinsaw/PROC-sub000/internal/domain"
)

// BuildWorkbook builds an Excel workbook with a price matrix sheet and a
// supplier ranking sheet. Visibility filters the matrix columns the same
// way RenderCSV does; the ranking sheet always covers every supplier.
// The caller owns the returned file and must Close it.
func BuildWorkbook(cmp *domain.Comparison, visibleSupplierIDs []string, committedSupplierID string) (*excelize.File, error) {
	f := excelize.NewFile()

	const matrixSheet = "Comparison"
	const rankingSheet = "Ranking"

	if err := f.SetSheetName("Sheet1", matrixSheet); err != nil {
		return nil, fmt.Errorf("rename matrix sheet: %w", err)
	}
	if _, err := f.NewSheet(rankingSheet); err != nil {
		return nil, fmt.Errorf("create ranking sheet: %w", err)
	}

	visible := visibleSet(visibleSupplierIDs)
	awardID := committedSupplierID
	if awardID == "" {
		awardID = cmp.RecommendedSupplierID
	}

	var suppliers []domain.Supplier
	for _, s := range cmp.Suppliers {
		if _, ok := visible[s.SupplierID]; ok {
			suppliers = append(suppliers, s)
		}
	}

	// Matrix sheet: header row, then one row per item with numeric price cells.
	if err := setCell(f, matrixSheet, 1, 1, "Item"); err != nil {
		return nil, err
	}
	for col, s := range suppliers {
		name := s.Name
		if s.SupplierID == awardID {
			name += " *"
		}
		if err := setCell(f, matrixSheet, col+2, 1, name); err != nil {
			return nil, err
		}
	}
	for rowIdx, item := range cmp.Items {
		row := rowIdx + 2
		if err := setCell(f, matrixSheet, 1, row, item.Description); err != nil {
			return nil, err
		}
		for col, s := range suppliers {
			nq, ok := cmp.Cells[comparison.CellKey(s.SupplierID, item.ItemID)]
			if !ok {
				continue
			}
			if err := setCell(f, matrixSheet, col+2, row, nq.UnitPriceBase); err != nil {
				return nil, err
			}
		}
	}

	// Ranking sheet.
	names := supplierNames(cmp.Suppliers)
	for col, h := range []string{"Supplier", "Total Score", "Quoted Items", "Recommended"} {
		if err := setCell(f, rankingSheet, col+1, 1, h); err != nil {
			return nil, err
		}
	}
	for rowIdx, agg := range cmp.Aggregates {
		row := rowIdx + 2
		recommended := ""
		if agg.SupplierID == cmp.RecommendedSupplierID {
			recommended = "yes"
		}
		values := []any{names[agg.SupplierID], agg.TotalScore, agg.QuotedItems, recommended}
		for col, v := range values {
			if err := setCell(f, rankingSheet, col+1, row, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set cell %s!%s: %w", sheet, cell, err)
	}
	return nil
}
