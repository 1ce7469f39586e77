package orderform

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	pkgerrors "github.com/firedoors/firedoors-backend/pkg/errors"
)

const (
	// headerSentinel fingerprints the order-form format: cell C1 must carry it.
	headerSentinel = "Бланк №"
	// extentSentinel terminates the data region: the first cell in column 15
	// equal to it (scanning down from row 9) marks the row after the last
	// data row.
	extentSentinel = "шт."

	headerCell     = "C1"
	extentColumn   = 15
	extentScanFrom = 9
	dataStartRow   = 8
	positionColumn = 2

	// maxScanRows bounds the extent scan so a workbook without the trailing
	// marker fails instead of walking the whole column space.
	maxScanRows = 5000
)

// extractionOrder is the non-monotonic column layout of the form: the fixed
// fields sit in columns 1-6 and 9-15, the first glass pair in columns 7-8.
var extractionOrder = [...]int{1, 2, 3, 4, 5, 6, 9, 10, 11, 12, 13, 14, 15, 7, 8}

// Record is one logical order line as extracted from the form: thirteen fixed
// fields plus the flattened glass tail (even index = height, odd = width).
type Record struct {
	PositionNum string
	Name        string
	Width       string
	Height      string
	ActiveTrim  string
	OpenSide    string
	Platband    string
	Furniture   string
	DoorCloser  string
	Step        string
	RAL         string
	Quantity    string
	Comment     string
	GlassCells  []string
}

// Parse reads an order-form workbook and returns one record per logical line.
// It never persists anything: a malformed workbook or a wrong header sentinel
// rejects the whole file before any order state is touched.
func Parse(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeFormat, err, "workbook is not readable")
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header, err := f.GetCellValue(sheet, headerCell)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeFormat, err, "reading header cell")
	}
	if strings.TrimSpace(header) != headerSentinel {
		return nil, pkgerrors.New(pkgerrors.CodeFormat, "file is not an order form").
			WithDetails(map[string]any{"cell": headerCell, "expected": headerSentinel, "got": header})
	}

	maxRow, err := findRowExtent(f, sheet)
	if err != nil {
		return nil, err
	}

	cell := func(row, col int) string {
		name, nameErr := excelize.CoordinatesToCellName(col, row)
		if nameErr != nil {
			return ""
		}
		value, _ := f.GetCellValue(sheet, name)
		return strings.TrimSpace(value)
	}

	var records []Record
	var current *Record

	for row := dataStartRow; row < maxRow; row++ {
		if cell(row, positionColumn) != "" {
			if current != nil {
				records = append(records, *current)
			}
			current = recordFromRow(cell, row)
			continue
		}
		// continuation row: only contributes another glass pair
		if current != nil {
			current.GlassCells = append(current.GlassCells, cell(row, 7), cell(row, 8))
		}
	}
	if current != nil {
		records = append(records, *current)
	}

	return records, nil
}

func findRowExtent(f *excelize.File, sheet string) (int, error) {
	for row := extentScanFrom; row < extentScanFrom+maxScanRows; row++ {
		name, err := excelize.CoordinatesToCellName(extentColumn, row)
		if err != nil {
			return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "building extent cell name")
		}
		value, err := f.GetCellValue(sheet, name)
		if err != nil {
			return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "scanning row extent")
		}
		if strings.TrimSpace(value) == extentSentinel {
			return row, nil
		}
	}
	return 0, pkgerrors.New(pkgerrors.CodeValidation, "row extent marker not found").
		WithDetails(map[string]any{"column": extentColumn, "marker": extentSentinel})
}

func recordFromRow(cell func(row, col int) string, row int) *Record {
	values := make([]string, len(extractionOrder))
	for i, col := range extractionOrder {
		values[i] = cell(row, col)
	}
	return &Record{
		PositionNum: values[0],
		Name:        values[1],
		Width:       values[2],
		Height:      values[3],
		ActiveTrim:  values[4],
		OpenSide:    values[5],
		Platband:    values[6],
		Furniture:   values[7],
		DoorCloser:  values[8],
		Step:        values[9],
		RAL:         values[10],
		Quantity:    values[11],
		Comment:     values[12],
		GlassCells:  values[13:],
	}
}
