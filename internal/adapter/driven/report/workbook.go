package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook embrulha um arquivo xlsx com uma aba por dono de conta, mantendo o
// controle de linha e de largura de coluna que a escrita incremental exige.
// Escrita apenas por append; nunca relido durante a execução.
type Workbook struct {
	file      *excelize.File
	boldStyle int
	nextRow   map[string]int
	maxLen    map[string]int
	maxCols   map[string]int
}

// NewWorkbook cria o documento com uma aba por nome dado. Quando header não é
// nil, cada aba recebe a linha de cabeçalho em negrito.
func NewWorkbook(sheets []string, header []string) (*Workbook, error) {
	file := excelize.NewFile()

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("error creating bold style: %w", err)
	}

	wb := &Workbook{
		file:      file,
		boldStyle: bold,
		nextRow:   make(map[string]int),
		maxLen:    make(map[string]int),
		maxCols:   make(map[string]int),
	}

	for _, sheet := range sheets {
		if _, err := file.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("error creating sheet %s: %w", sheet, err)
		}
		wb.nextRow[sheet] = 1
		if header != nil {
			if err := wb.AppendBold(sheet, header); err != nil {
				return nil, err
			}
		}
	}

	// remove a aba inicial indesejada
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("error deleting default sheet: %w", err)
	}

	return wb, nil
}

// Append acrescenta uma linha ao fim da aba.
func (w *Workbook) Append(sheet string, cells []string) error {
	return w.appendRow(sheet, cells, false)
}

// AppendBold acrescenta uma linha com fonte em negrito.
func (w *Workbook) AppendBold(sheet string, cells []string) error {
	return w.appendRow(sheet, cells, true)
}

// AppendBlank acrescenta uma linha vazia separadora.
func (w *Workbook) AppendBlank(sheet string) error {
	return w.appendRow(sheet, nil, false)
}

func (w *Workbook) appendRow(sheet string, cells []string, bold bool) error {
	row, ok := w.nextRow[sheet]
	if !ok {
		return fmt.Errorf("unknown sheet: %s", sheet)
	}
	w.nextRow[sheet] = row + 1

	if len(cells) == 0 {
		return nil
	}

	values := make([]interface{}, len(cells))
	for i, cell := range cells {
		values[i] = cell
		if len(cell) > w.maxLen[sheet] {
			w.maxLen[sheet] = len(cell)
		}
	}
	if len(cells) > w.maxCols[sheet] {
		w.maxCols[sheet] = len(cells)
	}

	anchor, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("error resolving row %d: %w", row, err)
	}
	if err := w.file.SetSheetRow(sheet, anchor, &values); err != nil {
		return fmt.Errorf("error appending row to sheet %s: %w", sheet, err)
	}

	if bold {
		if err := w.file.SetRowStyle(sheet, row, row, w.boldStyle); err != nil {
			return fmt.Errorf("error applying bold style on sheet %s: %w", sheet, err)
		}
	}
	return nil
}

// RowCount devolve quantas linhas (vazias incluídas) já entraram na aba.
func (w *Workbook) RowCount(sheet string) int {
	return w.nextRow[sheet] - 1
}

// Finalize ajusta uma única vez a largura de todas as colunas de cada aba a
// partir da maior célula observada: (maior + 2) * 0.8.
func (w *Workbook) Finalize() error {
	for sheet, cols := range w.maxCols {
		if cols == 0 {
			continue
		}
		lastCol, err := excelize.ColumnNumberToName(cols)
		if err != nil {
			return fmt.Errorf("error resolving column %d: %w", cols, err)
		}
		width := float64(w.maxLen[sheet]+2) * 0.8
		if err := w.file.SetColWidth(sheet, "A", lastCol, width); err != nil {
			return fmt.Errorf("error sizing columns on sheet %s: %w", sheet, err)
		}
	}
	return nil
}

// Save grava o documento no caminho dado.
func (w *Workbook) Save(path string) error {
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("error saving workbook %s: %w", path, err)
	}
	return nil
}
