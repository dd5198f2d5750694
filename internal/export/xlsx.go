package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/agendaparoquial/server/internal/store"
)

const nomePlanilha = "Inscrições"

// EscreverXLSX writes the registrations as an Excel workbook with a single
// sheet, a bold header row and the same columns as the CSV export.
func EscreverXLSX(w io.Writer, inscricoes []store.Inscricao) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", nomePlanilha)

	if err := escreverLinha(f, 1, cabecalho); err != nil {
		return err
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		fim, _ := excelize.CoordinatesToCellName(len(cabecalho), 1)
		_ = f.SetCellStyle(nomePlanilha, "A1", fim, style)
	}

	for n, i := range inscricoes {
		if err := escreverLinha(f, n+2, linha(i)); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func escreverLinha(f *excelize.File, row int, valores []string) error {
	for col, v := range valores {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(nomePlanilha, cell, v); err != nil {
			return fmt.Errorf("linha %d: %w", row, err)
		}
	}
	return nil
}
