// Package export renders registration lists for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/agendaparoquial/server/internal/store"
)

// utf8BOM lets spreadsheet applications detect the encoding of the CSV.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// cabecalho is the fixed column order of every export format.
var cabecalho = []string{"Nome", "Documento", "Email", "Telefone", "Data de Inscrição"}

const formatoData = "02/01/2006 15:04"

// NomeArquivo builds the download filename for an event's registration list.
func NomeArquivo(slug string, extensao string, agora time.Time) string {
	return fmt.Sprintf("inscricoes_%s_%s.%s", slug, agora.Format("2006-01-02"), extensao)
}

// EscreverCSV writes the registrations as UTF-8 CSV, preceded by a BOM.
// Field quoting is delegated to encoding/csv, so names containing commas,
// quotes or line breaks survive a round trip.
func EscreverCSV(w io.Writer, inscricoes []store.Inscricao) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(cabecalho); err != nil {
		return err
	}
	for _, i := range inscricoes {
		if err := cw.Write(linha(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func linha(i store.Inscricao) []string {
	return []string{i.Nome, i.Documento, i.Email, i.Telefone, i.CriadaEm.Format(formatoData)}
}
