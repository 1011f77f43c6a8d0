package service

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"contact-book/internal/apperr"
	"contact-book/internal/domain"
)

// importAliases maps each contact field to the accepted header spellings,
// matched case-insensitively. Extending the importer is a table edit.
var importAliases = map[string][]string{
	"name":   {"name"},
	"number": {"number", "phone"},
}

type TransferService struct {
	repo domain.ContactRepository
}

func NewTransferService(repo domain.ContactRepository) *TransferService {
	return &TransferService{repo: repo}
}

// Import reads a CSV payload with a header row and batch-inserts every row
// that carries both a name and a number; incomplete rows are dropped
// silently. A CSV syntax error anywhere aborts the whole import. Returns the
// number of rows inserted.
func (s *TransferService) Import(r io.Reader) (int, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		// Cells must arrive verbatim: the default NaN sentinels would
		// rewrite a contact literally named "NA" or "NaN".
		dataframe.NaNValues([]string{}),
	)
	if df.Err != nil {
		// gota reports a header-only payload as an error; that is zero
		// importable rows, not a syntax failure.
		if strings.Contains(df.Err.Error(), "empty DataFrame") {
			return 0, nil
		}
		return 0, apperr.BadRequest("invalid CSV: " + df.Err.Error())
	}

	nameCol := resolveColumn(df.Names(), importAliases["name"])
	numberCol := resolveColumn(df.Names(), importAliases["number"])

	var batch []domain.Contact
	records := df.Records() // first row is the header
	for _, rec := range records[1:] {
		name, number := columnValue(rec, nameCol), columnValue(rec, numberCol)
		if name == "" || number == "" {
			continue
		}
		batch = append(batch, domain.Contact{Name: name, Number: number})
	}
	if err := s.repo.CreateBatch(batch); err != nil {
		return 0, apperr.Internal("failed to import contacts", err)
	}
	return len(batch), nil
}

func resolveColumn(header []string, aliases []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, a := range aliases {
			if h == a {
				return i
			}
		}
	}
	return -1
}

func columnValue(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

// ExportCSV serializes the full collection, newest first, with header
// name,number,createdAt and RFC3339 timestamps.
func (s *TransferService) ExportCSV() ([]byte, error) {
	cs, err := s.repo.List()
	if err != nil {
		return nil, apperr.Internal("failed to fetch contacts", err)
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"name", "number", "createdAt"})
	for _, c := range cs {
		_ = w.Write([]string{c.Name, c.Number, c.CreatedAt.Format(time.RFC3339)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperr.Internal("failed to export contacts", err)
	}
	return buf.Bytes(), nil
}

// ExportVCF serializes the collection as vCard 3.0 blocks. Values are
// emitted verbatim; vCard-reserved characters are not escaped.
// TODO: escape semicolons/commas in FN per RFC 2426 once the consumer side
// confirms it expects escaped values.
func (s *TransferService) ExportVCF() ([]byte, error) {
	cs, err := s.repo.List()
	if err != nil {
		return nil, apperr.Internal("failed to fetch contacts", err)
	}
	var b strings.Builder
	for _, c := range cs {
		b.WriteString("BEGIN:VCARD\r\n")
		b.WriteString("VERSION:3.0\r\n")
		b.WriteString("FN:" + c.Name + "\r\n")
		b.WriteString("TEL;TYPE=CELL:" + c.Number + "\r\n")
		b.WriteString("END:VCARD\r\n")
	}
	return []byte(b.String()), nil
}
