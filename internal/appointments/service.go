package appointments

import (
	"context"
)

// Cita is a read-only projection of one appointment row.
type Cita struct {
	Dueno   string `json:"dueno"`
	Mascota string `json:"mascota"`
	Fecha   string `json:"fecha"`
	Tipo    string `json:"tipo"`
	Raza    string `json:"raza"`
	Estado  string `json:"estado"`
}

// RangeReader reads a spreadsheet range as string rows.
type RangeReader interface {
	GetRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)
}

// Service reads appointment records through from their spreadsheet. There
// is no write path; the record store is owned externally.
type Service struct {
	sheets        RangeReader
	spreadsheetID string
	readRange     string
}

// NewService creates an appointment service bound to one spreadsheet range.
func NewService(sheets RangeReader, spreadsheetID, readRange string) *Service {
	return &Service{
		sheets:        sheets,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
	}
}

// List returns every appointment in the configured range. Column layout:
// A=dueño, B=mascota, C=fecha, D=tipo, E=raza, F=estado.
func (s *Service) List(ctx context.Context) ([]Cita, error) {
	rows, err := s.sheets.GetRange(ctx, s.spreadsheetID, s.readRange)
	if err != nil {
		return nil, err
	}

	citas := make([]Cita, 0, len(rows))
	for _, row := range rows {
		citas = append(citas, Cita{
			Dueno:   cell(row, 0),
			Mascota: cell(row, 1),
			Fecha:   cell(row, 2),
			Tipo:    cell(row, 3),
			Raza:    cell(row, 4),
			Estado:  cell(row, 5),
		})
	}
	return citas, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
