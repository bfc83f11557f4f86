package dashboard

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/petsivet/petsi-backend/internal/appointments"
	"github.com/petsivet/petsi-backend/internal/documents"
	"github.com/petsivet/petsi-backend/internal/inventory"
)

// DocumentStats supplies document totals for the summary.
type DocumentStats interface {
	FileStats(ctx context.Context) (documents.FileStats, error)
}

// ProductLister supplies the inventory rows.
type ProductLister interface {
	List(ctx context.Context) ([]inventory.Product, error)
}

// AppointmentLister supplies the appointment rows.
type AppointmentLister interface {
	List(ctx context.Context) ([]appointments.Cita, error)
}

// Trend is a month-over-month percentage change with its direction.
type Trend struct {
	Value string `json:"value"`
	Trend string `json:"trend"`
}

// MonthCount is the number of appointments falling in one calendar month.
type MonthCount struct {
	Mes      string `json:"mes"`
	Cantidad int    `json:"cantidad"`
}

// Summary is the single object backing the admin landing page.
type Summary struct {
	TotalCitas      int                 `json:"totalCitas"`
	TotalInventario int                 `json:"totalInventario"`
	TotalDocumentos int                 `json:"totalDocumentos"`
	StockBajo       int                 `json:"stockBajo"`
	DocsEsteMes     int                 `json:"docsEsteMes"`
	DocsMesPasado   int                 `json:"docsMesPasado"`
	DocsTendencia   Trend               `json:"docsTendencia"`
	CitasTendencia  Trend               `json:"citasTendencia"`
	CitasPorMes     []MonthCount        `json:"citasPorMes"`
	CitasDetalladas []appointments.Cita `json:"citasDetalladas"`
}

var meses = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Formats accepted for appointment dates, in order of preference.
var fechaFormats = []string{"2006-01-02", time.RFC3339, "02/01/2006"}

// Service produces the dashboard summary by fanning out to the three data
// sources concurrently. Each source fails independently: a failed source
// contributes zeroed defaults instead of failing the whole aggregation.
type Service struct {
	docs      DocumentStats
	inventory ProductLister
	citas     AppointmentLister
	threshold int
	logger    zerolog.Logger
	now       func() time.Time
}

// NewService creates a dashboard aggregation service. The threshold is the
// stock level below which a product counts as low stock.
func NewService(docs DocumentStats, inv ProductLister, citas AppointmentLister, threshold int, logger zerolog.Logger) *Service {
	return &Service{
		docs:      docs,
		inventory: inv,
		citas:     citas,
		threshold: threshold,
		logger:    logger.With().Str("component", "dashboard").Logger(),
		now:       time.Now,
	}
}

// Summarize fetches all three sources concurrently and combines them.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	var (
		wg       sync.WaitGroup
		stats    documents.FileStats
		products []inventory.Product
		citas    []appointments.Cita
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		result, err := s.docs.FileStats(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Document stats unavailable, using defaults")
			return
		}
		stats = result
	}()
	go func() {
		defer wg.Done()
		result, err := s.inventory.List(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Inventory unavailable, using defaults")
			return
		}
		products = result
	}()
	go func() {
		defer wg.Done()
		result, err := s.citas.List(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Appointments unavailable, using defaults")
			return
		}
		citas = result
	}()
	wg.Wait()

	now := s.now()
	citasEsteMes, citasMesPasado := monthlySplit(citas, now)

	summary := &Summary{
		TotalCitas:      len(citas),
		TotalInventario: len(products),
		TotalDocumentos: stats.Total,
		StockBajo:       len(inventory.LowStock(products, s.threshold)),
		DocsEsteMes:     stats.ThisMonth,
		DocsMesPasado:   stats.LastMonth,
		DocsTendencia:   CalculateTrend(stats.ThisMonth, stats.LastMonth),
		CitasTendencia:  CalculateTrend(citasEsteMes, citasMesPasado),
		CitasPorMes:     monthlyCounts(citas),
		CitasDetalladas: citas,
	}
	return summary, nil
}

// CalculateTrend computes the month-over-month percentage change between
// two counts. A previous count of zero reports a flat 100% rise when the
// current count is positive, otherwise 0%.
func CalculateTrend(current, previous int) Trend {
	if previous == 0 {
		if current > 0 {
			return Trend{Value: "100%", Trend: "up"}
		}
		return Trend{Value: "0%", Trend: "up"}
	}

	pct := math.Abs(float64(current-previous)/float64(previous)) * 100
	direction := "up"
	if current < previous {
		direction = "down"
	}
	return Trend{Value: fmt.Sprintf("%.1f%%", pct), Trend: direction}
}

// monthlyCounts buckets appointments by calendar month regardless of year.
func monthlyCounts(citas []appointments.Cita) []MonthCount {
	counts := make([]MonthCount, 12)
	for i, mes := range meses {
		counts[i].Mes = mes
	}
	for _, cita := range citas {
		fecha, ok := parseFecha(cita.Fecha)
		if !ok {
			continue
		}
		counts[int(fecha.Month())-1].Cantidad++
	}
	return counts
}

// monthlySplit counts appointments in the current and previous calendar
// months relative to now.
func monthlySplit(citas []appointments.Cita, now time.Time) (current, previous int) {
	prev := now.AddDate(0, -1, -now.Day()+1)
	for _, cita := range citas {
		fecha, ok := parseFecha(cita.Fecha)
		if !ok {
			continue
		}
		switch {
		case fecha.Year() == now.Year() && fecha.Month() == now.Month():
			current++
		case fecha.Year() == prev.Year() && fecha.Month() == prev.Month():
			previous++
		}
	}
	return current, previous
}

func parseFecha(raw string) (time.Time, bool) {
	for _, layout := range fechaFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
