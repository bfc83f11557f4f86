package appointments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSheets struct {
	mock.Mock
}

func (m *MockSheets) GetRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	args := m.Called(ctx, spreadsheetID, readRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]string), args.Error(1)
}

func TestList_MapsColumns(t *testing.T) {
	sheets := &MockSheets{}
	sheets.On("GetRange", mock.Anything, "citas-sheet", "Citas!A2:F").Return([][]string{
		{"Ana García", "Firulais", "2026-08-03", "Vacunación", "Labrador", "Confirmada"},
		{"Luis Pérez", "Michi", "2026-08-18", "Consulta", "Siamés", "Pendiente"},
	}, nil)

	service := NewService(sheets, "citas-sheet", "Citas!A2:F")
	citas, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, citas, 2)

	assert.Equal(t, Cita{
		Dueno:   "Ana García",
		Mascota: "Firulais",
		Fecha:   "2026-08-03",
		Tipo:    "Vacunación",
		Raza:    "Labrador",
		Estado:  "Confirmada",
	}, citas[0])
}

func TestList_ShortRowsPadWithEmpty(t *testing.T) {
	sheets := &MockSheets{}
	sheets.On("GetRange", mock.Anything, mock.Anything, mock.Anything).Return([][]string{
		{"Eva", "Rocky", "2026-07-21"},
	}, nil)

	service := NewService(sheets, "citas-sheet", "Citas!A2:F")
	citas, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, citas, 1)

	assert.Equal(t, "Eva", citas[0].Dueno)
	assert.Equal(t, "", citas[0].Tipo)
	assert.Equal(t, "", citas[0].Estado)
}

func TestList_EmptyRangeYieldsEmptySlice(t *testing.T) {
	sheets := &MockSheets{}
	sheets.On("GetRange", mock.Anything, mock.Anything, mock.Anything).Return([][]string{}, nil)

	service := NewService(sheets, "citas-sheet", "Citas!A2:F")
	citas, err := service.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, citas)
	assert.Empty(t, citas)
}

func TestList_ReadFailurePropagates(t *testing.T) {
	sheets := &MockSheets{}
	sheets.On("GetRange", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("sheet unavailable"))

	service := NewService(sheets, "citas-sheet", "Citas!A2:F")
	_, err := service.List(context.Background())
	assert.Error(t, err)
}
