package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/compras/backend/internal/domain/compra"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockCompraRepository(t *testing.T) (*GormCompraRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormCompraRepository(gormDB), mock, mockDB
}

func TestGormCompraRepository_ListByYear(t *testing.T) {
	t.Run("returns rows for the year ordered by date", func(t *testing.T) {
		repo, mock, mockDB := newMockCompraRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "bolsa_id", "anio", "fecha", "categoria", "importe", "estado"}).
			AddRow(uuid.New(), uuid.New(), 2025, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), "hardware", decimal.NewFromInt(1200), "registrada").
			AddRow(uuid.New(), uuid.New(), 2025, time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), "software", decimal.NewFromInt(300), "pagada")

		mock.ExpectQuery(`SELECT \* FROM "compras" WHERE anio = \$1 AND estado <> \$2 ORDER BY fecha ASC`).
			WithArgs(2025, compra.EstadoAnulada).
			WillReturnRows(rows)

		compras, err := repo.ListByYear(context.Background(), 2025)

		assert.NoError(t, err)
		require.Len(t, compras, 2)
		assert.Equal(t, "hardware", compras[0].Categoria)
		assert.Equal(t, "software", compras[1].Categoria)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("year without rows yields empty slice", func(t *testing.T) {
		repo, mock, mockDB := newMockCompraRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "compras" WHERE anio = \$1 AND estado <> \$2 ORDER BY fecha ASC`).
			WithArgs(1990, compra.EstadoAnulada).
			WillReturnRows(sqlmock.NewRows([]string{"id", "anio"}))

		compras, err := repo.ListByYear(context.Background(), 1990)

		assert.NoError(t, err)
		assert.NotNil(t, compras)
		assert.Empty(t, compras)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
