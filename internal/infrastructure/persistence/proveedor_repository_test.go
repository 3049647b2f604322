package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/compras/backend/internal/domain/proveedor"
	"github.com/compras/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockProveedorRepository(t *testing.T) (*GormProveedorRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormProveedorRepository(gormDB), mock, mockDB
}

func TestGormProveedorRepository_FindByID(t *testing.T) {
	t.Run("finds existing supplier", func(t *testing.T) {
		repo, mock, mockDB := newMockProveedorRepository(t)
		defer mockDB.Close()

		proveedorID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "nombre", "nombre_busqueda", "nif"}).
			AddRow(proveedorID, "Ferretería López", "ferreteria lopez", "B12345678")

		mock.ExpectQuery(`SELECT \* FROM "proveedores" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(proveedorID, 1).
			WillReturnRows(rows)

		p, err := repo.FindByID(context.Background(), proveedorID)

		assert.NoError(t, err)
		assert.NotNil(t, p)
		assert.Equal(t, proveedorID, p.ID)
		assert.Equal(t, "Ferretería López", p.Nombre)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown supplier", func(t *testing.T) {
		repo, mock, mockDB := newMockProveedorRepository(t)
		defer mockDB.Close()

		proveedorID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "proveedores" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(proveedorID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		p, err := repo.FindByID(context.Background(), proveedorID)

		assert.Nil(t, p)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProveedorRepository_Search(t *testing.T) {
	t.Run("folds accents and casing in the query", func(t *testing.T) {
		repo, mock, mockDB := newMockProveedorRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "nombre", "nombre_busqueda"}).
			AddRow(uuid.New(), "Óptica Martínez", "optica martinez")

		mock.ExpectQuery(`SELECT \* FROM "proveedores" WHERE nombre_busqueda LIKE \$1 ESCAPE '\\' ORDER BY nombre ASC LIMIT .*`).
			WithArgs("%optica%", 10).
			WillReturnRows(rows)

		result, err := repo.Search(context.Background(), "ÓPTICA", 10)

		assert.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "Óptica Martínez", result[0].Nombre)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("escapes LIKE wildcards in the query", func(t *testing.T) {
		repo, mock, mockDB := newMockProveedorRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "proveedores" WHERE nombre_busqueda LIKE \$1 ESCAPE '\\' ORDER BY nombre ASC LIMIT .*`).
			WithArgs(`%100\% metal%`, 5).
			WillReturnRows(sqlmock.NewRows([]string{"id", "nombre"}))

		result, err := repo.Search(context.Background(), "100% Metal", 5)

		assert.NoError(t, err)
		assert.Empty(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		repo, mock, mockDB := newMockProveedorRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "proveedores" WHERE nombre_busqueda LIKE \$1 ESCAPE '\\' ORDER BY nombre ASC LIMIT .*`).
			WithArgs("%zzz%", 10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "nombre"}))

		result, err := repo.Search(context.Background(), "zzz", 10)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNormalizarNombre(t *testing.T) {
	cases := map[string]string{
		"Óptica Martínez":  "optica martinez",
		"  CAÑADA  ":       "canada",
		"Électricité Dupé": "electricite dupe",
		"plain":            "plain",
	}
	for in, want := range cases {
		assert.Equal(t, want, proveedor.NormalizarNombre(in), "input %q", in)
	}
}
