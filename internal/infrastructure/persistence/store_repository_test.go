package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/backo/backend/internal/domain/shared"
	"github.com/backo/backend/internal/domain/store"
)

// newMockStoreRepository creates a GormStoreRepository with a mocked SQL connection
func newMockStoreRepository(t *testing.T) (*GormStoreRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormStoreRepository(gormDB), mock, mockDB
}

func TestGormStoreRepository_FindByID(t *testing.T) {
	t.Run("finds existing store", func(t *testing.T) {
		repo, mock, mockDB := newMockStoreRepository(t)
		defer mockDB.Close()

		storeID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "store_name", "store_url", "is_store_setup"}).
			AddRow(storeID, "merchant@example.com", "hash", "Demo Store", "demo-store.com", true)

		mock.ExpectQuery(`SELECT \* FROM "stores" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(storeID, 1).
			WillReturnRows(rows)

		s, err := repo.FindByID(context.Background(), storeID)

		assert.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, storeID, s.ID)
		assert.Equal(t, "merchant@example.com", s.Email)
		assert.True(t, s.IsStoreSetup)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing store", func(t *testing.T) {
		repo, mock, mockDB := newMockStoreRepository(t)
		defer mockDB.Close()

		storeID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stores" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(storeID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		s, err := repo.FindByID(context.Background(), storeID)

		assert.Nil(t, s)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStoreRepository_FindByEmail(t *testing.T) {
	t.Run("lowercases the email before querying", func(t *testing.T) {
		repo, mock, mockDB := newMockStoreRepository(t)
		defer mockDB.Close()

		storeID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "email", "password_hash"}).
			AddRow(storeID, "merchant@example.com", "hash")

		mock.ExpectQuery(`SELECT \* FROM "stores" WHERE email = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("merchant@example.com", 1).
			WillReturnRows(rows)

		s, err := repo.FindByEmail(context.Background(), "Merchant@Example.COM")

		assert.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, "merchant@example.com", s.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects empty email", func(t *testing.T) {
		repo, _, mockDB := newMockStoreRepository(t)
		defer mockDB.Close()

		_, err := repo.FindByEmail(context.Background(), "")

		assert.Error(t, err)
	})
}

func TestGormStoreRepository_FindByExactURL(t *testing.T) {
	t.Run("matches the stored URL verbatim", func(t *testing.T) {
		repo, mock, mockDB := newMockStoreRepository(t)
		defer mockDB.Close()

		storeID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "email", "store_url"}).
			AddRow(storeID, "merchant@example.com", "demo-store.com")

		mock.ExpectQuery(`SELECT \* FROM "stores" WHERE store_url = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("demo-store.com", 1).
			WillReturnRows(rows)

		s, err := repo.FindByExactURL(context.Background(), "demo-store.com")

		assert.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, "demo-store.com", s.StoreURL)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty URL is not found without querying", func(t *testing.T) {
		repo, _, mockDB := newMockStoreRepository(t)
		defer mockDB.Close()

		_, err := repo.FindByExactURL(context.Background(), "")

		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormStoreRepository_FindAllWithURL(t *testing.T) {
	repo, mock, mockDB := newMockStoreRepository(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"id", "email", "store_url"}).
		AddRow(uuid.New(), "a@example.com", "store-a.com").
		AddRow(uuid.New(), "b@example.com", "store-b.com")

	mock.ExpectQuery(`SELECT \* FROM "stores" WHERE store_url <> ''`).
		WillReturnRows(rows)

	stores, err := repo.FindAllWithURL(context.Background())

	assert.NoError(t, err)
	assert.Len(t, stores, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreRepository_FindByWebhookSecret(t *testing.T) {
	t.Run("resolves the owning store", func(t *testing.T) {
		repo, mock, mockDB := newMockStoreRepository(t)
		defer mockDB.Close()

		storeID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "email", "woo_secret_key"}).
			AddRow(storeID, "merchant@example.com", "whsec_123")

		mock.ExpectQuery(`SELECT \* FROM "stores" WHERE woo_secret_key = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("whsec_123", 1).
			WillReturnRows(rows)

		s, err := repo.FindByWebhookSecret(context.Background(), "whsec_123")

		assert.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, storeID, s.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty secret is not found", func(t *testing.T) {
		repo, _, mockDB := newMockStoreRepository(t)
		defer mockDB.Close()

		_, err := repo.FindByWebhookSecret(context.Background(), "")

		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormStoreRepository_Save(t *testing.T) {
	repo, mock, mockDB := newMockStoreRepository(t)
	defer mockDB.Close()

	s := store.NewStore("merchant@example.com", "hash")

	mock.ExpectExec(`INSERT INTO "stores"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), s)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreRepository_InterfaceCompliance(t *testing.T) {
	repo, _, mockDB := newMockStoreRepository(t)
	defer mockDB.Close()

	var _ store.Repository = repo
}
