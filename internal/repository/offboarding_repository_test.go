package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sitecrew/sitecrew-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOffboardingRepo(t *testing.T) OffboardingRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.OffboardingRecord{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewOffboardingRepository(db)
}

func TestOffboardingRepository_CreateRejectsInFlightRecord(t *testing.T) {
	repo := setupOffboardingRepo(t)

	first := &models.OffboardingRecord{
		OrganizationID: 1,
		UserID:         7,
		Status:         models.OffboardingStatusPending,
		InitiatedBy:    2,
	}
	require.NoError(t, repo.Create(first))

	second := &models.OffboardingRecord{
		OrganizationID: 1,
		UserID:         7,
		Status:         models.OffboardingStatusPending,
		InitiatedBy:    2,
	}
	require.ErrorIs(t, repo.Create(second), ErrOffboardingInFlight)
}

func TestOffboardingRepository_CreateAllowsNewRecordAfterTerminalStatus(t *testing.T) {
	repo := setupOffboardingRepo(t)

	for _, status := range []models.OffboardingStatus{
		models.OffboardingStatusCompleted,
		models.OffboardingStatusFailed,
	} {
		record := &models.OffboardingRecord{
			OrganizationID: 1,
			UserID:         7,
			Status:         status,
			InitiatedBy:    2,
		}
		require.NoError(t, repo.Create(record))
	}

	// Terminal records never block a fresh workflow
	fresh := &models.OffboardingRecord{
		OrganizationID: 1,
		UserID:         7,
		Status:         models.OffboardingStatusPending,
		InitiatedBy:    2,
	}
	require.NoError(t, repo.Create(fresh))
}

func TestOffboardingRepository_CreateAllowsSameUserInOtherOrganization(t *testing.T) {
	repo := setupOffboardingRepo(t)

	require.NoError(t, repo.Create(&models.OffboardingRecord{
		OrganizationID: 1,
		UserID:         7,
		Status:         models.OffboardingStatusPending,
		InitiatedBy:    2,
	}))

	require.NoError(t, repo.Create(&models.OffboardingRecord{
		OrganizationID: 2,
		UserID:         7,
		Status:         models.OffboardingStatusPending,
		InitiatedBy:    3,
	}))
}

// The in-flight check must be a locking read so that two concurrent
// initiations cannot both observe zero and both insert.
func TestOffboardingRepository_GuardQueryLocksInFlightRows(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOffboardingRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "offboarding_records" WHERE .+ FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "offboarding_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(&models.OffboardingRecord{
		OrganizationID: 1,
		UserID:         7,
		Status:         models.OffboardingStatusPending,
		InitiatedBy:    2,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOffboardingRepository_GuardQueryRollsBackOnInFlightRow(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOffboardingRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "offboarding_records" WHERE .+ FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.Create(&models.OffboardingRecord{
		OrganizationID: 1,
		UserID:         7,
		Status:         models.OffboardingStatusPending,
		InitiatedBy:    2,
	})
	require.ErrorIs(t, err, ErrOffboardingInFlight)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOffboardingRepository_FindByIDScopedToOrganization(t *testing.T) {
	repo := setupOffboardingRepo(t)

	record := &models.OffboardingRecord{
		OrganizationID: 1,
		UserID:         7,
		Status:         models.OffboardingStatusPending,
		InitiatedBy:    2,
	}
	require.NoError(t, repo.Create(record))

	found, err := repo.FindByID(1, record.ID)
	require.NoError(t, err)
	require.Equal(t, record.ID, found.ID)

	_, err = repo.FindByID(99, record.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
