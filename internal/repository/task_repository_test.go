package repository

import (
	"testing"

	"github.com/sitecrew/sitecrew-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTaskRepo(t *testing.T) (TaskRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Task{}, &models.TaskAssignment{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewTaskRepository(db), db
}

func createAssignedTask(t *testing.T, db *gorm.DB, orgID, assigneeID uint64) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:          "Test Task",
		CreatorID:      1,
		OrganizationID: orgID,
	}
	require.NoError(t, db.Create(task).Error)
	require.NoError(t, db.Create(&models.TaskAssignment{TaskID: task.ID, UserID: assigneeID}).Error)
	return task
}

func TestTaskRepository_ReassignUser(t *testing.T) {
	repo, db := setupTaskRepo(t)

	createAssignedTask(t, db, 1, 7)
	createAssignedTask(t, db, 1, 7)

	moved, err := repo.ReassignUser(1, 7, 8)
	require.NoError(t, err)
	require.Equal(t, int64(2), moved)

	var remaining int64
	require.NoError(t, db.Model(&models.TaskAssignment{}).Where("user_id = ?", 7).Count(&remaining).Error)
	require.Zero(t, remaining)

	var transferred int64
	require.NoError(t, db.Model(&models.TaskAssignment{}).Where("user_id = ?", 8).Count(&transferred).Error)
	require.Equal(t, int64(2), transferred)
}

func TestTaskRepository_ReassignUserSecondRunIsNoOp(t *testing.T) {
	repo, db := setupTaskRepo(t)

	createAssignedTask(t, db, 1, 7)

	moved, err := repo.ReassignUser(1, 7, 8)
	require.NoError(t, err)
	require.Equal(t, int64(1), moved)

	// Nothing is assigned to the departing user anymore, so a repeat run
	// reports zero and leaves the assignments untouched
	moved, err = repo.ReassignUser(1, 7, 8)
	require.NoError(t, err)
	require.Zero(t, moved)

	var transferred int64
	require.NoError(t, db.Model(&models.TaskAssignment{}).Where("user_id = ?", 8).Count(&transferred).Error)
	require.Equal(t, int64(1), transferred)
}

func TestTaskRepository_ReassignUserScopedToOrganization(t *testing.T) {
	repo, db := setupTaskRepo(t)

	createAssignedTask(t, db, 1, 7)
	otherOrgTask := createAssignedTask(t, db, 2, 7)

	moved, err := repo.ReassignUser(1, 7, 8)
	require.NoError(t, err)
	require.Equal(t, int64(1), moved)

	var untouched models.TaskAssignment
	require.NoError(t, db.Where("task_id = ? AND user_id = ?", otherOrgTask.ID, 7).First(&untouched).Error)
}
