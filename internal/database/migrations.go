package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes beyond what AutoMigrate tags
// create.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"tasks", "idx_tasks_org_status", "organization_id, status"},
		{"tasks", "idx_tasks_due_date", "due_date"},

		{"task_assignments", "idx_task_assignments_user_id", "user_id"},

		{"projects", "idx_projects_org_manager", "organization_id, manager_id"},

		{"time_entries", "idx_time_entries_org_user", "organization_id, user_id"},
		{"expenses", "idx_expenses_org_user", "organization_id, user_id"},
		{"project_photos", "idx_project_photos_uploader", "uploaded_by"},

		// Drives the one-in-flight-workflow-per-user guard query.
		{"offboarding_records", "idx_offboarding_org_user_status", "organization_id, user_id, status"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
