package services

import (
	"time"

	"github.com/sitecrew/sitecrew-api/internal/models"
)

// BuildOffboardingReport reduces an action log into the report summary.
//
// It is a pure function of the log and the snapshotted options so a report
// can be rebuilt at any later time from a persisted record; no external
// state is consulted.
func BuildOffboardingReport(actions []models.OffboardingAction, options models.OffboardingOptions, completedAt time.Time) models.OffboardingReport {
	report := models.OffboardingReport{
		CompletedAt:   completedAt,
		EffectiveDate: options.EffectiveDate,
		ActionLog:     actions,
	}

	for _, action := range actions {
		if !action.Success {
			if action.Error != "" {
				report.Errors = append(report.Errors, action.Error)
			} else {
				report.Errors = append(report.Errors, action.Description)
			}
			continue
		}

		switch action.Action {
		case models.OffboardingActionRevokeAccess:
			report.AccessRevoked = true
		case models.OffboardingActionReassignTask:
			report.TasksReassigned += metadataCount(action)
		case models.OffboardingActionTransferProject:
			report.ProjectsTransferred += metadataCount(action)
		case models.OffboardingActionArchiveData:
			report.DataArchived = true
		}
	}

	return report
}

// metadataCount reads the "count" metadata entry, tolerating the numeric
// types a JSON round trip produces.
func metadataCount(action models.OffboardingAction) int {
	if action.Metadata == nil {
		return 0
	}

	switch v := action.Metadata["count"].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
