package services

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sitecrew/sitecrew-api/internal/models"
	"github.com/sitecrew/sitecrew-api/internal/repository"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OffboardingServiceTestSuite defines the test suite for OffboardingService
type OffboardingServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *OffboardingService
}

// SetupTest runs before each test
func (suite *OffboardingServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationMember{},
		&models.Client{},
		&models.Project{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.TimeEntry{},
		&models.Expense{},
		&models.ProjectPhoto{},
		&models.OffboardingRecord{},
		&models.UserDataArchive{},
	)
	suite.Require().NoError(err)

	suite.service = NewOffboardingService(
		repository.NewOffboardingRepository(suite.db),
		repository.NewArchiveRepository(suite.db),
		repository.NewUserRepository(suite.db),
		repository.NewOrganizationRepository(suite.db),
		repository.NewTaskRepository(suite.db),
		repository.NewProjectRepository(suite.db),
		repository.NewTimeEntryRepository(suite.db),
		repository.NewExpenseRepository(suite.db),
		repository.NewProjectPhotoRepository(suite.db),
		zerolog.Nop(),
	)
}

// TearDownTest runs after each test
func (suite *OffboardingServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data

func (suite *OffboardingServiceTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Name:         email,
		Email:        email,
		PasswordHash: "hashedpassword",
		Role:         "electrician",
		Active:       true,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *OffboardingServiceTestSuite) createTestOrganization(name string) *models.Organization {
	org := &models.Organization{
		Name:       name,
		InviteCode: name + "_CODE",
	}
	suite.Require().NoError(suite.db.Create(org).Error)
	return org
}

func (suite *OffboardingServiceTestSuite) addMember(orgID, userID uint64, role models.OrganizationRole) {
	member := &models.OrganizationMember{
		OrganizationID: orgID,
		UserID:         userID,
		Role:           role,
		JoinedAt:       time.Now(),
	}
	suite.Require().NoError(suite.db.Create(member).Error)
}

func (suite *OffboardingServiceTestSuite) createAssignedTask(title string, orgID, creatorID, assigneeID uint64) *models.Task {
	task := &models.Task{
		Title:          title,
		OrganizationID: orgID,
		CreatorID:      creatorID,
	}
	suite.Require().NoError(suite.db.Create(task).Error)
	assignment := &models.TaskAssignment{TaskID: task.ID, UserID: assigneeID}
	suite.Require().NoError(suite.db.Create(assignment).Error)
	return task
}

func (suite *OffboardingServiceTestSuite) createManagedProject(name string, orgID, managerID uint64) *models.Project {
	project := &models.Project{
		OrganizationID: orgID,
		Name:           name,
		Status:         models.ProjectStatusActive,
		ManagerID:      managerID,
	}
	suite.Require().NoError(suite.db.Create(project).Error)
	return project
}

func (suite *OffboardingServiceTestSuite) createTimeEntry(orgID, userID, projectID uint64) {
	entry := &models.TimeEntry{
		OrganizationID: orgID,
		UserID:         userID,
		ProjectID:      projectID,
		WorkDate:       time.Now(),
		Hours:          8,
	}
	suite.Require().NoError(suite.db.Create(entry).Error)
}

func (suite *OffboardingServiceTestSuite) createExpense(orgID, userID, projectID uint64) {
	expense := &models.Expense{
		OrganizationID: orgID,
		UserID:         userID,
		ProjectID:      projectID,
		ExpenseDate:    time.Now(),
		AmountCents:    12500,
		Category:       models.ExpenseCategoryMaterials,
	}
	suite.Require().NoError(suite.db.Create(expense).Error)
}

// initiate creates a pending record for the standard two-user setup
func (suite *OffboardingServiceTestSuite) initiate(orgID, userID, initiatorID uint64, options models.OffboardingOptions) *models.OffboardingRecord {
	record, err := suite.service.InitiateOffboarding(InitiateOffboardingInput{
		OrganizationID: orgID,
		UserID:         userID,
		InitiatedBy:    initiatorID,
		Options:        options,
	})
	suite.Require().NoError(err)
	return record
}

// Impact preview

func (suite *OffboardingServiceTestSuite) TestImpactPreview_ZeroCounts() {
	owner := suite.createTestUser("owner@example.com")
	worker := suite.createTestUser("worker@example.com")
	org := suite.createTestOrganization("Test Org")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)
	suite.addMember(org.ID, worker.ID, models.RoleMember)

	preview, err := suite.service.GetImpactPreview(org.ID, worker.ID)
	suite.Require().NoError(err)

	suite.Equal(0, preview.TaskCount)
	suite.Equal(0, preview.ProjectCount)
	suite.Equal(0, preview.TimeEntryCount)
	suite.Equal(0, preview.ExpenseCount)
	suite.False(preview.HasWork())
}

func (suite *OffboardingServiceTestSuite) TestImpactPreview_CountsAssignedWork() {
	owner := suite.createTestUser("owner@example.com")
	worker := suite.createTestUser("worker@example.com")
	org := suite.createTestOrganization("Test Org")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)
	suite.addMember(org.ID, worker.ID, models.RoleMember)

	suite.createAssignedTask("Wire panel", org.ID, owner.ID, worker.ID)
	suite.createAssignedTask("Inspect site", org.ID, owner.ID, worker.ID)
	suite.createAssignedTask("Order parts", org.ID, owner.ID, worker.ID)
	project := suite.createManagedProject("Mall renovation", org.ID, worker.ID)
	suite.createTimeEntry(org.ID, worker.ID, project.ID)
	suite.createTimeEntry(org.ID, worker.ID, project.ID)
	suite.createExpense(org.ID, worker.ID, project.ID)

	preview, err := suite.service.GetImpactPreview(org.ID, worker.ID)
	suite.Require().NoError(err)

	suite.Equal(3, preview.TaskCount)
	suite.Equal(1, preview.ProjectCount)
	suite.Equal(2, preview.TimeEntryCount)
	suite.Equal(1, preview.ExpenseCount)
	suite.True(preview.HasWork())
}

func (suite *OffboardingServiceTestSuite) TestImpactPreview_ScopedToOrganization() {
	owner := suite.createTestUser("owner@example.com")
	worker := suite.createTestUser("worker@example.com")
	org := suite.createTestOrganization("Test Org")
	otherOrg := suite.createTestOrganization("Other Org")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)
	suite.addMember(org.ID, worker.ID, models.RoleMember)
	suite.addMember(otherOrg.ID, worker.ID, models.RoleMember)

	suite.createAssignedTask("Other org task", otherOrg.ID, worker.ID, worker.ID)

	preview, err := suite.service.GetImpactPreview(org.ID, worker.ID)
	suite.Require().NoError(err)
	suite.Equal(0, preview.TaskCount)
}

// Initiation

func (suite *OffboardingServiceTestSuite) TestInitiate_SnapshotsTargetAndOptions() {
	owner := suite.createTestUser("owner@example.com")
	worker := suite.createTestUser("worker@example.com")
	org := suite.createTestOrganization("Test Org")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)
	suite.addMember(org.ID, worker.ID, models.RoleMember)

	effective := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	record := suite.initiate(org.ID, worker.ID, owner.ID, models.OffboardingOptions{
		EffectiveDate: effective,
		ArchiveData:   true,
		Reason:        "left the company",
	})

	suite.Equal(models.OffboardingStatusPending, record.Status)
	suite.Equal(worker.ID, record.UserID)
	suite.Equal(worker.Name, record.UserName)
	suite.Equal(worker.Email, record.UserEmail)
	suite.Equal(owner.ID, record.InitiatedBy)
	suite.Equal(owner.Name, record.InitiatedByName)
	suite.True(record.Options.EffectiveDate.Equal(effective))
	suite.True(record.Options.ArchiveData)
	suite.Equal("left the company", record.Options.Reason)
	suite.Nil(record.StartedAt)
	suite.Nil(record.CompletedAt)
	suite.Nil(record.RestorableUntil)
}

func (suite *OffboardingServiceTestSuite) TestInitiate_DefaultsEffectiveDate() {
	owner := suite.createTestUser("owner@example.com")
	worker := suite.createTestUser("worker@example.com")
	org := suite.createTestOrganization("Test Org")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)
	suite.addMember(org.ID, worker.ID, models.RoleMember)

	fixed := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	suite.service.now = func() time.Time { return fixed }

	record := suite.initiate(org.ID, worker.ID, owner.ID, models.OffboardingOptions{})
	suite.True(record.Options.EffectiveDate.Equal(fixed))
}

func (suite *OffboardingServiceTestSuite) TestInitiate_TargetNotMember() {
	owner := suite.createTestUser("owner@example.com")
	outsider := suite.createTestUser("outsider@example.com")
	org := suite.createTestOrganization("Test Org")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)

	_, err := suite.service.InitiateOffboarding(InitiateOffboardingInput{
		OrganizationID: org.ID,
		UserID:         outsider.ID,
		InitiatedBy:    owner.ID,
	})
	suite.ErrorIs(err, ErrOffboardTargetNotMember)
}

func (suite *OffboardingServiceTestSuite) TestInitiate_ReassignToSelf() {
	owner := suite.createTestUser("owner@example.com")
	worker := suite.createTestUser("worker@example.com")
	org := suite.createTestOrganization("Test Org")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)
	suite.addMember(org.ID, worker.ID, models.RoleMember)

	_, err := suite.service.InitiateOffboarding(InitiateOffboardingInput{
		OrganizationID: org.ID,
		UserID:         worker.ID,
		InitiatedBy:    owner.ID,
		Options:        models.OffboardingOptions{ReassignTasksTo: &worker.ID},
	})
	suite.ErrorIs(err, ErrReassignToSelf)
}

func (suite *OffboardingServiceTestSuite) TestInitiate_ReassigneeNotMember() {
	owner := suite.createTestUser("owner@example.com")
	worker := suite.createTestUser("worker@example.com")
	outsider := suite.createTestUser("outsider@example.com")
	org := suite.createTestOrganization("Test Org")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)
	suite.addMember(org.ID, worker.ID, models.RoleMember)

	_, err := suite.service.InitiateOffboarding(InitiateOffboardingInput{
		OrganizationID: org.ID,
		UserID:         worker.ID,
		InitiatedBy:    owner.ID,
		Options:        models.OffboardingOptions{ReassignTasksTo: &outsider.ID},
	})
	suite.ErrorIs(err, ErrReassigneeNotMember)
}

func (suite *OffboardingServiceTestSuite) TestInitiate_RejectsSecondInFlightRecord() {
	owner := suite.createTestUser("owner@example.com")
	worker := suite.createTestUser("worker@example.com")
	org := suite.createTestOrganization("Test Org")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)
	suite.addMember(org.ID, worker.ID, models.RoleMember)

	suite.initiate(org.ID, worker.ID, owner.ID, models.OffboardingOptions{})

	_, err := suite.service.InitiateOffboarding(InitiateOffboardingInput{
		OrganizationID: org.ID,
		UserID:         worker.ID,
		InitiatedBy:    owner.ID,
	})
	suite.ErrorIs(err, ErrOffboardingInProgress)
}

// Execution

func (suite *OffboardingServiceTestSuite) TestExecute_HappyPath() {
	owner := suite.createTestUser("owner@example.com")
	worker := suite.createTestUser("worker@example.com")
	successor := suite.createTestUser("successor@example.com")
	org := suite.createTestOrganization("Test Org")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)
	suite.addMember(org.ID, worker.ID, models.RoleMember)
	suite.addMember(org.ID, successor.ID, models.RoleMember)

	suite.createAssignedTask("Wire panel", org.ID, owner.ID, worker.ID)
	suite.createAssignedTask("Inspect site", org.ID, owner.ID, worker.ID)
	suite.createAssignedTask("Order parts", org.ID, owner.ID, worker.ID)
	project := suite.createManagedProject("Mall renovation", org.ID, worker.ID)
	suite.createTimeEntry(org.ID, worker.ID, project.ID)

	record := suite.initiate(org.ID, worker.ID, owner.ID, models.OffboardingOptions{
		ReassignTasksTo: &successor.ID,
		ArchiveData:     true,
	})

	executed, err := suite.service.ExecuteOffboarding(org.ID, record.ID)
	suite.Require().NoError(err)

	suite.Equal(models.OffboardingStatusCompleted, executed.Status)
	suite.Require().NotNil(executed.Report)
	suite.Require().NotNil(executed.CompletedAt)
	suite.Require().NotNil(executed.RestorableUntil)
	suite.True(executed.RestorableUntil.Equal(executed.CompletedAt.Add(30 * 24 * time.Hour)))

	report := executed.Report
	suite.Equal(3, report.TasksReassigned)
	suite.Equal(1, report.ProjectsTransferred)
	suite.True(report.AccessRevoked)
	suite.True(report.DataArchived)
	suite.Empty(report.Errors)
	suite.Len(report.ActionLog, 4)
	suite.Equal(models.OffboardingActionRevokeAccess, report.ActionLog[0].Action)
	suite.Equal(models.OffboardingActionReassignTask, report.ActionLog[1].Action)
	suite.Equal(models.OffboardingActionTransferProject, report.ActionLog[2].Action)
	suite.Equal(models.OffboardingActionArchiveData, report.ActionLog[3].Action)

	// Profile deactivated
	var refreshed models.User
	suite.Require().NoError(suite.db.First(&refreshed, worker.ID).Error)
	suite.False(refreshed.Active)
	suite.NotNil(refreshed.DeactivatedAt)

	// Assignments moved to the successor
	var remaining int64
	suite.db.Model(&models.TaskAssignment{}).Where("user_id = ?", worker.ID).Count(&remaining)
	suite.EqualValues(0, remaining)
	var moved int64
	suite.db.Model(&models.TaskAssignment{}).Where("user_id = ?", successor.ID).Count(&moved)
	suite.EqualValues(3, moved)

	// Project manager rewritten
	var refreshedProject models.Project
	suite.Require().NoError(suite.db.First(&refreshedProject, project.ID).Error)
	suite.Equal(successor.ID, refreshedProject.ManagerID)

	// Archive written with counts recomputed after ownership moved
	var archive models.UserDataArchive
	suite.Require().NoError(suite.db.Where("user_id = ?", worker.ID).First(&archive).Error)
	suite.NotEmpty(archive.ArchiveRef)
	suite.Equal(worker.Email, archive.Profile.Email)
	suite.Equal(0, archive.ArchivedCollections["tasks"])
	suite.Equal(0, archive.ArchivedCollections["projects"])
	suite.Equal(1, archive.ArchivedCollections["time_entries"])
	suite.True(archive.RetainUntil.After(time.Now().AddDate(6, 11, 0)))
}

func (suite *OffboardingServiceTestSuite) TestExecute_RejectsNonPendingRecord() {
	owner := suite.createTestUser("owner@example.com")
	worker := suite.createTestUser("worker@example.com")
	org := suite.createTestOrganization("Test Org")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)
	suite.addMember(org.ID, worker.ID, models.RoleMember)

	record := suite.initiate(org.ID, worker.ID, owner.ID, models.OffboardingOptions{})

	_, err := suite.service.ExecuteOffboarding(org.ID, record.ID)
	suite.Require().NoError(err)

	_, err = suite.service.ExecuteOffboarding(org.ID, record.ID)
	suite.ErrorIs(err, ErrOffboardingAlreadyStarted)
}

func (suite *OffboardingServiceTestSuite) TestExecute_NotFound() {
	org := suite.createTestOrganization("Test Org")

	_, err := suite.service.ExecuteOffboarding(org.ID, 999)
	suite.ErrorIs(err, ErrOffboardingNotFound)
}

func (suite *OffboardingServiceTestSuite) TestExecute_ContinuesPastArchiveFailure() {
	owner := suite.createTestUser("owner@example.com")
	worker := suite.createTestUser("worker@example.com")
	successor := suite.createTestUser("successor@example.com")
	org := suite.createTestOrganization("Test Org")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)
	suite.addMember(org.ID, worker.ID, models.RoleMember)
	suite.addMember(org.ID, successor.ID, models.RoleMember)

	suite.createAssignedTask("Wire panel", org.ID, owner.ID, worker.ID)
	suite.createAssignedTask("Inspect site", org.ID, owner.ID, worker.ID)

	record := suite.initiate(org.ID, worker.ID, owner.ID, models.OffboardingOptions{
		ReassignTasksTo: &successor.ID,
		ArchiveData:     true,
	})

	// Make the archive write fail without touching the other steps
	suite.Require().NoError(suite.db.Migrator().DropTable(&models.UserDataArchive{}))

	executed, err := suite.service.ExecuteOffboarding(org.ID, record.ID)
	suite.Require().NoError(err)

	suite.Equal(models.OffboardingStatusFailed, executed.Status)
	suite.Nil(executed.RestorableUntil)

	report := executed.Report
	suite.Require().NotNil(report)
	suite.Len(report.Errors, 1)
	suite.False(report.DataArchived)

	// Earlier steps were not rolled back
	suite.Equal(2, report.TasksReassigned)
	suite.True(report.AccessRevoked)

	var refreshed models.User
	suite.Require().NoError(suite.db.First(&refreshed, worker.ID).Error)
	suite.False(refreshed.Active)

	// The failed step still has a log entry
	last := report.ActionLog[len(report.ActionLog)-1]
	suite.Equal(models.OffboardingActionArchiveData, last.Action)
	suite.False(last.Success)
	suite.NotEmpty(last.Error)
}

func (suite *OffboardingServiceTestSuite) TestExecute_SkipsReassignmentWithoutTarget() {
	owner := suite.createTestUser("owner@example.com")
	worker := suite.createTestUser("worker@example.com")
	org := suite.createTestOrganization("Test Org")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)
	suite.addMember(org.ID, worker.ID, models.RoleMember)

	task := suite.createAssignedTask("Wire panel", org.ID, owner.ID, worker.ID)

	record := suite.initiate(org.ID, worker.ID, owner.ID, models.OffboardingOptions{})

	executed, err := suite.service.ExecuteOffboarding(org.ID, record.ID)
	suite.Require().NoError(err)

	suite.Equal(models.OffboardingStatusCompleted, executed.Status)
	report := executed.Report
	suite.Require().NotNil(report)
	suite.Len(report.ActionLog, 1)
	suite.Equal(models.OffboardingActionRevokeAccess, report.ActionLog[0].Action)
	suite.Equal(0, report.TasksReassigned)
	suite.Equal(0, report.ProjectsTransferred)

	// The task stays with the offboarded user
	var assignment models.TaskAssignment
	suite.Require().NoError(suite.db.Where("task_id = ? AND user_id = ?", task.ID, worker.ID).First(&assignment).Error)
}

func (suite *OffboardingServiceTestSuite) TestExecute_RevokeOptOut() {
	owner := suite.createTestUser("owner@example.com")
	worker := suite.createTestUser("worker@example.com")
	org := suite.createTestOrganization("Test Org")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)
	suite.addMember(org.ID, worker.ID, models.RoleMember)

	noRevoke := false
	record := suite.initiate(org.ID, worker.ID, owner.ID, models.OffboardingOptions{
		RevokeSessionsImmediately: &noRevoke,
	})

	executed, err := suite.service.ExecuteOffboarding(org.ID, record.ID)
	suite.Require().NoError(err)

	suite.Equal(models.OffboardingStatusCompleted, executed.Status)
	suite.False(executed.Report.AccessRevoked)
	suite.Empty(executed.Report.ActionLog)

	var refreshed models.User
	suite.Require().NoError(suite.db.First(&refreshed, worker.ID).Error)
	suite.True(refreshed.Active)
}

func (suite *OffboardingServiceTestSuite) TestExecute_ReassignmentPreservesUniqueAssignments() {
	owner := suite.createTestUser("owner@example.com")
	worker := suite.createTestUser("worker@example.com")
	successor := suite.createTestUser("successor@example.com")
	org := suite.createTestOrganization("Test Org")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)
	suite.addMember(org.ID, worker.ID, models.RoleMember)
	suite.addMember(org.ID, successor.ID, models.RoleMember)

	// Shared task already assigned to the successor as well
	shared := suite.createAssignedTask("Shared task", org.ID, owner.ID, worker.ID)
	suite.Require().NoError(suite.db.Create(&models.TaskAssignment{TaskID: shared.ID, UserID: successor.ID}).Error)
	solo := suite.createAssignedTask("Solo task", org.ID, owner.ID, worker.ID)

	record := suite.initiate(org.ID, worker.ID, owner.ID, models.OffboardingOptions{
		ReassignTasksTo: &successor.ID,
	})

	executed, err := suite.service.ExecuteOffboarding(org.ID, record.ID)
	suite.Require().NoError(err)
	suite.Equal(2, executed.Report.TasksReassigned)

	var sharedCount int64
	suite.db.Model(&models.TaskAssignment{}).
		Where("task_id = ? AND user_id = ?", shared.ID, successor.ID).
		Count(&sharedCount)
	suite.EqualValues(1, sharedCount)

	var soloCount int64
	suite.db.Model(&models.TaskAssignment{}).
		Where("task_id = ? AND user_id = ?", solo.ID, successor.ID).
		Count(&soloCount)
	suite.EqualValues(1, soloCount)

	var leftover int64
	suite.db.Model(&models.TaskAssignment{}).Where("user_id = ?", worker.ID).Count(&leftover)
	suite.EqualValues(0, leftover)
}

// Restoration

func (suite *OffboardingServiceTestSuite) completedOffboarding() (*models.Organization, *models.User, *models.User, *models.OffboardingRecord) {
	owner := suite.createTestUser("owner@example.com")
	worker := suite.createTestUser("worker@example.com")
	org := suite.createTestOrganization("Test Org")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)
	suite.addMember(org.ID, worker.ID, models.RoleMember)

	record := suite.initiate(org.ID, worker.ID, owner.ID, models.OffboardingOptions{})
	executed, err := suite.service.ExecuteOffboarding(org.ID, record.ID)
	suite.Require().NoError(err)
	suite.Require().Equal(models.OffboardingStatusCompleted, executed.Status)

	return org, owner, worker, executed
}

func (suite *OffboardingServiceTestSuite) TestRestore_ReactivatesUser() {
	org, owner, worker, record := suite.completedOffboarding()

	restored, err := suite.service.RestoreUser(record.ID, org.ID, worker.ID, owner.ID)
	suite.Require().NoError(err)

	suite.Equal(models.OffboardingStatusCompleted, restored.Status)
	suite.Require().NotNil(restored.RestoredAt)
	suite.Require().NotNil(restored.RestoredBy)
	suite.Equal(owner.ID, *restored.RestoredBy)
	suite.Nil(restored.RestorableUntil)

	var refreshed models.User
	suite.Require().NoError(suite.db.First(&refreshed, worker.ID).Error)
	suite.True(refreshed.Active)
	suite.Nil(refreshed.DeactivatedAt)
}

func (suite *OffboardingServiceTestSuite) TestRestore_SucceedsAtExactDeadline() {
	org, owner, worker, record := suite.completedOffboarding()

	deadline := *record.RestorableUntil
	suite.service.now = func() time.Time { return deadline }

	_, err := suite.service.RestoreUser(record.ID, org.ID, worker.ID, owner.ID)
	suite.NoError(err)
}

func (suite *OffboardingServiceTestSuite) TestRestore_FailsAfterDeadline() {
	org, owner, worker, record := suite.completedOffboarding()

	deadline := *record.RestorableUntil
	suite.service.now = func() time.Time { return deadline.Add(time.Second) }

	_, err := suite.service.RestoreUser(record.ID, org.ID, worker.ID, owner.ID)
	suite.ErrorIs(err, ErrRestoreWindowExpired)

	var refreshed models.User
	suite.Require().NoError(suite.db.First(&refreshed, worker.ID).Error)
	suite.False(refreshed.Active)
}

func (suite *OffboardingServiceTestSuite) TestRestore_RejectsPendingRecord() {
	owner := suite.createTestUser("owner@example.com")
	worker := suite.createTestUser("worker@example.com")
	org := suite.createTestOrganization("Test Org")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)
	suite.addMember(org.ID, worker.ID, models.RoleMember)

	record := suite.initiate(org.ID, worker.ID, owner.ID, models.OffboardingOptions{})

	_, err := suite.service.RestoreUser(record.ID, org.ID, worker.ID, owner.ID)
	suite.ErrorIs(err, ErrOffboardingNotCompleted)
}

func (suite *OffboardingServiceTestSuite) TestRestore_RejectsSecondRestore() {
	org, owner, worker, record := suite.completedOffboarding()

	_, err := suite.service.RestoreUser(record.ID, org.ID, worker.ID, owner.ID)
	suite.Require().NoError(err)

	_, err = suite.service.RestoreUser(record.ID, org.ID, worker.ID, owner.ID)
	suite.ErrorIs(err, ErrOffboardingAlreadyRestored)
}

func (suite *OffboardingServiceTestSuite) TestRestore_RejectsMismatchedUser() {
	org, owner, _, record := suite.completedOffboarding()

	_, err := suite.service.RestoreUser(record.ID, org.ID, owner.ID, owner.ID)
	suite.ErrorIs(err, ErrOffboardingNotFound)
}

// Listing and export

func (suite *OffboardingServiceTestSuite) TestListOffboardingRecords_ScopedToOrganization() {
	org, _, _, record := suite.completedOffboarding()
	otherOrg := suite.createTestOrganization("Other Org")

	records, err := suite.service.ListOffboardingRecords(org.ID)
	suite.Require().NoError(err)
	suite.Require().Len(records, 1)
	suite.Equal(record.ID, records[0].ID)

	empty, err := suite.service.ListOffboardingRecords(otherOrg.ID)
	suite.Require().NoError(err)
	suite.Empty(empty)
}

func (suite *OffboardingServiceTestSuite) TestExportReportPDF() {
	org, _, _, record := suite.completedOffboarding()

	pdfBytes, err := suite.service.ExportReportPDF(org.ID, record.ID)
	suite.Require().NoError(err)
	suite.True(len(pdfBytes) > 4)
	suite.Equal("%PDF", string(pdfBytes[:4]))
}

func (suite *OffboardingServiceTestSuite) TestExportReportPDF_RejectsRecordWithoutReport() {
	owner := suite.createTestUser("owner@example.com")
	worker := suite.createTestUser("worker@example.com")
	org := suite.createTestOrganization("Test Org")
	suite.addMember(org.ID, owner.ID, models.RoleOwner)
	suite.addMember(org.ID, worker.ID, models.RoleMember)

	record := suite.initiate(org.ID, worker.ID, owner.ID, models.OffboardingOptions{})

	_, err := suite.service.ExportReportPDF(org.ID, record.ID)
	suite.ErrorIs(err, ErrReportNotReady)
}

// TestSuite runs the test suite
func TestOffboardingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OffboardingServiceTestSuite))
}
