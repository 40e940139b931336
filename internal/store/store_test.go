package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trackline-dev/trackline/db"
	"github.com/trackline-dev/trackline/internal/apperrors"
	"github.com/trackline-dev/trackline/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Project{},
		&models.Task{},
		&models.Update{},
	))

	db.DB = gdb

	t.Cleanup(func() {
		sqlDB.Close()
		db.DB = nil
	})
}

func seedUser(t *testing.T, key, name, userType string) *models.User {
	t.Helper()

	user, err := CreateUser(NewUser{SecretKey: key, UserName: name, UserType: userType})
	require.NoError(t, err)

	return user
}

func seedAccount(t *testing.T, ownerKey, name string) *AccountDetail {
	t.Helper()

	account, err := CreateAccount(NewAccount{AccountName: name, AccountType: "Customer", OwnerSecretKey: ownerKey})
	require.NoError(t, err)

	return account
}

func seedProject(t *testing.T, ownerKey string, accountID uint, name string) *ProjectDetail {
	t.Helper()

	project, err := CreateProject(NewProject{
		ProjectName:    name,
		ProjectStatus:  models.ProjectStatusActive,
		AccountID:      accountID,
		OwnerSecretKey: ownerKey,
	})
	require.NoError(t, err)

	return project
}

func TestGetUserBySecretKey(t *testing.T) {
	setupTestDB(t)

	seedUser(t, "abc123", "Alice", models.UserTypeRegular)

	user, err := GetUserBySecretKey("abc123")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.UserName)

	_, err = GetUserBySecretKey("nope")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetUserAggregate(t *testing.T) {
	setupTestDB(t)

	alice := seedUser(t, "abc123", "Alice", models.UserTypeRegular)
	seedUser(t, "key-bob", "Bob", models.UserTypeRegular)

	accountOne := seedAccount(t, "abc123", "Acme")
	accountTwo := seedAccount(t, "abc123", "Globex")
	otherAccount := seedAccount(t, "key-bob", "Initech")

	project := seedProject(t, "abc123", accountOne.ID, "Rollout")
	otherProject := seedProject(t, "key-bob", otherAccount.ID, "Migration")

	assigned, err := CreateTask(NewTask{
		TaskName:            "Kickoff",
		ProjectID:           project.ID,
		AssignedToSecretKey: "abc123",
		CreatedBySecretKey:  "key-bob",
	})
	require.NoError(t, err)

	created, err := CreateTask(NewTask{
		TaskName:            "Review",
		ProjectID:           otherProject.ID,
		AssignedToSecretKey: "key-bob",
		CreatedBySecretKey:  "abc123",
	})
	require.NoError(t, err)

	update, err := CreateUpdate(NewUpdate{
		Notes:          "Kickoff went well",
		Date:           "2025-03-01",
		ProjectID:      project.ID,
		OwnerSecretKey: "abc123",
	})
	require.NoError(t, err)

	aggregate, err := GetUserAggregate(context.Background(), alice.ID)
	require.NoError(t, err)

	assert.Equal(t, []uint{accountOne.ID, accountTwo.ID}, aggregate.Accounts)
	assert.Equal(t, []uint{project.ID}, aggregate.Projects)
	assert.Equal(t, []uint{assigned.ID}, aggregate.TasksAssignedTo)
	assert.Equal(t, []uint{created.ID}, aggregate.TasksCreatedBy)
	assert.Equal(t, []uint{update.ID}, aggregate.Updates)
}

func TestGetUserAggregateFailingBranchFailsWhole(t *testing.T) {
	setupTestDB(t)

	alice := seedUser(t, "abc123", "Alice", models.UserTypeRegular)
	account := seedAccount(t, "abc123", "Acme")
	seedProject(t, "abc123", account.ID, "Rollout")

	// Break one of the five branches; the aggregate must fail as a whole
	// rather than return a document missing a relation.
	require.NoError(t, db.DB.Migrator().DropTable(&models.Update{}))

	aggregate, err := GetUserAggregate(context.Background(), alice.ID)
	require.Error(t, err)
	assert.Nil(t, aggregate)
}

func TestBulkFetchEmptyIDSet(t *testing.T) {
	setupTestDB(t)

	seedUser(t, "abc123", "Alice", models.UserTypeRegular)
	seedAccount(t, "abc123", "Acme")

	accounts, err := AccountsByIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	projects, err := ProjectsByIDs([]uint{})
	require.NoError(t, err)
	assert.Empty(t, projects)

	tasks, err := TasksByIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	updates, err := UpdatesByIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestAccountsByIDsAttachesProjects(t *testing.T) {
	setupTestDB(t)

	seedUser(t, "abc123", "Alice", models.UserTypeRegular)
	account := seedAccount(t, "abc123", "Acme")
	other := seedAccount(t, "abc123", "Globex")
	projectOne := seedProject(t, "abc123", account.ID, "Rollout")
	projectTwo := seedProject(t, "abc123", account.ID, "Upgrade")

	details, err := AccountsByIDs([]uint{account.ID})
	require.NoError(t, err)
	require.Len(t, details, 1)

	assert.Equal(t, "Acme", details[0].AccountName)
	assert.Equal(t, []uint{projectOne.ID, projectTwo.ID}, details[0].Projects)

	details, err = AccountsByIDs([]uint{other.ID})
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Empty(t, details[0].Projects)
}

func TestCreateAccountUnknownOwner(t *testing.T) {
	setupTestDB(t)

	_, err := CreateAccount(NewAccount{AccountName: "Acme", OwnerSecretKey: "ghost"})
	assert.True(t, apperrors.IsValidation(err))

	var count int64
	require.NoError(t, db.DB.Model(&models.Account{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateProjectRequiresAccount(t *testing.T) {
	setupTestDB(t)

	seedUser(t, "abc123", "Alice", models.UserTypeRegular)

	_, err := CreateProject(NewProject{
		ProjectName:    "Rollout",
		AccountID:      999,
		OwnerSecretKey: "abc123",
	})
	assert.True(t, apperrors.IsValidation(err))

	var count int64
	require.NoError(t, db.DB.Model(&models.Project{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateTaskUnresolvedReferences(t *testing.T) {
	setupTestDB(t)

	seedUser(t, "abc123", "Alice", models.UserTypeRegular)
	account := seedAccount(t, "abc123", "Acme")
	project := seedProject(t, "abc123", account.ID, "Rollout")

	cases := []NewTask{
		{TaskName: "T", ProjectID: 999, AssignedToSecretKey: "abc123", CreatedBySecretKey: "abc123"},
		{TaskName: "T", ProjectID: project.ID, AssignedToSecretKey: "ghost", CreatedBySecretKey: "abc123"},
		{TaskName: "T", ProjectID: project.ID, AssignedToSecretKey: "abc123", CreatedBySecretKey: "ghost"},
	}

	for _, input := range cases {
		_, err := CreateTask(input)
		assert.True(t, apperrors.IsValidation(err))
	}

	var count int64
	require.NoError(t, db.DB.Model(&models.Task{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateTaskResolvesReferences(t *testing.T) {
	setupTestDB(t)

	alice := seedUser(t, "abc123", "Alice", models.UserTypeRegular)
	bob := seedUser(t, "key-bob", "Bob", models.UserTypeRegular)
	account := seedAccount(t, "abc123", "Acme")
	project := seedProject(t, "abc123", account.ID, "Rollout")

	task, err := CreateTask(NewTask{
		TaskName:            "Kickoff",
		Status:              models.TaskStatusInProgress,
		ProjectID:           project.ID,
		AssignedToSecretKey: "abc123",
		CreatedBySecretKey:  "key-bob",
	})
	require.NoError(t, err)

	assert.Equal(t, alice.ID, task.AssignedToID)
	assert.Equal(t, bob.ID, task.CreatedByID)
	assert.Equal(t, "Rollout", task.ProjectName)
	assert.Equal(t, "Alice", task.AssignedToName)
}

func TestCreateTaskRejectsUnknownStatus(t *testing.T) {
	setupTestDB(t)

	seedUser(t, "abc123", "Alice", models.UserTypeRegular)
	account := seedAccount(t, "abc123", "Acme")
	project := seedProject(t, "abc123", account.ID, "Rollout")

	_, err := CreateTask(NewTask{
		TaskName:            "Kickoff",
		Status:              "Blocked",
		ProjectID:           project.ID,
		AssignedToSecretKey: "abc123",
		CreatedBySecretKey:  "abc123",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestUpdateProjectFields(t *testing.T) {
	setupTestDB(t)

	seedUser(t, "abc123", "Alice", models.UserTypeRegular)
	account := seedAccount(t, "abc123", "Acme")
	project := seedProject(t, "abc123", account.ID, "Rollout")

	patched, err := UpdateProjectFields(project.ID, map[string]interface{}{
		"Project Status": models.ProjectStatusCompleted,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ProjectStatusCompleted, patched.ProjectStatus)
	assert.Equal(t, "Rollout", patched.ProjectName)
	assert.Equal(t, "Acme", patched.AccountName)

	// Repeating the same patch is idempotent on final state
	again, err := UpdateProjectFields(project.ID, map[string]interface{}{
		"Project Status": models.ProjectStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, patched.ProjectStatus, again.ProjectStatus)
	assert.Equal(t, patched.ProjectName, again.ProjectName)

	var count int64
	require.NoError(t, db.DB.Model(&models.Project{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateProjectFieldsRejectsUnknownField(t *testing.T) {
	setupTestDB(t)

	seedUser(t, "abc123", "Alice", models.UserTypeRegular)
	account := seedAccount(t, "abc123", "Acme")
	project := seedProject(t, "abc123", account.ID, "Rollout")

	_, err := UpdateProjectFields(project.ID, map[string]interface{}{
		"Account Owner Id": 42,
	})
	assert.True(t, apperrors.IsValidation(err))

	_, err = UpdateProjectFields(project.ID, map[string]interface{}{
		"project_name; DROP TABLE projects": "x",
	})
	assert.True(t, apperrors.IsValidation(err))

	_, err = UpdateProjectFields(project.ID, map[string]interface{}{})
	assert.True(t, apperrors.IsValidation(err))
}

func TestUpdateProjectFieldsNotFound(t *testing.T) {
	setupTestDB(t)

	_, err := UpdateProjectFields(999, map[string]interface{}{
		"Project Status": models.ProjectStatusCompleted,
	})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateTaskFieldsStatus(t *testing.T) {
	setupTestDB(t)

	seedUser(t, "abc123", "Alice", models.UserTypeRegular)
	account := seedAccount(t, "abc123", "Acme")
	project := seedProject(t, "abc123", account.ID, "Rollout")

	task, err := CreateTask(NewTask{
		TaskName:            "Kickoff",
		ProjectID:           project.ID,
		AssignedToSecretKey: "abc123",
		CreatedBySecretKey:  "abc123",
	})
	require.NoError(t, err)

	patched, err := UpdateTaskFields(task.ID, map[string]interface{}{"Status": models.TaskStatusDone})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusDone, patched.Status)

	_, err = UpdateTaskFields(task.ID, map[string]interface{}{"Status": "Someday"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateUpdateDenormalizesSnapshots(t *testing.T) {
	setupTestDB(t)

	seedUser(t, "abc123", "Alice", models.UserTypeRegular)
	account := seedAccount(t, "abc123", "Acme")
	project := seedProject(t, "abc123", account.ID, "Rollout")

	update, err := CreateUpdate(NewUpdate{
		Notes:          "Phase one done",
		Date:           "2025-03-01",
		UpdateType:     "Status",
		ProjectID:      project.ID,
		OwnerSecretKey: "abc123",
	})
	require.NoError(t, err)

	assert.Equal(t, "Rollout", update.ProjectName)
	assert.Equal(t, "Alice", update.UpdateOwnerName)
	assert.Equal(t, "Acme", update.UpdateAccount)

	// Renaming the project must not rewrite the snapshot
	_, err = UpdateProjectFields(project.ID, map[string]interface{}{"Project Name": "Rollout v2"})
	require.NoError(t, err)

	details, err := UpdatesByIDs([]uint{update.ID})
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Rollout", details[0].ProjectName)
	assert.Equal(t, "Acme", details[0].UpdateAccount)
}

func TestCreateUpdateUnresolvedProject(t *testing.T) {
	setupTestDB(t)

	seedUser(t, "abc123", "Alice", models.UserTypeRegular)

	_, err := CreateUpdate(NewUpdate{
		Notes:          "Orphan",
		ProjectID:      999,
		OwnerSecretKey: "abc123",
	})
	assert.True(t, apperrors.IsValidation(err))

	var count int64
	require.NoError(t, db.DB.Model(&models.Update{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListUpdatesNewestFirst(t *testing.T) {
	setupTestDB(t)

	seedUser(t, "abc123", "Alice", models.UserTypeRegular)
	account := seedAccount(t, "abc123", "Acme")
	project := seedProject(t, "abc123", account.ID, "Rollout")

	older, err := CreateUpdate(NewUpdate{Notes: "First", Date: "2025-01-01", ProjectID: project.ID, OwnerSecretKey: "abc123"})
	require.NoError(t, err)
	newer, err := CreateUpdate(NewUpdate{Notes: "Second", Date: "2025-02-01", ProjectID: project.ID, OwnerSecretKey: "abc123"})
	require.NoError(t, err)

	updates, err := ListUpdates()
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, newer.ID, updates[0].ID)
	assert.Equal(t, older.ID, updates[1].ID)

	details, err := ProjectsByIDs([]uint{project.ID})
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, []uint{newer.ID, older.ID}, details[0].Updates)
}

func TestTasksByIDsAttachesUpdateSummaries(t *testing.T) {
	setupTestDB(t)

	seedUser(t, "abc123", "Alice", models.UserTypeRegular)
	account := seedAccount(t, "abc123", "Acme")
	project := seedProject(t, "abc123", account.ID, "Rollout")

	task, err := CreateTask(NewTask{
		TaskName:            "Kickoff",
		ProjectID:           project.ID,
		AssignedToSecretKey: "abc123",
		CreatedBySecretKey:  "abc123",
	})
	require.NoError(t, err)

	taskID := task.ID
	_, err = CreateUpdate(NewUpdate{
		Notes:          "Task note",
		Date:           "2025-03-01",
		ProjectID:      project.ID,
		TaskID:         &taskID,
		OwnerSecretKey: "abc123",
	})
	require.NoError(t, err)

	details, err := TasksByIDs([]uint{task.ID})
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.Len(t, details[0].Updates, 1)
	assert.Equal(t, "Task note", details[0].Updates[0].Notes)
	assert.Equal(t, "Alice", details[0].Updates[0].UpdateOwnerName)
}

func TestNormalizeFieldName(t *testing.T) {
	assert.Equal(t, "project_status", normalizeFieldName("Project Status"))
	assert.Equal(t, "project_status", normalizeFieldName("project  status"))
	assert.Equal(t, "due_date", normalizeFieldName("Due Date"))
	assert.Equal(t, "status", normalizeFieldName("Status"))
}
