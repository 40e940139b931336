package fieldmap

import (
	"github.com/trackline-dev/trackline/internal/apperrors"
	"github.com/trackline-dev/trackline/internal/store"
)

// The write direction: legacy field-name maps back into column-oriented
// create payloads. The legacy client is loose about scalars versus
// single-element arrays, so reference accessors accept both.

func stringField(fields map[string]interface{}, name string) string {
	value, ok := fields[name]
	if !ok || value == nil {
		return ""
	}

	str, ok := value.(string)
	if !ok {
		return ""
	}

	return str
}

func floatField(fields map[string]interface{}, name string) float64 {
	value, ok := fields[name]
	if !ok || value == nil {
		return 0
	}

	num, ok := value.(float64)
	if !ok {
		return 0
	}

	return num
}

// keyField reads a secret-key reference, given either as "key" or ["key"].
func keyField(fields map[string]interface{}, name string) string {
	value, ok := fields[name]
	if !ok || value == nil {
		return ""
	}

	switch ref := value.(type) {
	case string:
		return ref
	case []interface{}:
		if len(ref) == 0 {
			return ""
		}
		if str, ok := ref[0].(string); ok {
			return str
		}
	}

	return ""
}

// idField reads a numeric reference, given either as 7 or [7]. JSON numbers
// land as float64. Negative numbers can never reference a row, so they map
// to 0 rather than going through a float-to-uint conversion.
func idField(fields map[string]interface{}, name string) uint {
	value, ok := fields[name]
	if !ok || value == nil {
		return 0
	}

	switch ref := value.(type) {
	case float64:
		return toID(ref)
	case []interface{}:
		if len(ref) == 0 {
			return 0
		}
		if num, ok := ref[0].(float64); ok {
			return toID(num)
		}
	}

	return 0
}

func toID(num float64) uint {
	if num < 0 {
		return 0
	}
	return uint(num)
}

func ParseNewAccount(fields map[string]interface{}) (store.NewAccount, error) {
	input := store.NewAccount{
		AccountName:        stringField(fields, "Account Name"),
		AccountType:        stringField(fields, "Account Type"),
		AccountDescription: stringField(fields, "Account Description"),
		OwnerSecretKey:     keyField(fields, "Account Owner"),
	}

	if input.AccountName == "" {
		return store.NewAccount{}, apperrors.Validationf("Account Name is required")
	}
	if input.OwnerSecretKey == "" {
		return store.NewAccount{}, apperrors.Validationf("Account Owner is required")
	}

	return input, nil
}

func ParseNewProject(fields map[string]interface{}) (store.NewProject, error) {
	input := store.NewProject{
		ProjectName:        stringField(fields, "Project Name"),
		ProjectStatus:      stringField(fields, "Project Status"),
		StartDate:          stringField(fields, "Start Date"),
		EndDate:            stringField(fields, "End Date"),
		AccountID:          idField(fields, "Account"),
		ProjectValue:       floatField(fields, "Project Value"),
		ProjectDescription: stringField(fields, "Project Description"),
		OwnerSecretKey:     keyField(fields, "Project Owner"),
	}

	if input.ProjectName == "" {
		return store.NewProject{}, apperrors.Validationf("Project Name is required")
	}
	if input.AccountID == 0 || input.OwnerSecretKey == "" {
		return store.NewProject{}, apperrors.Validationf("Account and Project Owner are required")
	}

	return input, nil
}

func ParseNewTask(fields map[string]interface{}) (store.NewTask, error) {
	input := store.NewTask{
		TaskName:            stringField(fields, "Task Name"),
		Description:         stringField(fields, "Description"),
		Status:              stringField(fields, "Status"),
		DueDate:             stringField(fields, "Due Date"),
		ProjectID:           idField(fields, "Project"),
		AssignedToSecretKey: keyField(fields, "Assigned To"),
		CreatedBySecretKey:  keyField(fields, "Created By"),
	}

	if input.TaskName == "" {
		return store.NewTask{}, apperrors.Validationf("Task Name is required")
	}
	if input.ProjectID == 0 || input.AssignedToSecretKey == "" || input.CreatedBySecretKey == "" {
		return store.NewTask{}, apperrors.Validationf("Project, Assigned To and Created By are required")
	}

	return input, nil
}

func ParseNewUpdate(fields map[string]interface{}) (store.NewUpdate, error) {
	input := store.NewUpdate{
		Notes:          stringField(fields, "Notes"),
		Date:           stringField(fields, "Date"),
		UpdateType:     stringField(fields, "Update Type"),
		ProjectID:      idField(fields, "Project"),
		OwnerSecretKey: keyField(fields, "Update Owner"),
	}

	if taskID := idField(fields, "Task"); taskID != 0 {
		input.TaskID = &taskID
	}

	if input.Notes == "" {
		return store.NewUpdate{}, apperrors.Validationf("Notes are required")
	}
	if input.ProjectID == 0 || input.OwnerSecretKey == "" {
		return store.NewUpdate{}, apperrors.Validationf("Project and Update Owner are required")
	}

	return input, nil
}
