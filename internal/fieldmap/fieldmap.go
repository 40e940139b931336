// Package fieldmap converts between the relational wire shape the API serves
// and the legacy {id, fields: {"Account Name": ...}} shape the UI was built
// around. The mapping is a pure naming/shape transform: every column survives
// the round trip in both directions, reference fields render as
// single-element arrays, and absent optional values come back as empty
// strings or empty slices rather than missing keys.
package fieldmap

import (
	"github.com/trackline-dev/trackline/internal/store"
)

// Record is the legacy presentation shape.
type Record struct {
	ID     interface{}            `json:"id"`
	Fields map[string]interface{} `json:"fields"`
}

func idList(ids []uint) []uint {
	if ids == nil {
		return []uint{}
	}
	return ids
}

func refList(id uint) []uint {
	if id == 0 {
		return []uint{}
	}
	return []uint{id}
}

func nameList(name string) []string {
	if name == "" {
		return []string{}
	}
	return []string{name}
}

func AccountRecord(account store.AccountDetail) Record {
	return Record{
		ID: account.ID,
		Fields: map[string]interface{}{
			"Account Name":        account.AccountName,
			"Account Description": account.AccountDescription,
			"Account Type":        account.AccountType,
			"Projects":            idList(account.Projects),
		},
	}
}

func ProjectRecord(project store.ProjectDetail) Record {
	return Record{
		ID: project.ID,
		Fields: map[string]interface{}{
			"Project Name":                project.ProjectName,
			"Project Status":              project.ProjectStatus,
			"Start Date":                  project.StartDate,
			"End Date":                    project.EndDate,
			"Account":                     refList(project.AccountID),
			"Account Name (from Account)": nameList(project.AccountName),
			"Project Value":               project.ProjectValue,
			"Project Description":         project.ProjectDescription,
			"Updates":                     idList(project.Updates),
		},
	}
}

func TaskRecord(task store.TaskDetail) Record {
	updates := task.Updates
	if updates == nil {
		updates = []store.TaskUpdateSummary{}
	}

	return Record{
		ID: task.ID,
		Fields: map[string]interface{}{
			"Task Name":        task.TaskName,
			"Description":      task.Description,
			"Status":           task.Status,
			"Due Date":         task.DueDate,
			"Project":          refList(task.ProjectID),
			"Project Name":     nameList(task.ProjectName),
			"Assigned To":      refList(task.AssignedToID),
			"Assigned To Name": nameList(task.AssignedToName),
			"Updates":          updates,
		},
	}
}

func UpdateRecord(update store.UpdateDetail) Record {
	task := []uint{}
	if update.TaskID != nil {
		task = []uint{*update.TaskID}
	}

	return Record{
		ID: update.ID,
		Fields: map[string]interface{}{
			"Notes":             update.Notes,
			"Date":              update.Date,
			"Update Type":       update.UpdateType,
			"Project":           refList(update.ProjectID),
			"Task":              task,
			"Update Owner Name": nameList(update.UpdateOwnerName),
			"Project Name":      update.ProjectName,
			"Task Name":         update.TaskName,
			"Account Name":      update.UpdateAccount,
		},
	}
}

// UserRecord keys the record by the secret key: on the legacy surface a
// user's primary identifier is their external key, not the row id.
func UserRecord(secretKey, userName string, aggregate store.UserAggregate) Record {
	return Record{
		ID: secretKey,
		Fields: map[string]interface{}{
			"User Name":           userName,
			"Accounts":            idList(aggregate.Accounts),
			"Projects":            idList(aggregate.Projects),
			"Tasks (Assigned To)": idList(aggregate.TasksAssignedTo),
			"Tasks (Created By)":  idList(aggregate.TasksCreatedBy),
			"Updates":             idList(aggregate.Updates),
		},
	}
}
