package store

import (
	"errors"

	"github.com/trackline-dev/trackline/db"
	"github.com/trackline-dev/trackline/internal/apperrors"
	"github.com/trackline-dev/trackline/internal/models"
	"gorm.io/gorm"
)

type NewUpdate struct {
	Notes          string
	Date           string
	UpdateType     string
	ProjectID      uint
	TaskID         *uint
	OwnerSecretKey string
}

// UpdateDetail is the listing shape. The project, owner and account names are
// served from the snapshots captured at insert time, so listing never joins
// back to the parent tables; only the task name is looked up live.
type UpdateDetail struct {
	ID              uint   `json:"id"`
	Notes           string `json:"notes"`
	Date            string `json:"date"`
	UpdateType      string `json:"update_type"`
	ProjectID       uint   `json:"project_id"`
	TaskID          *uint  `json:"task_id"`
	UpdateOwnerID   uint   `json:"update_owner_id"`
	UpdateOwnerName string `json:"update_owner_name"`
	ProjectName     string `json:"project_name"`
	TaskName        string `json:"task_name"`
	UpdateAccount   string `json:"update_account"`
}

func updateDetails(updates []models.Update) ([]UpdateDetail, error) {
	taskIDs := make([]uint, 0, len(updates))
	for _, update := range updates {
		if update.TaskID != nil {
			taskIDs = append(taskIDs, *update.TaskID)
		}
	}

	taskNames := make(map[uint]string)
	if len(taskIDs) > 0 {
		var tasks []models.Task
		if err := db.DB.Select("id, task_name").Where("id IN ?", taskIDs).Find(&tasks).Error; err != nil {
			return nil, err
		}
		for _, task := range tasks {
			taskNames[task.ID] = task.TaskName
		}
	}

	details := make([]UpdateDetail, 0, len(updates))
	for _, update := range updates {
		detail := UpdateDetail{
			ID:              update.ID,
			Notes:           update.Notes,
			Date:            update.Date,
			UpdateType:      update.UpdateType,
			ProjectID:       update.ProjectID,
			TaskID:          update.TaskID,
			UpdateOwnerID:   update.UpdateOwnerID,
			UpdateOwnerName: update.UpdateOwnerName,
			ProjectName:     update.ProjectName,
			UpdateAccount:   update.UpdateAccount,
		}

		if update.TaskID != nil {
			detail.TaskName = taskNames[*update.TaskID]
		}

		details = append(details, detail)
	}

	return details, nil
}

func UpdatesByIDs(ids []uint) ([]UpdateDetail, error) {
	if len(ids) == 0 {
		return []UpdateDetail{}, nil
	}

	var updates []models.Update

	if err := db.DB.Where("id IN ?", ids).Order("date DESC, created_at DESC").Find(&updates).Error; err != nil {
		return nil, err
	}

	return updateDetails(updates)
}

// ListUpdates returns every update, newest first. Unlike the other entities
// the unfiltered listing is part of the contract here.
func ListUpdates() ([]UpdateDetail, error) {
	var updates []models.Update

	if err := db.DB.Order("date DESC, created_at DESC").Find(&updates).Error; err != nil {
		return nil, err
	}

	return updateDetails(updates)
}

// CreateUpdate resolves the owner and the project's account in front of the
// insert and snapshots their display names into the new row. Renaming the
// project, owner or account later never rewrites these snapshots.
func CreateUpdate(input NewUpdate) (*UpdateDetail, error) {
	if input.Notes == "" {
		return nil, apperrors.Validationf("notes are required")
	}

	owner, err := GetUserBySecretKey(input.OwnerSecretKey)

	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Validationf("invalid IDs, or associated names/account could not be found")
		}
		return nil, err
	}

	var project models.Project

	if err := db.DB.Preload("Account").First(&project, input.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validationf("invalid IDs, or associated names/account could not be found")
		}
		return nil, err
	}

	var taskName string
	if input.TaskID != nil {
		var task models.Task
		if err := db.DB.First(&task, *input.TaskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.Validationf("invalid IDs, or associated names/account could not be found")
			}
			return nil, err
		}
		taskName = task.TaskName
	}

	update := models.Update{
		Notes:           input.Notes,
		Date:            input.Date,
		UpdateType:      input.UpdateType,
		ProjectID:       project.ID,
		TaskID:          input.TaskID,
		UpdateOwnerID:   owner.ID,
		ProjectName:     project.ProjectName,
		UpdateOwnerName: owner.UserName,
		UpdateAccount:   project.Account.AccountName,
	}

	if err := db.DB.Create(&update).Error; err != nil {
		return nil, err
	}

	return &UpdateDetail{
		ID:              update.ID,
		Notes:           update.Notes,
		Date:            update.Date,
		UpdateType:      update.UpdateType,
		ProjectID:       update.ProjectID,
		TaskID:          update.TaskID,
		UpdateOwnerID:   update.UpdateOwnerID,
		UpdateOwnerName: update.UpdateOwnerName,
		ProjectName:     update.ProjectName,
		TaskName:        taskName,
		UpdateAccount:   update.UpdateAccount,
	}, nil
}
