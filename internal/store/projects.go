package store

import (
	"errors"

	"github.com/trackline-dev/trackline/db"
	"github.com/trackline-dev/trackline/internal/apperrors"
	"github.com/trackline-dev/trackline/internal/models"
	"gorm.io/gorm"
)

type NewProject struct {
	ProjectName        string
	ProjectStatus      string
	StartDate          string
	EndDate            string
	AccountID          uint
	ProjectValue       float64
	ProjectDescription string
	OwnerSecretKey     string
}

// ProjectDetail is the composite read shape: the project row, the owning
// account's name, and the ids of the project's updates, newest first.
type ProjectDetail struct {
	ID                 uint    `json:"id"`
	ProjectName        string  `json:"project_name"`
	ProjectStatus      string  `json:"project_status"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	AccountID          uint    `json:"account_id"`
	ProjectValue       float64 `json:"project_value"`
	ProjectDescription string  `json:"project_description"`
	ProjectOwnerID     uint    `json:"project_owner_id"`
	AccountName        string  `json:"account_name"`
	Updates            []uint  `json:"updates"`
}

func projectDetail(project models.Project, accountName string, updateIDs []uint) ProjectDetail {
	if updateIDs == nil {
		updateIDs = []uint{}
	}

	return ProjectDetail{
		ID:                 project.ID,
		ProjectName:        project.ProjectName,
		ProjectStatus:      project.ProjectStatus,
		StartDate:          project.StartDate,
		EndDate:            project.EndDate,
		AccountID:          project.AccountID,
		ProjectValue:       project.ProjectValue,
		ProjectDescription: project.ProjectDescription,
		ProjectOwnerID:     project.ProjectOwnerID,
		AccountName:        accountName,
		Updates:            updateIDs,
	}
}

func ProjectsByIDs(ids []uint) ([]ProjectDetail, error) {
	if len(ids) == 0 {
		return []ProjectDetail{}, nil
	}

	var projects []models.Project

	if err := db.DB.Where("id IN ?", ids).Find(&projects).Error; err != nil {
		return nil, err
	}

	accountIDs := make([]uint, 0, len(projects))
	for _, project := range projects {
		accountIDs = append(accountIDs, project.AccountID)
	}

	accountNames := make(map[uint]string)
	if len(accountIDs) > 0 {
		var accounts []models.Account
		if err := db.DB.Select("id, account_name").Where("id IN ?", accountIDs).Find(&accounts).Error; err != nil {
			return nil, err
		}
		for _, account := range accounts {
			accountNames[account.ID] = account.AccountName
		}
	}

	var updates []models.Update
	if err := db.DB.Select("id, project_id").
		Where("project_id IN ?", ids).
		Order("date DESC, created_at DESC").
		Find(&updates).Error; err != nil {
		return nil, err
	}

	updatesByProject := make(map[uint][]uint)
	for _, update := range updates {
		updatesByProject[update.ProjectID] = append(updatesByProject[update.ProjectID], update.ID)
	}

	details := make([]ProjectDetail, 0, len(projects))
	for _, project := range projects {
		details = append(details, projectDetail(project, accountNames[project.AccountID], updatesByProject[project.ID]))
	}

	return details, nil
}

func ListProjects() ([]ProjectDetail, error) {
	var ids []uint

	if err := db.DB.Model(&models.Project{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	return ProjectsByIDs(ids)
}

// CreateProject requires a live account and a resolvable owner secret key;
// either missing fails validation before anything is written.
func CreateProject(input NewProject) (*ProjectDetail, error) {
	if input.ProjectName == "" {
		return nil, apperrors.Validationf("project name is required")
	}

	status := input.ProjectStatus
	if status == "" {
		status = models.ProjectStatusActive
	}
	if !models.ValidProjectStatus(status) {
		return nil, apperrors.Validationf("unknown project status %q", input.ProjectStatus)
	}

	var account models.Account

	if err := db.DB.First(&account, input.AccountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validationf("invalid account or owner ID")
		}
		return nil, err
	}

	owner, err := GetUserBySecretKey(input.OwnerSecretKey)

	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Validationf("invalid account or owner ID")
		}
		return nil, err
	}

	project := models.Project{
		ProjectName:        input.ProjectName,
		ProjectStatus:      status,
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		AccountID:          account.ID,
		ProjectValue:       input.ProjectValue,
		ProjectDescription: input.ProjectDescription,
		ProjectOwnerID:     owner.ID,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		return nil, err
	}

	detail := projectDetail(project, account.AccountName, nil)
	return &detail, nil
}

// UpdateProjectFields applies a sparse legacy field-name map as a partial
// update. Field names must clear the project column allow-list.
func UpdateProjectFields(id uint, fields map[string]interface{}) (*ProjectDetail, error) {
	assignments, err := mapFields(fields, projectColumns)

	if err != nil {
		return nil, err
	}

	if status, ok := assignments["project_status"]; ok {
		statusStr, isString := status.(string)
		if !isString || !models.ValidProjectStatus(statusStr) {
			return nil, apperrors.Validationf("unknown project status %v", status)
		}
	}

	var project models.Project

	if err := db.DB.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("project %d", id)
		}
		return nil, err
	}

	if err := db.DB.Model(&project).Updates(assignments).Error; err != nil {
		return nil, err
	}

	details, err := ProjectsByIDs([]uint{id})

	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, apperrors.NotFoundf("project %d", id)
	}

	return &details[0], nil
}
