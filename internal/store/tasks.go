package store

import (
	"errors"

	"github.com/trackline-dev/trackline/db"
	"github.com/trackline-dev/trackline/internal/apperrors"
	"github.com/trackline-dev/trackline/internal/models"
	"gorm.io/gorm"
)

type NewTask struct {
	TaskName            string
	Description         string
	Status              string
	DueDate             string
	ProjectID           uint
	AssignedToSecretKey string
	CreatedBySecretKey  string
}

// TaskUpdateSummary is the inline shape of an update hanging off a task.
type TaskUpdateSummary struct {
	ID              uint   `json:"id"`
	Notes           string `json:"notes"`
	Date            string `json:"date"`
	UpdateType      string `json:"update_type"`
	UpdateOwnerName string `json:"update_owner_name"`
}

// TaskDetail is the composite read shape: the task row plus the parent
// project's name, the assignee's display name, and inline update summaries.
type TaskDetail struct {
	ID             uint                `json:"id"`
	TaskName       string              `json:"task_name"`
	Description    string              `json:"description"`
	Status         string              `json:"status"`
	DueDate        string              `json:"due_date"`
	ProjectID      uint                `json:"project_id"`
	AssignedToID   uint                `json:"assigned_to_id"`
	CreatedByID    uint                `json:"created_by_id"`
	ProjectName    string              `json:"project_name"`
	AssignedToName string              `json:"assigned_to_name"`
	Updates        []TaskUpdateSummary `json:"updates"`
}

func TasksByIDs(ids []uint) ([]TaskDetail, error) {
	if len(ids) == 0 {
		return []TaskDetail{}, nil
	}

	var tasks []models.Task

	if err := db.DB.Where("id IN ?", ids).Find(&tasks).Error; err != nil {
		return nil, err
	}

	projectIDs := make([]uint, 0, len(tasks))
	userIDs := make([]uint, 0, len(tasks))
	for _, task := range tasks {
		projectIDs = append(projectIDs, task.ProjectID)
		userIDs = append(userIDs, task.AssignedToID)
	}

	projectNames := make(map[uint]string)
	if len(projectIDs) > 0 {
		var projects []models.Project
		if err := db.DB.Select("id, project_name").Where("id IN ?", projectIDs).Find(&projects).Error; err != nil {
			return nil, err
		}
		for _, project := range projects {
			projectNames[project.ID] = project.ProjectName
		}
	}

	userNames := make(map[uint]string)
	if len(userIDs) > 0 {
		var users []models.User
		if err := db.DB.Select("id, user_name").Where("id IN ?", userIDs).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, user := range users {
			userNames[user.ID] = user.UserName
		}
	}

	var updates []models.Update
	if err := db.DB.Where("task_id IN ?", ids).Order("date DESC, created_at DESC").Find(&updates).Error; err != nil {
		return nil, err
	}

	updatesByTask := make(map[uint][]TaskUpdateSummary)
	for _, update := range updates {
		if update.TaskID == nil {
			continue
		}
		updatesByTask[*update.TaskID] = append(updatesByTask[*update.TaskID], TaskUpdateSummary{
			ID:              update.ID,
			Notes:           update.Notes,
			Date:            update.Date,
			UpdateType:      update.UpdateType,
			UpdateOwnerName: update.UpdateOwnerName,
		})
	}

	details := make([]TaskDetail, 0, len(tasks))
	for _, task := range tasks {
		summaries := updatesByTask[task.ID]
		if summaries == nil {
			summaries = []TaskUpdateSummary{}
		}

		details = append(details, TaskDetail{
			ID:             task.ID,
			TaskName:       task.TaskName,
			Description:    task.Description,
			Status:         task.Status,
			DueDate:        task.DueDate,
			ProjectID:      task.ProjectID,
			AssignedToID:   task.AssignedToID,
			CreatedByID:    task.CreatedByID,
			ProjectName:    projectNames[task.ProjectID],
			AssignedToName: userNames[task.AssignedToID],
			Updates:        summaries,
		})
	}

	return details, nil
}

func ListTasks() ([]TaskDetail, error) {
	var ids []uint

	if err := db.DB.Model(&models.Task{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	return TasksByIDs(ids)
}

// CreateTask requires the project, assignee and creator to all resolve to
// live rows. Any miss fails validation and no row is written.
func CreateTask(input NewTask) (*TaskDetail, error) {
	if input.TaskName == "" {
		return nil, apperrors.Validationf("task name is required")
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusToDo
	}
	if !models.ValidTaskStatus(status) {
		return nil, apperrors.Validationf("unknown task status %q", input.Status)
	}

	var project models.Project

	if err := db.DB.First(&project, input.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validationf("invalid project, assigned to, or created by ID")
		}
		return nil, err
	}

	assignedTo, err := GetUserBySecretKey(input.AssignedToSecretKey)

	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Validationf("invalid project, assigned to, or created by ID")
		}
		return nil, err
	}

	createdBy, err := GetUserBySecretKey(input.CreatedBySecretKey)

	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Validationf("invalid project, assigned to, or created by ID")
		}
		return nil, err
	}

	task := models.Task{
		TaskName:     input.TaskName,
		Description:  input.Description,
		Status:       status,
		DueDate:      input.DueDate,
		ProjectID:    project.ID,
		AssignedToID: assignedTo.ID,
		CreatedByID:  createdBy.ID,
	}

	if err := db.DB.Create(&task).Error; err != nil {
		return nil, err
	}

	return &TaskDetail{
		ID:             task.ID,
		TaskName:       task.TaskName,
		Description:    task.Description,
		Status:         task.Status,
		DueDate:        task.DueDate,
		ProjectID:      task.ProjectID,
		AssignedToID:   task.AssignedToID,
		CreatedByID:    task.CreatedByID,
		ProjectName:    project.ProjectName,
		AssignedToName: assignedTo.UserName,
		Updates:        []TaskUpdateSummary{},
	}, nil
}

// UpdateTaskFields applies a sparse legacy field-name map as a partial
// update against the task column allow-list.
func UpdateTaskFields(id uint, fields map[string]interface{}) (*TaskDetail, error) {
	assignments, err := mapFields(fields, taskColumns)

	if err != nil {
		return nil, err
	}

	if status, ok := assignments["status"]; ok {
		statusStr, isString := status.(string)
		if !isString || !models.ValidTaskStatus(statusStr) {
			return nil, apperrors.Validationf("unknown task status %v", status)
		}
	}

	var task models.Task

	if err := db.DB.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("task %d", id)
		}
		return nil, err
	}

	if err := db.DB.Model(&task).Updates(assignments).Error; err != nil {
		return nil, err
	}

	details, err := TasksByIDs([]uint{id})

	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, apperrors.NotFoundf("task %d", id)
	}

	return &details[0], nil
}
