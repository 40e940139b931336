package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trackline-dev/trackline/internal/fieldmap"
	"github.com/trackline-dev/trackline/internal/store"
	"github.com/trackline-dev/trackline/internal/utils"
)

func GetTasks(ctx *gin.Context) {
	ids, err := utils.ParseIDList(ctx.Query("ids"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid IDs provided."})
		return
	}

	if len(ids) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No IDs provided."})
		return
	}

	tasks, err := store.TasksByIDs(ids)

	if err != nil {
		respondStoreError(ctx, err, "Failed to fetch tasks")
		return
	}

	if wantsFields(ctx) {
		records := make([]fieldmap.Record, 0, len(tasks))
		for _, task := range tasks {
			records = append(records, fieldmap.TaskRecord(task))
		}
		ctx.JSON(http.StatusOK, records)
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

// CreateTask resolves the project id and both user references; any
// unresolvable reference is a 400 and no row is written.
func CreateTask(ctx *gin.Context) {
	var fields map[string]interface{}

	if err := ctx.ShouldBindJSON(&fields); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input, err := fieldmap.ParseNewTask(fields)

	if err != nil {
		respondStoreError(ctx, err, "Failed to create task.")
		return
	}

	task, err := store.CreateTask(input)

	if err != nil {
		respondStoreError(ctx, err, "Failed to create task.")
		return
	}

	ctx.JSON(http.StatusCreated, task)
}

func UpdateTask(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var fields map[string]interface{}

	if err := ctx.ShouldBindJSON(&fields); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := store.UpdateTaskFields(id, fields)

	if err != nil {
		respondStoreError(ctx, err, "Failed to update task.")
		return
	}

	ctx.JSON(http.StatusOK, task)
}
