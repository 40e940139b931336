package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trackline-dev/trackline/internal/fieldmap"
	"github.com/trackline-dev/trackline/internal/store"
	"github.com/trackline-dev/trackline/internal/utils"
)

func GetProjects(ctx *gin.Context) {
	ids, err := utils.ParseIDList(ctx.Query("ids"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid IDs provided."})
		return
	}

	if len(ids) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No IDs provided."})
		return
	}

	projects, err := store.ProjectsByIDs(ids)

	if err != nil {
		respondStoreError(ctx, err, "Failed to fetch projects")
		return
	}

	if wantsFields(ctx) {
		records := make([]fieldmap.Record, 0, len(projects))
		for _, project := range projects {
			records = append(records, fieldmap.ProjectRecord(project))
		}
		ctx.JSON(http.StatusOK, records)
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

func CreateProject(ctx *gin.Context) {
	var fields map[string]interface{}

	if err := ctx.ShouldBindJSON(&fields); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input, err := fieldmap.ParseNewProject(fields)

	if err != nil {
		respondStoreError(ctx, err, "Failed to create project.")
		return
	}

	project, err := store.CreateProject(input)

	if err != nil {
		respondStoreError(ctx, err, "Failed to create project.")
		return
	}

	ctx.JSON(http.StatusCreated, project)
}

// UpdateProject applies a sparse legacy field-name map as a partial update.
// The store validates names against the project column allow-list; the id
// must exist. The full updated row comes back.
func UpdateProject(ctx *gin.Context) {
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

	project, err := store.UpdateProjectFields(id, fields)

	if err != nil {
		respondStoreError(ctx, err, "Failed to update project.")
		return
	}

	ctx.JSON(http.StatusOK, project)
}
