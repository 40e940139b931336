package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/trackline-dev/trackline/internal/fieldmap"
	"github.com/trackline-dev/trackline/internal/store"
	"github.com/trackline-dev/trackline/internal/utils"
)

// GetUpdates lists updates. Unlike the other entities the ids parameter is
// optional here: without it, every update comes back newest first.
func GetUpdates(ctx *gin.Context) {
	ids, err := utils.ParseIDList(ctx.Query("ids"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid IDs provided."})
		return
	}

	var updates []store.UpdateDetail

	if len(ids) == 0 {
		updates, err = store.ListUpdates()
	} else {
		updates, err = store.UpdatesByIDs(ids)
	}

	if err != nil {
		respondStoreError(ctx, err, "Failed to fetch updates")
		return
	}

	if wantsFields(ctx) {
		records := make([]fieldmap.Record, 0, len(updates))
		for _, update := range updates {
			records = append(records, fieldmap.UpdateRecord(update))
		}
		ctx.JSON(http.StatusOK, records)
		return
	}

	ctx.JSON(http.StatusOK, updates)
}

// CreateUpdate writes the note with the owner, project and account names
// snapshotted into the row, then nudges the project's live feed.
func CreateUpdate(ctx *gin.Context) {
	var fields map[string]interface{}

	if err := ctx.ShouldBindJSON(&fields); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input, err := fieldmap.ParseNewUpdate(fields)

	if err != nil {
		respondStoreError(ctx, err, "Failed to create update.")
		return
	}

	update, err := store.CreateUpdate(input)

	if err != nil {
		respondStoreError(ctx, err, "Failed to create update.")
		return
	}

	BroadcastRefresh(strconv.FormatUint(uint64(update.ProjectID), 10))

	ctx.JSON(http.StatusCreated, update)
}
