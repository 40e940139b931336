package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trackline-dev/trackline/internal/fieldmap"
	"github.com/trackline-dev/trackline/internal/store"
	"github.com/trackline-dev/trackline/internal/utils"
)

// GetAccounts bulk-fetches accounts by the ids query parameter. A missing or
// empty parameter is a client error, never a full listing.
func GetAccounts(ctx *gin.Context) {
	ids, err := utils.ParseIDList(ctx.Query("ids"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid IDs provided."})
		return
	}

	if len(ids) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No IDs provided."})
		return
	}

	accounts, err := store.AccountsByIDs(ids)

	if err != nil {
		respondStoreError(ctx, err, "Failed to fetch accounts")
		return
	}

	if wantsFields(ctx) {
		records := make([]fieldmap.Record, 0, len(accounts))
		for _, account := range accounts {
			records = append(records, fieldmap.AccountRecord(account))
		}
		ctx.JSON(http.StatusOK, records)
		return
	}

	ctx.JSON(http.StatusOK, accounts)
}

// CreateAccount accepts the legacy field-name body and resolves the owner
// reference before writing anything.
func CreateAccount(ctx *gin.Context) {
	var fields map[string]interface{}

	if err := ctx.ShouldBindJSON(&fields); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input, err := fieldmap.ParseNewAccount(fields)

	if err != nil {
		respondStoreError(ctx, err, "Failed to create account.")
		return
	}

	account, err := store.CreateAccount(input)

	if err != nil {
		respondStoreError(ctx, err, "Failed to create account.")
		return
	}

	ctx.JSON(http.StatusCreated, account)
}
