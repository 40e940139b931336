package store

import (
	"github.com/trackline-dev/trackline/db"
	"github.com/trackline-dev/trackline/internal/apperrors"
	"github.com/trackline-dev/trackline/internal/models"
)

type NewAccount struct {
	AccountName        string
	AccountType        string
	AccountDescription string
	OwnerSecretKey     string
}

// AccountDetail is the composite read shape: the account row plus the ids of
// its projects.
type AccountDetail struct {
	ID                 uint   `json:"id"`
	AccountName        string `json:"account_name"`
	AccountType        string `json:"account_type"`
	AccountDescription string `json:"account_description"`
	AccountOwnerID     uint   `json:"account_owner_id"`
	Projects           []uint `json:"projects"`
}

func accountDetail(account models.Account, projectIDs []uint) AccountDetail {
	if projectIDs == nil {
		projectIDs = []uint{}
	}

	return AccountDetail{
		ID:                 account.ID,
		AccountName:        account.AccountName,
		AccountType:        account.AccountType,
		AccountDescription: account.AccountDescription,
		AccountOwnerID:     account.AccountOwnerID,
		Projects:           projectIDs,
	}
}

// AccountsByIDs bulk-fetches the requested accounts. An empty id set returns
// an empty result without touching the database, never a full-table scan.
func AccountsByIDs(ids []uint) ([]AccountDetail, error) {
	if len(ids) == 0 {
		return []AccountDetail{}, nil
	}

	var accounts []models.Account

	if err := db.DB.Where("id IN ?", ids).Find(&accounts).Error; err != nil {
		return nil, err
	}

	var projects []models.Project

	if err := db.DB.Select("id, account_id").Where("account_id IN ?", ids).Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}

	projectsByAccount := make(map[uint][]uint)
	for _, project := range projects {
		projectsByAccount[project.AccountID] = append(projectsByAccount[project.AccountID], project.ID)
	}

	details := make([]AccountDetail, 0, len(accounts))
	for _, account := range accounts {
		details = append(details, accountDetail(account, projectsByAccount[account.ID]))
	}

	return details, nil
}

func ListAccounts() ([]AccountDetail, error) {
	var accounts []models.Account

	if err := db.DB.Order("id").Find(&accounts).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(accounts))
	for _, account := range accounts {
		ids = append(ids, account.ID)
	}

	return AccountsByIDs(ids)
}

// CreateAccount resolves the owner's secret key to an internal id before the
// insert. An unresolvable owner is a validation failure and writes nothing.
func CreateAccount(input NewAccount) (*AccountDetail, error) {
	if input.AccountName == "" {
		return nil, apperrors.Validationf("account name is required")
	}

	owner, err := GetUserBySecretKey(input.OwnerSecretKey)

	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Validationf("invalid account owner ID")
		}
		return nil, err
	}

	account := models.Account{
		AccountName:        input.AccountName,
		AccountType:        input.AccountType,
		AccountDescription: input.AccountDescription,
		AccountOwnerID:     owner.ID,
	}

	if err := db.DB.Create(&account).Error; err != nil {
		return nil, err
	}

	detail := accountDetail(account, nil)
	return &detail, nil
}
