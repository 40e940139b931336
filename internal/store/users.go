package store

import (
	"context"
	"errors"

	"github.com/trackline-dev/trackline/db"
	"github.com/trackline-dev/trackline/internal/apperrors"
	"github.com/trackline-dev/trackline/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type NewUser struct {
	SecretKey string
	UserName  string
	UserType  string
}

// UserAggregate is the login payload body: every id across the four child
// tables whose foreign key points at the user, one slice per relation.
type UserAggregate struct {
	Accounts        []uint `json:"accounts"`
	Projects        []uint `json:"projects"`
	TasksAssignedTo []uint `json:"tasks_assigned_to"`
	TasksCreatedBy  []uint `json:"tasks_created_by"`
	Updates         []uint `json:"updates"`
}

func GetUserBySecretKey(key string) (*models.User, error) {
	var user models.User

	err := db.DB.Where("secret_key = ?", key).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("user")
		}
		return nil, err
	}

	return &user, nil
}

func ListUsers() ([]models.User, error) {
	var users []models.User

	if err := db.DB.Order("user_name").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func CreateUser(input NewUser) (*models.User, error) {
	if input.SecretKey == "" || input.UserName == "" {
		return nil, apperrors.Validationf("secret key and user name are required")
	}

	userType := input.UserType
	if userType == "" {
		userType = models.UserTypeRegular
	}
	if userType != models.UserTypeAdmin && userType != models.UserTypeRegular {
		return nil, apperrors.Validationf("unknown user type %q", input.UserType)
	}

	user := models.User{
		SecretKey: input.SecretKey,
		UserName:  input.UserName,
		UserType:  userType,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserAggregate runs the five per-table id fetches concurrently and joins
// on all of them. The first failing branch cancels the rest and fails the
// whole aggregate; a partial document is never returned.
func GetUserAggregate(ctx context.Context, userID uint) (*UserAggregate, error) {
	var aggregate UserAggregate

	g, gctx := errgroup.WithContext(ctx)

	fetch := func(model interface{}, column string, dest *[]uint) func() error {
		return func() error {
			return db.DB.WithContext(gctx).
				Model(model).
				Where(column+" = ?", userID).
				Order("id").
				Pluck("id", dest).Error
		}
	}

	g.Go(fetch(&models.Account{}, "account_owner_id", &aggregate.Accounts))
	g.Go(fetch(&models.Project{}, "project_owner_id", &aggregate.Projects))
	g.Go(fetch(&models.Task{}, "assigned_to_id", &aggregate.TasksAssignedTo))
	g.Go(fetch(&models.Task{}, "created_by_id", &aggregate.TasksCreatedBy))
	g.Go(fetch(&models.Update{}, "update_owner_id", &aggregate.Updates))

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Empty relations serialize as [] rather than null
	for _, ids := range []*[]uint{
		&aggregate.Accounts,
		&aggregate.Projects,
		&aggregate.TasksAssignedTo,
		&aggregate.TasksCreatedBy,
		&aggregate.Updates,
	} {
		if *ids == nil {
			*ids = []uint{}
		}
	}

	return &aggregate, nil
}
