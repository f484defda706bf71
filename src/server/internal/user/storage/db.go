package userstorage

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/markers"
	"github.com/guregu/dynamo"
	"github.com/karasai/karasai-be/src/server/internal/user/entity"
	"github.com/karasai/karasai-be/src/shared/lib/dynamo"
	"github.com/karasai/karasai-be/src/shared/lib/errors/mark"
)

const (
	UsersTable            = "Users"
	idKey                 = "id"
	nameKey               = "username"
	phoneKey              = "phone"
	newUserCondition      = "attribute_not_exists(" + idKey + ")"
	existingUserCondition = "attribute_exists(" + idKey + ")"
)

type dbUser struct {
	ID        string    `dynamo:"id,hash"`
	Name      string    `dynamo:"username"`
	Email     string    `dynamo:"email"`
	Phone     string    `dynamo:"phone"`
	Admin     bool      `dynamo:"admin"`
	CreatedAt time.Time `dynamo:"createdAt"`
}

func (d dbUser) toEntity() userentity.User {
	user := userentity.User{
		ID:    d.ID,
		Name:  d.Name,
		Email: d.Email,
		Phone: d.Phone,
		Admin: d.Admin,
	}

	if !d.CreatedAt.IsZero() {
		createdAt := d.CreatedAt
		user.CreatedAt = &createdAt
	}

	return user
}

var _ userentity.Store = DB{}

type DB struct {
	dynamoDB dynamolib.DynamoDBWrapper
}

func NewDB(dynamoDB dynamolib.DynamoDBWrapper) DB {
	return DB{
		dynamoDB: dynamoDB,
	}
}

func (d DB) GetUser(ctx context.Context, userID string) (userentity.User, error) {
	if userID == "" {
		err := errors.New("User ID is empty")
		return userentity.User{}, mark.Wrap(err, UserNotFoundMark, "No ID provided to fetch user")
	}

	value := dbUser{}
	err := d.dynamoDB.Table(UsersTable).
		Get(idKey, userID).
		Consistent(true).
		OneWithContext(ctx, &value)

	if err != nil {
		switch {
		case markers.Is(err, dynamo.ErrNotFound):
			return userentity.User{}, mark.Wrap(err, UserNotFoundMark, "User is not found")
		default:
			return userentity.User{}, mark.Wrap(err, DefaultErrorMark, "Failed to fetch user")
		}
	}

	return value.toEntity(), nil
}

func (d DB) CreateUser(ctx context.Context, user userentity.User) error {
	value := dbUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Admin: user.Admin,
	}

	if user.CreatedAt != nil {
		value.CreatedAt = user.CreatedAt.UTC()
	}

	err := d.dynamoDB.Table(UsersTable).Table.
		Put(value).
		If(newUserCondition).
		RunWithContext(ctx)

	if err != nil {
		if conditionalCheckFailed(err) {
			return mark.Wrap(err, UserAlreadyExistsMark, "Cannot create: A user of this ID already exists")
		}

		return mark.Wrap(err, DefaultErrorMark, "Failed to put user into DB")
	}

	return nil
}

func (d DB) UpdateProfile(ctx context.Context, userID string, profile userentity.Profile) (userentity.User, error) {
	value := dbUser{}
	err := d.dynamoDB.Table(UsersTable).
		Update(idKey, userID).
		Set(nameKey, profile.Name).
		Set(phoneKey, profile.Phone).
		If(existingUserCondition).
		ValueWithContext(ctx, &value)

	if err != nil {
		if conditionalCheckFailed(err) {
			return userentity.User{}, mark.Wrap(err, UserNotFoundMark, "Cannot update: User of this ID cannot be found")
		}

		return userentity.User{}, mark.Wrap(err, DefaultErrorMark, "Failed to update user profile")
	}

	return value.toEntity(), nil
}

func (d DB) DeleteUser(ctx context.Context, userID string) error {
	err := d.dynamoDB.Table(UsersTable).
		Delete(idKey, userID).
		If(existingUserCondition).
		RunWithContext(ctx)

	if err != nil {
		if conditionalCheckFailed(err) {
			return mark.Wrap(err, UserNotFoundMark, "Failed to find user to delete")
		}

		return mark.Wrap(err, DefaultErrorMark, "Failed to delete user")
	}

	return nil
}

func conditionalCheckFailed(err error) bool {
	var conditionErr *dynamodb.ConditionalCheckFailedException
	return errors.As(err, &conditionErr)
}

func CreateTable(ctx context.Context, db dynamolib.DynamoDBWrapper) error {
	if err := db.CreateTable(UsersTable, dbUser{}).RunWithContext(ctx); err != nil {
		return errors.Wrap(err, "Failed to create users table")
	}

	return nil
}
