package userstorage

import "github.com/cockroachdb/errors/domains"

var (
	UserNotFoundMark      = domains.New("user_not_found")
	UserAlreadyExistsMark = domains.New("user_already_exists")
	DefaultErrorMark      = domains.New("default_error")
)
