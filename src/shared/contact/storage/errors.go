package contactstorage

import "github.com/cockroachdb/errors/domains"

var (
	MessageNotFoundMark      = domains.New("message_not_found")
	MessageAlreadyExistsMark = domains.New("message_already_exists")
	StatusConflictMark       = domains.New("message_status_conflict")
	DefaultErrorMark         = domains.New("default_error")
)
