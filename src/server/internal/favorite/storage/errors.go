package favoritestorage

import "github.com/cockroachdb/errors/domains"

var (
	DefaultErrorMark = domains.New("default_error")
)
