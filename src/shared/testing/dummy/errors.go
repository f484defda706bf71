package dummy

import "github.com/cockroachdb/errors"

// NetworkFailure is returned by every dummy marked Unavailable
var NetworkFailure = errors.New("dummy store is unavailable")
