package api

import "errors"

// ErrEmptyToken is reported when an auth endpoint answers 2xx without a token.
var ErrEmptyToken = errors.New("auth response carried an empty token")
