package labtest

import "errors"

var ErrTestNotFound = errors.New("test not found")
