package models

import "errors"

// ErrDuplicate is returned by stores when a unique field is already taken.
var ErrDuplicate = errors.New("already exists")
