package storage

import "errors"

var ErrNotFound = errors.New("item not found in storage")
var ErrItemWithIDAlreadyExists = errors.New("item already exists")
var ErrVersionConflict = errors.New("item was modified concurrently")
