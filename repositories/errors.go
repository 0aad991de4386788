package repositories

import "errors"

// Sentinel errors shared by all repositories so services and handlers can map
// store outcomes to response statuses without inspecting driver errors.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)
