package registry

import "errors"

var (
	ErrSealed    = errors.New("registry is sealed")
	ErrDuplicate = errors.New("already registered")
)
