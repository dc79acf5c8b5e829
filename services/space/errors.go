package space

import "errors"

var (
	ErrNotFound      = errors.New("co-working space not found")
	ErrDuplicateName = errors.New("a co-working space with this name already exists")
	ErrInvalidQuery  = errors.New("invalid query parameter")
	ErrEmptyUpdate   = errors.New("no fields to update")
)
