package errors

import (
	"fmt"
)

var (
	ErrNotFound      = fmt.Errorf("not found")
	ErrAlreadyExists = fmt.Errorf("already exists")
	ErrInvalidInput  = fmt.Errorf("invalid input")
)
