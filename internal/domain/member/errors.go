package member

import "errors"

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrMemberExists   = errors.New("member already registered")
)
