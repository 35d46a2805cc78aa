package month

import "errors"

var (
	ErrMonthNotFound = errors.New("contribution month not found")
	ErrMonthExists   = errors.New("contribution month already exists")
	ErrMonthLocked   = errors.New("contribution month is locked")
)
