package domain

import "errors"

var (
	ErrUnresolvableSpecifier = errors.New("unresolvable specifier")
	ErrInvalidModuleName     = errors.New("invalid module name")
	ErrModuleNotFound        = errors.New("module not found")
)

// Buffer notices. None of these change state; callers report them and move on.
var (
	ErrBufferEmpty            = errors.New("buffer is empty")
	ErrHistoryEmpty           = errors.New("history is empty")
	ErrAlreadyOldest          = errors.New("already at the oldest history entry")
	ErrNotViewingHistory      = errors.New("not viewing history")
	ErrHistoryIndexOutOfRange = errors.New("history index out of range")
)
