package deck

import "errors"

var (
	ErrUnknownLayout = errors.New("unknown layout")
	ErrNoRows        = errors.New("no rows to place")
	ErrMissingImage  = errors.New("image not found")
)
