package scrape

import "errors"

var (
	ErrNoImage    = errors.New("no card image found")
	ErrHTTPStatus = errors.New("unexpected HTTP status")
	ErrNoTable    = errors.New("no sortable table on page")
)
