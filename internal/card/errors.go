package card

import "errors"

var (
	ErrUnknownRarity = errors.New("unknown rarity")
	ErrEmptyTable    = errors.New("override table is empty")
)
