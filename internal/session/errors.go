package session

import "errors"

var (
	ErrDuplicateName  = errors.New("duplicate_name")
	ErrPlayerNotFound = errors.New("player_not_found")
	ErrInvalidStatus  = errors.New("invalid_status")
	ErrInvalidAmount  = errors.New("invalid_amount")
	ErrNegativeChips  = errors.New("negative_chip_count")
	ErrNoDebt         = errors.New("no_outstanding_debt")
	ErrBadImportRow   = errors.New("bad_import_row")
)
