package savefile

import "errors"

// Save file errors.
var (
	ErrInvalidFormat = errors.New("savefile: invalid format")
	ErrTruncatedFile = errors.New("savefile: truncated file")
	ErrIO            = errors.New("savefile: i/o error")
	ErrEntryCount    = errors.New("savefile: entry count does not match submission capacity")
)
