package riff

import (
	"github.com/pkg/errors"
)

var (
	// ErrNotRIFF means the source does not start with a "RIFF" tag.
	ErrNotRIFF = errors.New("riff: not a RIFF stream")
	// ErrWrongForm means the envelope is valid but carries another form type.
	ErrWrongForm = errors.New("riff: unexpected form type")
	// ErrBadFile means a declared length could not be satisfied. Short files
	// and lying length fields are indistinguishable in one forward pass.
	ErrBadFile = errors.New("riff: truncated or corrupt stream")
)

type Status int

const (
	Success Status = iota
	NotARiff
	WrongForm
	BadFile
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case NotARiff:
		return "not a riff"
	case WrongForm:
		return "wrong form"
	case BadFile:
		return "bad file"
	default:
		return "unknown"
	}
}

// StatusOf maps an error returned by this module to its Status. Errors that
// do not match a sentinel are read failures and collapse to BadFile.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, ErrNotRIFF):
		return NotARiff
	case errors.Is(err, ErrWrongForm):
		return WrongForm
	default:
		return BadFile
	}
}
