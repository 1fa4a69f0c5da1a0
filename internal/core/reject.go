package core

import (
	"errors"
	"fmt"
)

// RejectCode is a machine-readable reason for refusing a command.
type RejectCode string

const (
	RejectUnitNotFound    RejectCode = "UNIT_NOT_FOUND"
	RejectUnknownUnitType RejectCode = "UNKNOWN_UNIT_TYPE"
	RejectUnknownPlayer   RejectCode = "UNKNOWN_PLAYER"
	RejectNotYourUnit     RejectCode = "NOT_YOUR_UNIT"
	RejectEmptyPath       RejectCode = "EMPTY_PATH"
	RejectPathStart       RejectCode = "PATH_START_MISMATCH"
	RejectPathNotAdjacent RejectCode = "PATH_NOT_CONTIGUOUS"
	RejectOffMap          RejectCode = "OFF_MAP"
	RejectOccupied        RejectCode = "TILE_OCCUPIED"
	RejectNoMovePoints    RejectCode = "NOT_ENOUGH_MOVE_POINTS"
	RejectOutOfRange      RejectCode = "OUT_OF_RANGE"
	RejectFriendlyFire    RejectCode = "FRIENDLY_FIRE"
	RejectAlreadyAttacked RejectCode = "ALREADY_ATTACKED"
	RejectUnknownCommand  RejectCode = "UNKNOWN_COMMAND"
)

// RejectedError is returned when a command produces no event.
// A rejected command has no side effects.
type RejectedError struct {
	Code   RejectCode
	Reason string
}

// ErrRejected matches any RejectedError with errors.Is.
var ErrRejected = &RejectedError{}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("core: command rejected [%s]: %s", e.Code, e.Reason)
}

// Is matches targets with the same code; a target without a code matches all.
func (e *RejectedError) Is(target error) bool {
	t, ok := target.(*RejectedError)
	if !ok {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

func reject(code RejectCode, format string, args ...any) *RejectedError {
	return &RejectedError{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// RejectionCode extracts the code from a rejection, or "" for other errors.
func RejectionCode(err error) RejectCode {
	var rej *RejectedError
	if errors.As(err, &rej) {
		return rej.Code
	}
	return ""
}
