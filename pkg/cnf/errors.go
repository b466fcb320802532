package cnf

import (
	"errors"
	"fmt"
)

var (
	ErrZeroLiteral       = errors.New("literal 0 is reserved as clause terminator")
	ErrLiteralOutOfRange = errors.New("literal exceeds the declared number of variables")
	ErrUnfinishedClause  = errors.New("unfinished clause at end of input")
	ErrInvalidWeight     = errors.New("soft clause weights must be positive")
)

// ParseError locates a DIMACS syntax error
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("line %d (%q): %v", err.Line, err.Text, err.Err)
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

// ClauseError points to an invalid clause by its position
type ClauseError struct {
	Index int
	Err   error
}

func (err *ClauseError) Error() string {
	return fmt.Sprintf("clause %d: %v", err.Index, err.Err)
}

func (err *ClauseError) Unwrap() error {
	return err.Err
}
