package storage

import "fmt"

// ParseError indicates a tasks file that could not be decoded.
type ParseError struct {
	Path string
	Msg  string
}

func (e ParseError) Error() string {
	if e.Path == "" {
		return "parse tasks: " + e.Msg
	}
	return fmt.Sprintf("parse %s: %s", e.Path, e.Msg)
}

// DuplicateIDError indicates two stored tasks sharing one identifier.
type DuplicateIDError struct {
	ID string
}

func (e DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate task id: %s", e.ID)
}
