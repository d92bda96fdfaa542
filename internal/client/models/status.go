package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownStatus = errors.New("unknown reading status")

// Status is a reading-progress label attached to a library entry. The
// string value is the label the backend stores.
type Status string

const (
	StatusToRead       Status = "to-read"
	StatusReading      Status = "reading"
	StatusFinished     Status = "finished"
	StatusPaused       Status = "paused"
	StatusDidNotFinish Status = "did not finish"
)

// Statuses returns the labels in menu order.
func Statuses() []Status {
	return []Status{StatusToRead, StatusReading, StatusFinished, StatusPaused, StatusDidNotFinish}
}

// ParseStatus accepts a wire label case-insensitively. "did-not-finish"
// and "dnf" are accepted for StatusDidNotFinish since a space is awkward
// to type on a command line.
func ParseStatus(s string) (Status, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "did-not-finish", "dnf":
		return StatusDidNotFinish, nil
	}
	for _, st := range Statuses() {
		if string(st) == v {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// Valid reports whether s is exactly one of the five wire labels.
func (s Status) Valid() bool {
	for _, st := range Statuses() {
		if s == st {
			return true
		}
	}
	return false
}

func (s Status) String() string { return string(s) }
