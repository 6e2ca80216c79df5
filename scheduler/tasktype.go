package scheduler

import (
	"strings"
)

// TaskType identifies the kind of work a JobPlan's Task performs.
type TaskType string

// IsEmpty reports whether the TaskType is empty after trimming spaces.
func (tt TaskType) IsEmpty() bool {
	return strings.TrimSpace(string(tt)) == ""
}

// TrimSpace returns a copy of the TaskType with surrounding whitespace removed.
func (tt TaskType) TrimSpace() TaskType {
	return TaskType(strings.TrimSpace(string(tt)))
}

// String converts the TaskType to a string.
func (tt TaskType) String() string {
	return string(tt)
}

// ToStringTrimLower trims and lower-cases the TaskType.
func (tt TaskType) ToStringTrimLower() string {
	return strings.ToLower(tt.TrimSpace().String())
}

// TaskTypes is a slice of TaskType.
type TaskTypes []TaskType

// Contains reports whether tt is present in the slice.
func (tts TaskTypes) Contains(tt TaskType) bool {
	for _, t := range tts {
		if t == tt {
			return true
		}
	}
	return false
}
