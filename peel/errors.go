package peel

import "fmt"

// Status is a stable numeric status code mirroring the host ABI's error
// taxonomy (spec §6/§7). It implements error so callers can use ordinary
// Go error handling (errors.Is, errors.As) while still recovering the
// stable numeric code a C-ABI bridge would need to return.
type Status int

// Stable numeric status values. Do not renumber; external bridges depend
// on these exact values.
const (
	StatusNoError               Status = 0
	StatusGeneral               Status = -1
	StatusOutOfMemory           Status = -2
	StatusUnidentifiedException Status = -3
	StatusUninitializedInstance Status = -4
	StatusOutOfRange            Status = -5
	StatusNoResource            Status = -6
)

func (s Status) Error() string {
	switch s {
	case StatusNoError:
		return "peel: no error"
	case StatusGeneral:
		return "peel: general error"
	case StatusOutOfMemory:
		return "peel: out of memory"
	case StatusUnidentifiedException:
		return "peel: unidentified exception"
	case StatusUninitializedInstance:
		return "peel: uninitialized instance"
	case StatusOutOfRange:
		return "peel: index out of range"
	case StatusNoResource:
		return "peel: no resource"
	default:
		return fmt.Sprintf("peel: unknown status %d", int(s))
	}
}

// Code returns the stable numeric status code.
func (s Status) Code() int { return int(s) }

// detailedStatus is the Status-compatible error built by outOfRange and
// general, carrying positional detail for debugging; errors.Is(err,
// StatusOutOfRange) and errors.As(err, &status) still succeed because
// Unwrap returns the embedded Status.
type detailedStatus struct {
	Status
	detail string
}

func (d *detailedStatus) Error() string { return d.Status.Error() + ": " + d.detail }

func (d *detailedStatus) Unwrap() error { return d.Status }

func outOfRange(format string, args ...any) error {
	return &detailedStatus{Status: StatusOutOfRange, detail: fmt.Sprintf(format, args...)}
}

func general(format string, args ...any) error {
	return &detailedStatus{Status: StatusGeneral, detail: fmt.Sprintf(format, args...)}
}
