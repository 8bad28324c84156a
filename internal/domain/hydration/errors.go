package hydration

import "errors"

var (
	// ErrInvalidVolume indicates a non-positive intake volume.
	ErrInvalidVolume = errors.New("intake volume must be positive")
	// ErrInvalidTarget indicates a non-positive daily target.
	ErrInvalidTarget = errors.New("daily target must be positive")
	// ErrInvalidRetention indicates a non-positive retention window.
	ErrInvalidRetention = errors.New("retention window must be positive")
	// ErrInvalidAccent indicates an unknown accent color name.
	ErrInvalidAccent = errors.New("unknown accent color")
	// ErrDuplicateRecord indicates a record with the same timestamp exists.
	ErrDuplicateRecord = errors.New("record with the same timestamp already exists")
	// ErrRecordNotFound indicates the record doesn't exist.
	ErrRecordNotFound = errors.New("record not found")
)
