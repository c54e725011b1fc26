package tap

import "errors"

var (
	// Store errors.
	ErrNoStore        = errors.New("tap: no journal store configured")
	ErrRecordNotFound = errors.New("tap: record not found")
	ErrRecordExists   = errors.New("tap: record already exists")

	// Dispatch errors.
	ErrUnknownNetwork = errors.New("tap: no service registered for network kind")
	ErrUnknownSource  = errors.New("tap: no reader registered for source")
	ErrNilService     = errors.New("tap: nil service")

	// Hook errors.
	ErrHookNotFound  = errors.New("tap: hook not found")
	ErrThrottled     = errors.New("tap: hook delivery throttled")
	ErrStaticHookSet = errors.New("tap: pipeline strategy does not support runtime hooks")

	// Schedule errors.
	ErrDuplicateEntry = errors.New("tap: duplicate schedule entry")
	ErrEntryNotFound  = errors.New("tap: schedule entry not found")
)
