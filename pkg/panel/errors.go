package panel

import "errors"

var (
	// ErrIDRequired is returned when a panel is configured without an ID.
	ErrIDRequired = errors.New("panel: id is required")
	// ErrFieldsRequired is returned when no field registry is supplied.
	ErrFieldsRequired = errors.New("panel: field registry is required")
	// ErrRegistrarRequired is returned when no registrar is supplied.
	ErrRegistrarRequired = errors.New("panel: registrar is required")
	// ErrStoreRequired is returned when no store is supplied.
	ErrStoreRequired = errors.New("panel: store is required")
	// ErrInvalidMode reports an unknown storage mode.
	ErrInvalidMode = errors.New("panel: invalid storage mode")
	// ErrInvalidContext reports a context outside normal, side and advanced.
	ErrInvalidContext = errors.New("panel: invalid context")
	// ErrInvalidPriority reports a priority outside high, core, default and low.
	ErrInvalidPriority = errors.New("panel: invalid priority")
)
