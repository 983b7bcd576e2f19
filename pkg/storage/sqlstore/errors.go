package sqlstore

import "errors"

var (
	// ErrContentIDRequired is returned for blank content IDs.
	ErrContentIDRequired = errors.New("sqlstore: content id is required")
	// ErrKeyRequired is returned for blank metadata keys.
	ErrKeyRequired = errors.New("sqlstore: meta key is required")
)
