package catalog

import "errors"

var (
	ErrDuplicateID     = errors.New("catalog: duplicate item id")
	ErrMissingID       = errors.New("catalog: item without id")
	ErrUnknownType     = errors.New("catalog: unknown item type")
	ErrUnsupportedFile = errors.New("catalog: unsupported file format")
)
