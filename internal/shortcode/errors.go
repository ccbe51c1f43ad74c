package shortcode

import "errors"

var (
	// ErrDuplicateDefinition indicates a tag name that is already catalogued.
	ErrDuplicateDefinition = errors.New("shortcode: tag already registered")
	// ErrInvalidDefinition indicates a definition whose parameter schema failed validation.
	ErrInvalidDefinition = errors.New("shortcode: invalid tag definition")
)
