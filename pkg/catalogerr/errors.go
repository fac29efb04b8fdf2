package catalogerr

import "errors"

// Outcomes reported by library mutations and navigation. None of them leave
// partial state behind.
var (
	ErrNotFound              = errors.New("record not found")
	ErrInvalidRating         = errors.New("rating must be an integer between 1 and 5")
	ErrNavigationOutOfBounds = errors.New("breadcrumb index out of bounds")
	ErrExternalService       = errors.New("text generation service failed")
	ErrForbidden             = errors.New("not allowed to modify this record")
	ErrBlankPlacement        = errors.New("subject and unit must not be blank")
)
