package reservation

import "errors"

var (
	ErrNotFound      = errors.New("reservation not found")
	ErrSpaceNotFound = errors.New("co-working space not found")
	ErrNotOwner      = errors.New("not authorized to access this reservation")
	ErrQuotaExceeded = errors.New("reservation quota exceeded")
)
