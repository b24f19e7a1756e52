package e

import "fmt"

var (
	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrUnknownStorageDriver = fmt.Errorf("unknown storage driver")
	ErrEphemeralStorage     = fmt.Errorf("storage driver does not persist data")

	// 400 Bad Request
	ErrInvalidArgument   = fmt.Errorf("invalid argument")
	ErrInvalidID         = fmt.Errorf("%w: invalid id format", ErrInvalidArgument)
	ErrInvalidPagination = fmt.Errorf("%w: invalid page or limit", ErrInvalidArgument)
	ErrValidation        = fmt.Errorf("validation failed")
	ErrInvalidPayload    = fmt.Errorf("invalid product data")

	// 401 Unauthorized
	ErrUnauthorized = fmt.Errorf("unauthorized")

	// 413 Request Entity Too Large
	ErrPayloadTooLarge = fmt.Errorf("request body too large")

	// 404 Not Found
	ErrNotFound = fmt.Errorf("product not found")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
