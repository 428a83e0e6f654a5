package server

const (
	// Validation (1xxx)
	ErrCodeInvalidArgument = 1000
	ErrCodeInvalidJSON     = 1001
	ErrCodeRequestTooLarge = 1002
	ErrCodeInvalidID       = 1004
	ErrCodeInvalidStatus   = 1005
	ErrCodeInvalidPriority = 1006
	ErrCodeInvalidLabel    = 1007
	ErrCodeMissingRequired = 1008
	ErrCodeInvalidDueDate  = 1009

	// Domain state (2xxx)
	ErrCodeTaskNotFound    = 2001
	ErrCodeSubtaskNotFound = 2002
	ErrCodeConflict        = 2101

	// Schema (3xxx)
	ErrCodeSchemaMissing = 3001

	// Internal/system (4xxx)
	ErrCodeInternal     = 4001
	ErrCodeStoreFailure = 4002
)

func defaultErrorCodeByStatus(status int) int {
	switch status {
	case 400:
		return ErrCodeInvalidArgument
	case 404:
		return ErrCodeTaskNotFound
	case 409:
		return ErrCodeConflict
	case 500:
		return ErrCodeInternal
	case 503:
		return ErrCodeSchemaMissing
	default:
		return 0
	}
}
