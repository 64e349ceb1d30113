package errors

// Error codes for standardized error responses
const (
	// Authentication errors
	ErrCodeUnauthorized           = "unauthorized"
	ErrCodeForbidden              = "forbidden"
	ErrCodeInvalidToken           = "invalid_token"
	ErrCodeAuthenticationRequired = "authentication_required"

	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"

	// Resource errors
	ErrCodeNotFound = "not_found"

	// Business logic errors
	ErrCodeRegistrationFailed   = "registration_failed"
	ErrCodeLoginFailed          = "login_failed"
	ErrCodeUsernameTaken        = "username_taken"
	ErrCodeNoQuestionsAvailable = "no_questions_available"
	ErrCodeEmptyAnswerSet       = "empty_answer_set"
	ErrCodeSubmitFailed         = "submit_failed"

	// Server errors
	ErrCodeInternalError = "internal_error"
)
