package httputil

// Machine-readable error codes returned alongside error messages so clients
// can branch without parsing message text.
const (
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeInternalError      = "INTERNAL_ERROR"

	CodeEmailRequired      = "EMAIL_REQUIRED"
	CodeInvalidEmailFormat = "INVALID_EMAIL_FORMAT"
	CodePasswordRequired   = "PASSWORD_REQUIRED"
	CodePasswordTooShort   = "PASSWORD_TOO_SHORT"

	CodeDuplicateAccount   = "DUPLICATE_ACCOUNT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailNotVerified   = "EMAIL_NOT_VERIFIED"
	CodeAccountNotFound    = "ACCOUNT_NOT_FOUND"

	CodeTokenRequired         = "TOKEN_REQUIRED"
	CodeInvalidOrExpiredToken = "INVALID_OR_EXPIRED_TOKEN"

	CodeMissingAuth       = "MISSING_AUTHORIZATION"
	CodeInvalidAuthHeader = "INVALID_AUTH_HEADER"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeTokenExpired      = "TOKEN_EXPIRED"
)
