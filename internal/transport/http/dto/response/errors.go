package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrNotFound = ErrorResponse{
		Status:  "error",
		Error:   "not_found",
		Details: "The page you are looking for does not exist",
		Link:    "/",
	}

	ErrContentUnavailable = ErrorResponse{
		Status:  "error",
		Error:   "content_unavailable",
		Details: "Content is temporarily unavailable, please retry shortly",
	}

	ErrInternal = ErrorResponse{
		Status:  "error",
		Error:   "internal_error",
		Details: "Something went wrong",
		Link:    "/",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status:  "error",
		Error:   "authentication_failed",
		Details: "Invalid email or password",
	}

	ErrTooManyAttempts = ErrorResponse{
		Status:  "error",
		Error:   "too_many_attempts",
		Details: "Too many failed login attempts, try again later",
	}

	ErrAuthUnavailable = ErrorResponse{
		Status:  "error",
		Error:   "auth_unavailable",
		Details: "Sign-in is not available",
	}

	ErrUnauthorized = ErrorResponse{
		Status:  "error",
		Error:   "unauthorized",
		Details: "No active session",
	}
)
