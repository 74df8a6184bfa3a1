package constants

const (
	// HTTP headers
	HeaderAuthorization      = "Authorization"
	HeaderXRequestID         = "X-Request-ID"
	HeaderContentDisposition = "Content-Disposition"

	// Gin context keys set by middleware
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableUsers                     = "users"
	TableServiceRequests           = "service_requests"
	TableServiceRequestAttachments = "service_request_attachments"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
)
