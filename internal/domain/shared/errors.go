package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrDuplicateName       = NewDomainError("DUPLICATE_NAME", "A record with this name already exists")
	ErrAlreadyProcessed    = NewDomainError("ALREADY_PROCESSED", "Record was already processed by another request")
	ErrCustomerNotApproved = NewDomainError("CUSTOMER_NOT_APPROVED", "Customer is not approved")
	ErrCustomerInUse       = NewDomainError("CUSTOMER_IN_USE", "Customer is referenced by existing quotations")
	ErrAccountInactive     = NewDomainError("ACCOUNT_INACTIVE", "Account is not activated yet")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrDataIntegrity       = NewDomainError("DATA_INTEGRITY", "Persistent state is inconsistent")
)
