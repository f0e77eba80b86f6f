package dom

import "fmt"

// Exception names used by DOM operations.
const (
	InvalidCharacterError = "InvalidCharacterError"
	NamespaceError        = "NamespaceError"
	NotFoundError         = "NotFoundError"
	HierarchyRequestError = "HierarchyRequestError"
	WrongDocumentError    = "WrongDocumentError"
	NotSupportedError     = "NotSupportedError"
)

// Exception is a failed DOM operation.
type Exception struct {
	Name    string
	Message string
}

// Error implements the error interface.
func (e *Exception) Error() string {
	if e.Message == "" {
		return e.Name
	}
	return e.Name + ": " + e.Message
}

// Is matches any *Exception with the same Name.
func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	return ok && t.Name == e.Name
}

// NewException creates an Exception with a formatted message.
func NewException(name, format string, args ...any) *Exception {
	return &Exception{Name: name, Message: fmt.Sprintf(format, args...)}
}
