package graph

import "fmt"

const codeBadUserInput = "BAD_USER_INPUT"

// UserInputError marks a failure caused by the request itself rather than
// the service. It carries a machine-readable code into the response's error
// extensions so clients can tell it apart from infrastructure failures.
type UserInputError struct {
	Message string
}

func userInputErrorf(format string, args ...any) *UserInputError {
	return &UserInputError{Message: fmt.Sprintf(format, args...)}
}

func (e *UserInputError) Error() string {
	return e.Message
}

// Extensions satisfies gqlerrors.ExtendedError, which the executor consults
// when formatting a resolver error into the response.
func (e *UserInputError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": codeBadUserInput}
}
