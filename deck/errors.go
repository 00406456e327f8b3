package deck

// Error is a custom error type for deck errors
type Error string

// Error implements the error interface
func (e Error) Error() string {
	return string(e)
}

// Is groups precondition failures under ErrInvalidArgument.
// ErrExhausted is a terminal condition, not an argument error.
func (e Error) Is(target error) bool {
	return target == ErrInvalidArgument && e != ErrExhausted
}

// Define errors
const (
	ErrInvalidArgument Error = "invalid argument"
	ErrExhausted       Error = "deck is exhausted"
	ErrForeignReturn   Error = "returned card was not drawn from this deck"
)
