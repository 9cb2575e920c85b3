package algebra

import "github.com/pkg/errors"

// ErrInvalidParameter signals that a structure was requested with malformed
// or insecure parameters (non-prime modulus, singular curve, ...)
var ErrInvalidParameter = errors.New("invalid structure parameter")

// ErrInvalidValue signals that a raw value lies outside the domain of a set
var ErrInvalidValue = errors.New("value outside of set")

// ErrInvalidElement signals that an operand does not belong to the structure
// the operation was invoked on
var ErrInvalidElement = errors.New("element does not belong to structure")

// ErrIndexOutOfRange signals that a compound index is outside [0, arity)
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrNotInvertible signals that an element has no inverse
var ErrNotInvertible = errors.New("element is not invertible")

// ErrUnsupportedOperation signals that the structure lacks the capability an
// operation needs, e.g. a negative amount on a monoid
var ErrUnsupportedOperation = errors.New("unsupported operation")

// ErrNilRandomness signals that a nil randomness source was provided
var ErrNilRandomness = errors.New("nil randomness source")

func invalidElement(s Set, e Element) error {
	if e == nil {
		return errors.Wrapf(ErrInvalidElement, "nil element for %s", s)
	}
	return errors.Wrapf(ErrInvalidElement, "%s is not in %s", e, s)
}

// Check returns ErrInvalidElement unless every element belongs to s.
func Check(s Set, es ...Element) error {
	for _, e := range es {
		if e == nil || !s.IsMember(e) {
			return invalidElement(s, e)
		}
	}
	return nil
}
