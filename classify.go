package promesso

import (
	"errors"

	"github.com/augustoroman/promesso/chain"
)

// Kind is the classification of a handler outcome.
type Kind int

const (
	// KindNone means the handler succeeded.
	KindNone Kind = iota
	// KindDomain is a deliberately raised DomainError.
	KindDomain
	// KindGeneric is any other error, typically a bug.
	KindGeneric
	// KindUnclassified is a panic with a value that is not an error at all,
	// such as a string.
	KindUnclassified
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindDomain:
		return "domain"
	case KindGeneric:
		return "generic"
	case KindUnclassified:
		return "unclassified"
	}
	return "unknown"
}

// Classify determines how a caught value will be handled. Domain takes
// precedence over Generic, which takes precedence over Unclassified. A
// chain.PanicError is classified by the value that was panic'd.
func Classify(caught any) Kind {
	if p, ok := caught.(chain.PanicError); ok {
		caught = p.Val
	}
	switch v := caught.(type) {
	case nil:
		return KindNone
	case error:
		var derr DomainError
		if errors.As(v, &derr) {
			return KindDomain
		}
		return KindGeneric
	}
	return KindUnclassified
}

// asDomainError finds the DomainError in caught, looking through panics and
// wrapped errors.
func asDomainError(caught any) (DomainError, bool) {
	if p, ok := caught.(chain.PanicError); ok {
		caught = p.Val
	}
	err, ok := caught.(error)
	if !ok {
		return nil, false
	}
	var derr DomainError
	return derr, errors.As(err, &derr)
}
