// Package schema defines the duck-typed validation contract used at pipeline
// boundaries and by the validate transformation, plus a JSON Schema backed
// implementation.
package schema

// Schema validates a payload. Parse returns the (possibly normalized) value
// on success and an error describing the violation otherwise. Any type
// satisfying this contract is accepted; the engine does not depend on a
// specific validation library.
type Schema interface {
	Parse(value any) (any, error)
}

// ParseFunc adapts a plain function to the Schema contract.
type ParseFunc func(value any) (any, error)

func (f ParseFunc) Parse(value any) (any, error) {
	return f(value)
}
