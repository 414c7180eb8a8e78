package domain

// Outcome carries either a value or the error that prevented it.
type Outcome[T any] struct {
	Value T
	Err   error
}

func Succeed[T any](value T) Outcome[T] {
	return Outcome[T]{Value: value}
}

func Fail[T any](err error) Outcome[T] {
	return Outcome[T]{Err: err}
}

// Try lifts a (value, error) pair.
func Try[T any](value T, err error) Outcome[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Succeed(value)
}

func (o Outcome[T]) OK() bool {
	return o.Err == nil
}

// OrElse returns the value, or the fallback computed from the failure.
func (o Outcome[T]) OrElse(fallback func(error) T) T {
	if o.Err != nil {
		return fallback(o.Err)
	}
	return o.Value
}

// Then chains a fallible step onto a successful outcome. Failures pass through untouched.
func Then[T, U any](o Outcome[T], next func(T) (U, error)) Outcome[U] {
	if o.Err != nil {
		return Fail[U](o.Err)
	}
	return Try(next(o.Value))
}
