package envutil

// Option modifies a Reader. Readers such as String and Bool accept options
// for defaults and validation.
type Option[T any] func(Reader[T]) Reader[T]

// Default provides a value for a Reader whose variable is not set.
func Default[T any](dfl T) Option[T] {
	return func(rdr Reader[T]) Reader[T] {
		return rdr.WithDefault(dfl)
	}
}

// Validate runs f on the Reader's value. An error from f becomes the
// Reader's error.
func Validate[T any](f func(T) error) Option[T] {
	return func(rdr Reader[T]) Reader[T] {
		return rdr.Map(func(val T) (T, error) {
			return val, f(val)
		})
	}
}
