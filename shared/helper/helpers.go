package helper

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnexpectedType is returned when a value does not have the type the caller asked for.
var ErrUnexpectedType = errors.New("unexpected type")

// GetTypedValueOf asserts the result of a getter function to the expected type T.
// Errors from the getter are returned as they are, so callers can match them
// with errors.Is against the original cause.
// A nil result with a nil error yields the zero value of T.
func GetTypedValueOf[T any](getFn func() (any, error)) (T, error) {
	var zero T

	res, err := getFn()
	if err != nil {
		return zero, err
	}
	if res == nil {
		return zero, nil
	}

	val, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %T", ErrUnexpectedType, res)
	}

	return val, nil
}

// PartitionKey renders a key as a string for hashing and indexing.
// Equal keys always render to the same string; distinct keys may collide.
func PartitionKey(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case fmt.Stringer:
		return k.String()
	case int:
		return strconv.Itoa(k)
	case int64:
		return strconv.FormatInt(k, 10)
	case int32:
		return strconv.FormatInt(int64(k), 10)
	case uint64:
		return strconv.FormatUint(k, 10)
	case uint32:
		return strconv.FormatUint(uint64(k), 10)
	default:
		return fmt.Sprintf("%v", key)
	}
}
