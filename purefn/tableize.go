package purefn

import (
	"context"
	"errors"
	"fmt"
)

// ComparableOrStringer is an argument of a tableized function. It must be
// comparable or implement fmt.Stringer, otherwise the call panics.
//
// A panic of the tableized function reaches the caller with its original
// value and memoizes nothing.
type ComparableOrStringer any

// ComparableOrString is the table key derived from a ComparableOrStringer.
type ComparableOrString any

func TableizeI1O1[I1 ComparableOrStringer, O1 any](
	pureFn func(I1) O1,
	maxTableSize uint32,
) func(I1) O1 {
	tableized := tableize(
		func(args ...ComparableOrStringer) O1 {
			return pureFn(args[0].(I1))
		},
		maxTableSize,
		func(keys []ComparableOrString) [1]ComparableOrString { return [1]ComparableOrString(keys) },
	)
	return func(i1 I1) O1 {
		return tableized(i1)
	}
}

func TableizeI2O1[I1, I2 ComparableOrStringer, O1 any](
	pureFn func(I1, I2) O1,
	maxTableSize uint32,
) func(I1, I2) O1 {
	tableized := tableize(
		func(args ...ComparableOrStringer) O1 {
			return pureFn(args[0].(I1), args[1].(I2))
		},
		maxTableSize,
		func(keys []ComparableOrString) [2]ComparableOrString { return [2]ComparableOrString(keys) },
	)
	return func(i1 I1, i2 I2) O1 {
		return tableized(i1, i2)
	}
}

func TableizeI3O1[I1, I2, I3 ComparableOrStringer, O1 any](
	pureFn func(I1, I2, I3) O1,
	maxTableSize uint32,
) func(I1, I2, I3) O1 {
	tableized := tableize(
		func(args ...ComparableOrStringer) O1 {
			return pureFn(args[0].(I1), args[1].(I2), args[2].(I3))
		},
		maxTableSize,
		func(keys []ComparableOrString) [3]ComparableOrString { return [3]ComparableOrString(keys) },
	)
	return func(i1 I1, i2 I2, i3 I3) O1 {
		return tableized(i1, i2, i3)
	}
}

func TableizeI4O1[I1, I2, I3, I4 ComparableOrStringer, O1 any](
	pureFn func(I1, I2, I3, I4) O1,
	maxTableSize uint32,
) func(I1, I2, I3, I4) O1 {
	tableized := tableize(
		func(args ...ComparableOrStringer) O1 {
			return pureFn(args[0].(I1), args[1].(I2), args[2].(I3), args[3].(I4))
		},
		maxTableSize,
		func(keys []ComparableOrString) [4]ComparableOrString { return [4]ComparableOrString(keys) },
	)
	return func(i1 I1, i2 I2, i3 I3, i4 I4) O1 {
		return tableized(i1, i2, i3, i4)
	}
}

func tableKey(i ComparableOrStringer) ComparableOrString {
	if stringer, ok := i.(fmt.Stringer); ok {
		return stringer.String()
	}
	return i
}

type argsKey struct{}

// tableize memoizes pureFn on a MemoCache keyed by the tuple of table keys.
// The table key of a Stringer argument is its string, so the computation
// reads the caller's original arguments from the context of the call.
func tableize[T comparable, O any](
	pureFn func(...ComparableOrStringer) O,
	maxTableSize uint32,
	tuple func([]ComparableOrString) T,
) func(...ComparableOrStringer) O {
	if maxTableSize == 0 {
		panic("maxTableSize should be greater than 0")
	}
	memo := NewFunc(
		func(ctx context.Context, _ T) (O, error) {
			args := ctx.Value(argsKey{}).([]ComparableOrStringer)
			return pureFn(args...), nil
		},
		Options[T, O]{Capacity: int(maxTableSize)},
	)
	return func(args ...ComparableOrStringer) O {
		keys := make([]ComparableOrString, len(args))
		for i, arg := range args {
			keys[i] = tableKey(arg)
		}
		ctx := context.WithValue(context.Background(), argsKey{}, args)
		return callPure(ctx, memo, tuple(keys))
	}
}

// callPure looks key up in memo. The computation never fails and ctx never
// ends, so the only error is a panic of pureFn, which is re-raised with the
// value pureFn panicked with.
func callPure[T comparable, O any](ctx context.Context, memo *MemoCache[T, O], key T) O {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*PanicError); ok {
				panic(pe.Value)
			}
			panic(r)
		}
	}()
	v, err := memo.GetOrCompute(ctx, key)
	var pe *PanicError
	if errors.As(err, &pe) {
		panic(pe.Value)
	}
	return v
}
