package purefn

func TableizeI1O2[I1 ComparableOrStringer, O1, O2 any](
	pureFn func(I1) (O1, O2),
	maxTableSize uint32,
) func(I1) (O1, O2) {
	tableized := tableizeDualOutput(
		func(args ...ComparableOrStringer) (O1, O2) {
			return pureFn(args[0].(I1))
		},
		maxTableSize,
		func(keys []ComparableOrString) [1]ComparableOrString { return [1]ComparableOrString(keys) },
	)
	return func(i1 I1) (O1, O2) {
		return tableized(i1)
	}
}

func TableizeI2O2[I1, I2 ComparableOrStringer, O1, O2 any](
	pureFn func(I1, I2) (O1, O2),
	maxTableSize uint32,
) func(I1, I2) (O1, O2) {
	tableized := tableizeDualOutput(
		func(args ...ComparableOrStringer) (O1, O2) {
			return pureFn(args[0].(I1), args[1].(I2))
		},
		maxTableSize,
		func(keys []ComparableOrString) [2]ComparableOrString { return [2]ComparableOrString(keys) },
	)
	return func(i1 I1, i2 I2) (O1, O2) {
		return tableized(i1, i2)
	}
}

func TableizeI3O2[I1, I2, I3 ComparableOrStringer, O1, O2 any](
	pureFn func(I1, I2, I3) (O1, O2),
	maxTableSize uint32,
) func(I1, I2, I3) (O1, O2) {
	tableized := tableizeDualOutput(
		func(args ...ComparableOrStringer) (O1, O2) {
			return pureFn(args[0].(I1), args[1].(I2), args[2].(I3))
		},
		maxTableSize,
		func(keys []ComparableOrString) [3]ComparableOrString { return [3]ComparableOrString(keys) },
	)
	return func(i1 I1, i2 I2, i3 I3) (O1, O2) {
		return tableized(i1, i2, i3)
	}
}

func TableizeI4O2[I1, I2, I3, I4 ComparableOrStringer, O1, O2 any](
	pureFn func(I1, I2, I3, I4) (O1, O2),
	maxTableSize uint32,
) func(I1, I2, I3, I4) (O1, O2) {
	tableized := tableizeDualOutput(
		func(args ...ComparableOrStringer) (O1, O2) {
			return pureFn(args[0].(I1), args[1].(I2), args[2].(I3), args[3].(I4))
		},
		maxTableSize,
		func(keys []ComparableOrString) [4]ComparableOrString { return [4]ComparableOrString(keys) },
	)
	return func(i1 I1, i2 I2, i3 I3, i4 I4) (O1, O2) {
		return tableized(i1, i2, i3, i4)
	}
}

type result[O1 any, O2 any] struct {
	O1 O1
	O2 O2
}

func tableizeDualOutput[T comparable, O1, O2 any](
	pureFn func(...ComparableOrStringer) (O1, O2),
	maxTableSize uint32,
	tuple func([]ComparableOrString) T,
) func(...ComparableOrStringer) (O1, O2) {
	tableized := tableize(
		func(args ...ComparableOrStringer) result[O1, O2] {
			v1, v2 := pureFn(args...)
			return result[O1, O2]{O1: v1, O2: v2}
		},
		maxTableSize,
		tuple,
	)
	return func(args ...ComparableOrStringer) (O1, O2) {
		res := tableized(args...)
		return res.O1, res.O2
	}
}
