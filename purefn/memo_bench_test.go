package purefn_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/on-the-ground/memo_ive_go/purefn"
)

func naiveFib(n int) int {
	if n <= 1 {
		return n
	}
	return naiveFib(n-1) + naiveFib(n-2)
}

func BenchmarkFib(b *testing.B) {
	b.Run("naive", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = naiveFib(20)
		}
	})
	b.Run("tableized", func(b *testing.B) {
		var fib func(int) int
		fib = purefn.TableizeI1O1(func(n int) int {
			if n <= 1 {
				return n
			}
			return fib(n-1) + fib(n-2)
		}, 32)
		for i := 0; i < b.N; i++ {
			_ = fib(20)
		}
	})
}

func naiveEditDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if a[0] == b[0] {
		return naiveEditDistance(a[1:], b[1:])
	}
	return 1 + min(
		naiveEditDistance(a[1:], b),
		naiveEditDistance(a, b[1:]),
		naiveEditDistance(a[1:], b[1:]),
	)
}

func BenchmarkEditDistance(b *testing.B) {
	b.Run("naive", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = naiveEditDistance("kitten", "sitting")
		}
	})
	for _, size := range []uint32{2, 8, 64} {
		b.Run(fmt.Sprintf("table_%d", size), func(b *testing.B) {
			var dist func(string, string) int
			dist = purefn.TableizeI2O1(func(x, y string) int {
				if len(x) == 0 {
					return len(y)
				}
				if len(y) == 0 {
					return len(x)
				}
				if x[0] == y[0] {
					return dist(x[1:], y[1:])
				}
				return 1 + min(dist(x[1:], y), dist(x, y[1:]), dist(x[1:], y[1:]))
			}, size)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = dist("kitten", "sitting")
			}
		})
	}
}

type point struct {
	X, Y float64
}

func BenchmarkGetOrCompute(b *testing.B) {
	norm := func(_ context.Context, p point) (float64, error) {
		return math.Hypot(p.X, p.Y), nil
	}

	for _, shards := range []int{1, purefn.DefaultShards} {
		b.Run(fmt.Sprintf("shards_%d", shards), func(b *testing.B) {
			memo := purefn.NewFunc(norm, purefn.Options[point, float64]{Shards: shards})
			ctx := context.Background()
			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				i := 0
				for pb.Next() {
					_, _ = memo.GetOrCompute(ctx, point{X: float64(i % 256), Y: 1})
					i++
				}
			})
		})
	}

	b.Run("bounded", func(b *testing.B) {
		memo := purefn.NewFunc(norm, purefn.Options[point, float64]{Capacity: 64})
		ctx := context.Background()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = memo.GetOrCompute(ctx, point{X: float64(i % 512), Y: 2})
		}
	})
}
