package integrators

import "testing"

func benchmarkStep(b *testing.B, m Method, n, workers int) {
	bodies := ring(n)
	s, err := NewStepper(m, workers)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Step(bodies, 1); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEuler(b *testing.B)           { benchmarkStep(b, Euler, 10, 1) }
func BenchmarkEulerCromer(b *testing.B)     { benchmarkStep(b, EulerCromer, 10, 1) }
func BenchmarkEulerRichardson(b *testing.B) { benchmarkStep(b, EulerRichardson, 10, 1) }
func BenchmarkVerlet(b *testing.B)          { benchmarkStep(b, Verlet, 10, 1) }

func BenchmarkVerlet_NBody256(b *testing.B)         { benchmarkStep(b, Verlet, 256, 1) }
func BenchmarkVerlet_NBody256Parallel(b *testing.B) { benchmarkStep(b, Verlet, 256, 4) }
