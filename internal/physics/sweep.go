package physics

// Sweep samples f at n evenly spaced points on [from, to].
func Sweep(f func(float64) float64, from, to float64, n int) (xs, ys []float64) {
	if n < 2 {
		n = 2
	}
	xs = make([]float64, n)
	ys = make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := 0; i < n; i++ {
		x := from + float64(i)*step
		xs[i] = x
		ys[i] = f(x)
	}
	return xs, ys
}
