package expr

import "math"

// constants are the named values every expression may use.
var constants = map[string]float64{
	"pi":  math.Pi,
	"tau": 2 * math.Pi,
	"e":   math.E,
	"phi": (1 + math.Sqrt(5)) / 2,
}

// builtin is a named function of fixed arity.
type builtin struct {
	name  string
	arity int
	fn    func(args []float64) (float64, error)
}

var builtins = map[string]*builtin{}

func init() {
	unary := map[string]func(float64) float64{
		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"sec":   func(x float64) float64 { return 1 / math.Cos(x) },
		"csc":   func(x float64) float64 { return 1 / math.Sin(x) },
		"cot":   func(x float64) float64 { return 1 / math.Tan(x) },
		"asin":  math.Asin,
		"acos":  math.Acos,
		"atan":  math.Atan,
		"sinh":  math.Sinh,
		"cosh":  math.Cosh,
		"tanh":  math.Tanh,
		"cbrt":  math.Cbrt,
		"exp":   math.Exp,
		"abs":   math.Abs,
		"floor": math.Floor,
		"ceil":  math.Ceil,
		"round": math.Round,
		"sign":  sign,
	}
	for name, fn := range unary {
		register(name, 1, liftUnary(fn))
	}
	register("sqrt", 1, func(a []float64) (float64, error) {
		if a[0] < 0 {
			return 0, domainError("sqrt", "negative argument")
		}
		return math.Sqrt(a[0]), nil
	})
	for name, fn := range map[string]func(float64) float64{
		"ln":    math.Log,
		"log":   math.Log,
		"log2":  math.Log2,
		"log10": math.Log10,
	} {
		register(name, 1, logarithm(name, fn))
	}

	register("atan2", 2, func(a []float64) (float64, error) { return math.Atan2(a[0], a[1]), nil })
	register("pow", 2, func(a []float64) (float64, error) { return pow(a[0], a[1]) })
	register("min", 2, func(a []float64) (float64, error) { return math.Min(a[0], a[1]), nil })
	register("max", 2, func(a []float64) (float64, error) { return math.Max(a[0], a[1]), nil })
	register("hypot", 2, func(a []float64) (float64, error) { return math.Hypot(a[0], a[1]), nil })
	register("mod", 2, func(a []float64) (float64, error) {
		if a[1] == 0 {
			return 0, domainError("mod", "division by zero")
		}
		return a[0] - a[1]*math.Floor(a[0]/a[1]), nil
	})
}

func register(name string, arity int, fn func([]float64) (float64, error)) {
	builtins[name] = &builtin{name: name, arity: arity, fn: fn}
}

func liftUnary(fn func(float64) float64) func([]float64) (float64, error) {
	return func(a []float64) (float64, error) {
		return fn(a[0]), nil
	}
}

func logarithm(name string, fn func(float64) float64) func([]float64) (float64, error) {
	return func(a []float64) (float64, error) {
		if a[0] <= 0 {
			return 0, domainError(name, "non-positive argument")
		}
		return fn(a[0]), nil
	}
}

func pow(x, y float64) (float64, error) {
	if x == 0 && y < 0 {
		return 0, domainError("^", "division by zero")
	}
	return math.Pow(x, y), nil
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return x // 0 or NaN
}

// isReserved reports whether name is a constant or a function name.
func isReserved(name string) bool {
	if _, ok := constants[name]; ok {
		return true
	}
	_, ok := builtins[name]
	return ok
}
