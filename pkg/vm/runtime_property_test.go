package vm

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property-based tests for the evaluator's arithmetic, value semantics,
// and the clamp-on-set property policy.

func TestPropertyIntArithmeticMatchesInt32(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	in := newInstance(t, `
fn add(a: i32, b: i32) -> i32 { return a + b; }
fn sub(a: i32, b: i32) -> i32 { return a - b; }
fn mul(a: i32, b: i32) -> i32 { return a * b; }
`)

	properties := gopter.NewProperties(parameters)

	properties.Property("i32 arithmetic wraps like int32", prop.ForAll(
		func(a, b int32) bool {
			sum, err := in.Invoke("add", Int{a}, Int{b})
			if err != nil || sum != (Int{a + b}) {
				return false
			}
			diff, err := in.Invoke("sub", Int{a}, Int{b})
			if err != nil || diff != (Int{a - b}) {
				return false
			}
			product, err := in.Invoke("mul", Int{a}, Int{b})
			return err == nil && product == Int{a * b}
		},
		gen.Int32(),
		gen.Int32(),
	))

	properties.TestingRun(t)
}

func TestPropertyFieldWriteRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	in := newInstance(t, `
fn roundtrip(v: f32) -> f32 {
    let mut p: Vector2 = Vector2 { x: 0.0, y: 0.0 };
    p.x = v;
    return p.x;
}
`)

	properties := gopter.NewProperties(parameters)

	properties.Property("a single field write reads back exactly", prop.ForAll(
		func(v float32) bool {
			got, err := in.Invoke("roundtrip", Float{v})
			return err == nil && got == Float{v}
		},
		gen.Float32Range(-1e6, 1e6),
	))

	properties.TestingRun(t)
}

func TestPropertyStructCopiesNeverAlias(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	in := newInstance(t, `
fn original_after_copy_write(a_x: f32, b_x: f32) -> f32 {
    let mut a: Vector2 = Vector2 { x: a_x, y: 0.0 };
    let mut b: Vector2 = a;
    b.x = b_x;
    return a.x;
}
`)

	properties := gopter.NewProperties(parameters)

	properties.Property("writing a copy never changes the original", prop.ForAll(
		func(ax, bx float32) bool {
			got, err := in.Invoke("original_after_copy_write", Float{ax}, Float{bx})
			return err == nil && got == Float{ax}
		},
		gen.Float32Range(-1e6, 1e6),
		gen.Float32Range(-1e6, 1e6),
	))

	properties.TestingRun(t)
}

func TestPropertyClampOnSetStaysInBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	in := newInstance(t, `
@export_range(0.0, 1.0)
let mut volume: f32 = 0.5;
`)

	properties := gopter.NewProperties(parameters)

	properties.Property("set then get is always within the range hint", prop.ForAll(
		func(v float32) bool {
			if err := in.SetProperty("volume", Float{v}); err != nil {
				return false
			}
			got, err := in.GetProperty("volume")
			if err != nil {
				return false
			}
			f, ok := got.(Float)
			return ok && f.V >= 0.0 && f.V <= 1.0
		},
		gen.Float32Range(-100, 100),
	))

	properties.TestingRun(t)
}

func TestPropertyShortCircuitNeverRunsRightOperand(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("false && f() and true || f() skip the call", prop.ForAll(
		func(useAnd bool) bool {
			var src string
			if useAnd {
				src = "return false && tick();"
			} else {
				src = "return true || tick();"
			}
			in := newInstance(t, fmt.Sprintf(`
let mut ticks: i32 = 0;

fn tick() -> bool {
    ticks += 1;
    return true;
}

fn probe() -> bool {
    %s
}

fn tick_count() -> i32 {
    return ticks;
}
`, src))

			if _, err := in.Invoke("probe"); err != nil {
				return false
			}
			count, err := in.Invoke("tick_count")
			return err == nil && count == Int{0}
		},
		gen.Bool(),
	))

	properties.TestingRun(t)
}
