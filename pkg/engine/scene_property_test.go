package engine

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dev-parkins/FerrisScript-sub008/pkg/vm"
)

// Property-based tests for scene update dispatch.

func TestPropertyUpdateAccumulatesDeltas(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("position integrates the sum of deltas", prop.ForAll(
		func(deltas []float32) bool {
			scene := NewScene()
			node, err := scene.Attach("integrator", compileSource(t, `
fn _process(delta: f32) {
    self.position.x += delta;
}
`))
			if err != nil {
				return false
			}

			var want float32
			for _, d := range deltas {
				if scene.Update(d) != nil {
					return false
				}
				want += d
			}
			return node.Position().X == want
		},
		gen.SliceOf(gen.Float32Range(0, 0.1)),
	))

	properties.TestingRun(t)
}

func TestPropertyDetachedNodesNeverRun(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	properties.Property("updates after detach leave the node untouched", prop.ForAll(
		func(before, after uint8) bool {
			scene := NewScene()
			node, err := scene.Attach("transient", compileSource(t, `
fn _process(delta: f32) {
    self.position.x += 1.0;
}
`))
			if err != nil {
				return false
			}

			for i := 0; i < int(before); i++ {
				if scene.Update(0.016) != nil {
					return false
				}
			}
			if scene.Detach(node) != nil {
				return false
			}
			frozen := node.Position()

			for i := 0; i < int(after); i++ {
				if scene.Update(0.016) != nil {
					return false
				}
			}
			return node.Position() == frozen && frozen == (vm.Vector2{X: float32(before), Y: 0})
		},
		gen.UInt8Range(0, 20),
		gen.UInt8Range(1, 20),
	))

	properties.TestingRun(t)
}
