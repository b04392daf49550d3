package motion

import (
	"testing"
	"time"

	"go.viam.com/test"

	"motion-logger/utils"
)

const tick = 100 * time.Millisecond

func TestParseKind(t *testing.T) {
	for name, want := range map[string]Kind{"circle": Circle, "SPIRAL": Spiral, " Line ": Line} {
		k, ok := ParseKind(name)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, k, test.ShouldEqual, want)
	}
	k, ok := ParseKind("figure8")
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, k, test.ShouldEqual, Circle)
	test.That(t, Unset.String(), test.ShouldEqual, "unset")
}

func TestNewProfileUnset(t *testing.T) {
	_, err := NewProfile(Unset, utils.DefaultConfig().Motion, tick)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "motion type not set")
}

func TestCircle(t *testing.T) {
	p, err := NewProfile(Circle, utils.DefaultConfig().Motion, tick)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Name(), test.ShouldEqual, "circle")
	for i := 0; i < 3; i++ {
		tw := p.Next()
		test.That(t, tw.Linear.X, test.ShouldEqual, 0.3)
		test.That(t, tw.Angular.Z, test.ShouldEqual, 0.6)
	}
}

func TestSpiralShrinksThenStops(t *testing.T) {
	p, err := NewProfile(Spiral, utils.DefaultConfig().Motion, tick)
	test.That(t, err, test.ShouldBeNil)

	first := p.Next()
	test.That(t, first.Linear.X, test.ShouldEqual, 0.5)
	test.That(t, first.Angular.Z, test.ShouldAlmostEqual, 0.5)

	// after 10 ticks (1 s) the radius is 0.95
	for i := 0; i < 9; i++ {
		p.Next()
	}
	tw := p.Next()
	test.That(t, tw.Angular.Z, test.ShouldAlmostEqual, 0.5/0.95, 1e-9)

	// radius reaches zero at 20 s
	for i := 0; i < 195; i++ {
		p.Next()
	}
	test.That(t, p.Next().IsZero(), test.ShouldBeTrue)
	test.That(t, p.Next().IsZero(), test.ShouldBeTrue)
}

func TestLine(t *testing.T) {
	cfg := utils.DefaultConfig().Motion
	p, err := NewProfile(Line, cfg, tick)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Next().Linear.X, test.ShouldEqual, 0.3)
	test.That(t, p.Next().Linear.X, test.ShouldEqual, 0.3)
	test.That(t, p.Next().Angular.Z, test.ShouldEqual, 0.0)

	cfg.Line.Acceleration = 1
	cfg.Line.Max = 0.5
	p, err = NewProfile(Line, cfg, tick)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Next().Linear.X, test.ShouldAlmostEqual, 0.3)
	test.That(t, p.Next().Linear.X, test.ShouldAlmostEqual, 0.4)
	test.That(t, p.Next().Linear.X, test.ShouldAlmostEqual, 0.5)
	test.That(t, p.Next().Linear.X, test.ShouldAlmostEqual, 0.5)
}
