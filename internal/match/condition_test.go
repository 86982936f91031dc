package match

import (
	"testing"

	"football-sim/internal/match/vector"
)

func conditionContext(p *MatchPlayer) *StateContext {
	return &StateContext{Player: p, Match: testContext(1)}
}

// TestConditionDrainsUnderLoad verifies sustained sprinting costs condition.
func TestConditionDrainsUnderLoad(t *testing.T) {
	p := testPlayer(1, 1, 12)
	p.SetupOnField(PositionStriker, SideLeft)
	p.Velocity = vector.New2D(p.Skills.MaxSpeed(), 0)

	start := p.Attributes.Condition
	ctx := conditionContext(p)
	for i := 0; i < 1000; i++ {
		processConditions(ctx, IntensityVeryHigh)
	}

	if p.Attributes.Condition >= start {
		t.Errorf("Expected condition below %d after sprinting, got %d", start, p.Attributes.Condition)
	}
}

// TestConditionRecoversAtRest verifies a standing player regains condition.
func TestConditionRecoversAtRest(t *testing.T) {
	p := testPlayer(1, 1, 12)
	p.SetupOnField(PositionStriker, SideLeft)
	p.Attributes.Condition = 5000

	ctx := conditionContext(p)
	for i := 0; i < 1000; i++ {
		processConditions(ctx, IntensityRecovery)
	}

	if p.Attributes.Condition <= 5000 {
		t.Errorf("Expected recovery above 5000, got %d", p.Attributes.Condition)
	}
	if p.Attributes.Condition > MaxConditionValue {
		t.Errorf("Condition %d exceeds maximum", p.Attributes.Condition)
	}
}

// TestConditionNeverNegative verifies the floor holds under extreme drain.
func TestConditionNeverNegative(t *testing.T) {
	p := testPlayer(1, 1, 1)
	p.SetupOnField(PositionStriker, SideLeft)
	p.Attributes.Condition = 2
	p.Velocity = vector.New2D(p.Skills.MaxSpeed(), 0)

	ctx := conditionContext(p)
	for i := 0; i < 100; i++ {
		processConditions(ctx, IntensityVeryHigh)
	}

	if p.Attributes.Condition < 0 {
		t.Errorf("Condition went negative: %d", p.Attributes.Condition)
	}
}

// TestStaminaSoftensFatigue verifies higher stamina drains slower.
func TestStaminaSoftensFatigue(t *testing.T) {
	run := func(level float64) int {
		p := testPlayer(1, 1, level)
		p.SetupOnField(PositionStriker, SideLeft)
		p.Velocity = vector.New2D(p.Skills.MaxSpeed(), 0)
		ctx := conditionContext(p)
		for i := 0; i < 2000; i++ {
			processConditions(ctx, IntensityVeryHigh)
		}
		return p.Attributes.Condition
	}

	weak := run(5)
	strong := run(18)
	if strong <= weak {
		t.Errorf("Stamina 18 finished at %d, stamina 5 at %d; expected the fitter player fresher", strong, weak)
	}
}

// TestMaxSpeedWithConditionClamp verifies the speed factor floor at half
// speed.
func TestMaxSpeedWithConditionClamp(t *testing.T) {
	skills := uniformSkills(15)
	full := skills.MaxSpeedWithCondition(MaxConditionValue)
	empty := skills.MaxSpeedWithCondition(0)

	if full != skills.MaxSpeed() {
		t.Errorf("Full condition should give full speed: %f vs %f", full, skills.MaxSpeed())
	}
	if empty != skills.MaxSpeed()*0.5 {
		t.Errorf("Empty condition should give half speed, got %f", empty)
	}
}

// TestRestSaturates verifies half-time rest caps at the maximum.
func TestRestSaturates(t *testing.T) {
	attrs := PlayerAttributes{Condition: MaxConditionValue - 100}
	attrs.Rest(HalfTimeRestAmount)
	if attrs.Condition != MaxConditionValue {
		t.Errorf("Expected saturation at %d, got %d", MaxConditionValue, attrs.Condition)
	}
}
