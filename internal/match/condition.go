package match

// ActivityIntensity classifies how demanding the current state is,
// independent of actual movement speed.
type ActivityIntensity int

const (
	IntensityRecovery ActivityIntensity = iota
	IntensityLow
	IntensityModerate
	IntensityHigh
	IntensityVeryHigh
)

// costFactor is the normalized energy cost of an intensity class.
func (i ActivityIntensity) costFactor() float64 {
	switch i {
	case IntensityRecovery:
		return 0.0
	case IntensityLow:
		return 0.2
	case IntensityModerate:
		return 0.5
	case IntensityHigh:
		return 0.8
	default:
		return 1.0
	}
}

const (
	fatigueRateMultiplier  = 0.267
	recoveryRateMultiplier = 0.333
	jadednessRatePerTick   = 0.01
)

// conditionAccumulator collects fractional per-tick condition changes until
// they amount to whole points.
type conditionAccumulator struct {
	fatigue   float64
	recovery  float64
	jadedness float64
}

// processConditions applies one tick of fatigue or recovery. The cost blends
// actual movement (75%) with the state's intensity class (25%); stamina and
// natural fitness soften it, jadedness amplifies it.
func processConditions(ctx *StateContext, intensity ActivityIntensity) {
	p := ctx.Player
	attrs := &p.Attributes

	maxSpeed := p.Skills.MaxSpeed()
	speedRatio := 0.0
	if maxSpeed > 1e-9 {
		speedRatio = clampFloat(p.Velocity.Norm2D()/maxSpeed, 0, 1)
	}

	if intensity == IntensityRecovery && speedRatio < 0.1 {
		recover := recoveryRateMultiplier * (0.5 + 0.5*skillUnit(p.Skills.Physical.NaturalFitness))
		recover *= 1.0 - 0.5*float64(attrs.Jadedness)/float64(MaxJadednessValue)
		p.condAccum.recovery += recover
		if p.condAccum.recovery >= 1 {
			whole := int(p.condAccum.recovery)
			p.condAccum.recovery -= float64(whole)
			attrs.Rest(whole)
		}
		return
	}

	cost := (0.75*speedRatio + 0.25*intensity.costFactor()) * fatigueRateMultiplier
	cost *= 1.2 - 0.4*skillUnit(p.Skills.Physical.Stamina)
	cost *= 1.0 + 0.3*float64(attrs.Jadedness)/float64(MaxJadednessValue)

	p.condAccum.fatigue += cost
	if p.condAccum.fatigue >= 1 {
		whole := int(p.condAccum.fatigue)
		p.condAccum.fatigue -= float64(whole)
		attrs.Condition -= whole
		if attrs.Condition < 0 {
			attrs.Condition = 0
		}
	}

	if intensity >= IntensityHigh {
		p.condAccum.jadedness += jadednessRatePerTick * (1.2 - 0.4*skillUnit(p.Skills.Physical.NaturalFitness))
		if p.condAccum.jadedness >= 1 {
			whole := int(p.condAccum.jadedness)
			p.condAccum.jadedness -= float64(whole)
			attrs.Jadedness += whole
			if attrs.Jadedness > MaxJadednessValue {
				attrs.Jadedness = MaxJadednessValue
			}
		}
	}
}
