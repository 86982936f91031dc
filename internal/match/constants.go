package match

// Field geometry. Pitch-plane coordinates are engine units with the origin at
// the top-left corner; Z is height in meters.
const (
	FieldWidth  = 840.0
	FieldHeight = 545.0

	// Goal mouth extends GoalMouthHalfWidth either side of the field centerline.
	GoalMouthHalfWidth = 60.0
	CrossbarHeight     = 2.44
)

// Timekeeping. The clock is virtual; one loop iteration advances it by one
// tick regardless of wall time.
const (
	TickIntervalMs     uint64 = 10
	HalfDurationMs     uint64 = 45 * 60 * 1000
	HalfTimeRestAmount        = 1000
)

// Ball ownership and flight.
const (
	NoOwner = -1

	BallClaimDistance = 5.0

	// in-flight countdowns, in ticks; while positive the ball cannot change owner
	PassFlightTicks  = 10
	ClaimFlightTicks = 30
	GainFlightTicks  = 100
	ShotFlightTicks  = 100

	PassForceMultiplier = 4.0
)

// Condition bounds; condition, fitness and jadedness all live in [0, 10000].
const (
	MaxConditionValue = 10000
	MaxJadednessValue = 10000
)

// Substitutions.
const (
	MaxSubstitutions           = 3
	SubCheckIntervalMs         = uint64(15 * 60 * 1000)
	GoalkeeperSubThreshold     = 2000
	OutfieldSubThreshold       = 5000
	HalfTimeConditionThreshold = 6000
)
