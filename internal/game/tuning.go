package game

import "math"

// Arena geometry. Matches the 720p canvas used by the renderer and stream
// collaborators, so core coordinates map 1:1 to pixels.
const (
	ArenaWidth  = 1280.0
	ArenaHeight = 720.0

	PaddleWidth  = 18.0
	PaddleHeight = 110.0
	PaddleMargin = 28.0 // gap between wall and paddle back face
	PaddleSpeed  = 9.0  // px per tick while a control is held

	BallHalf = 7.0 // half extent of the square ball hull

	BlockWidth  = 26.0
	BlockHeight = 64.0
)

// Ball speed progression.
const (
	BaseSpeedClassic  = 7.0
	BaseSpeedHardcore = 9.5
	SpeedIncrement    = 0.6
	MaxBallSpeed      = 16.0
	HighSpeedMark     = 13.0

	RallyHitsThreshold  = 4 // first speed-up at this many paddle hits
	RallyHitsInterval   = 2 // further speed-ups every N hits beyond the threshold
	MaxProgressionScore = 6 // progression freezes once total score reaches this

	RallyElegantoHits = 10
	RallyYamerooHits  = 16
)

// Bounce geometry.
const (
	MaxBounceAngle   = math.Pi / 3 // 60 degrees at the paddle edge
	StraightAngleEps = 0.1         // radians; hits flatter than this count as straight
	StraightHitLimit = 4           // straight volleys before a forced deflection
	ForcedDeflection = 0.35        // radians, random sign
	CollisionEps     = 0.01        // push-out slack so contacts don't re-trigger
)

// Match rules.
const (
	BaseWinningScore = 5
	WinByMargin      = 2
	CountdownSteps   = 3 // seconds of countdown before each serve
)

// Block spawning.
const (
	PointsToStartBlocks = 2
	MaxBlocksOnScreen   = 4
	BlockPlaceAttempts  = 10
	BlockVerticalGap    = BlockHeight + 5 // min center distance between block rows
	BlockBandLeft       = ArenaWidth * 0.35
	BlockBandRight      = ArenaWidth * 0.65
)

// Cascade spawn probabilities, each conditional on the previous flip.
const (
	CascadeSecondChance = 0.8
	CascadeThirdChance  = 0.4
	CascadeFourthChance = 0.1
)

// Cosmetic rotation telemetry. The board twist itself is rendered (or not) by
// collaborators; the core only accumulates the delta.
const MaxRotationKick = 12.0 // degrees per qualifying hit, random sign/magnitude
