package game

import (
	"encoding/json"
	"time"
)

// EventType enum for event classification
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeWallBounce
	EventTypePaddleHit
	EventTypeBlockHit
	EventTypeBlockSpawn
	EventTypeCountdown
	EventTypeLaunch
	EventTypeRallyMilestone
	EventTypeHighSpeed
	EventTypeScore
	EventTypeMatchOver
	EventTypePauseToggle
	EventTypeMatchStart
)

// EventVersion for backwards compatibility in replay
const EventVersion uint8 = 1

// Event is one semantic occurrence inside a tick. The slice returned by
// Session.Tick is everything the audio, persistence and spectator
// collaborators get to see; none of them are called from inside the core.
type Event struct {
	Version   uint8     `json:"version"`
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"` // Unix nano
	Sequence  uint64    `json:"sequence"`  // Monotonic, assigned by the log
	TickNum   uint64    `json:"tickNum"`
	Payload   []byte    `json:"payload"` // JSON-encoded payload
}

// String returns human-readable event type
func (t EventType) String() string {
	switch t {
	case EventTypeWallBounce:
		return "wall_bounce"
	case EventTypePaddleHit:
		return "paddle_hit"
	case EventTypeBlockHit:
		return "block_hit"
	case EventTypeBlockSpawn:
		return "block_spawn"
	case EventTypeCountdown:
		return "countdown"
	case EventTypeLaunch:
		return "launch"
	case EventTypeRallyMilestone:
		return "rally_milestone"
	case EventTypeHighSpeed:
		return "high_speed"
	case EventTypeScore:
		return "score"
	case EventTypeMatchOver:
		return "match_over"
	case EventTypePauseToggle:
		return "pause_toggle"
	case EventTypeMatchStart:
		return "match_start"
	default:
		return "unknown"
	}
}

// Typed payloads for different event types

// WallBouncePayload records a top/bottom wall contact.
type WallBouncePayload struct {
	Y       float64 `json:"y"`
	Counted bool    `json:"counted"` // false for pre-serve bounces
}

// PaddleHitPayload records a paddle return.
type PaddleHitPayload struct {
	Side       string  `json:"side"`
	PaddleHits int     `json:"paddleHits"`
	BallSpeed  float64 `json:"ballSpeed"`
	Angle      float64 `json:"angle"`
}

// BlockHitPayload records the ball deflecting off an obstacle block.
type BlockHitPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BlockSpawnPayload records a spawner invocation.
type BlockSpawnPayload struct {
	Spawned int `json:"spawned"`
	Evicted int `json:"evicted"`
	OnField int `json:"onField"`
}

// CountdownPayload records a countdown step boundary.
type CountdownPayload struct {
	Remaining int `json:"remaining"`
}

// LaunchPayload records the serve at the end of a countdown.
type LaunchPayload struct {
	Direction string  `json:"direction"` // side the ball travels toward
	Speed     float64 `json:"speed"`
}

// RallyMilestonePayload fires at the one-shot celebratory hit counts.
type RallyMilestonePayload struct {
	Name       string `json:"name"` // "eleganto" or "yameroo"
	PaddleHits int    `json:"paddleHits"`
}

// HighSpeedPayload fires once per rally when the ball first reaches the
// high-speed mark.
type HighSpeedPayload struct {
	BallSpeed float64 `json:"ballSpeed"`
}

// ScorePayload records a completed point.
type ScorePayload struct {
	Scorer     string `json:"scorer"`
	Flavor     string `json:"flavor"` // "no_scope", "pong_point" or "plain"
	ScoreLeft  int    `json:"scoreLeft"`
	ScoreRight int    `json:"scoreRight"`
}

// MatchOverPayload records a resolved match with every classifier flag plus
// the single top-priority announcement cue.
type MatchOverPayload struct {
	Winner      string       `json:"winner"`
	Loser       string       `json:"loser"`
	WinnerScore int          `json:"winnerScore"`
	LoserScore  int          `json:"loserScore"`
	Flavors     MatchFlavors `json:"flavors"`
	Cue         string       `json:"cue"`
	Value       int          `json:"value"` // leaderboard value for persistence
}

// PauseTogglePayload records a pause gate flip.
type PauseTogglePayload struct {
	Paused bool `json:"paused"`
}

// MatchStartPayload records a new match beginning.
type MatchStartPayload struct {
	Mode    string `json:"mode"`
	P1Name  string `json:"p1Name"`
	P2Name  string `json:"p2Name"`
	RNGSeed int64  `json:"rngSeed"`
}

// EncodePayload marshals a payload to JSON bytes
func EncodePayload(payload interface{}) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

// NewEvent creates a new event with the current timestamp
func NewEvent(eventType EventType, tickNum uint64, payload interface{}) Event {
	return Event{
		Version:   EventVersion,
		Type:      eventType,
		Timestamp: time.Now().UnixNano(),
		TickNum:   tickNum,
		Payload:   EncodePayload(payload),
	}
}
