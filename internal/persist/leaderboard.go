package persist

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"rallyball/internal/game"
)

const matchCollection = "matches"

// MatchRecord is a persisted completed match.
type MatchRecord struct {
	Winner      string            `json:"winner"      bson:"winner"`
	Loser       string            `json:"loser"       bson:"loser"`
	WinnerScore int               `json:"winnerScore" bson:"winner_score"`
	LoserScore  int               `json:"loserScore"  bson:"loser_score"`
	Mode        string            `json:"mode"        bson:"mode"`
	Flavors     game.MatchFlavors `json:"flavors"     bson:"flavors"`
	Cue         string            `json:"cue"         bson:"cue"`
	Value       int               `json:"value"       bson:"value"`
	FinishedAt  time.Time         `json:"finishedAt"  bson:"finished_at"`
}

// WinTally is one aggregated leaderboard row.
type WinTally struct {
	Name       string `json:"name"  bson:"_id"`
	Wins       int64  `json:"wins"  bson:"wins"`
	TotalValue int64  `json:"totalValue" bson:"total_value"`
}

// Leaderboard stores completed matches and serves ranking queries.
type Leaderboard struct {
	db *mongo.Database
}

// NewLeaderboard creates a leaderboard over the store's database.
func NewLeaderboard(store *Store) *Leaderboard {
	return &Leaderboard{db: store.DB()}
}

// InsertMatch appends one completed match.
func (l *Leaderboard) InsertMatch(ctx context.Context, rec MatchRecord) error {
	if rec.FinishedAt.IsZero() {
		rec.FinishedAt = time.Now().UTC()
	}
	if _, err := l.db.Collection(matchCollection).InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

// TopMatches returns the most valuable matches, newest first on ties.
func (l *Leaderboard) TopMatches(ctx context.Context, limit int) ([]MatchRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "value", Value: -1}, {Key: "finished_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := l.db.Collection(matchCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("query top matches: %w", err)
	}
	defer cur.Close(ctx)

	var out []MatchRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode top matches: %w", err)
	}
	return out, nil
}

// WinTallies folds all persisted matches into per-player win counts and
// accumulated value, ranked by wins.
func (l *Leaderboard) WinTallies(ctx context.Context, limit int) ([]WinTally, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$winner"},
			{Key: "wins", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total_value", Value: bson.D{{Key: "$sum", Value: "$value"}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "wins", Value: -1},
			{Key: "total_value", Value: -1},
			{Key: "_id", Value: 1},
		}}},
		{{Key: "$limit", Value: limit}},
	}

	cur, err := l.db.Collection(matchCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate win tallies: %w", err)
	}
	defer cur.Close(ctx)

	var out []WinTally
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode win tallies: %w", err)
	}
	return out, nil
}

// RecordFromPayload maps a finished-match event payload to a record.
func RecordFromPayload(p game.MatchOverPayload, mode string) MatchRecord {
	return MatchRecord{
		Winner:      p.Winner,
		Loser:       p.Loser,
		WinnerScore: p.WinnerScore,
		LoserScore:  p.LoserScore,
		Mode:        mode,
		Flavors:     p.Flavors,
		Cue:         p.Cue,
		Value:       p.Value,
		FinishedAt:  time.Now().UTC(),
	}
}
