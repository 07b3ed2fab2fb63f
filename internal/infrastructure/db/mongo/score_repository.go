package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yol1/scoring-system/internal/core/domain"
)

const collectionScores = "scores"

type ScoreRepository struct {
	coll *mongo.Collection
}

func NewScoreRepository(db *mongo.Database) *ScoreRepository {
	return &ScoreRepository{coll: db.Collection(collectionScores)}
}

// The code doubles as the document _id, so the primary key enforces uniqueness.
type mongoScore struct {
	Code      string `bson:"_id"`
	Value     int    `bson:"value"`
	CreatedAt int64  `bson:"created_at"`
}

// Create inserts a new score document. A duplicate code is reported as
// domain.ErrScoreExists and leaves the stored document untouched.
func (r *ScoreRepository) Create(ctx context.Context, s *domain.Score) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, mongoScore{Code: s.Code, Value: s.Value, CreatedAt: s.CreatedAt.Unix()})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrScoreExists
		}
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

func (r *ScoreRepository) FindByCode(ctx context.Context, code string) (*domain.Score, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoScore
	if err := r.coll.FindOne(ctx, bson.M{"_id": code}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrScoreNotFound
		}
		return nil, fmt.Errorf("find score: %w", err)
	}
	return toDomainScore(ms), nil
}

// List returns every score ordered by code.
func (r *ScoreRepository) List(ctx context.Context) ([]domain.Score, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoScore
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}

	scores := make([]domain.Score, 0, len(docs))
	for _, d := range docs {
		scores = append(scores, *toDomainScore(d))
	}
	return scores, nil
}

func toDomainScore(ms mongoScore) *domain.Score {
	return &domain.Score{Code: ms.Code, Value: ms.Value, CreatedAt: unixToTime(ms.CreatedAt)}
}
