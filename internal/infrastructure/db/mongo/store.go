package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yol1/scoring-system/internal/core/ports"
)

// Store implements ports.CredentialStore on top of a MongoDB database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	users  *UserRepository
	scores *ScoreRepository
}

// Open connects to MongoDB and makes sure the unique indexes exist.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	client, db, err := Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s := NewStore(client, db)
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func NewStore(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		client: client,
		db:     db,
		users:  NewUserRepository(db),
		scores: NewScoreRepository(db),
	}
}

func (s *Store) Users() ports.UserRepository { return s.users }
func (s *Store) Scores() ports.ScoreRepository { return s.scores }

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique index on users.external_id. Scores are
// keyed by _id and need no extra index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.users.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "external_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_external_id"),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}
	return nil
}
