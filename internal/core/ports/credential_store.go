package ports

import "context"

// CredentialStore is the full persistence surface backing the API. Each
// storage backend (mongo, sql) provides one.
type CredentialStore interface {
	Users() UserRepository
	Scores() ScoreRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
