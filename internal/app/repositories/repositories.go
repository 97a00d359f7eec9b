package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx operations shared by *pgxpool.Pool and pgx.Tx.
// Mutating repository methods take a Querier so services can compose them
// inside a single transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	ClassRepository        *ClassRepository
	ClassMemberRepository  *ClassMemberRepository
	InvitationRepository   *InvitationRepository
	PostRepository         *PostRepository
	SubmissionRepository   *SubmissionRepository
	NotificationRepository *NotificationRepository
	FileRepository         *FileRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
		ClassRepository:        NewClassRepository(db),
		ClassMemberRepository:  NewClassMemberRepository(db),
		InvitationRepository:   NewInvitationRepository(db),
		PostRepository:         NewPostRepository(db),
		SubmissionRepository:   NewSubmissionRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		FileRepository:         NewFileRepository(db),
	}
}
