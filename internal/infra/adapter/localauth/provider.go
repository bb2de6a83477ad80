// Package localauth is a self-hosted identity provider backed by a
// credentials table. It owns password hashes and session transitions;
// profile and role data live elsewhere and are resolved separately.
package localauth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"personal-site/internal/domain/entity"
	"personal-site/internal/service/identity"
)

// dummyHash is compared against when the email is unknown so that
// lookup misses and password mismatches take the same time.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// uniqueViolation is the SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

// Provider authenticates against locally stored bcrypt hashes and
// publishes every session transition on its identity stream.
type Provider struct {
	db     *sql.DB
	stream *identity.Stream
	cost   int
}

// New creates a provider over the credentials table using the default
// bcrypt cost.
func New(db *sql.DB) *Provider {
	return &Provider{db: db, stream: identity.NewStream(), cost: bcrypt.DefaultCost}
}

// Identities is the stream of session transitions for this provider.
func (p *Provider) Identities() *identity.Stream {
	return p.stream
}

// SignIn verifies the email/password pair. Unknown emails and wrong
// passwords are indistinguishable to the caller; both report
// entity.ErrInvalidCredentials.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*entity.Identity, error) {
	const query = `
SELECT id, password_hash
FROM credentials
WHERE email = $1
LIMIT 1`
	var id string
	var hash []byte
	err := p.db.QueryRowContext(ctx, query, email).Scan(&id, &hash)
	if err == sql.ErrNoRows {
		// Burn a comparison anyway to keep timing uniform.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, entity.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("SignIn: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	ident := &entity.Identity{ID: id, Email: email}
	p.stream.Publish(ident)
	return ident, nil
}

// SignUp registers a new account and signs it in. A duplicate email
// reports entity.ErrAccountExists.
func (p *Provider) SignUp(ctx context.Context, email, password string) (*entity.Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("SignUp: %w", err)
	}

	ident := &entity.Identity{ID: uuid.NewString(), Email: email}
	const query = `
INSERT INTO credentials (id, email, password_hash, created_at)
VALUES ($1, $2, $3, $4)`
	_, err = p.db.ExecContext(ctx, query, ident.ID, email, hash, time.Now().UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, entity.ErrAccountExists
		}
		return nil, fmt.Errorf("SignUp: %w", err)
	}

	p.stream.Publish(ident)
	return ident, nil
}

// SignOut ends the current session by publishing the signed-out state.
func (p *Provider) SignOut(ctx context.Context) error {
	p.stream.Publish(nil)
	return nil
}
