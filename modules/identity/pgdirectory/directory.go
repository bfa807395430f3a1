package pgdirectory

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inventorly/identity/modules/identity"
	"github.com/inventorly/identity/pkg/pg"
)

// baseColumns are the non-secret fields every lookup returns. Secret
// material is appended per query only when the caller asked for it.
const baseColumns = `id, first_name, last_name, primary_email, backup_email,
	is_primary_email_verified, is_backup_email_verified, created_at, updated_at`

// Directory implements identity.Directory on a pgx connection pool.
type Directory struct {
	pool *pgxpool.Pool
}

// New creates a Directory backed by the given pool.
func New(pool *pgxpool.Pool) *Directory {
	return &Directory{pool: pool}
}

// row is the scan target; nullable columns go through pointers and collapse
// to zero values on the way out.
type row struct {
	id                     int64
	firstName, lastName    string
	primaryEmail           string
	backupEmail            *string
	primaryVerified        bool
	backupVerified         bool
	createdAt, updatedAt   time.Time
	passwordHash           *string
	refreshTokenHash       *string
	resetToken             *string
	resetExpiresAt         *time.Time
	verificationToken      *string
	verificationExpiresAt  *time.Time
	backupVerifToken       *string
	backupVerifExpiresAt   *time.Time
}

func (r *row) principal() *identity.Principal {
	p := &identity.Principal{
		ID:                     r.id,
		FirstName:              r.firstName,
		LastName:               r.lastName,
		PrimaryEmail:           r.primaryEmail,
		IsPrimaryEmailVerified: r.primaryVerified,
		IsBackupEmailVerified:  r.backupVerified,
		CreatedAt:              r.createdAt,
		UpdatedAt:              r.updatedAt,
		ResetExpiresAt:         r.resetExpiresAt,
	}
	if r.backupEmail != nil {
		p.BackupEmail = *r.backupEmail
	}
	if r.passwordHash != nil {
		p.PasswordHash = *r.passwordHash
	}
	if r.refreshTokenHash != nil {
		p.RefreshTokenHash = *r.refreshTokenHash
	}
	if r.resetToken != nil {
		p.ResetToken = *r.resetToken
	}
	if r.verificationToken != nil {
		p.PrimaryVerificationToken = *r.verificationToken
	}
	p.PrimaryVerificationExpiresAt = r.verificationExpiresAt
	if r.backupVerifToken != nil {
		p.BackupVerificationToken = *r.backupVerifToken
	}
	p.BackupVerificationExpiresAt = r.backupVerifExpiresAt
	return p
}

func (r *row) baseDest() []any {
	return []any{
		&r.id, &r.firstName, &r.lastName, &r.primaryEmail, &r.backupEmail,
		&r.primaryVerified, &r.backupVerified, &r.createdAt, &r.updatedAt,
	}
}

func (d *Directory) queryOne(ctx context.Context, query string, args []any, extra func(*row) []any) (*identity.Principal, error) {
	var r row
	dest := r.baseDest()
	if extra != nil {
		dest = append(dest, extra(&r)...)
	}

	if err := d.pool.QueryRow(ctx, query, args...).Scan(dest...); err != nil {
		if pg.IsNotFoundError(err) {
			return nil, identity.ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("pgdirectory: query failed: %w", err)
	}
	return r.principal(), nil
}

func (d *Directory) FindByPrimaryEmail(ctx context.Context, email string, withPasswordHash bool) (*identity.Principal, error) {
	if withPasswordHash {
		query := `SELECT ` + baseColumns + `, password_hash FROM principals WHERE primary_email = $1`
		return d.queryOne(ctx, query, []any{email}, func(r *row) []any {
			return []any{&r.passwordHash}
		})
	}
	query := `SELECT ` + baseColumns + ` FROM principals WHERE primary_email = $1`
	return d.queryOne(ctx, query, []any{email}, nil)
}

func (d *Directory) FindByBackupEmail(ctx context.Context, email string) (*identity.Principal, error) {
	query := `SELECT ` + baseColumns + ` FROM principals WHERE backup_email = $1`
	return d.queryOne(ctx, query, []any{email}, nil)
}

func (d *Directory) FindByID(ctx context.Context, id int64, withRefreshHash bool) (*identity.Principal, error) {
	if withRefreshHash {
		query := `SELECT ` + baseColumns + `, refresh_token_hash FROM principals WHERE id = $1`
		return d.queryOne(ctx, query, []any{id}, func(r *row) []any {
			return []any{&r.refreshTokenHash}
		})
	}
	query := `SELECT ` + baseColumns + ` FROM principals WHERE id = $1`
	return d.queryOne(ctx, query, []any{id}, nil)
}

func (d *Directory) FindByResetToken(ctx context.Context, token string) (*identity.Principal, error) {
	query := `SELECT ` + baseColumns + `, reset_token, reset_expires_at
		FROM principals WHERE reset_token = $1`
	return d.queryOne(ctx, query, []any{token}, func(r *row) []any {
		return []any{&r.resetToken, &r.resetExpiresAt}
	})
}

func (d *Directory) FindByVerificationToken(ctx context.Context, token string, primary bool) (*identity.Principal, error) {
	if primary {
		query := `SELECT ` + baseColumns + `, primary_verification_token, primary_verification_expires_at
			FROM principals WHERE primary_verification_token = $1`
		return d.queryOne(ctx, query, []any{token}, func(r *row) []any {
			return []any{&r.verificationToken, &r.verificationExpiresAt}
		})
	}
	query := `SELECT ` + baseColumns + `, backup_verification_token, backup_verification_expires_at
		FROM principals WHERE backup_verification_token = $1`
	return d.queryOne(ctx, query, []any{token}, func(r *row) []any {
		return []any{&r.backupVerifToken, &r.backupVerifExpiresAt}
	})
}

func (d *Directory) Create(ctx context.Context, p *identity.Principal) error {
	var backupEmail *string
	if p.BackupEmail != "" {
		backupEmail = &p.BackupEmail
	}

	query := `INSERT INTO principals (first_name, last_name, primary_email, backup_email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := d.pool.QueryRow(ctx, query,
		p.FirstName, p.LastName, p.PrimaryEmail, backupEmail, p.PasswordHash,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return identity.ErrEmailTaken
		}
		return fmt.Errorf("pgdirectory: insert failed: %w", err)
	}
	return nil
}

func (d *Directory) SetRefreshTokenHash(ctx context.Context, id int64, hash string) error {
	return d.exec(ctx,
		`UPDATE principals SET refresh_token_hash = $2, updated_at = now() WHERE id = $1`,
		id, hash)
}

func (d *Directory) ClearRefreshTokenHash(ctx context.Context, id int64) error {
	return d.exec(ctx,
		`UPDATE principals SET refresh_token_hash = NULL, updated_at = now() WHERE id = $1`,
		id)
}

func (d *Directory) SetResetToken(ctx context.Context, id int64, token string, expiresAt time.Time) error {
	return d.exec(ctx,
		`UPDATE principals SET reset_token = $2, reset_expires_at = $3, updated_at = now() WHERE id = $1`,
		id, token, expiresAt)
}

// ConsumeResetToken swaps the password hash and clears the token in one
// conditional UPDATE; rows affected tells the caller whether this consumer
// won the race.
func (d *Directory) ConsumeResetToken(ctx context.Context, token, newPasswordHash string) (bool, error) {
	tag, err := d.pool.Exec(ctx,
		`UPDATE principals
		SET password_hash = $2, reset_token = NULL, reset_expires_at = NULL, updated_at = now()
		WHERE reset_token = $1`,
		token, newPasswordHash)
	if err != nil {
		return false, fmt.Errorf("pgdirectory: update failed: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (d *Directory) SetVerificationToken(ctx context.Context, id int64, token string, expiresAt time.Time, primary bool) error {
	if primary {
		return d.exec(ctx,
			`UPDATE principals
			SET primary_verification_token = $2, primary_verification_expires_at = $3, updated_at = now()
			WHERE id = $1`,
			id, token, expiresAt)
	}
	return d.exec(ctx,
		`UPDATE principals
		SET backup_verification_token = $2, backup_verification_expires_at = $3, updated_at = now()
		WHERE id = $1`,
		id, token, expiresAt)
}

func (d *Directory) ConsumeVerificationToken(ctx context.Context, token string, primary bool) (bool, error) {
	query := `UPDATE principals
		SET is_primary_email_verified = TRUE, primary_verification_token = NULL,
			primary_verification_expires_at = NULL, updated_at = now()
		WHERE primary_verification_token = $1`
	if !primary {
		query = `UPDATE principals
		SET is_backup_email_verified = TRUE, backup_verification_token = NULL,
			backup_verification_expires_at = NULL, updated_at = now()
		WHERE backup_verification_token = $1`
	}

	tag, err := d.pool.Exec(ctx, query, token)
	if err != nil {
		return false, fmt.Errorf("pgdirectory: update failed: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (d *Directory) exec(ctx context.Context, query string, args ...any) error {
	tag, err := d.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("pgdirectory: update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return identity.ErrPrincipalNotFound
	}
	return nil
}
