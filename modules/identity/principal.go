package identity

import "time"

// Principal is an account holder. Secret material carries json:"-" so a
// Principal handed to an encoder can never leak hashes or pending tokens;
// Sanitized strips them for defense in depth when a copy crosses a trust
// boundary.
type Principal struct {
	ID                     int64     `json:"id"`
	FirstName              string    `json:"first_name"`
	LastName               string    `json:"last_name"`
	PrimaryEmail           string    `json:"primary_email"`
	BackupEmail            string    `json:"backup_email,omitempty"`
	IsPrimaryEmailVerified bool      `json:"is_primary_email_verified"`
	IsBackupEmailVerified  bool      `json:"is_backup_email_verified"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`

	// Secret material, populated only when a Directory call asks for it.
	PasswordHash     string `json:"-"`
	RefreshTokenHash string `json:"-"`

	ResetToken     string     `json:"-"`
	ResetExpiresAt *time.Time `json:"-"`

	PrimaryVerificationToken     string     `json:"-"`
	PrimaryVerificationExpiresAt *time.Time `json:"-"`
	BackupVerificationToken      string     `json:"-"`
	BackupVerificationExpiresAt  *time.Time `json:"-"`
}

// Sanitized returns a copy with all secret material zeroed.
func (p *Principal) Sanitized() *Principal {
	c := *p
	c.PasswordHash = ""
	c.RefreshTokenHash = ""
	c.ResetToken = ""
	c.ResetExpiresAt = nil
	c.PrimaryVerificationToken = ""
	c.PrimaryVerificationExpiresAt = nil
	c.BackupVerificationToken = ""
	c.BackupVerificationExpiresAt = nil
	return &c
}

// NewPrincipal is the registration input.
type NewPrincipal struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PrimaryEmail string `json:"primary_email"`
	BackupEmail  string `json:"backup_email,omitempty"`
	Password     string `json:"password"`
}
