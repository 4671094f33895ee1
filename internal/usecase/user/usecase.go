package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"loan-ledger/internal/domain/access"
	"loan-ledger/internal/domain/errs"
	"loan-ledger/internal/domain/user"
)

const MinPasswordLen = 8

var (
	ErrPasswordMismatch   = errs.NewValidation("passwords do not match")
	ErrPasswordTooShort   = errs.NewValidation("password must be at least 8 characters")
	ErrNameRequired       = errs.NewValidation("full name is required")
	ErrEmailRequired      = errs.NewValidation("email is required")
	ErrNothingToUpdate    = errs.NewValidation("at least one field must be provided")
	ErrInvalidCredentials = errs.NewPermission("invalid email or password")
	ErrPendingApproval    = errs.NewPermission("account is pending administrator approval")
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

type TokenIssuer interface {
	Issue(u *user.User) (string, time.Time, error)
}

type Usecase struct {
	users  user.Repository
	hasher PasswordHasher
	tokens TokenIssuer
	log    *zap.Logger
}

func NewUsecase(users user.Repository, hasher PasswordHasher, tokens TokenIssuer, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{users: users, hasher: hasher, tokens: tokens, log: log}
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func ToDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		Role:       string(u.Role),
		IsApproved: u.IsApproved,
		CreatedAt:  u.CreatedAt,
	}
}

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*UserDTO, error) {
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	created, err := u.create(ctx, in.FullName, in.Email, in.Password, user.RoleBorrower)
	if err != nil {
		return nil, err
	}
	u.log.Info("user registered", zap.Uint64("user_id", created.ID), zap.String("role", string(created.Role)))
	dto := ToDTO(created)
	return &dto, nil
}

// CreateAdmin is reserved to admins; the new account is approved at once.
func (u *Usecase) CreateAdmin(ctx context.Context, p access.Principal, in CreateAdminInput) (*UserDTO, error) {
	if err := access.RequireAdmin(p).Err(); err != nil {
		return nil, err
	}
	created, err := u.create(ctx, in.FullName, in.Email, in.Password, user.RoleAdmin)
	if err != nil {
		return nil, err
	}
	u.log.Info("admin created", zap.Uint64("actor", p.UserID), zap.Uint64("user_id", created.ID))
	dto := ToDTO(created)
	return &dto, nil
}

// SeedAdmin creates the default admin, or promotes and re-keys an existing
// account with the same email. Used by the init command.
func (u *Usecase) SeedAdmin(ctx context.Context, in CreateAdminInput) (*UserDTO, error) {
	email := normalizeEmail(in.Email)
	existing, err := u.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, errs.NotFound):
		created, err := u.create(ctx, in.FullName, email, in.Password, user.RoleAdmin)
		if err != nil {
			return nil, err
		}
		dto := ToDTO(created)
		return &dto, nil
	case err != nil:
		return nil, err
	}

	hash, err := u.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	existing.Role = user.RoleAdmin
	existing.IsApproved = true
	existing.PasswordHash = hash
	if name := strings.TrimSpace(in.FullName); name != "" {
		existing.FullName = name
	}
	if err := u.users.Save(ctx, existing); err != nil {
		return nil, err
	}
	dto := ToDTO(existing)
	return &dto, nil
}

func (u *Usecase) create(ctx context.Context, fullname, email, password string, role user.Role) (*user.User, error) {
	fullname = strings.TrimSpace(fullname)
	email = normalizeEmail(email)
	if fullname == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if err := u.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}
	hash, err := u.hashPassword(password)
	if err != nil {
		return nil, err
	}
	nu := user.New(fullname, email, hash, role)
	if err := u.users.Create(ctx, nu); err != nil {
		return nil, err
	}
	return nu, nil
}

func (u *Usecase) hashPassword(password string) (string, error) {
	if len(password) < MinPasswordLen {
		return "", ErrPasswordTooShort
	}
	hash, err := u.hasher.Hash(password)
	if err != nil {
		return "", errs.Wrap(errs.KindPersistence, "hash password", err)
	}
	return hash, nil
}

// ensureEmailFree rejects an address used by any account other than selfID.
func (u *Usecase) ensureEmailFree(ctx context.Context, email string, selfID uint64) error {
	other, err := u.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, errs.NotFound):
		return nil
	case err != nil:
		return err
	case other.ID != selfID:
		return user.ErrEmailTaken
	}
	return nil
}

func (u *Usecase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	found, err := u.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.hasher.Verify(found.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !found.IsApproved {
		return nil, ErrPendingApproval
	}
	token, exp, err := u.tokens.Issue(found)
	if err != nil {
		return nil, errs.Wrap(errs.KindPersistence, "issue token", err)
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: ToDTO(found)}, nil
}

// Me returns the caller's own account.
func (u *Usecase) Me(ctx context.Context, p access.Principal) (*UserDTO, error) {
	if err := access.RequireAuthenticated(p).Err(); err != nil {
		return nil, err
	}
	found, err := u.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	dto := ToDTO(found)
	return &dto, nil
}

func (u *Usecase) Get(ctx context.Context, p access.Principal, id uint64) (*UserDTO, error) {
	if err := access.RequireOwnerOrAdmin(p, id).Err(); err != nil {
		return nil, err
	}
	found, err := u.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToDTO(found)
	return &dto, nil
}

// List returns every account newest first. Admin only.
func (u *Usecase) List(ctx context.Context, p access.Principal) ([]UserDTO, error) {
	if err := access.RequireAdmin(p).Err(); err != nil {
		return nil, err
	}
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, ToDTO(&users[i]))
	}
	return out, nil
}

// UpdateProfile applies a partial edit to the caller's own account. A new
// password is re-hashed; a new email must be unused.
func (u *Usecase) UpdateProfile(ctx context.Context, p access.Principal, in UpdateProfileInput) (*UserDTO, error) {
	if err := access.RequireAuthenticated(p).Err(); err != nil {
		return nil, err
	}
	var patch user.Patch
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, ErrNameRequired
		}
		patch.FullName = &name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return nil, ErrEmailRequired
		}
		if err := u.ensureEmailFree(ctx, email, p.UserID); err != nil {
			return nil, err
		}
		patch.Email = &email
	}
	if in.Password != nil {
		hash, err := u.hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}
	if patch.Empty() {
		return nil, ErrNothingToUpdate
	}

	current, err := u.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if patch.Apply(current) {
		if err := u.users.Save(ctx, current); err != nil {
			return nil, err
		}
	}
	dto := ToDTO(current)
	return &dto, nil
}
