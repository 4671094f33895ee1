package user

import (
	"time"

	"loan-ledger/internal/domain/errs"
)

type Role string

const (
	RoleBorrower Role = "Borrower"
	RoleAdmin    Role = "Admin"
)

func (r Role) Valid() bool { return r == RoleBorrower || r == RoleAdmin }

var (
	ErrNotFound        = errs.New(errs.KindNotFound, "user not found")
	ErrEmailTaken      = errs.New(errs.KindConflict, "email already exists")
	ErrAlreadyApproved = errs.NewInvalidState("user already approved")
)

// Table: user
type User struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FullName     string    `gorm:"column:fullname;size:150;not null" json:"fullname"`
	Email        string    `gorm:"column:email;size:150;not null;uniqueIndex:ux_user_email" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:256;not null" json:"-"`
	Role         Role      `gorm:"column:role;size:50;not null" json:"role"`
	IsApproved   bool      `gorm:"column:is_approved;not null;default:false" json:"is_approved"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "user" }

// New builds an account. Admins are approved on creation, borrowers wait
// for an admin.
func New(fullname, email, passwordHash string, role Role) *User {
	return &User{
		FullName:     fullname,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		IsApproved:   role == RoleAdmin,
	}
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// Patch carries a partial profile update; nil fields are left untouched.
type Patch struct {
	FullName     *string
	Email        *string
	PasswordHash *string
	IsApproved   *bool
}

func (p Patch) Empty() bool {
	return p.FullName == nil && p.Email == nil && p.PasswordHash == nil && p.IsApproved == nil
}

// Apply copies the supplied fields onto u and reports whether anything changed.
func (p Patch) Apply(u *User) bool {
	changed := false
	if p.FullName != nil && *p.FullName != u.FullName {
		u.FullName = *p.FullName
		changed = true
	}
	if p.Email != nil && *p.Email != u.Email {
		u.Email = *p.Email
		changed = true
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
		changed = true
	}
	if p.IsApproved != nil && *p.IsApproved != u.IsApproved {
		u.IsApproved = *p.IsApproved
		changed = true
	}
	return changed
}
