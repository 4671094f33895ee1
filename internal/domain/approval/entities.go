package approval

import (
	"time"
)

type Subject string

const (
	SubjectUser    Subject = "user"
	SubjectLoan    Subject = "loan"
	SubjectPayment Subject = "payment"
)

func (s Subject) Valid() bool {
	switch s {
	case SubjectUser, SubjectLoan, SubjectPayment:
		return true
	}
	return false
}

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionDenied   Decision = "denied"
)

// Table: approval. One row per admin decision; the log is append-only.
// Denied users are hard-deleted, so SubjectID may point at a row that no
// longer exists.
type Approval struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	ApprovalID string    `gorm:"column:approval_id;type:char(32);not null;uniqueIndex:ux_approval_approval_id" json:"approval_id"`
	Subject    Subject   `gorm:"column:subject;size:16;not null;index:idx_approval_subject" json:"subject"`
	SubjectID  uint64    `gorm:"column:subject_id;not null;index:idx_approval_subject" json:"subject_id"`
	Decision   Decision  `gorm:"column:decision;size:16;not null" json:"decision"`
	AdminID    uint64    `gorm:"column:admin_id;not null" json:"admin_id"`
	Note       string    `gorm:"column:note;type:text" json:"note,omitempty"`
	DecidedAt  time.Time `gorm:"column:decided_at;not null" json:"decided_at"`
}

func (Approval) TableName() string { return "approval" }
