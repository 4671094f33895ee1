package db

import (
	"gorm.io/gorm"

	"loan-ledger/internal/domain/approval"
	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/payment"
	"loan-ledger/internal/domain/post"
	"loan-ledger/internal/domain/user"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&user.User{},
		&loan.Loan{},
		&payment.Payment{},
		&post.Post{},
		&approval.Approval{},
	}
}

// Migrate creates or alters tables to match the models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Reset drops every table and recreates the schema. All data is lost.
func Reset(db *gorm.DB) error {
	m := Models()
	// children first
	for i := len(m) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(m[i]); err != nil {
			return err
		}
	}
	return Migrate(db)
}
