package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/identity-api/internal/domain/repository"
)

// TxManager implements repository.TxManager by handing the callback
// repositories bound to one GORM transaction. Nested CreateCode transactions
// degrade to savepoints inside the outer transaction.
type TxManager struct {
	db      *gorm.DB
	codeTTL time.Duration
}

func NewTxManager(db *gorm.DB, codeTTL time.Duration) *TxManager {
	return &TxManager{db: db, codeTTL: codeTTL}
}

func (m *TxManager) WithinTransaction(ctx context.Context, fn func(users repository.UserRepository, codes repository.VerificationRepository) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUserRepo(tx), NewVerificationRepo(tx, m.codeTTL))
	})
}
