package repository

import "context"

// TxManager runs a function inside one storage transaction, handing it
// repositories bound to that transaction. It is the atomic unit for
// write-composing operations: user creation + code issuance, and code
// verification + user flip + code deletion each commit or roll back as one.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(users UserRepository, codes VerificationRepository) error) error
}
