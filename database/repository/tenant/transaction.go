// File: database/repository/tenant/transaction.go
package tenantRepo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrTxnConflict reports that a transaction could not be committed
// because of a transient conflict with a concurrent writer. Callers may
// retry; the outcome of the attempted operation is unknown and must not
// be treated as success.
var ErrTxnConflict = errors.New("transaction conflict")

func (r *mongoTenantRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	client := r.tenantColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	err = mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
	if err != nil && isTransientTxnError(err) {
		return fmt.Errorf("%w: %v", ErrTxnConflict, err)
	}
	return err
}

// isTransientTxnError matches the driver labels Mongo attaches to
// conflicts that are safe to retry as a whole transaction.
func isTransientTxnError(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return ce.HasErrorLabel("TransientTransactionError") || ce.HasErrorLabel("UnknownTransactionCommitResult")
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		return we.HasErrorLabel("TransientTransactionError")
	}
	return false
}
