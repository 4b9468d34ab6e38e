package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// TxnRunner runs a function inside a multi-document transaction. Collection
// operations join the transaction through the context the callback receives.
type TxnRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

type sessionTxnRunner struct {
	client *mongo.Client
}

// NewTxnRunner returns a session-backed runner. Requires a replica set or
// sharded deployment; standalone mongod rejects transactions.
func NewTxnRunner(client *mongo.Client) TxnRunner {
	return &sessionTxnRunner{client: client}
}

func (r *sessionTxnRunner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(ctx context.Context) (interface{}, error) {
		return nil, fn(ctx)
	})
	return err
}
