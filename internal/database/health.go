package database

import (
	"context"
	"fmt"
)

// HealthChecker probes database connectivity through the connection factory.
type HealthChecker struct {
	factory *ConnectionFactory
}

func NewHealthChecker(factory *ConnectionFactory) *HealthChecker {
	return &HealthChecker{factory: factory}
}

// Check opens a connection and runs a trivial query. A nil return means the
// database is reachable; otherwise the causing error is returned.
func (h *HealthChecker) Check(ctx context.Context) error {
	db, err := h.factory.CreateConnection()
	if err != nil {
		return err
	}
	defer db.Close()

	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("database health query failed: %w", err)
	}

	return nil
}
