package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	TransactionEventsChannel = "transaction_events"
	AuthEventsChannel        = "auth_events"
)

// LedgerEventPublisher pushes completed ledger mutations onto a Redis
// channel for downstream consumers (notifications, audit trail).
// Publishing is best-effort; a failed publish never rolls back a
// committed transaction.
type LedgerEventPublisher struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewLedgerEventPublisher(rdb *redis.Client, logger *zap.Logger) *LedgerEventPublisher {
	return &LedgerEventPublisher{rdb: rdb, logger: logger}
}

type LedgerEvent struct {
	EventType     string          `json:"event_type"` // deposit.completed, withdrawal.completed, transfer.completed
	AdminID       int64           `json:"admin_id"`
	Reference     string          `json:"reference"`
	AccountNumber int64           `json:"account_number"`
	ToAccount     *int64          `json:"to_account,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Timestamp     time.Time       `json:"timestamp"`
}

func (p *LedgerEventPublisher) Publish(ctx context.Context, event *LedgerEvent) error {
	event.Timestamp = time.Now()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.rdb.Publish(ctx, TransactionEventsChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("ledger event published",
		zap.String("event_type", event.EventType),
		zap.String("reference", event.Reference),
		zap.Int64("account", event.AccountNumber),
	)
	return nil
}

type AuthEvent struct {
	EventType string    `json:"event_type"` // admin.login, admin.logout
	AdminID   int64     `json:"admin_id"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

func (p *LedgerEventPublisher) PublishAuthEvent(ctx context.Context, event *AuthEvent) error {
	event.Timestamp = time.Now()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal auth event: %w", err)
	}
	return p.rdb.Publish(ctx, AuthEventsChannel, payload).Err()
}
