package middleware

import (
	"context"

	"bank-admin-service/internal/domain"
)

type contextKey string

const (
	ContextActor contextKey = "actor"
	ContextToken contextKey = "token"
)

func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(ContextActor).(domain.Actor)
	return actor, ok
}

func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(ContextToken).(string)
	return token, ok
}
