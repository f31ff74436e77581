package auth

import (
	"context"
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
}
