package auth

import (
	"context"

	"github.com/piresc/darsyar/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/darsyar/services/auth AuthGW

// AuthGW hands codes to the delivery pipeline. DispatchCode must not block
// on delivery; an error only means the hand-off itself failed.
type AuthGW interface {
	DispatchCode(ctx context.Context, dispatch *models.CodeDispatch) error
}
