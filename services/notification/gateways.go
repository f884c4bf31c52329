package notification

import "context"

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/darsyar/services/notification SMSGW

// SMSGW talks to the SMS provider
type SMSGW interface {
	SendSMS(ctx context.Context, phone, text string) error
}
