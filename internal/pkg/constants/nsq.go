package constants

// NSQ topics and channels
const (
	TopicVerificationCode = "auth.verification_code"

	ChannelSMSWorker = "sms-worker"

	// MaxSMSAttempts bounds redelivery of a single code message
	MaxSMSAttempts = 3
)
