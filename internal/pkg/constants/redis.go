package constants

// Redis key formats
const (
	KeyVerificationCodePrefix = "auth:code:"
	KeyVerificationCode       = KeyVerificationCodePrefix + "%d" // Format: auth:code:{id}, hash
	KeyVerificationCodeSeq    = "auth:code:seq"                  // id sequence
	KeyPhoneCodes             = "auth:phone:%s"                  // Format: auth:phone:{phone}, zset of code ids scored by created_at
)

// Redis hash fields
const (
	FieldID        = "id"
	FieldPhone     = "phone"
	FieldCode      = "code"
	FieldExpiresAt = "expires_at"
	FieldIsUsed    = "is_used"
	FieldCreatedAt = "created_at"
)
