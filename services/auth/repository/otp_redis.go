package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/darsyar/internal/pkg/constants"
	"github.com/piresc/darsyar/internal/pkg/models"
)

// consumeScript scans the phone's codes oldest first and flips is_used on the
// first live match. Returns the id, -1 when only expired matches exist, 0 otherwise.
var consumeScript = redis.NewScript(`
local ids = redis.call('ZRANGE', KEYS[1], 0, -1)
local expired = 0
for _, id in ipairs(ids) do
	local key = ARGV[3] .. id
	local rec = redis.call('HMGET', key, 'code', 'expires_at', 'is_used')
	if rec[1] == ARGV[1] and rec[3] == '0' then
		if tonumber(rec[2]) >= tonumber(ARGV[2]) then
			redis.call('HSET', key, 'is_used', '1')
			return tonumber(id)
		end
		expired = 1
	end
end
if expired == 1 then
	return -1
end
return 0
`)

// CreateCode stores the code as a hash and indexes it under the phone
func (r *RedisCodeRepo) CreateCode(ctx context.Context, code *models.VerificationCode) error {
	client := r.redisClient.Client

	id, err := client.Incr(ctx, constants.KeyVerificationCodeSeq).Result()
	if err != nil {
		return fmt.Errorf("failed to allocate code id: %w", err)
	}

	code.ID = id
	code.IsUsed = false

	key := fmt.Sprintf(constants.KeyVerificationCode, id)
	indexKey := fmt.Sprintf(constants.KeyPhoneCodes, code.Phone)

	_, err = client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			constants.FieldID:        id,
			constants.FieldPhone:     code.Phone,
			constants.FieldCode:      code.Code,
			constants.FieldExpiresAt: code.ExpiresAt.UnixMilli(),
			constants.FieldIsUsed:    "0",
			constants.FieldCreatedAt: code.CreatedAt.UnixMilli(),
		})
		pipe.ZAdd(ctx, indexKey, &redis.Z{Score: float64(code.CreatedAt.UnixMilli()), Member: id})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create verification code: %w", err)
	}

	return nil
}

// ConsumeCode runs the consume script so check and flip happen atomically
func (r *RedisCodeRepo) ConsumeCode(ctx context.Context, phone, code string, now time.Time) (*models.VerificationCode, error) {
	client := r.redisClient.Client
	indexKey := fmt.Sprintf(constants.KeyPhoneCodes, phone)
	id, err := consumeScript.Run(ctx, client, []string{indexKey}, code, now.UnixMilli(), constants.KeyVerificationCodePrefix).Int64()
	if err != nil {
		return nil, fmt.Errorf("failed to consume verification code: %w", err)
	}

	switch {
	case id == -1:
		return nil, models.ErrCodeExpired
	case id == 0:
		return nil, models.ErrInvalidCode
	}

	return r.getCode(ctx, id)
}

func (r *RedisCodeRepo) getCode(ctx context.Context, id int64) (*models.VerificationCode, error) {
	fields, err := r.redisClient.Client.HGetAll(ctx, fmt.Sprintf(constants.KeyVerificationCode, id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read verification code: %w", err)
	}
	if len(fields) == 0 {
		return nil, errors.New("verification code vanished after consume")
	}

	expiresAt, err := strconv.ParseInt(fields[constants.FieldExpiresAt], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt expires_at: %w", err)
	}
	createdAt, err := strconv.ParseInt(fields[constants.FieldCreatedAt], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt created_at: %w", err)
	}

	return &models.VerificationCode{
		ID:        id,
		Phone:     fields[constants.FieldPhone],
		Code:      fields[constants.FieldCode],
		ExpiresAt: time.UnixMilli(expiresAt).UTC(),
		IsUsed:    fields[constants.FieldIsUsed] == "1",
		CreatedAt: time.UnixMilli(createdAt).UTC(),
	}, nil
}
