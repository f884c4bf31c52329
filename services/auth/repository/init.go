package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/piresc/darsyar/internal/pkg/database"
)

// CodeRepo implements auth.CodeStore on Postgres
type CodeRepo struct {
	db *sqlx.DB
}

// NewCodeRepo creates a new Postgres code store
func NewCodeRepo(db *sqlx.DB) *CodeRepo {
	return &CodeRepo{db: db}
}

// RedisCodeRepo implements auth.CodeStore on Redis
type RedisCodeRepo struct {
	redisClient *database.RedisClient
}

// NewRedisCodeRepo creates a Redis code store. Records carry no TTL; purging
// them is left to operations.
func NewRedisCodeRepo(redisClient *database.RedisClient) *RedisCodeRepo {
	return &RedisCodeRepo{redisClient: redisClient}
}

// UserRepo implements auth.UserRepo on Postgres
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new user repository instance
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}
