package store

import (
	"github.com/mkhasanov/go-user-guard/internal/logger"
)

// Storages aggregates every repository backed by the relational database.
type Storages struct {
	UserRepository UserRepository
}

// NewStorages wires all repositories to the given database connection.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db, logger),
	}
}
