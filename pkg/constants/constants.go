package constants

import (
	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	LoggerKey    ContextKey = "logger"
	PoolKey      ContextKey = "pool"
	TxKey        ContextKey = "tx"
	RequestStart ContextKey = "request-start"
	RequestIDKey ContextKey = "request-id"
)

// Validate is the shared validator instance used by all DTOs.
var Validate = validator.New(validator.WithRequiredStructEnabled())
