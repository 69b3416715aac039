package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Error taxonomy. AlreadyCompleted is deliberately absent: it is a normal
// outcome reported through a result flag, never an error.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNoQuizAvailable  = errors.New("no quiz available")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// storeTimeout bounds every database round-trip. The original design had no
// timeout at all; failures surface as ErrStoreUnavailable and are never
// retried inside the core — the client retries the whole user action.
const storeTimeout = 10 * time.Second

// storeCtx derives the bounded context handlers pass into the core modules.
func storeCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), storeTimeout)
}

// storeErr tags a database failure with ErrStoreUnavailable while keeping
// the cause in the chain.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(ErrStoreUnavailable, err)
}

// writeErr maps core errors to HTTP statuses. Anything unrecognized is a 500.
func writeErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
	case errors.Is(err, ErrNoQuizAvailable):
		c.JSON(http.StatusNotFound, gin.H{"error": "no quiz available"})
	case errors.Is(err, ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
