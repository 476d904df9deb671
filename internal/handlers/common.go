package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/willowhealth/willow-api/internal/apierror"
	"github.com/willowhealth/willow-api/internal/logger"
	"github.com/willowhealth/willow-api/pkg/supabase"
)

// storeRetryAfterSeconds is the Retry-After hint when the record store
// is unreachable.
const storeRetryAfterSeconds = 30

// pathUUID reads a path parameter and validates it as a UUID, writing a
// 400 problem when malformed. Supabase row ids are always UUIDs, so a
// malformed id can be rejected before any round trip.
func pathUUID(c *gin.Context, param, field string) (string, bool) {
	value := c.Param(param)
	if _, err := uuid.Parse(value); err != nil {
		apierror.WriteProblem(c, apierror.NewInvalidUUIDError(apierror.GetRequestID(c), field, value))
		return "", false
	}
	return value, true
}

// writeStoreError reports a failed store operation: 503 with a
// Retry-After when Supabase itself is unreachable, 500 otherwise.
func writeStoreError(c *gin.Context, err error, operation string) {
	requestID := apierror.GetRequestID(c)
	logger.Ctx(c.Request.Context()).Error(operation, logger.Err(err))
	if errors.Is(err, supabase.ErrUnavailable) {
		apierror.WriteProblem(c, apierror.NewServiceUnavailableError(requestID, storeRetryAfterSeconds))
		return
	}
	apierror.WriteProblem(c, apierror.NewInternalError(requestID))
}
