package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loan-ledger/internal/domain/errs"
)

// StatusFor maps a domain error kind to its HTTP status.
func StatusFor(err error) int {
	kind, ok := errs.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case errs.KindValidation:
		return http.StatusUnprocessableEntity
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindPermission:
		return http.StatusForbidden
	case errs.KindInvalidState, errs.KindConflict:
		return http.StatusConflict
	case errs.KindPersistence:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError renders err as an ErrorResponse. Persistence and unclassified
// failures hide their cause from the client and come back as an
// *echo.HTTPError carrying it, so the request logger records the cause.
// Echo's error handler skips responses that are already committed.
func writeError(c echo.Context, err error) error {
	code := StatusFor(err)
	msg := err.Error()
	switch code {
	case http.StatusServiceUnavailable:
		msg = "storage unavailable, please retry"
	case http.StatusInternalServerError:
		msg = "internal error"
	}
	if werr := c.JSON(code, ErrorResponse{Error: msg}); werr != nil {
		return werr
	}
	if code >= http.StatusInternalServerError {
		return echo.NewHTTPError(code, msg).SetInternal(err)
	}
	return nil
}
