package httpgin

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/kirinyoku/theatre-go/internal/domain"
	"github.com/kirinyoku/theatre-go/internal/service/admin"
	"github.com/kirinyoku/theatre-go/internal/service/query"
	"github.com/kirinyoku/theatre-go/internal/service/reservation"
)

func init() {
	// Report binding errors under JSON field names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// bindErr answers 400 for a request body that failed to decode or validate.
func bindErr(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		badRequest(c, "malformed request body")
		return
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		// drop the root struct name from the namespace
		_, name, _ := strings.Cut(fe.Namespace(), ".")
		fields[name] = fieldMessage(fe)
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: fields})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "this list may not be empty"
		}
		return "ensure this value is at least " + fe.Param()
	case "max":
		return "ensure this field has no more than " + fe.Param() + " characters"
	case "gt":
		return "ensure this value is greater than " + fe.Param()
	default:
		return fmt.Sprintf("failed on %q", fe.Tag())
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// respondErr maps service errors to HTTP responses. Anything unmapped is
// logged and answered with a bare 500.
func respondErr(c *gin.Context, logger *slog.Logger, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var (
		verr *domain.ValidationError
		rl   reservation.RateLimitedError
		inv  query.AvailabilityInvariantError
	)

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationMessage(verr), Fields: verr.FieldMap()})
	case errors.As(err, &rl):
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(rl.RetryAfter.Seconds()))))
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "too many requests"})

	// admin service
	case errors.Is(err, admin.ErrHallConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "theatre hall with this name already exists"})
	case errors.Is(err, admin.ErrUnknownReference):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "referenced object does not exist"})
	case errors.Is(err, admin.ErrPlayNotFound), errors.Is(err, query.ErrPlayNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "play not found"})
	case errors.Is(err, admin.ErrPerformanceNotFound),
		errors.Is(err, query.ErrPerformanceNotFound),
		errors.Is(err, reservation.ErrPerformanceNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "performance not found"})

	case errors.As(err, &inv):
		logger.Error("availability invariant violated",
			slog.Int64("performance_id", inv.PerformanceID),
			slog.Int("tickets_available", inv.Available),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	default:
		_ = c.Error(err)
		logger.Error("request failed", slog.String("path", c.FullPath()), slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func validationMessage(verr *domain.ValidationError) string {
	if errors.Is(verr, reservation.ErrSeatTaken) {
		return reservation.ErrSeatTaken.Error()
	}
	return "validation failed"
}
