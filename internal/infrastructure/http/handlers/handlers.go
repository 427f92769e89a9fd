// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/alchemorsel/recipebox/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/recipebox/internal/infrastructure/http/response"
	apperrors "github.com/alchemorsel/recipebox/pkg/errors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Confirmation messages
const (
	MessageUserRegistered = "User registered successfully."
	MessageUserDeleted    = "User deleted successfully."
	MessageAdded          = "Added!"
	MessageUpdated        = "Updated!"
	MessageRemoved        = "Removed!"
)

// QuestionRequest is the body of the ask endpoints. Status only applies to ask-user-ai.
type QuestionRequest struct {
	Question string `json:"question" validate:"required"`
	Status   string `json:"status"`
}

// RemoveUserRecipeRequest is the body of DELETE /api/userrecipe
type RemoveUserRecipeRequest struct {
	RecipeName string `json:"recipeName" validate:"required"`
}

// base holds what every handler group needs
type base struct {
	validate *validator.Validate
	logger   *zap.Logger
}

func newBase(logger *zap.Logger) base {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return base{validate: v, logger: logger}
}

// decode reads a JSON body into dst and validates it
func (b base) decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.NewBadRequestError("Request body is required")
		}
		return apperrors.NewBadRequestError("Invalid JSON payload").WithCause(err)
	}

	return b.validateStruct(dst)
}

func (b base) validateStruct(v interface{}) error {
	err := b.validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError(err.Error())
	}

	details := make([]apperrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, apperrors.ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: validationMessage(fe),
		})
	}
	return apperrors.NewValidationErrors(details)
}

func (b base) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	response.JSON(w, b.logger, status, data)
}

func (b base) writeError(w http.ResponseWriter, r *http.Request, err error) {
	response.Error(w, r, b.logger, err)
}

// callerID returns the authenticated user's id or writes a 401
func (b base) callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		b.writeError(w, r, apperrors.NewUnauthorizedError("User ID not found in token"))
		return "", false
	}
	return userID, true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
