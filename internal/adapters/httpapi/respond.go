package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"scentquiz/internal/application"
)

const maxBodyBytes = 64 << 10

type errorBody struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to marshal response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("failed to write response", zap.Error(err))
	}
}

// writeError maps an application error to its HTTP status
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.writeJSON(w, status, errorBody{Error: apiError{Code: code, Message: err.Error()}})
}

func classify(err error) (int, string) {
	var verr *application.ValidationError
	var fieldErrs validator.ValidationErrors
	switch {
	case errors.Is(err, application.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition"
	case errors.Is(err, application.ErrUserExists):
		return http.StatusConflict, "user_exists"
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.As(err, &verr), errors.As(err, &fieldErrs), errors.Is(err, errBadRequest),
		errors.Is(err, application.ErrInvalidChoice), errors.Is(err, application.ErrEmptyQuery):
		return http.StatusBadRequest, "invalid_request"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

var errBadRequest = errors.New("bad request")

// decode reads a JSON body into dst and validates its struct tags.
// An empty body is an error that wraps io.EOF.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %w", errBadRequest, err)
	}
	if err := s.validate.Struct(dst); err != nil {
		return describeValidation(err)
	}
	return nil
}

func describeValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", errBadRequest, strings.Join(msgs, "; "))
}
