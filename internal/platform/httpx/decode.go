package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/khata-app/khata-server/internal/shared"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeValid decodes the JSON body into target and runs struct validation.
// Returns shared.ErrValidation (optionally with field detail via FieldErrors).
func DecodeValid(r *http.Request, target any) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: malformed JSON body", shared.ErrValidation)
	}
	if err := validate.Struct(target); err != nil {
		return fmt.Errorf("%w: %s", shared.ErrValidation, joinFieldErrors(err))
	}
	return nil
}

// FieldErrors flattens validator errors into a field→message map for the envelope.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = fmt.Sprintf("failed %s validation", fe.Tag())
	}
	return fields
}

func joinFieldErrors(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
