package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and flattens the result
// into a single message suitable for an error envelope.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		parts := make([]string, 0, len(errs))
		for _, fe := range errs {
			parts = append(parts, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(parts, "; "))
	}
	return nil
}

// EmailIsWellFormed reports whether email passes the same check used in
// struct tags. Callers gate sign-in/sign-up on this before touching the
// credential store.
func EmailIsWellFormed(email string) bool {
	return validate.Var(email, "required,email") == nil
}
