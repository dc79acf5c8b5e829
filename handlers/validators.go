package handlers

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	telephonePattern = regexp.MustCompile(`^\d{1,10}$`)
	clockPattern     = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the `telephone` and `clock` tags to gin's validator.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if err := v.RegisterValidation("telephone", func(fl validator.FieldLevel) bool {
			return telephonePattern.MatchString(fl.Field().String())
		}); err != nil {
			registerErr = err
			return
		}
		registerErr = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			return clockPattern.MatchString(fl.Field().String())
		})
	})
	return registerErr
}

// validationMessage turns binding errors into a short client message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("Please add a %s", lowerFirst(fe.Field()))
		case "email":
			return "Please add a valid email"
		case "telephone":
			return "Please add a valid telephone number of up to 10 digits"
		case "clock":
			return fmt.Sprintf("Please add a valid %s in HH:MM format", lowerFirst(fe.Field()))
		case "min", "max":
			return fmt.Sprintf("Invalid length for %s", lowerFirst(fe.Field()))
		}
		return fmt.Sprintf("Invalid value for %s", lowerFirst(fe.Field()))
	}
	return "Invalid request body"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
