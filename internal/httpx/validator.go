package httpx

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("isbn", validateISBN)
}

// The inventory stores normalized ISBNs only: exactly 10 or 13 digits,
// no hyphens, no X check character.
func validateISBN(fl validator.FieldLevel) bool {
	isbn := fl.Field().String()
	if len(isbn) != 10 && len(isbn) != 13 {
		return false
	}
	for _, r := range isbn {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidateStruct validates s against its struct tags and returns one
// ErrorDetail per failing field, or nil when the struct is valid.
func ValidateStruct(s interface{}) []ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var details []ErrorDetail
	for _, fieldErr := range err.(validator.ValidationErrors) {
		field := fieldErr.Field()
		tag := fieldErr.Tag()
		param := fieldErr.Param()

		var message string
		switch tag {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "gte":
			message = fmt.Sprintf("%s must be at least %s", field, param)
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", field, param)
		case "len":
			message = fmt.Sprintf("%s must be exactly %s characters", field, param)
		case "alpha":
			message = fmt.Sprintf("%s must contain only letters", field)
		case "isbn":
			message = fmt.Sprintf("%s must be 10 or 13 digits", field)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		fieldName := strings.ToLower(field[:1]) + field[1:]
		details = append(details, ErrorDetail{
			Field:   fieldName,
			Message: message,
		})
	}

	return details
}
