package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	commonhttp "github.com/aburtocampos/taskmanager/internal/common/http"
)

var instance = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a request body against its `validate` tags and maps each
// failed field to a wire-format issue. messages overrides the default text
// per struct field name.
func Struct(v any, messages map[string]string) []commonhttp.ValidationIssue {
	err := instance.Struct(v)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []commonhttp.ValidationIssue{{Msg: "Invalid request body"}}
	}

	issues := make([]commonhttp.ValidationIssue, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		msg, ok := messages[fieldErr.Field()]
		if !ok {
			msg = fmt.Sprintf("%s is %s", fieldErr.Field(), fieldErr.Tag())
		}
		issues = append(issues, commonhttp.ValidationIssue{
			Msg:   msg,
			Param: strings.ToLower(fieldErr.Field()),
		})
	}
	return issues
}
