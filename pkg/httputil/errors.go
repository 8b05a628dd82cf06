package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError describes one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// BindJSON binds the request body into obj and writes a 400 with structured
// field errors on failure. It returns false when the handler should stop.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondBindError(c, err)
		return false
	}
	return true
}

// RespondBindError writes a 400 for a binding or validation failure.
func RespondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field: jsonFieldName(fe),
				Rule:  fe.Tag(),
				Param: fe.Param(),
			})
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": []FieldError{{Field: typeErr.Field, Rule: "type", Param: typeErr.Type.String()}},
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
}

// ValidationError writes a single-field 400 for checks done outside binding.
func ValidationError(c *gin.Context, field, rule string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  "validation failed",
		"fields": []FieldError{{Field: field, Rule: rule}},
	})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// jsonFieldName converts the struct namespace to snake_case json-ish naming
// without needing the json tag registry.
func jsonFieldName(fe validator.FieldError) string {
	name := fe.Field()
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
