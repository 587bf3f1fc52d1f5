package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"leave-manager/internal/services"
)

const (
	msgMissing      = "Missing required parameter"
	msgPositiveInt  = "Must be a positive integer"
	msgMalformed    = "Malformed request body"
	msgInvalidValue = "Invalid value"
)

func init() {
	// report fields by their wire names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	}
}

// bindInput binds a JSON or form body into obj and validates it. On failure it
// writes the 400 response itself and returns false.
func bindInput(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBind(obj)
	if errors.Is(err, io.EOF) {
		// empty JSON body: report every missing field
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &verrs):
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": fields})
	case errors.As(err, &typeErr) && typeErr.Field != "":
		c.JSON(http.StatusBadRequest, gin.H{"message": gin.H{typeErr.Field: msgInvalidValue}})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"message": msgMalformed})
	}
	return false
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgMissing
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "datetime":
		return services.MsgInvalidDate
	case "gt":
		return msgPositiveInt
	}
	return msgInvalidValue
}
