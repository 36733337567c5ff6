package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// 校验失败原因
const (
	ReasonMissingTitle         = "missing_title"
	ReasonMissingRequiredField = "missing_required_field"
	ReasonInvalidNumber        = "invalid_number"
	ReasonInvalidType          = "invalid_type"
	ReasonInvalidPreference    = "invalid_preference"
	ReasonInvalidKey           = "invalid_key"
)

// ErrValidation 是所有 ValidationError 的哨兵，便于 errors.Is 判断
var ErrValidation = errors.New("validation failed")

// ErrNotFound 在按 ID 查找的条目不存在时返回
var ErrNotFound = errors.New("not found")

// ValidationError 描述一次被拒绝的动作及其原因，动作本身不产生任何变更。
type ValidationError struct {
	Reason string
	Field  string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: %s (%s)", e.Reason, strings.ToLower(e.Field))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ReasonOf 提取校验失败原因，非校验错误返回空串
func ReasonOf(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Reason
	}
	return ""
}

func invalid(reason, field string) error {
	return &ValidationError{Reason: reason, Field: field}
}

var validate = validator.New()

// validateInput 运行结构体标签校验，并把首个字段错误映射为失败原因。
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate input: %w", err)
	}

	first := fieldErrs[0]
	switch first.Tag() {
	case "required":
		if first.Field() == "Title" {
			return invalid(ReasonMissingTitle, first.Field())
		}
		return invalid(ReasonMissingRequiredField, first.Field())
	case "number", "numeric":
		return invalid(ReasonInvalidNumber, first.Field())
	case "oneof":
		return invalid(ReasonInvalidType, first.Field())
	default:
		return invalid(ReasonMissingRequiredField, first.Field())
	}
}
