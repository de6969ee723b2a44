// Package validation 声明式请求校验
//
// 每个请求DTO就是一个"schema"：
//   - binding标签声明规则（go-playground/validator语法）
//   - JSON解码时忽略未知字段
//   - 实现Defaulter的DTO在校验前补默认值、做归一化
//
// Struct一次性收集全部字段错误，而不是遇到第一个就返回。
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldError 字段级错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors 多个字段错误，实现error接口便于经由gin binding返回
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Defaulter 校验前补默认值、归一化输入
type Defaulter interface {
	ApplyDefaults()
}

var (
	once     sync.Once
	validate *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.SetTagName("binding")

		// 错误中的字段名使用json标签（与请求体一致）
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})

		// decimal.Decimal按数值参与gt/gte/lte等比较
		validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.InexactFloat64()
			}
			return nil
		}, decimal.Decimal{})
	})
	return validate
}

// Struct 补默认值后校验v（结构体指针），返回全部字段错误；nil表示通过
func Struct(v interface{}) Errors {
	if d, ok := v.(Defaulter); ok {
		d.ApplyDefaults()
	}
	if err := engine().Struct(v); err != nil {
		return Translate(err)
	}
	return nil
}

// Translate 将校验/绑定错误转换为字段错误列表
func Translate(err error) Errors {
	if err == nil {
		return nil
	}

	var errs Errors
	if errors.As(err, &errs) {
		return errs
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(Errors, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{Field: fieldPath(fe), Message: message(fe)})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return Errors{{Field: typeErr.Field, Message: fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.String())}}
	}

	return Errors{{Field: "body", Message: "Request body is malformed: " + err.Error()}}
}

// fieldPath 去掉顶层结构体名：CreateOrderRequest.items[0].quantity → items[0].quantity
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "url", "uri":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "min":
		if isCollection(fe.Kind()) {
			return fmt.Sprintf("%s must contain at least %s items", field, fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s length must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s length must be less than or equal to %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return fmt.Sprintf("%s must be a date in format %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

func isCollection(k reflect.Kind) bool {
	return k == reflect.Slice || k == reflect.Array || k == reflect.Map
}

// ginValidator 让gin的ShouldBind*走同一套规则与默认值处理
type ginValidator struct{}

func (ginValidator) ValidateStruct(obj interface{}) error {
	if obj == nil {
		return nil
	}
	if reflect.Indirect(reflect.ValueOf(obj)).Kind() != reflect.Struct {
		return nil
	}
	if errs := Struct(obj); len(errs) > 0 {
		return errs
	}
	return nil
}

func (ginValidator) Engine() interface{} {
	return engine()
}

// Install 替换gin默认的binding.Validator，进程启动时调用一次
func Install() {
	binding.Validator = ginValidator{}
}
