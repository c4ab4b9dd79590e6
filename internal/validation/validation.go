package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = novoValidator()

func novoValidator() *validator.Validate {
	v := validator.New()
	// Nos erros, usar o nome do campo como aparece no JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validar valida a struct e devolve um fiber.Error 400 com todas as
// mensagens em português, ou nil se estiver tudo certo.
func Validar(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, mensagemCampo(fe))
	}
	return fiber.NewError(fiber.StatusBadRequest, strings.Join(msgs, "; "))
}

func mensagemCampo(fe validator.FieldError) string {
	campo := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", campo)
	case "email":
		return "Digite um email válido"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s deve ter pelo menos %s caracteres", campo, fe.Param())
		}
		return fmt.Sprintf("%s deve ser maior ou igual a %s", campo, fe.Param())
	case "gte":
		return fmt.Sprintf("%s deve ser maior ou igual a %s", campo, fe.Param())
	case "gt":
		return fmt.Sprintf("%s deve ser maior que %s", campo, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s deve ser um de: %s", campo, fe.Param())
	default:
		return fmt.Sprintf("%s inválido", campo)
	}
}
