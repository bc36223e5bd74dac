package handlers

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/rogerio-castellano/product-catalog/internal/models"
)

var validate = newValidator()

var (
	skuPattern = regexp.MustCompile(`^[A-Z0-9\-]{5,20}$`)

	validCurrencies = map[string]bool{
		"USD": true, "EUR": true, "COP": true, "GBP": true,
		"JPY": true, "CAD": true, "AUD": true,
	}

	forbiddenNames = map[string]bool{
		"producto": true, "artículo": true, "item": true, "thing": true, "objeto": true,
	}
)

func newValidator() *validator.Validate {
	v := validator.New()

	// error keys use the json field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("currency_code", func(fl validator.FieldLevel) bool {
		return validCurrencies[fl.Field().String()]
	})
	_ = v.RegisterValidation("sku", func(fl validator.FieldLevel) bool {
		return skuPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("not_generic_name", func(fl validator.FieldLevel) bool {
		return !forbiddenNames[strings.ToLower(strings.TrimSpace(fl.Field().String()))]
	})
	// max 10 digits, 2 decimal places
	_ = v.RegisterValidation("price_amount", func(fl validator.FieldLevel) bool {
		amount := fl.Field().Float()
		if amount >= 1e8 {
			return false
		}
		return math.Abs(amount*100-math.Round(amount*100)) < 1e-9
	})

	return v
}

// normalize canonicalizes the request before validation: trimmed Title-Case
// name, trimmed description, trimmed lowercase tags.
func (req *ProductRequest) normalize() {
	req.Name = titleCase(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	for i := range req.Tags {
		req.Tags[i] = strings.ToLower(strings.TrimSpace(req.Tags[i]))
	}
}

// validateProduct runs the structural (no I/O) validation: normalization,
// per-field rules, then the cross-field rules once all field rules pass.
// The result maps field name to a human-readable message; empty means valid.
func validateProduct(req *ProductRequest) map[string]string {
	req.normalize()

	fieldErrors := map[string]string{}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			fieldErrors["__root__"] = "Datos inválidos"
			return fieldErrors
		}
		for _, fe := range verrs {
			key := fieldKey(fe)
			if _, seen := fieldErrors[key]; !seen {
				fieldErrors[key] = messageFor(fe)
			}
		}
		return fieldErrors
	}

	inStock := req.InStock == nil || *req.InStock
	if !inStock && req.Price.Amount > 1000 {
		fieldErrors["price"] = "Productos fuera de stock no pueden tener precio mayor a $1000"
	}
	if req.Dimensions != nil {
		d := models.Dimensions{
			Width:  req.Dimensions.Width,
			Height: req.Dimensions.Height,
			Depth:  req.Dimensions.Depth,
		}
		if d.Volume() > 100000 && len(req.Images) == 0 {
			fieldErrors["images"] = "Productos grandes requieren al menos una imagen"
		}
	}
	return fieldErrors
}

// fieldKey turns "ProductRequest.price.amount" into "price.amount".
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func messageFor(fe validator.FieldError) string {
	// per-item tag rules report under tags[i]
	if strings.HasPrefix(fieldKey(fe), "tags[") {
		switch fe.Tag() {
		case "required":
			return "Los tags no pueden estar vacíos"
		case "max":
			return "Cada tag debe tener máximo 30 caracteres"
		}
	}

	switch fe.Tag() {
	case "required":
		return "Este campo es obligatorio"
	case "min":
		return fmt.Sprintf("Debe tener al menos %s caracteres", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Máximo %s tags permitidos", fe.Param())
		}
		return fmt.Sprintf("Debe tener máximo %s caracteres", fe.Param())
	case "unique":
		return "No puede haber tags duplicados"
	case "gt":
		return fmt.Sprintf("Debe ser mayor que %s", fe.Param())
	case "lte":
		return fmt.Sprintf("No puede exceder %scm", fe.Param())
	case "url":
		return "Debe ser una URL válida"
	case "currency_code":
		return "Moneda no válida. Usar: USD, EUR, COP, GBP, JPY, CAD, AUD"
	case "sku":
		return "SKU inválido. Usar 5-20 caracteres alfanuméricos en mayúsculas o guiones"
	case "not_generic_name":
		return "El nombre no puede ser una palabra genérica"
	case "price_amount":
		return "Debe tener máximo 10 dígitos y 2 decimales"
	}
	return fmt.Sprintf("Valor inválido (%s)", fe.Tag())
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
