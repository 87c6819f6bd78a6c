// Package validator provides custom validation functions for Gin's
// binding engine.
package validator

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"centavo/internal/models"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_kind", validateTransactionKind)
		_ = v.RegisterValidation("payment_method", validatePaymentMethod)
		_ = v.RegisterValidation("tx_date", validateTxDate)
		_ = v.RegisterValidation("hex_color", validateHexColor)
	}
}

func validateTransactionKind(fl validator.FieldLevel) bool {
	return models.ValidKind(models.TransactionKind(fl.Field().String()))
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	return models.ValidMethod(models.PaymentMethod(fl.Field().String()))
}

// validateTxDate accepts only fixed-width YYYY-MM-DD calendar dates.
// The width matters: storage orders and month-filters dates as strings.
func validateTxDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}
