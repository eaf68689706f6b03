package checkout

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"shopfront/internal/model"
)

// Field validation patterns. Card numbers are checked after stripping spaces
// only, so a hyphenated number is rejected.
var (
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/?([0-9]{2})$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
	upiPattern        = regexp.MustCompile(`^[\w.-]+@\w+$`)
)

// deliveryFields are the step-0 requirements.
type deliveryFields struct {
	FullName string `validate:"required"`
	Address  string `validate:"required"`
}

// upiFields are the step-1 requirements when paying by UPI.
type upiFields struct {
	UPIID string `validate:"required,upi"`
}

// cardFields are the step-1 requirements when paying by credit card.
type cardFields struct {
	CardNumber string `validate:"required,cardnumber"`
	Expiry     string `validate:"required,expiry"`
	CVV        string `validate:"required,cvv"`
}

// newValidate builds a validator with the storefront's custom field rules
// registered.
func newValidate() *validator.Validate {
	v := validator.New()

	// Registration only fails for a nil function; safe to ignore here.
	_ = v.RegisterValidation("upi", func(fl validator.FieldLevel) bool {
		return upiPattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	_ = v.RegisterValidation("cardnumber", func(fl validator.FieldLevel) bool {
		stripped := strings.ReplaceAll(fl.Field().String(), " ", "")
		return cardNumberPattern.MatchString(stripped)
	})
	_ = v.RegisterValidation("expiry", func(fl validator.FieldLevel) bool {
		return expiryPattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	_ = v.RegisterValidation("cvv", func(fl validator.FieldLevel) bool {
		return cvvPattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})

	return v
}

// messageFor maps a failed struct field to its user-facing field name and
// error message.
func messageFor(fe validator.FieldError) (string, string) {
	switch fe.StructField() {
	case "FullName":
		return "fullName", "Full name is required"
	case "Address":
		return "address", "Address is required"
	case "UPIID":
		if fe.Tag() == "required" {
			return "upiId", "UPI ID is required"
		}
		return "upiId", "Invalid UPI ID"
	case "CardNumber":
		return "cardNumber", "Card number must be 16 digits"
	case "Expiry":
		return "expiry", "Expiry must be in MM/YY"
	case "CVV":
		return "cvv", "CVV must be 3 or 4 digits"
	}
	return fe.StructField(), "Invalid value"
}

// validateStep checks the form fields required by the given step.
// Step 0 needs a name and address; step 1 depends on the payment method;
// step 2 is review-only and always passes. The returned map is keyed by
// field name and is empty when the step is valid.
func validateStep(v *validator.Validate, step model.CheckoutStep, form model.CheckoutForm) map[string]string {
	var err error
	switch step {
	case model.StepDelivery:
		err = v.Struct(deliveryFields{
			FullName: strings.TrimSpace(form.FullName),
			Address:  strings.TrimSpace(form.Address),
		})
	case model.StepPayment:
		switch form.PaymentMethod {
		case model.PaymentUPI:
			err = v.Struct(upiFields{UPIID: form.UPIID})
		case model.PaymentCreditCard:
			err = v.Struct(cardFields{
				CardNumber: form.CardNumber,
				Expiry:     form.Expiry,
				CVV:        form.CVV,
			})
		}
		// Cash on delivery needs no extra fields.
	case model.StepReview:
		// Review only; nothing to validate.
	}

	fieldErrors := make(map[string]string)
	if err == nil {
		return fieldErrors
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		fieldErrors["form"] = err.Error()
		return fieldErrors
	}

	for _, fe := range invalid {
		name, msg := messageFor(fe)
		fieldErrors[name] = msg
	}
	return fieldErrors
}
