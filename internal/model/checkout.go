package model

// PaymentMethod is one of the supported checkout payment options.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "Cash on Delivery"
	PaymentUPI            PaymentMethod = "UPI"
	PaymentCreditCard     PaymentMethod = "Credit Card"
)

// Valid reports whether the payment method is one of the supported options.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCashOnDelivery, PaymentUPI, PaymentCreditCard:
		return true
	}
	return false
}

// CheckoutStep is one of the three sequential checkout form stages.
type CheckoutStep int

const (
	StepDelivery CheckoutStep = iota
	StepPayment
	StepReview
)

// String returns the display name of the step.
func (s CheckoutStep) String() string {
	switch s {
	case StepDelivery:
		return "Delivery Details"
	case StepPayment:
		return "Payment Details"
	case StepReview:
		return "Review & Confirm"
	}
	return "Unknown"
}

// CheckoutForm carries the fields collected across the checkout steps.
// Which fields are required depends on the current step and payment method.
type CheckoutForm struct {
	FullName      string        `json:"fullName"`
	Address       string        `json:"address"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	UPIID         string        `json:"upiId,omitempty"`
	CardNumber    string        `json:"cardNumber,omitempty"`
	Expiry        string        `json:"expiry,omitempty"`
	CVV           string        `json:"cvv,omitempty"`
}
