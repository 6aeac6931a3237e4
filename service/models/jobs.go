package models

// DisbursementJob asks for a B2C disbursement on behalf of a payment.
type DisbursementJob struct {
	PaymentID string                    `json:"payment_id"`
	Request   BusinessToCustomerRequest `json:"request"`
}

// CollectionJob asks for an STK push on behalf of a payment.
type CollectionJob struct {
	PaymentID string                           `json:"payment_id"`
	Request   CustomerToBusinessPaymentRequest `json:"request"`
}

// BusinessPaymentJob asks for a pay bill or buy goods transfer on behalf of a payment.
type BusinessPaymentJob struct {
	PaymentID string                 `json:"payment_id"`
	Request   BusinessPayBillRequest `json:"request"`
}
