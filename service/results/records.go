package results

import "github.com/antinvestor/service-mpesa/service/models"

// B2CResult holds the result parameters of a business to customer payment.
type B2CResult struct {
	TransactionAmount                   float64
	TransactionReceipt                  string
	B2CRecipientIsRegisteredCustomer    string
	B2CChargesPaidAccountAvailableFunds float64
	ReceiverPartyPublicName             string
	TransactionCompletedDateTime        string
	B2CUtilityAccountAvailableFunds     float64
	B2CWorkingAccountAvailableFunds     float64

	Extraction
}

func ExtractB2CResult(params models.ParameterList) B2CResult {
	e := newExtractor(params)
	return B2CResult{
		TransactionAmount:                   e.number("TransactionAmount"),
		TransactionReceipt:                  e.text("TransactionReceipt"),
		B2CRecipientIsRegisteredCustomer:    e.text("B2CRecipientIsRegisteredCustomer"),
		B2CChargesPaidAccountAvailableFunds: e.number("B2CChargesPaidAccountAvailableFunds"),
		ReceiverPartyPublicName:             e.text("ReceiverPartyPublicName"),
		TransactionCompletedDateTime:        e.text("TransactionCompletedDateTime"),
		B2CUtilityAccountAvailableFunds:     e.number("B2CUtilityAccountAvailableFunds"),
		B2CWorkingAccountAvailableFunds:     e.number("B2CWorkingAccountAvailableFunds"),
		Extraction:                          e.Extraction,
	}
}

// C2BPaymentResult holds the callback metadata of a completed STK push.
type C2BPaymentResult struct {
	Amount             float64
	MpesaReceiptNumber string
	TransactionDate    string
	PhoneNumber        string

	Extraction
}

// ExtractC2BPaymentResult returns nil when the callback carried no metadata,
// which is the case for cancelled or failed prompts.
func ExtractC2BPaymentResult(items models.ParameterList) *C2BPaymentResult {
	if len(items) == 0 {
		return nil
	}
	e := newExtractor(items)
	return &C2BPaymentResult{
		Amount:             e.number("Amount"),
		MpesaReceiptNumber: e.text("MpesaReceiptNumber"),
		TransactionDate:    e.numericText("TransactionDate"),
		PhoneNumber:        e.numericText("PhoneNumber"),
		Extraction:         e.Extraction,
	}
}

// BusinessPaymentResult holds the result parameters of a pay bill or buy goods
// transfer. The gateway reports every field as text.
type BusinessPaymentResult struct {
	DebitAccountBalance              string
	Amount                           string
	DebitPartyAffectedAccountBalance string
	TransCompletedTime               string
	DebitPartyCharges                string
	ReceiverPartyPublicName          string
	Currency                         string
	InitiatorAccountCurrentBalance   string

	Extraction
}

func ExtractBusinessPaymentResult(params models.ParameterList) BusinessPaymentResult {
	e := newExtractor(params)
	return BusinessPaymentResult{
		DebitAccountBalance:              e.text("DebitAccountBalance"),
		Amount:                           e.text("Amount"),
		DebitPartyAffectedAccountBalance: e.text("DebitPartyAffectedAccountBalance"),
		TransCompletedTime:               e.text("TransCompletedTime"),
		DebitPartyCharges:                e.text("DebitPartyCharges"),
		ReceiverPartyPublicName:          e.text("ReceiverPartyPublicName"),
		Currency:                         e.text("Currency"),
		InitiatorAccountCurrentBalance:   e.text("InitiatorAccountCurrentBalance"),
		Extraction:                       e.Extraction,
	}
}

// BusinessReference holds the reference data of a pay bill or buy goods result.
type BusinessReference struct {
	BillReferenceNumber string
	QueueTimeoutURL     string

	Extraction
}

func ExtractBusinessReference(items models.ParameterList) BusinessReference {
	e := newExtractor(items)
	return BusinessReference{
		BillReferenceNumber: e.text("BillReferenceNumber"),
		QueueTimeoutURL:     e.text("QueueTimeoutURL"),
		Extraction:          e.Extraction,
	}
}

// BusinessTimeout holds what the gateway reports when a pay bill or buy goods
// request timed out in its queue.
type BusinessTimeout struct {
	BOCompletedTime string
	QueueTimeoutURL string

	Extraction
}

func ExtractBusinessTimeout(params, references models.ParameterList) BusinessTimeout {
	p := newExtractor(params)
	r := newExtractor(references)

	timeout := BusinessTimeout{
		BOCompletedTime: p.numericText("BOCompletedTime"),
		QueueTimeoutURL: r.anyText("QueueTimeoutURL"),
	}

	timeout.Extraction = p.Extraction
	for k := range r.absent {
		timeout.absent[k] = struct{}{}
	}
	for k := range r.mismatched {
		timeout.mismatched[k] = struct{}{}
	}
	return timeout
}

// IsTimeout reports whether a business result only carries the timeout marker.
func IsTimeout(params models.ParameterList) bool {
	e := newExtractor(params)
	_, ok := e.values["bocompletedtime"]
	return ok && len(e.values) == 1
}
