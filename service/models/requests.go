package models

// Field names below are the gateway's wire contract, misspellings included.

// RegisterURLRequest registers the confirmation and validation URLs of a short code.
type RegisterURLRequest struct {
	ShortCode       string `json:"ShortCode"`
	ResponseType    string `json:"ResponseType"`
	ConfirmationURL string `json:"ConfirmationURL"`
	ValidationURL   string `json:"ValidationURL"`
}

// BusinessToCustomerRequest disburses funds from a short code to a customer.
type BusinessToCustomerRequest struct {
	OriginatorConversationID string `json:"OriginatorConversationID"`
	InitiatorName            string `json:"InitiatorName"`
	SecurityCredential       string `json:"SecurityCredential"`
	CommandID                string `json:"CommandID"`
	Amount                   uint32 `json:"Amount"`
	PartyA                   uint32 `json:"PartyA"`
	PartyB                   string `json:"PartyB"`
	Remarks                  string `json:"Remarks"`
	QueueTimeOutURL          string `json:"QueueTimeOutURL"`
	ResultURL                string `json:"ResultURL"`
	Occassion                string `json:"Occassion"`
}

// CustomerToBusinessPaymentRequest prompts a customer (STK push) to pay a short code.
type CustomerToBusinessPaymentRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            uint32 `json:"Amount"`
	PartyA            uint64 `json:"PartyA"`
	PartyB            uint32 `json:"PartyB"`
	PhoneNumber       uint64 `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

// BusinessPayBillRequest pays a bill from one short code to a pay bill number.
type BusinessPayBillRequest struct {
	Initiator              string `json:"Initiator"`
	SecurityCredential     string `json:"SecurityCredential"`
	CommandID              string `json:"CommandID"`
	SenderIdentifierType   string `json:"SenderIdentifierType"`
	RecieverIdentifierType string `json:"RecieverIdentifierType"`
	Amount                 uint32 `json:"Amount"`
	PartyA                 string `json:"PartyA"`
	PartyB                 string `json:"PartyB"`
	AccountReference       string `json:"AccountReference"`
	Requester              string `json:"Requester"`
	Remarks                string `json:"Remarks"`
	QueueTimeOutURL        string `json:"QueueTimeOutURL"`
	ResultURL              string `json:"ResultURL"`
}

// BusinessBuyGoodsRequest pays for goods from one short code to a till number.
// It shares the pay bill wire schema.
type BusinessBuyGoodsRequest BusinessPayBillRequest
