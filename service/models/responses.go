package models

// RegisterURLResponse is the success body of a URL registration.
type RegisterURLResponse struct {
	OriginatorCoversationID string `json:"OriginatorCoversationID,omitempty"`
	ConversationID          string `json:"ConversationID,omitempty"`
	ResponseDescription     string `json:"ResponseDescription,omitempty"`
}

// BusinessToCustomerResponse is the synchronous acknowledgement of a disbursement.
type BusinessToCustomerResponse struct {
	OriginatorConversationID string `json:"OriginatorConversationID,omitempty"`
	ConversationID           string `json:"ConversationID,omitempty"`
	ResponseCode             string `json:"ResponseCode,omitempty"`
	ResponseDescription      string `json:"ResponseDescription,omitempty"`
}

// CustomerToBusinessPaymentResponse is the synchronous acknowledgement of an STK push.
type CustomerToBusinessPaymentResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID,omitempty"`
	CheckoutRequestID   string `json:"CheckoutRequestID,omitempty"`
	ResponseCode        string `json:"ResponseCode,omitempty"`
	ResponseDescription string `json:"ResponseDescription,omitempty"`
	CustomerMessage     string `json:"CustomerMessage,omitempty"`
}

// BusinessPayBillResponse is the synchronous acknowledgement of a pay bill request.
type BusinessPayBillResponse struct {
	OriginatorConversationID string `json:"OriginatorConversationID,omitempty"`
	ConversationID           string `json:"ConversationID,omitempty"`
	ResponseCode             string `json:"ResponseCode,omitempty"`
	ResponseDescription      string `json:"ResponseDescription,omitempty"`
}

// BusinessBuyGoodsResponse is the synchronous acknowledgement of a buy goods request.
type BusinessBuyGoodsResponse BusinessPayBillResponse

// ErrorResponse is the body the gateway returns with any non 200 status.
type ErrorResponse struct {
	RequestID    string `json:"requestId,omitempty"`
	ErrorCode    string `json:"errorCode,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}
