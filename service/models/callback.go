package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ResultParameter is one named entry of a result notification.
type ResultParameter struct {
	Key   string     `json:"Key"`
	Value NamedValue `json:"Value"`
}

// ParameterList is an ordered list of result parameters. The gateway sends a
// bare object instead of an array when a timeout result carries one entry.
type ParameterList []ResultParameter

func (l *ParameterList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}

	if trimmed[0] == '{' {
		var single ResultParameter
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		*l = ParameterList{single}
		return nil
	}

	var list []ResultParameter
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return err
	}
	*l = list
	return nil
}

// ResultCode accepts both numeric and quoted numeric codes.
type ResultCode int

func (c *ResultCode) UnmarshalJSON(data []byte) error {
	trimmed := bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*c = 0
		return nil
	}
	code, err := strconv.Atoi(string(trimmed))
	if err != nil {
		return err
	}
	*c = ResultCode(code)
	return nil
}

type ResultParameters struct {
	ResultParameter ParameterList `json:"ResultParameter"`
}

type ReferenceData struct {
	ReferenceItem ParameterList `json:"ReferenceItem"`
}

// ResultNotification is posted by the gateway to the ResultURL of B2C and B2B requests.
type ResultNotification struct {
	Result Result `json:"Result"`
}

type Result struct {
	ResultType               int              `json:"ResultType"`
	ResultCode               ResultCode       `json:"ResultCode"`
	ResultDesc               string           `json:"ResultDesc"`
	OriginatorConversationID string           `json:"OriginatorConversationID"`
	ConversationID           string           `json:"ConversationID"`
	TransactionID            string           `json:"TransactionID"`
	ResultParameters         ResultParameters `json:"ResultParameters"`
	ReferenceData            ReferenceData    `json:"ReferenceData"`
}

func (r Result) Succeeded() bool {
	return r.ResultCode == 0
}

// StkCallbackNotification is posted by the gateway to the CallBackURL of an STK push.
type StkCallbackNotification struct {
	Body StkCallbackBody `json:"Body"`
}

type StkCallbackBody struct {
	StkCallback StkCallback `json:"stkCallback"`
}

type StkCallback struct {
	MerchantRequestID string           `json:"MerchantRequestID"`
	CheckoutRequestID string           `json:"CheckoutRequestID"`
	ResultCode        ResultCode       `json:"ResultCode"`
	ResultDesc        string           `json:"ResultDesc"`
	CallbackMetadata  CallbackMetadata `json:"CallbackMetadata"`
}

func (c StkCallback) Succeeded() bool {
	return c.ResultCode == 0
}

type CallbackMetadata struct {
	Item []CallbackItem `json:"Item"`
}

type CallbackItem struct {
	Name  string     `json:"Name"`
	Value NamedValue `json:"Value"`
}

// Parameters exposes the metadata items as result parameters.
func (m CallbackMetadata) Parameters() ParameterList {
	if len(m.Item) == 0 {
		return nil
	}
	params := make(ParameterList, 0, len(m.Item))
	for _, item := range m.Item {
		params = append(params, ResultParameter{Key: item.Name, Value: item.Value})
	}
	return params
}
