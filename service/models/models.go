package models

import (
	"github.com/pitabwire/frame"
	"github.com/rs/xid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	OperationRegisterURL = "register_url"
	OperationB2C         = "b2c"
	OperationC2B         = "c2b"
	OperationPayBill     = "paybill"
	OperationBuyGoods    = "buygoods"
	OperationTimeout     = "timeout"
)

// Transaction Table holds the synchronous acknowledgement of each gateway request
type Transaction struct {
	frame.BaseModel

	PaymentID           string              `gorm:"type:varchar(50);index"`
	Operation           string              `gorm:"type:varchar(20)"`
	Reference           string              `gorm:"type:varchar(100)"`
	ConversationID      string              `gorm:"type:varchar(100);index"`
	OriginatorID        string              `gorm:"type:varchar(100)"`
	ResponseCode        string              `gorm:"type:varchar(20)"`
	ResponseDescription string              `gorm:"type:text"`
	ErrorCode           string              `gorm:"type:varchar(50)"`
	ErrorMessage        string              `gorm:"type:text"`
	StatusCode          int
	Amount              decimal.NullDecimal `gorm:"type:numeric" json:"amount"`
	Extra               datatypes.JSONMap   `gorm:"index:,type:gin,option:jsonb_path_ops" json:"extra"`
}

// Accepted reports whether the gateway took the request for processing.
func (model *Transaction) Accepted() bool {
	return model.StatusCode == 200 && model.ErrorCode == "" &&
		(model.ResponseCode == "" || model.ResponseCode == "0")
}

// CallbackResult Table holds every processed result notification
type CallbackResult struct {
	frame.BaseModel

	PaymentID                string              `gorm:"type:varchar(50);index"`
	Operation                string              `gorm:"type:varchar(20)"`
	ConversationID           string              `gorm:"type:varchar(100);index"`
	OriginatorConversationID string              `gorm:"type:varchar(100)"`
	TransactionID            string              `gorm:"type:varchar(100)"`
	ResultCode               int
	ResultDesc               string              `gorm:"type:text"`
	Receipt                  string              `gorm:"type:varchar(50)"`
	Amount                   decimal.NullDecimal `gorm:"type:numeric" json:"amount"`
	Parameters               datatypes.JSONMap   `gorm:"index:,type:gin,option:jsonb_path_ops" json:"parameters"`
}

func (model *CallbackResult) Succeeded() bool {
	return model.ResultCode == 0
}

// NewID returns an identifier in the same format frame assigns to new records.
func NewID() string {
	return xid.New().String()
}

// ParametersToMap flattens result parameters into a JSON column, later keys winning.
func ParametersToMap(params ParameterList) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	for _, p := range params {
		switch p.Value.Kind() {
		case KindString:
			s, _ := p.Value.AsString()
			out[p.Key] = s
		case KindInteger, KindFloat:
			f, _ := p.Value.AsNumber()
			out[p.Key] = f
		default:
			out[p.Key] = nil
		}
	}
	return out
}
