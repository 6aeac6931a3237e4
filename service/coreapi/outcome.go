package coreapi

// Outcome carries the HTTP status of an exchange together with exactly one of
// the success or the failure payload.
type Outcome[Ok, Fail any] struct {
	StatusCode int

	success *Ok
	failure *Fail
}

func Succeeded[Ok, Fail any](statusCode int, payload Ok) Outcome[Ok, Fail] {
	return Outcome[Ok, Fail]{StatusCode: statusCode, success: &payload}
}

func Failed[Ok, Fail any](statusCode int, payload Fail) Outcome[Ok, Fail] {
	return Outcome[Ok, Fail]{StatusCode: statusCode, failure: &payload}
}

func (o Outcome[Ok, Fail]) IsSuccess() bool {
	return o.success != nil
}

func (o Outcome[Ok, Fail]) Success() (Ok, bool) {
	if o.success == nil {
		var zero Ok
		return zero, false
	}
	return *o.success, true
}

func (o Outcome[Ok, Fail]) Failure() (Fail, bool) {
	if o.failure == nil {
		var zero Fail
		return zero, false
	}
	return *o.failure, true
}
