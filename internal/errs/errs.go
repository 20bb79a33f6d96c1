// Package errs определяет сентинельные ошибки доменного уровня.
// Обработчики сводят их либо к JSON-ответу с кодом, либо к редиректу
// с флагом paid=0 / login=0.
package errs

import "errors"

var ErrNotAuthenticated = errors.New("not authenticated")
var ErrOrderNotFound = errors.New("order not found")
var ErrAmountMismatch = errors.New("amount mismatch")
var ErrConfirmFailed = errors.New("payment confirm failed")
var ErrOAuthFailed = errors.New("oauth exchange failed")
var ErrDuplicateOrderID = errors.New("order id already registered")
var ErrUnknownPlan = errors.New("unknown plan")
