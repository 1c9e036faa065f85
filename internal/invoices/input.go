package invoices

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Payload is the raw add-invoice body. Fields are decoded loosely so
// that shape problems surface as per-field messages instead of a single
// bind error.
type Payload struct {
	CustomerID json.RawMessage `json:"customerId"`
	Amount     json.RawMessage `json:"amount"`
	Status     json.RawMessage `json:"status"`
	Date       json.RawMessage `json:"date"`
}

const (
	msgCustomer = "Please select a customer."
	msgAmount   = "Please enter an amount greater than $0."
	msgStatus   = "Please select an invoice status."
	msgDate     = "Please provide a date."
)

// Validate checks the payload shape and returns the typed input, or a
// field -> messages map when anything is off. customerId must be a JSON
// number, amount must coerce to a number > 0 (numeric strings are
// accepted), status must be one of pending/paid, date must be a string.
func (p Payload) Validate() (CreateInput, map[string][]string) {
	fieldErrs := map[string][]string{}
	var in CreateInput

	if id, ok := decodeUint(p.CustomerID); ok {
		in.CustomerID = id
	} else {
		fieldErrs["customerId"] = append(fieldErrs["customerId"], msgCustomer)
	}

	if amount, ok := coerceNumber(p.Amount); ok && amount > 0 {
		in.Amount = amount
	} else {
		fieldErrs["amount"] = append(fieldErrs["amount"], msgAmount)
	}

	var status string
	if json.Unmarshal(p.Status, &status) == nil && (status == "pending" || status == "paid") {
		in.Status = strings.ToUpper(status)
	} else {
		fieldErrs["status"] = append(fieldErrs["status"], msgStatus)
	}

	var date string
	if p.Date == nil || json.Unmarshal(p.Date, &date) != nil {
		fieldErrs["date"] = append(fieldErrs["date"], msgDate)
	} else {
		in.Date = date
	}

	if len(fieldErrs) > 0 {
		return CreateInput{}, fieldErrs
	}
	return in, nil
}

func decodeUint(raw json.RawMessage) (uint, bool) {
	var n float64
	if raw == nil || json.Unmarshal(raw, &n) != nil {
		return 0, false
	}
	if n < 0 || n != float64(uint(n)) {
		return 0, false
	}
	return uint(n), true
}

// coerceNumber accepts either a JSON number or a numeric string.
func coerceNumber(raw json.RawMessage) (float64, bool) {
	if raw == nil {
		return 0, false
	}
	var n float64
	if json.Unmarshal(raw, &n) == nil {
		return n, true
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return v, true
		}
	}
	return 0, false
}
