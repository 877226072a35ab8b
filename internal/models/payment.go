package models

import "time"

type Payment struct {
	ID            int64         `json:"id"`
	AmountDue     float64       `json:"amountDue"`
	AmountPaid    float64       `json:"amountPaid"`
	DueDate       time.Time     `json:"dueDate"`
	PaymentDate   *time.Time    `json:"paymentDate,omitempty"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	LeaseID       int64         `json:"leaseId"`
}
