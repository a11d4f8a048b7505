package model

import "time"

// Invoice is a billing record for a parent. Amount is currency-agnostic;
// the PDF renderer formats it with two decimals and a euro sign.
type Invoice struct {
	ID          int64     `json:"id"`
	Amount      float64   `json:"amount"`
	Paid        bool      `json:"paid"`
	InvoiceDate string    `json:"invoice_date"` // ISO-8601 date, yyyy-mm-dd
	Parent      *Parent   `json:"parent"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
