// Package email sends invoices to parents through the Postmark API.
package email

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
)

type Client struct {
	serverToken string
	fromEmail   string
	httpClient  *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func NewClient(serverToken, fromEmail string, opts ...Option) *Client {
	c := &Client{
		serverToken: serverToken,
		fromEmail:   fromEmail,
		httpClient:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if the server token is set. Safe on a nil
// receiver so callers can hold an optional client.
func (c *Client) Configured() bool {
	return c != nil && c.serverToken != ""
}

type postmarkAttachment struct {
	Name        string `json:"Name"`
	Content     string `json:"Content"`
	ContentType string `json:"ContentType"`
}

type postmarkEmail struct {
	From        string               `json:"From"`
	To          string               `json:"To"`
	Subject     string               `json:"Subject"`
	TextBody    string               `json:"TextBody"`
	Attachments []postmarkAttachment `json:"Attachments,omitempty"`
}

// SendInvoice mails the rendered invoice PDF to a parent.
func (c *Client) SendInvoice(toEmail, parentName string, invoiceID int64, pdf []byte) error {
	if !c.Configured() {
		return fmt.Errorf("email client not configured: missing server token")
	}

	textBody := fmt.Sprintf(
		"Beste %s,\n\nIn de bijlage vindt u factuur %d.\n\nMet vriendelijke groet,\nOpvang Register",
		parentName, invoiceID,
	)

	payload := postmarkEmail{
		From:     c.fromEmail,
		To:       toEmail,
		Subject:  fmt.Sprintf("Factuur %d", invoiceID),
		TextBody: textBody,
		Attachments: []postmarkAttachment{{
			Name:        fmt.Sprintf("factuur_%d.pdf", invoiceID),
			Content:     base64.StdEncoding.EncodeToString(pdf),
			ContentType: "application/pdf",
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequest("POST", "https://api.postmarkapp.com/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.serverToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("postmark API error: status %d", resp.StatusCode)
	}

	return nil
}
