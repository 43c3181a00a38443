package newsletter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ekinderauto/storefront-backend/pkg/config"
	pkgerrors "github.com/ekinderauto/storefront-backend/pkg/errors"
)

const formType = "newsletter"

// submission is the wire body the form backend expects. The underscored
// subject field is part of its contract.
type submission struct {
	Email    string `json:"email"`
	Subject  string `json:"_subject"`
	FormType string `json:"form_type"`
}

// Client submits signups to the hosted form endpoint (Formspark-style).
type Client struct {
	endpoint string
	subject  string
	http     *http.Client
}

func NewClient(cfg config.NewsletterConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		subject:  cfg.Subject,
		http:     &http.Client{Timeout: cfg.Timeout},
	}
}

// Submit posts the signup. Any transport failure or non-2xx response is
// a dependency error; the caller shows an inline retryable message.
func (c *Client) Submit(ctx context.Context, email string) error {
	if c.endpoint == "" {
		return pkgerrors.New(pkgerrors.CodeDependency, "newsletter endpoint is not configured")
	}

	body, err := json.Marshal(submission{
		Email:    email,
		Subject:  c.subject,
		FormType: formType,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding newsletter submission")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building newsletter request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submitting newsletter signup")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("newsletter endpoint returned status %d", resp.StatusCode))
	}
	return nil
}
