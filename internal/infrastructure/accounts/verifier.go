package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
)

// Account is a verified identity.
type Account struct {
	Username string
	Verified bool
}

type detailsResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
	Verified bool   `json:"verified"`
}

// Verify resolves an account hash. Any non-2xx status, undecodable body or
// success=false is reported as ErrVerificationFailed.
func (c *Client) Verify(ctx context.Context, hash string) (Account, error) {
	endpoint := c.baseURL + "/user/details?" + url.Values{"hash": {hash}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Account{}, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Account{}, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Account{}, fmt.Errorf("%w: status %d", ErrVerificationFailed, resp.StatusCode)
	}

	var body detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Account{}, fmt.Errorf("%w: decode: %v", ErrVerificationFailed, err)
	}
	if !body.Success {
		return Account{}, fmt.Errorf("%w: rejected", ErrVerificationFailed)
	}

	c.log.WithFields(logrus.Fields{
		"username": body.Username,
		"verified": body.Verified,
	}).Debug("Account verified")

	return Account{Username: body.Username, Verified: body.Verified}, nil
}
