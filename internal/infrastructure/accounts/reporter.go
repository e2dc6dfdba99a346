package accounts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// StatReport is one player's result for one match.
type StatReport struct {
	Hash      string `json:"hash"`
	Kills     int    `json:"kills"`
	Deaths    int    `json:"deaths"`
	Headshots int    `json:"headshots"`
	Score     int    `json:"score"`
	Won       bool   `json:"won"`
	MatchID   string `json:"matchId"`
}

// Report posts a stat update. The response body is ignored.
func (c *Client) Report(ctx context.Context, r StatReport) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReportFailed, err)
	}

	endpoint := c.baseURL + "/user/update-stats/" + url.PathEscape(c.secret)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReportFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReportFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrReportFailed, resp.StatusCode)
	}

	c.log.WithField("match_id", r.MatchID).Debug("Stats reported")
	return nil
}
