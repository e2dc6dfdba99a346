package accounts

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Seven-Network/GameServer/pkg/logger"

	"github.com/sirupsen/logrus"
)

var (
	ErrVerificationFailed = errors.New("accounts: verification failed")
	ErrReportFailed       = errors.New("accounts: stat report failed")
)

// Client talks to the account service over HTTP.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
	log     *logrus.Entry
}

// NewClient builds a client. timeout bounds every request.
func NewClient(baseURL, secret string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		http:    &http.Client{Timeout: timeout},
		log:     logger.Log.WithField("component", "accounts"),
	}
}
