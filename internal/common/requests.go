package common

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const DefaultRequestTimeout = 30 * time.Second

// HTTPError is returned when a provider answers with a non-2xx status.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 256 {
		body = body[:256] + "..."
	}
	if len(body) == 0 {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode), body)
}

// NewRestClient creates a JSON client for a bearer token protected API.
// Retries are disabled; every call is a single round trip.
func NewRestClient(baseURL string, token string) *resty.Client {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(DefaultRequestTimeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if len(token) > 0 {
		client.SetAuthToken(token)
	}

	return client
}

func MakeRequestFromBuilder(restBuilder *resty.Request, method string, url string) (*resty.Response, error) {

	switch strings.ToUpper(method) {
	case http.MethodGet:
		return restBuilder.Get(url)
	case http.MethodPost:
		return restBuilder.Post(url)
	case http.MethodPut:
		return restBuilder.Put(url)
	case http.MethodDelete:
		return restBuilder.Delete(url)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s. Ensure you're using the http const", method)
	}

}

// CheckResponse converts a non-2xx response into an *HTTPError.
func CheckResponse(resp *resty.Response) error {
	if resp == nil {
		return fmt.Errorf("no response received")
	}
	if resp.IsSuccess() {
		return nil
	}
	return &HTTPError{
		Method:     resp.Request.Method,
		URL:        resp.Request.URL,
		StatusCode: resp.StatusCode(),
		Body:       resp.String(),
	}
}

// InvokeRequest sends one request and fails on transport errors and
// non-2xx responses.
func InvokeRequest(restBuilder *resty.Request, method string, url string) (*resty.Response, error) {

	resp, err := MakeRequestFromBuilder(restBuilder, method, url)

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"url":    url,
			"method": method,
		}).WithError(err).Errorln("Failed to call provider")
		return nil, err
	}

	if err := CheckResponse(resp); err != nil {
		logrus.WithFields(logrus.Fields{
			"url":    url,
			"method": method,
			"status": resp.StatusCode(),
		}).Debugln("Provider returned an error status")
		return resp, err
	}

	return resp, nil
}
