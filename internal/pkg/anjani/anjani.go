package anjani

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"pincheck/internal/models"
)

const (
	pincodePath   = "/Rpt_PinCodeShow.aspx"
	sessionCookie = "ASP.NET_SessionId"

	// page the site redirects to when the session is gone
	notAvailablePage = "_NotAvailable.aspx"
)

var (
	ErrSessionExpired = errors.New("courier session expired")
	ErrLoginFailed    = errors.New("login did not yield a session cookie")
	ErrNoReportTable  = errors.New("pincode report table not found")
)

// Client talks to the courier's pincode report pages. One session is
// established per client and refreshed once when the site invalidates it.
type Client struct {
	baseURL   string
	username  string
	password  string
	sessionID string
	client    *http.Client
}

func New(baseURL, username, password string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		client: &http.Client{
			Timeout: 30 * time.Second,
			// the session check relies on seeing the raw 302
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// UseDefaultClient swaps in http.DefaultClient so tests can intercept
// requests through the default transport.
func (c *Client) UseDefaultClient() {
	c.client = http.DefaultClient
}

// Login posts the ASP.NET login form and captures the session cookie. The
// hidden form fields (__VIEWSTATE and friends) are scraped from the login
// page first.
func (c *Client) Login(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch login page: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to parse login page: %w", err)
	}

	form := url.Values{}
	doc.Find("input[type=hidden]").Each(func(_ int, s *goquery.Selection) {
		name, ok := s.Attr("name")
		if !ok {
			return
		}
		value, _ := s.Attr("value")
		form.Set(name, value)
	})
	form.Set("txtUserID", c.username)
	form.Set("txtPassword", c.password)
	form.Set("cmdLogin", "Login")

	loginReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	loginReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	loginResp, err := c.client.Do(loginReq)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer loginResp.Body.Close()
	io.Copy(io.Discard, loginResp.Body)

	for _, cookie := range loginResp.Cookies() {
		if cookie.Name == sessionCookie {
			c.sessionID = cookie.Value
			log.Printf("Logged in to courier, session established")
			return nil
		}
	}

	return ErrLoginFailed
}

// FetchPincode returns the parsed report rows for one pincode. An expired
// session is refreshed once; any failure after that surfaces to the caller.
func (c *Client) FetchPincode(ctx context.Context, code string) ([]models.PincodeDetail, error) {
	for attempt := 0; attempt < 2; attempt++ {
		body, err := c.getReport(ctx, code)
		if errors.Is(err, ErrSessionExpired) && attempt == 0 {
			log.Printf("Session expired for pincode %s, logging in again", code)
			if err := c.Login(ctx); err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		return ParseReport(code, body)
	}

	return nil, ErrSessionExpired
}

func (c *Client) getReport(ctx context.Context, code string) ([]byte, error) {
	q := url.Values{}
	q.Set("EC", "2")
	q.Set("PC", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pincodePath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if c.sessionID != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: c.sessionID})
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request for pincode %s failed: %w", code, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusFound || strings.Contains(resp.Header.Get("Location"), notAvailablePage) {
		return nil, ErrSessionExpired
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("courier returned status %d for pincode %s", resp.StatusCode, code)
	}

	return io.ReadAll(resp.Body)
}
