// client.go contains the http side of scraping overwatch career pages, the
// parsing of the page itself lives in internal/profile.

package overwatch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"overstats/internal/components/assert"
	"overstats/internal/components/telemetry"
	"overstats/internal/profile"
	"overstats/lib/restyutil"
	libtelemetry "overstats/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const DefaultBaseUrl = "https://playoverwatch.com/en-us"

const (
	report_client_career_page = "client.career-page"
)

type ClientOptions struct {
	// BaseUrl defaults to DefaultBaseUrl.
	BaseUrl string
	// RequestsPerSecond defaults to 2.
	RequestsPerSecond float64
	// Timeout defaults to 30 seconds.
	Timeout time.Duration
	// Output, if set, receives a dump of every request and response.
	Output restyutil.InstrumentOutput
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	tel telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("overwatch_scraper", tel)

	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second * 30
	}

	parsedBaseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)

	httpClient.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsedBaseUrl.Hostname()))
	httpClient.SetTimeout(opts.Timeout)

	// burst >= 1 means no request is ever dropped, only delayed
	burst := int(opts.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel)
	libtelemetry.InstrumentResty(httpClient, "overstats.internal.scrapers.overwatch")
	restyutil.InstrumentClient(httpClient, opts.Output)

	return &Client{
		BaseUrl: parsedBaseUrl,
		Http:    httpClient,
		tel:     tel,
	}, nil
}

// CareerPage fetches and parses the career page of a player.
func (c *Client) CareerPage(ctx context.Context, platform Platform, battletag string) (profile.Node, error) {
	endpoint, err := CareerPath(platform, battletag)
	if err != nil {
		return nil, err
	}

	c.tel.ReportDebug(report_client_career_page, endpoint)

	res, err := c.Http.R().
		SetContext(ctx).
		Get(endpoint)
	if err != nil {
		c.tel.ReportBroken(
			report_client_career_page,
			fmt.Errorf("fetch: %w", err),
			endpoint,
		)
		return nil, err
	}

	switch {
	case res.StatusCode() == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s on %s", ErrPlayerNotFound, battletag, platform)
	case res.IsError():
		err := fmt.Errorf("fetch: unexpected status %s", res.Status())
		c.tel.ReportBroken(report_client_career_page, err, endpoint)
		return nil, err
	}

	doc, err := profile.ParseDocument(bytes.NewReader(res.Body()))
	if err != nil {
		c.tel.ReportBroken(
			report_client_career_page,
			fmt.Errorf("parse: %w", err),
			endpoint,
		)
		return nil, err
	}
	return doc, nil
}

// Player is the career page of a single player, it implements
// profile.Provider.
type Player struct {
	Platform  Platform
	Battletag string

	client *Client
}

// Player validates the platform and battletag without making any request.
func (c *Client) Player(platform Platform, battletag string) (Player, error) {
	if _, err := CareerPath(platform, battletag); err != nil {
		return Player{}, err
	}
	return Player{
		Platform:  platform,
		Battletag: battletag,
		client:    c,
	}, nil
}

func (p Player) Document(ctx context.Context) (profile.Node, error) {
	return p.client.CareerPage(ctx, p.Platform, p.Battletag)
}

// NewProfile returns a lazily loaded profile of a player, nothing is fetched
// until the profile is first queried.
func (c *Client) NewProfile(platform Platform, battletag string, opts profile.Options) (*profile.Profile, error) {
	player, err := c.Player(platform, battletag)
	if err != nil {
		return nil, err
	}
	if opts.Telemetry == nil {
		opts.Telemetry = c.tel
	}
	return profile.NewProfile(player, opts), nil
}
