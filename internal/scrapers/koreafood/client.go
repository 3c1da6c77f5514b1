package koreafood

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"seektam-backend/internal/components/assert"
	"seektam-backend/internal/components/telemetry"
	"seektam-backend/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"golang.org/x/net/html/charset"
)

const DefaultBaseUrl = "http://koreanfood.rda.go.kr"

const (
	listingPath = "/mgn/mgnmealinfo_mealquery.aspx"
	detailPath  = "/mgn/mgn_User_meal_analysis.aspx"
)

const (
	report_client_listing_page = "client.listing-page"
	report_client_detail       = "client.detail"
)

var tracer = otel.Tracer("seektam.internal.scrapers.koreafood")

type ClientOptions struct {
	// BaseUrl defaults to DefaultBaseUrl.
	BaseUrl string
	// Timeout defaults to 30 seconds.
	Timeout time.Duration
	// CloudflareBypass makes requests look like they come from a browser.
	CloudflareBypass bool
	// Transport replaces the http transport of the client.
	Transport http.RoundTripper
	// Dump receives every http exchange when set.
	Dump restyutil.Output
}

// Client scrapes the food listing and nutrient tables of the RDA
// koreanfood menu management site.
type Client struct {
	http *resty.Client
	tel  telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("koreafood_scraper", tel)

	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	if opts.Transport != nil {
		httpClient.SetTransport(opts.Transport)
	}
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}
	httpClient.SetTimeout(opts.Timeout)

	telemetry.InstrumentResty(httpClient, tel)
	if opts.Dump != nil {
		restyutil.Dump(httpClient, opts.Dump)
	}

	return &Client{
		http: httpClient,
		tel:  tel,
	}, nil
}

// document decodes the response body according to its declared charset,
// the site serves EUC-KR.
func document(res *resty.Response) (*goquery.Document, error) {
	if res.IsError() {
		return nil, fmt.Errorf("unexpected status: %s", res.Status())
	}
	reader, err := charset.NewReader(
		bytes.NewReader(res.Body()),
		res.Header().Get("Content-Type"),
	)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return goquery.NewDocumentFromReader(reader)
}

func (c *Client) get(ctx context.Context, path string, query map[string]string) (*goquery.Document, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		return nil, err
	}
	return document(res)
}

func (c *Client) post(ctx context.Context, path string, query, form map[string]string) (*goquery.Document, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetFormData(form).
		Post(path)
	if err != nil {
		return nil, err
	}
	return document(res)
}
