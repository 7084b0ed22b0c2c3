// Package iidxme scrapes player records from iidx.me.
package iidxme

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"iidxbot/internal/apperr"
	"iidxbot/internal/assert"
	"iidxbot/internal/catalog"
	"iidxbot/internal/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	report_client_resolve_version = "client.resolve-version"
	report_client_get_song_page   = "client.get-song-page"
	report_client_extract         = "client.extract"
)

var tracer = otel.Tracer("iidxbot.scrapers.iidxme")

// Options configures a Client. RequestsPerSecond caps outgoing requests across
// every invocation, Concurrency is the number of song pages fetched at once.
type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Concurrency       int
	CloudflareBypass  bool
}

func DefaultOptions() Options {
	return Options{
		BaseURL:           "https://iidx.me",
		Timeout:           time.Second * 15,
		RequestsPerSecond: 4,
		Concurrency:       4,
	}
}

type Client struct {
	http        *resty.Client
	tel         telemetry.API
	concurrency int
}

func NewClient(opts Options, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)
	assert.NotEmptyStr(opts.BaseURL)
	assert.Positive(opts.Concurrency)

	tel = telemetry.NewScopedAPI("iidxme_scraper", tel)

	parsedBaseUrl, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseURL)
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}
	httpClient.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsedBaseUrl.Hostname()))
	httpClient.SetTimeout(opts.Timeout)

	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, tel)

	return &Client{
		http:        httpClient,
		tel:         tel,
		concurrency: opts.Concurrency,
	}, nil
}

func (c *Client) get(ctx context.Context, endpoint string) (*resty.Response, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(endpoint + "?content")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrUpstreamUnavailable, err.Error())
	}
	return res, nil
}

var versionNumberRegex = regexp.MustCompile(`^\d+`)

// ResolveVersion returns the version segment a player's records should be read
// from: CurrentVersion, or the latest version the player has data in when they
// have not played the current one.
func (c *Client) ResolveVersion(ctx context.Context, username string) (string, error) {
	ctx, span := tracer.Start(ctx, "ResolveVersion")
	defer span.End()
	span.SetAttributes(attribute.String("username", username))

	version, err := c.resolveVersion(ctx, username)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not resolve profile version")
		if !errors.Is(err, apperr.ErrUserNotFound) {
			c.tel.ReportBroken(report_client_resolve_version, err, username)
		}
		return "", err
	}
	return version, nil
}

func (c *Client) resolveVersion(ctx context.Context, username string) (string, error) {
	res, err := c.get(ctx, fmt.Sprintf("/%s/%s", CurrentVersion, url.PathEscape(username)))
	if err != nil {
		return "", err
	}

	switch res.StatusCode() {
	case http.StatusOK:
	case http.StatusBadRequest, http.StatusNotFound:
		return "", fmt.Errorf("%w: %s", apperr.ErrUserNotFound, username)
	default:
		return "", fmt.Errorf("%w: profile status %s", apperr.ErrUpstreamUnavailable, res.Status())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return "", fmt.Errorf("%w: parse profile: %s", apperr.ErrPageParse, err.Error())
	}

	title := doc.Find("h2").First()
	if title.Length() == 0 {
		return "", apperr.PageParse("profile title of %s", username)
	}
	if !strings.Contains(title.Text(), "VERSION DATA NOT FOUND") {
		return CurrentVersion, nil
	}

	latest := doc.Find("ul > li").First()
	if latest.Length() == 0 {
		return "", apperr.PageParse("version list of %s", username)
	}
	version := versionNumberRegex.FindString(strings.TrimSpace(latest.Text()))
	if version == "" {
		return "", apperr.PageParse("version number in %q", latest.Text())
	}
	return version, nil
}

// SongPage fetches the page that holds every chart record of a song.
func (c *Client) SongPage(ctx context.Context, username, version, songID string) (*Page, error) {
	endpoint := fmt.Sprintf("/%s/%s/music/%s", version, url.PathEscape(username), url.PathEscape(songID))
	c.tel.ReportDebug(report_client_get_song_page, endpoint)

	res, err := c.get(ctx, endpoint)
	if err != nil {
		c.tel.ReportBroken(report_client_get_song_page, err, endpoint)
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		err := fmt.Errorf("%w: song page status %s", apperr.ErrUpstreamUnavailable, res.Status())
		c.tel.ReportBroken(report_client_get_song_page, err, endpoint)
		return nil, err
	}

	page, err := ParsePage(res.Body())
	if err != nil {
		c.tel.ReportBroken(report_client_get_song_page, err, endpoint)
		return nil, err
	}
	return page, nil
}

// FetchPersonalBests returns the records of username on every chart of songs,
// keyed by chart id. Song pages are fetched in parallel, the first failure
// cancels the rest and no partial result is returned.
func (c *Client) FetchPersonalBests(ctx context.Context, username, version string, songs []catalog.Song) (map[string]PersonalBest, error) {
	ctx, span := tracer.Start(ctx, "FetchPersonalBests")
	defer span.End()
	span.SetAttributes(
		attribute.String("username", username),
		attribute.String("version", version),
		attribute.Int("songs", len(songs)),
	)

	var mutex sync.Mutex
	result := make(map[string]PersonalBest)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.concurrency)
	for _, song := range songs {
		group.Go(func() error {
			page, err := c.SongPage(groupCtx, username, version, song.ID)
			if err != nil {
				return err
			}

			records := make(map[string]PersonalBest, len(song.Charts))
			for _, chart := range song.Charts {
				pb, err := ExtractPersonalBest(chart.ID, page)
				if err != nil {
					c.tel.ReportBroken(report_client_extract, err, song.ID, chart.ID)
					return err
				}
				records[chart.ID] = pb
			}

			mutex.Lock()
			defer mutex.Unlock()
			for id, pb := range records {
				result[id] = pb
			}
			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not fetch personal bests")
		return nil, err
	}
	c.tel.ReportCount(report_client_get_song_page, int64(len(songs)))
	return result, nil
}
