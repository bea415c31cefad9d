package competitor

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"syscall"

	"github.com/PuerkitoBio/goquery"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/kapu/socialintel-go/internal/constants"
	"github.com/kapu/socialintel-go/internal/domain"
	"github.com/kapu/socialintel-go/internal/util"
	"github.com/kapu/socialintel-go/pkg/errors"
)

const maxDescriptionRunes = 500

// ErrNonPublicAddress is returned when a page resolves to a loopback,
// private or link-local address.
var ErrNonPublicAddress = stderrors.New("non-public address")

// sharedAddressSpace is the carrier-grade NAT range (RFC 6598).
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// Scraper reads Open Graph metadata from public channel pages.
type Scraper struct {
	httpClient  *http.Client
	concurrency int
	userAgent   string
	logger      *zap.Logger
}

// NewScraper uses a client that refuses non-public destinations when
// client is nil.
func NewScraper(client *http.Client, logger *zap.Logger) *Scraper {
	if client == nil {
		client = publicClient()
	}
	return &Scraper{
		httpClient:  client,
		concurrency: constants.ScraperConfig.Concurrency,
		userAgent:   constants.ScraperConfig.UserAgent,
		logger:      util.OrNop(logger),
	}
}

func publicClient() *http.Client {
	dialer := &net.Dialer{
		Timeout: constants.ScraperConfig.Timeout,
		Control: guardDial,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext
	return &http.Client{
		Timeout:   constants.ScraperConfig.Timeout,
		Transport: transport,
	}
}

// guardDial runs after name resolution, so it also covers redirects and
// hostnames that resolve to internal addresses.
func guardDial(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip, err := netip.ParseAddr(host)
	if err != nil {
		return fmt.Errorf("dial %s: %w", address, err)
	}
	if !isPublic(ip) {
		return fmt.Errorf("%w: %s", ErrNonPublicAddress, ip)
	}
	return nil
}

func isPublic(ip netip.Addr) bool {
	ip = ip.Unmap()
	return !(ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() || ip.IsMulticast() ||
		sharedAddressSpace.Contains(ip))
}

// ValidateURL accepts absolute http(s) URLs only.
func ValidateURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, errors.NewValidationError("competitor URL must be an absolute http(s) URL", "url", raw)
	}
	return u, nil
}

// Fetch downloads one page and extracts its metadata.
func (s *Scraper) Fetch(ctx context.Context, pageURL string) (domain.CompetitorMeta, error) {
	u, err := ValidateURL(pageURL)
	if err != nil {
		return domain.CompetitorMeta{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.CompetitorMeta{}, err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.CompetitorMeta{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.CompetitorMeta{}, errors.NewAPIError(
			fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
			http.StatusBadGateway,
			map[string]any{"url": u.String(), "status": resp.StatusCode},
		)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, constants.ScraperConfig.MaxBodyBytes))
	if err != nil {
		return domain.CompetitorMeta{}, fmt.Errorf("HTML parse failed: %w", err)
	}

	meta := ParseMeta(doc, u.String())
	if meta.Title == "" {
		return domain.CompetitorMeta{}, fmt.Errorf("no title found at %s", u.String())
	}

	s.logger.Debug("Competitor page scraped",
		zap.String("url", meta.URL),
		zap.String("title", meta.Title))
	return meta, nil
}

// FetchAll scrapes up to MaxURLs pages concurrently and keeps successful
// results in input order. It fails only when every page failed.
func (s *Scraper) FetchAll(ctx context.Context, pageURLs []string) ([]domain.CompetitorMeta, error) {
	if len(pageURLs) == 0 {
		return []domain.CompetitorMeta{}, nil
	}
	if limit := constants.ScraperConfig.MaxURLs; len(pageURLs) > limit {
		return []domain.CompetitorMeta{}, errors.NewValidationError(
			fmt.Sprintf("at most %d competitor URLs per request", limit), "urls", len(pageURLs))
	}

	type outcome struct {
		meta domain.CompetitorMeta
		err  error
	}
	results := make([]outcome, len(pageURLs))

	p := pool.New().WithMaxGoroutines(s.concurrency)
	for idx, pageURL := range pageURLs {
		idx, pageURL := idx, pageURL
		p.Go(func() {
			meta, err := s.Fetch(ctx, pageURL)
			results[idx] = outcome{meta: meta, err: err}
		})
	}
	p.Wait()

	metas := make([]domain.CompetitorMeta, 0, len(pageURLs))
	var firstErr error
	for i, r := range results {
		if r.err != nil {
			s.logger.Warn("Competitor scrape failed",
				zap.String("url", pageURLs[i]),
				zap.Error(r.err))
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		metas = append(metas, r.meta)
	}

	if len(metas) == 0 {
		return metas, fmt.Errorf("all %d competitor pages failed: %w", len(pageURLs), firstErr)
	}

	s.logger.Info("Competitor scrape completed",
		zap.Int("requested", len(pageURLs)),
		zap.Int("succeeded", len(metas)))
	return metas, nil
}

// ParseMeta reads Open Graph tags, falling back to <title>, the
// description meta tag and the canonical link.
func ParseMeta(doc *goquery.Document, pageURL string) domain.CompetitorMeta {
	meta := domain.CompetitorMeta{
		URL:         pageURL,
		Title:       firstNonEmpty(property(doc, "og:title"), strings.TrimSpace(doc.Find("title").First().Text())),
		Description: firstNonEmpty(property(doc, "og:description"), named(doc, "description")),
		Image:       property(doc, "og:image"),
		SiteName:    property(doc, "og:site_name"),
	}

	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		meta.Canonical = strings.TrimSpace(href)
	}
	if meta.Canonical == "" {
		meta.Canonical = property(doc, "og:url")
	}

	meta.Description = util.TruncateString(meta.Description, maxDescriptionRunes)
	return meta
}

func property(doc *goquery.Document, name string) string {
	v, _ := doc.Find(fmt.Sprintf(`meta[property="%s"]`, name)).First().Attr("content")
	return strings.TrimSpace(v)
}

func named(doc *goquery.Document, name string) string {
	v, _ := doc.Find(fmt.Sprintf(`meta[name="%s"]`, name)).First().Attr("content")
	return strings.TrimSpace(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
