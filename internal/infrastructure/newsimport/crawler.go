package newsimport

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"sync"
	"time"

	"fsti-hub/internal/domain/news"
	"fsti-hub/internal/worker"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// Source describes one news listing page and how to read its articles.
type Source struct {
	Name            string
	ListURL         string
	LinkSelector    string
	TitleSelector   string
	SummarySelector string
	ImageSelector   string
	MaxArticles     int
}

type Crawler struct {
	logger  *zap.Logger
	workers int
	rps     int
	delay   time.Duration
}

func NewCrawler(logger *zap.Logger) *Crawler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Crawler{
		logger:  logger.With(zap.String("component", "news_crawler")),
		workers: 3,
		rps:     3,
		delay:   450 * time.Millisecond,
	}
}

// Crawl visits the listing page, follows article links and extracts a draft
// from each. Articles that fail to load are logged and skipped.
func (c *Crawler) Crawl(ctx context.Context, src Source) ([]news.Draft, error) {
	src = withDefaults(src)
	if strings.TrimSpace(src.ListURL) == "" {
		return nil, errors.New("news source has no list url")
	}

	links, err := c.listLinks(ctx, src)
	if err != nil {
		return nil, err
	}
	if src.MaxArticles > 0 && len(links) > src.MaxArticles {
		links = links[:src.MaxArticles]
	}

	pool := worker.NewPool(c.workers, len(links))
	pool.SetRateLimit(c.rps)
	results := pool.Run(ctx)

	var mu sync.Mutex
	drafts := make([]news.Draft, 0, len(links))
	for _, link := range links {
		link := link
		err := pool.Submit(ctx, link, func(ctx context.Context) error {
			d, err := c.article(ctx, src, link)
			if err != nil {
				return err
			}
			if d.Title == "" {
				return nil
			}
			mu.Lock()
			drafts = append(drafts, d)
			mu.Unlock()
			return nil
		})
		if err != nil {
			break
		}
	}
	pool.Close()

	for res := range results {
		if res.Err != nil {
			c.logger.Warn("article fetch failed", zap.String("url", res.Name), zap.Error(res.Err))
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return drafts, nil
}

func (c *Crawler) collector(target string) *colly.Collector {
	var col *colly.Collector
	if host := hostFromURL(target); host != "" {
		col = colly.NewCollector(colly.AllowedDomains(host))
	} else {
		col = colly.NewCollector()
	}
	col.SetRequestTimeout(20 * time.Second)
	_ = col.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, Delay: c.delay})
	col.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "FSTI-Hub-NewsBot/1.0 (+https://fsti.bi)")
		r.Headers.Set("Accept-Language", "fr,en;q=0.8")
	})
	return col
}

func (c *Crawler) listLinks(ctx context.Context, src Source) ([]string, error) {
	col := c.collector(src.ListURL)

	links := make([]string, 0)
	seen := map[string]struct{}{}
	col.OnHTML(src.LinkSelector, func(e *colly.HTMLElement) {
		href := strings.TrimSpace(e.Attr("href"))
		if href == "" {
			return
		}
		abs := normalizeURL(e.Request.AbsoluteURL(href))
		if abs == "" || abs == normalizeURL(src.ListURL) {
			return
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		links = append(links, abs)
	})

	var reqErr error
	col.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := col.Visit(src.ListURL); err != nil {
		return nil, err
	}
	col.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	return links, nil
}

func (c *Crawler) article(ctx context.Context, src Source, link string) (news.Draft, error) {
	col := c.collector(link)

	d := news.Draft{SourceURL: link}
	col.OnHTML(src.TitleSelector, func(e *colly.HTMLElement) {
		if d.Title == "" {
			d.Title = collapse(e.Text)
		}
	})
	col.OnHTML(src.SummarySelector, func(e *colly.HTMLElement) {
		if d.Summary == "" {
			d.Summary = collapse(e.Text)
		}
	})
	col.OnHTML(src.ImageSelector, func(e *colly.HTMLElement) {
		if d.ImageURL != "" {
			return
		}
		raw := e.Attr("content")
		if raw == "" {
			raw = e.Attr("src")
		}
		if raw != "" {
			d.ImageURL = e.Request.AbsoluteURL(strings.TrimSpace(raw))
		}
	})
	col.OnHTML(`meta[name="description"], meta[property="og:description"]`, func(e *colly.HTMLElement) {
		if d.Summary == "" {
			d.Summary = collapse(e.Attr("content"))
		}
	})

	var reqErr error
	col.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if err := ctx.Err(); err != nil {
		return news.Draft{}, err
	}
	if err := col.Visit(link); err != nil {
		return news.Draft{}, err
	}
	col.Wait()
	if reqErr != nil {
		return news.Draft{}, reqErr
	}
	return d, nil
}

func withDefaults(src Source) Source {
	if strings.TrimSpace(src.LinkSelector) == "" {
		src.LinkSelector = "article a[href]"
	}
	if strings.TrimSpace(src.TitleSelector) == "" {
		src.TitleSelector = "h1"
	}
	if strings.TrimSpace(src.SummarySelector) == "" {
		src.SummarySelector = "article p"
	}
	if strings.TrimSpace(src.ImageSelector) == "" {
		src.ImageSelector = `meta[property="og:image"]`
	}
	return src
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(u.Host); err == nil {
		return h
	}
	return u.Host
}

// normalizeURL drops fragments and tracking parameters so the same article is
// recognised across runs.
func normalizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	u.Fragment = ""
	q := u.Query()
	for k := range q {
		if strings.HasPrefix(strings.ToLower(k), "utm_") || k == "fbclid" {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
