package scraper

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"job-matcher/internal/usecase"

	"github.com/chromedp/chromedp"
)

const indeedSource = "indeed"

// IndeedImporter drives a headless browser through Indeed search result
// pages. Indeed renders listings client side and blocks plain HTTP clients,
// so chromedp is the only road in.
type IndeedImporter struct {
	siteBase string
	query    string
	location string
	maxJobs  int
}

func NewIndeedImporter() *IndeedImporter {
	return &IndeedImporter{
		siteBase: "https://www.indeed.com",
		query:    "software developer",
		location: "remote",
		maxJobs:  60,
	}
}

type indeedCard struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	URL      string `json:"url"`
}

func (s *IndeedImporter) Name() string { return indeedSource }

func (s *IndeedImporter) Fetch(ctx context.Context, pages int) ([]usecase.JobInput, error) {
	if pages <= 0 {
		pages = 1
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	out := make([]usecase.JobInput, 0, s.maxJobs)

	for page := 0; page < pages && len(out) < s.maxJobs; page++ {
		cards, err := s.fetchSearchPage(browserCtx, page)
		if err != nil {
			if page == 0 {
				return nil, err
			}
			break
		}
		if len(cards) == 0 {
			break
		}

		for _, card := range cards {
			if len(out) >= s.maxJobs {
				break
			}
			if card.Title == "" || card.URL == "" {
				continue
			}
			desc, err := s.fetchDescription(browserCtx, card.URL)
			if err != nil || desc == "" {
				continue
			}
			out = append(out, usecase.JobInput{
				Title:       card.Title,
				Company:     pickNonEmpty(card.Company, "Unknown Company"),
				Location:    pickNonEmpty(card.Location, s.location),
				Description: desc,
				URL:         card.URL,
			})
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("indeed: no jobs found (headless)")
	}
	return dedupByURL(out), nil
}

func (s *IndeedImporter) fetchSearchPage(browserCtx context.Context, page int) ([]indeedCard, error) {
	searchURL := fmt.Sprintf("%s/jobs?q=%s&l=%s&start=%d",
		strings.TrimRight(s.siteBase, "/"),
		url.QueryEscape(s.query),
		url.QueryEscape(s.location),
		page*10,
	)

	reqCtx, cancel := context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()

	var cards []indeedCard
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(searchURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(jitter(2*time.Second)),
		chromedp.EvaluateAsDevTools(`Array.from(document.querySelectorAll('.job_seen_beacon')).map(card => {
			const a = card.querySelector('h2.jobTitle a');
			return {
				title: (card.querySelector('h2.jobTitle')?.textContent || '').trim(),
				company: (card.querySelector('[data-testid="company-name"], .companyName')?.textContent || '').trim(),
				location: (card.querySelector('[data-testid="text-location"], .companyLocation')?.textContent || '').trim(),
				url: a ? a.href : ''
			};
		})`, &cards),
	)
	if err != nil {
		return nil, fmt.Errorf("indeed page %d: %w", page+1, err)
	}
	return cards, nil
}

func (s *IndeedImporter) fetchDescription(browserCtx context.Context, jobURL string) (string, error) {
	reqCtx, cancel := context.WithTimeout(browserCtx, 25*time.Second)
	defer cancel()

	var desc string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(jobURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(jitter(time.Second)),
		chromedp.EvaluateAsDevTools(`(document.querySelector('#jobDescriptionText')?.textContent || '').trim()`, &desc),
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(desc), nil
}

func jitter(base time.Duration) time.Duration {
	return base + time.Duration(rand.Int63n(int64(base)))
}
