// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package scrape

import (
	"context"
	"errors"
	"fmt"

	"github.com/gocolly/colly/v2"
)

var errNoResponse = errors.New("scrape: no response received")

// RawPage is a fetched recipe page.
type RawPage struct {
	// URL is the final URL of the page after redirects.
	URL string

	// StatusCode is the HTTP status of the response.
	StatusCode int

	// HTML is the response body.
	HTML []byte
}

// Scraper fetches recipe pages.
type Scraper interface {
	Fetch(ctx context.Context, url string) (*RawPage, error)
}

// NewCollyScraper returns a Scraper that fetches pages with colly using the
// given user agent.
func NewCollyScraper(userAgent string) *CollyScraper {
	return &CollyScraper{
		userAgent: userAgent,
	}
}

type CollyScraper struct {
	userAgent string
}

func (s *CollyScraper) Fetch(ctx context.Context, url string) (*RawPage, error) {
	// A collector remembers visited URLs so use a fresh one per fetch.
	c := colly.NewCollector(
		colly.UserAgent(s.userAgent),
		colly.StdlibContext(ctx),
	)

	var page *RawPage
	c.OnResponse(func(r *colly.Response) {
		page = &RawPage{
			URL:        r.Request.URL.String(),
			StatusCode: r.StatusCode,
			HTML:       r.Body,
		}
	})

	if err := c.Visit(url); err != nil {
		return nil, fmt.Errorf("scrape: failed to fetch page: %w", err)
	}
	if page == nil {
		return nil, errNoResponse
	}
	return page, nil
}
