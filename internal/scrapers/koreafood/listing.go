package koreafood

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"seektam-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

func listingQuery(page int) map[string]string {
	return map[string]string{
		"qPage":        strconv.Itoa(page),
		"s_firstSort":  "",
		"s_secondSort": "",
		"t_mealName":   "",
		"mealcd":       "",
		"mealnm":       "",
		"strflag":      "true",
	}
}

// itemCode extracts the meal_code parameter out of the query part of an
// anchor href, which may be wrapped in a javascript call.
func itemCode(href string) (string, error) {
	_, query, found := strings.Cut(href, "?")
	if !found {
		return "", fmt.Errorf("%w: no query in href '%s'", ErrParse, href)
	}
	for _, part := range strings.Split(query, "&") {
		key, value, _ := strings.Cut(part, "=")
		if key != "meal_code" {
			continue
		}
		value = strings.TrimRight(value, `'");`)
		unescaped, err := url.QueryUnescape(value)
		if err == nil {
			value = unescaped
		}
		if value == "" {
			break
		}
		return value, nil
	}
	return "", fmt.Errorf("%w: no meal_code in href '%s'", ErrParse, href)
}

// parseListing reads the items of a listing page. Category labels are sparse,
// only the first row of a category carries them, so the last seen pair is
// kept in carry and applied to every following row.
func parseListing(doc *goquery.Document, carry *Categories) ([]ListingItem, error) {
	var items []ListingItem

	rows := doc.Find(".list_data_01")
	for i := range rows.Nodes {
		row := rows.Eq(i)
		anchor := row.Find(".eumsiknm").First()
		if anchor.Length() == 0 {
			continue
		}

		var labels []string
		row.ChildrenFiltered(".a_c").Each(func(_ int, cell *goquery.Selection) {
			if cell.Find(".eumsiknm").Length() > 0 {
				return
			}
			labels = append(labels, htmlutil.Text(cell))
		})
		carry.apply(labels)

		name := htmlutil.Text(anchor)
		if name == "" {
			return nil, fmt.Errorf("%w: listing row %d has an empty name", ErrParse, i)
		}
		code, err := itemCode(anchor.AttrOr("href", ""))
		if err != nil {
			return nil, err
		}

		items = append(items, ListingItem{
			Categories: *carry,
			Name:       name,
			Code:       code,
		})
	}

	return items, nil
}

// apply updates the carried pair with the label cells of a row. Two cells
// are the big then the small category, a lone cell is the small one. Blank
// cells keep what was carried.
func (c *Categories) apply(labels []string) {
	switch {
	case len(labels) >= 2:
		if labels[0] != "" {
			c.Big = labels[0]
		}
		if labels[1] != "" {
			c.Small = labels[1]
		}
	case len(labels) == 1 && labels[0] != "":
		c.Small = labels[0]
	}
}

func (c *Client) listingPage(ctx context.Context, page int, carry *Categories) ([]ListingItem, error) {
	ctx, span := tracer.Start(ctx, "ListingPage")
	defer span.End()

	c.tel.ReportDebug(report_client_listing_page, page)

	doc, err := c.get(ctx, listingPath, listingQuery(page))
	if err != nil {
		c.tel.ReportBroken(
			report_client_listing_page,
			fmt.Errorf("fetch: %w", err),
			page,
		)
		return nil, fmt.Errorf("listing page %d: %w", page, err)
	}

	items, err := parseListing(doc, carry)
	if err != nil {
		c.tel.ReportBroken(
			report_client_listing_page,
			fmt.Errorf("parse: %w", err),
			page,
		)
		return nil, fmt.Errorf("listing page %d: %w", page, err)
	}
	span.AddEvent(fmt.Sprintf("%d items", len(items)))

	return items, nil
}

// ListingPage fetches a single listing page, rows without category labels
// at the top of the page are left uncategorized. Use Listing to carry
// categories across pages.
func (c *Client) ListingPage(ctx context.Context, page int) ([]ListingItem, error) {
	var carry Categories
	return c.listingPage(ctx, page, &carry)
}

// Listing is a cursor over the listing pages, starting at page 1.
type Listing struct {
	client *Client
	page   int
	carry  Categories
	done   bool
}

func (c *Client) Listing() *Listing {
	return &Listing{client: c, page: 1}
}

// NextPage fetches the next page of the listing. Once a page comes back empty
// the listing is over and NextPage returns nil without making a request.
func (l *Listing) NextPage(ctx context.Context) ([]ListingItem, error) {
	if l.done {
		return nil, nil
	}
	items, err := l.client.listingPage(ctx, l.page, &l.carry)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		l.done = true
		return nil, nil
	}
	l.page++
	return items, nil
}

// Done tells if the listing has reached an empty page.
func (l *Listing) Done() bool {
	return l.done
}
