package koreafood

import (
	"context"
	"fmt"
	"strconv"

	"seektam-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// the nutrient table of a food is always split over this many pages
const detailPageCount = 2

type detailMerger struct {
	ingredients Ingredients
	index       map[string]int
}

// add records a row, the weight is only taken from the first row seen for an
// ingredient, values of later rows are appended to the same list.
func (m *detailMerger) add(cells []string) {
	name := cells[0]
	idx, ok := m.index[name]
	if !ok {
		idx = len(m.ingredients)
		m.index[name] = idx
		m.ingredients = append(m.ingredients, Ingredient{
			Name:   name,
			Values: []string{cells[1]},
		})
	}
	m.ingredients[idx].Values = append(m.ingredients[idx].Values, cells[2:]...)
}

// parseDetail reads the rows of a single detail page into the merger,
// the last row holds the totals and is skipped.
func parseDetail(doc *goquery.Document, m *detailMerger) error {
	rows := doc.Find("#anal_Table tr")
	if rows.Length() == 0 {
		return fmt.Errorf("%w: no #anal_Table rows", ErrParse)
	}

	for i := 0; i < rows.Length()-1; i++ {
		cells := htmlutil.Texts(rows.Eq(i).Find(".c_l_b"))
		if len(cells) == 0 {
			// header row
			continue
		}
		if len(cells) < 2 {
			return fmt.Errorf("%w: detail row %d has %d cells", ErrParse, i, len(cells))
		}
		if cells[0] == "" {
			return fmt.Errorf("%w: detail row %d has an empty ingredient name", ErrParse, i)
		}
		m.add(cells)
	}
	return nil
}

// Detail fetches both pages of the nutrient table of the food with the given
// code, merging the rows of each ingredient.
func (c *Client) Detail(ctx context.Context, code string) (Ingredients, error) {
	ctx, span := tracer.Start(ctx, "Detail")
	defer span.End()

	c.tel.ReportDebug(report_client_detail, code)

	query := map[string]string{
		"mealcode": code,
		"mealname": "",
	}
	merger := &detailMerger{index: map[string]int{}}

	for page := 1; page <= detailPageCount; page++ {
		doc, err := c.post(ctx, detailPath, query, map[string]string{
			"meal_CD":     code,
			"meal_NM":     "",
			"h_NutriPage": strconv.Itoa(page),
		})
		if err != nil {
			c.tel.ReportBroken(
				report_client_detail,
				fmt.Errorf("fetch: %w", err),
				code,
				page,
			)
			return nil, fmt.Errorf("detail %s page %d: %w", code, page, err)
		}

		err = parseDetail(doc, merger)
		if err != nil {
			c.tel.ReportBroken(
				report_client_detail,
				fmt.Errorf("parse: %w", err),
				code,
				page,
			)
			return nil, fmt.Errorf("detail %s page %d: %w", code, page, err)
		}
	}

	return merger.ingredients, nil
}
