package koreafood

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"seektam-backend/internal/components/telemetry"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"
)

const testBaseUrl = "http://koreanfood.test"

func newTestClient(t testing.TB) (*Client, *httpmock.MockTransport, *telemetry.Recorder) {
	transport := httpmock.NewMockTransport()
	recorder := &telemetry.Recorder{}
	client, err := NewClient(ClientOptions{
		BaseUrl:   testBaseUrl,
		Transport: transport,
	}, recorder)
	require.NoError(t, err)
	return client, transport, recorder
}

func readFixture(t testing.TB, name string) string {
	contents, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(contents)
}

func htmlResponse(body string) *http.Response {
	res := httpmock.NewStringResponse(http.StatusOK, body)
	res.Header.Set("Content-Type", "text/html; charset=utf-8")
	return res
}

// registerListing serves pages[qPage], pages that are not given are empty.
func registerListing(t testing.TB, transport *httpmock.MockTransport, pages map[int]string) {
	empty := readFixture(t, "listing_empty.html")
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+listingPath,
		func(req *http.Request) (*http.Response, error) {
			page, err := strconv.Atoi(req.URL.Query().Get("qPage"))
			if err != nil {
				return nil, err
			}
			body, ok := pages[page]
			if !ok {
				body = empty
			}
			return htmlResponse(body), nil
		},
	)
}

// registerDetail serves details[mealcode][h_NutriPage-1].
func registerDetail(t testing.TB, transport *httpmock.MockTransport, details map[string][2]string) {
	transport.RegisterResponder(
		http.MethodPost,
		testBaseUrl+detailPath,
		func(req *http.Request) (*http.Response, error) {
			err := req.ParseForm()
			if err != nil {
				return nil, err
			}
			code := req.URL.Query().Get("mealcode")
			if code != req.PostForm.Get("meal_CD") {
				return nil, fmt.Errorf("mealcode %s does not match meal_CD %s", code, req.PostForm.Get("meal_CD"))
			}
			page, err := strconv.Atoi(req.PostForm.Get("h_NutriPage"))
			if err != nil {
				return nil, err
			}
			pages, ok := details[code]
			if !ok || page < 1 || page > 2 {
				return httpmock.NewStringResponse(http.StatusNotFound, ""), nil
			}
			return htmlResponse(pages[page-1]), nil
		},
	)
}

// detailPage renders a nutrient table with the given rows followed by a
// total row.
func detailPage(rows ...[]string) string {
	var b strings.Builder
	b.WriteString(`<html><body><table id="anal_Table">`)
	b.WriteString(`<tr><th>식품명</th><th>중량(g)</th></tr>`)
	for _, row := range append(rows, []string{"합계", "0"}) {
		b.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(&b, `<td class="c_l_b">%s</td>`, cell)
		}
		b.WriteString("</tr>")
	}
	b.WriteString(`</table></body></html>`)
	return b.String()
}

// listingPage renders a listing where only the first row of a category
// carries its labels.
func listingPage(items ...ListingItem) string {
	var b strings.Builder
	b.WriteString(`<html><body><table>`)
	var last Categories
	for _, item := range items {
		b.WriteString(`<tr class="list_data_01">`)
		if item.Big != last.Big {
			fmt.Fprintf(&b, `<td class="a_c">%s</td><td class="a_c">%s</td>`, item.Big, item.Small)
		} else if item.Small != last.Small {
			fmt.Fprintf(&b, `<td class="a_c">%s</td>`, item.Small)
		}
		last = item.Categories
		fmt.Fprintf(
			&b,
			`<td class="a_c"><a class="eumsiknm" href="mgnmealinfo_view.aspx?meal_code=%s&amp;meal_name=">%s</a></td>`,
			item.Code, item.Name,
		)
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</table></body></html>`)
	return b.String()
}
