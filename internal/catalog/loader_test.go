package catalog

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seektam-backend/internal/components/telemetry"
	"seektam-backend/internal/scrapers/koreafood"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"
)

const testBaseUrl = "http://koreanfood.test"

const riceListing = `<html><body><table>
<tr class="list_data_01">
  <td class="a_c">밥류</td>
  <td class="a_c">쌀밥</td>
  <td class="a_c"><a class="eumsiknm" href="mgnmealinfo_view.aspx?meal_code=X123&amp;meal_name=">누룽지</a></td>
</tr>
</table></body></html>`

const emptyListing = `<html><body><table></table></body></html>`

func koreafoodFixture(t testing.TB, name string) string {
	contents, err := os.ReadFile(filepath.Join("..", "scrapers", "koreafood", "testdata", name))
	require.NoError(t, err)
	return string(contents)
}

func htmlResponder(body string) httpmock.Responder {
	return func(*http.Request) (*http.Response, error) {
		res := httpmock.NewStringResponse(http.StatusOK, body)
		res.Header.Set("Content-Type", "text/html; charset=utf-8")
		return res, nil
	}
}

// newTestSource serves the given listing as page 1 and the detail pages of
// each code, details[code] being page 1 and 2.
func newTestSource(t testing.TB, listing string, details map[string][2]string) (*koreafood.Client, *httpmock.MockTransport) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder(
		http.MethodGet,
		testBaseUrl+"/mgn/mgnmealinfo_mealquery.aspx",
		func(req *http.Request) (*http.Response, error) {
			if req.URL.Query().Get("qPage") == "1" {
				return htmlResponder(listing)(req)
			}
			return htmlResponder(emptyListing)(req)
		},
	)
	transport.RegisterResponder(
		http.MethodPost,
		testBaseUrl+"/mgn/mgn_User_meal_analysis.aspx",
		func(req *http.Request) (*http.Response, error) {
			err := req.ParseForm()
			if err != nil {
				return nil, err
			}
			pages, ok := details[req.PostForm.Get("meal_CD")]
			if !ok {
				return httpmock.NewStringResponse(http.StatusNotFound, ""), nil
			}
			if req.PostForm.Get("h_NutriPage") == "2" {
				return htmlResponder(pages[1])(req)
			}
			return htmlResponder(pages[0])(req)
		},
	)

	client, err := koreafood.NewClient(koreafood.ClientOptions{
		BaseUrl:   testBaseUrl,
		Transport: transport,
	}, &telemetry.Recorder{})
	require.NoError(t, err)
	return client, transport
}

func riceDetails(t testing.TB) map[string][2]string {
	return map[string][2]string{
		"X123": {
			koreafoodFixture(t, "detail_X123_1.html"),
			koreafoodFixture(t, "detail_X123_2.html"),
		},
	}
}

func TestLoaderEndToEnd(t *testing.T) {
	client, _ := newTestSource(t, riceListing, riceDetails(t))
	store, _, _ := newTestStore(t, PolicyReuse)
	recorder := &telemetry.Recorder{}
	loader := NewLoader(client, store, recorder)
	ctx := context.Background()

	stats, err := loader.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, LoadStats{FoodsSeen: 1, FoodsAdded: 1}, stats)

	food, err := store.Food(ctx, "누룽지")
	require.NoError(t, err)
	require.Equal(t, "밥류", food.CategoryBig)
	require.Equal(t, "쌀밥", food.CategorySmall)
	require.Len(t, food.Aliments, 1)

	rice := food.Aliments[0]
	require.Equal(t, "쌀,멥쌀,논벼,백미,(국내산),일반형,일품", rice.Name)
	require.InDelta(t, 3.7, rice.Energy, 1e-9)
	require.InDelta(t, 0.826, rice.Nonfibrous, 1e-9)
	require.InDelta(t, 0.01, rice.Niacin, 1e-9)

	seen := recorder.Find(telemetry.LevelCount, report_loader_foods_seen)
	require.Len(t, seen, 1)
	require.Equal(t, int64(1), seen[0].Params[0])
}

func TestLoaderRerun(t *testing.T) {
	client, _ := newTestSource(t, riceListing, riceDetails(t))
	store, _, _ := newTestStore(t, PolicyReuse)
	loader := NewLoader(client, store, &telemetry.Recorder{})
	ctx := context.Background()

	_, err := loader.Run(ctx)
	require.NoError(t, err)
	stats, err := loader.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, LoadStats{FoodsSeen: 1, FoodsAdded: 0}, stats)
	requireStats(t, store, Stats{Foods: 1, Aliments: 1, Links: 1})
}

func TestLoaderFollowsStorePolicy(t *testing.T) {
	ctx := context.Background()
	table := []struct {
		policy   Policy
		expected float64
	}{
		{policy: PolicyReuse, expected: 42},
		{policy: PolicyOverwrite, expected: 3.7},
	}

	for _, row := range table {
		client, _ := newTestSource(t, riceListing, riceDetails(t))
		store, database, _ := newTestStore(t, row.policy)
		loader := NewLoader(client, store, &telemetry.Recorder{})

		_, err := loader.Run(ctx)
		require.NoError(t, err)
		_, err = database.ExecContext(ctx, "update koreafood_aliments set energy = 42")
		require.NoError(t, err)

		_, err = loader.Run(ctx)
		require.NoError(t, err)

		food, err := store.Food(ctx, "누룽지")
		require.NoError(t, err)
		require.Len(t, food.Aliments, 1)
		require.InDelta(t, row.expected, food.Aliments[0].Energy, 1e-9, row.policy)
	}
}

func TestLoaderRepeatedFood(t *testing.T) {
	listing := `<html><body><table>
<tr class="list_data_01"><td class="a_c">밥류</td><td class="a_c">쌀밥</td>
<td class="a_c"><a class="eumsiknm" href="v.aspx?meal_code=X123">누룽지</a></td></tr>
<tr class="list_data_01"><td class="a_c">죽류</td><td class="a_c">쌀죽</td>
<td class="a_c"><a class="eumsiknm" href="v.aspx?meal_code=X123">누룽지</a></td></tr>
</table></body></html>`

	client, transport := newTestSource(t, listing, riceDetails(t))
	store, _, _ := newTestStore(t, PolicyReuse)
	loader := NewLoader(client, store, &telemetry.Recorder{})
	ctx := context.Background()

	stats, err := loader.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, LoadStats{FoodsSeen: 2, FoodsAdded: 1}, stats)
	requireStats(t, store, Stats{Foods: 1, Aliments: 1, Links: 1})

	food, err := store.Food(ctx, "누룽지")
	require.NoError(t, err)
	require.Equal(t, "밥류", food.CategoryBig)

	// 2 listing pages, 2 detail pages per listed item
	require.Equal(t, 2+2*2, transport.GetTotalCallCount())
}

func detailTable(rows ...[]string) string {
	var b strings.Builder
	b.WriteString(`<html><body><table id="anal_Table">`)
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

func TestLoaderStopsOnMalformedValues(t *testing.T) {
	listing := `<html><body><table>
<tr class="list_data_01"><td class="a_c">밥류</td><td class="a_c">쌀밥</td>
<td class="a_c"><a class="eumsiknm" href="v.aspx?meal_code=X123">누룽지</a></td></tr>
<tr class="list_data_01"><td class="a_c"><a class="eumsiknm" href="v.aspx?meal_code=X999">쌀밥</a></td></tr>
<tr class="list_data_01"><td class="a_c"><a class="eumsiknm" href="v.aspx?meal_code=X124">찰밥</a></td></tr>
</table></body></html>`

	details := riceDetails(t)
	details["X999"] = [2]string{
		detailTable([]string{"쌀", "100", "1", "2"}),
		detailTable([]string{"쌀", "100", "3"}),
	}

	client, _ := newTestSource(t, listing, details)
	store, _, _ := newTestStore(t, PolicyReuse)
	loader := NewLoader(client, store, &telemetry.Recorder{})

	stats, err := loader.Run(context.Background())
	require.ErrorIs(t, err, ErrValues)
	require.ErrorContains(t, err, "쌀밥")
	require.Equal(t, LoadStats{FoodsSeen: 2, FoodsAdded: 1}, stats)

	// the food before the failure stays persisted
	requireStats(t, store, Stats{Foods: 1, Aliments: 1, Links: 1})
}

func TestLoaderStopsOnScrapeError(t *testing.T) {
	listing := `<html><body><table>
<tr class="list_data_01"><td class="a_c">밥류</td><td class="a_c">쌀밥</td>
<td class="a_c"><a class="eumsiknm" href="v.aspx?meal_code=X404">누룽지</a></td></tr>
</table></body></html>`

	client, _ := newTestSource(t, listing, riceDetails(t))
	store, _, _ := newTestStore(t, PolicyReuse)
	loader := NewLoader(client, store, &telemetry.Recorder{})

	stats, err := loader.Run(context.Background())
	require.ErrorContains(t, err, "scrape")
	require.ErrorContains(t, err, "unexpected status")
	require.Equal(t, LoadStats{}, stats)
}
