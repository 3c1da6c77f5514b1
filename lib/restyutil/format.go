package restyutil

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"
)

func formatHeaders(headers http.Header) string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out strings.Builder
	for _, k := range keys {
		for _, v := range headers[k] {
			fmt.Fprintf(&out, "%s: %s\n", k, v)
		}
	}
	return strings.TrimSuffix(out.String(), "\n")
}

func formatRequestBody(req *http.Request) string {
	if req == nil || req.GetBody == nil {
		return ""
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Sprintf("failed to get request body: %s", err.Error())
	}
	defer body.Close()
	contents, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("failed to read request body: %s", err.Error())
	}
	return string(contents)
}

// 1: request method
// 2: request url
// 3: request headers
// 4: request body
// 5: response status
// 6: response headers
// 7: response body
const exchangeTemplate = `---- REQUEST ----

%s %s

%s

%s

---- RESPONSE ----

%s

%s

%s`

// FormatExchange renders the request and response as plain text.
func FormatExchange(res *resty.Response) string {
	var requestHeaders string
	if res.Request.RawRequest != nil {
		requestHeaders = formatHeaders(res.Request.RawRequest.Header)
	}

	return fmt.Sprintf(
		exchangeTemplate,
		res.Request.Method, res.Request.URL,
		requestHeaders,
		formatRequestBody(res.Request.RawRequest),
		res.Status(),
		formatHeaders(res.Header()),
		res.String(),
	)
}
