package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// NormalizeText removes non-printable characters, trims the text and
// collapses runs of whitespace into a single space.
func NormalizeText(text string) string {
	text = removeNonPrintable(text)
	text = strings.TrimSpace(text)
	text = innerWhitespace.ReplaceAllString(text, " ")
	return text
}

// Text returns the normalized text of the first node in the selection.
func Text(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return NormalizeText(GetText(sel.Nodes[0]))
}

// Texts returns the normalized text of every node in the selection.
func Texts(sel *goquery.Selection) []string {
	out := make([]string, len(sel.Nodes))
	for i, n := range sel.Nodes {
		out[i] = NormalizeText(GetText(n))
	}
	return out
}
