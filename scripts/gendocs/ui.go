package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/leapstack-labs/bstree/internal/ui/resources"
	"golang.org/x/net/html"
)

// uiPage describes one page served by the web UI.
type uiPage struct {
	File  string
	Route string
}

var uiPages = []uiPage{
	{File: resources.EnterNumbersPage, Route: "/enter-numbers"},
	{File: resources.PreviousTreesPage, Route: "/previous-trees"},
}

var apiRoutes = [][]string{
	{"POST", "/process-numbers", "Build and record a tree from a form submission"},
	{"POST", "/process-numbers-json", "Build and record a tree from a JSON body"},
	{"GET", "/api/previous", "All history entries, newest first"},
	{"GET", "/api/previous/{id}", "One history entry"},
	{"GET", "/api/previous/events", "Server-sent events on every new entry"},
	{"GET", "/api/last-input", "The last input submitted in this session"},
	{"GET", "/healthz", "Store health check"},
}

// generateUIDocs converts the embedded pages into markdown reference pages.
func generateUIDocs(outDir string) error {
	log.Printf("Generating UI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Web UI", "Pages and endpoints served by bstree serve")
	w.GeneratedMarker()

	w.Header(1, "Web UI")
	w.Paragraph("`bstree serve` hosts two pages and a small JSON API on the configured port.")

	w.Header(2, "Endpoints")
	w.Table([]string{"Method", "Path", "Description"}, codeFirstColumns(apiRoutes))

	for _, page := range uiPages {
		doc, err := pageDoc(page)
		if err != nil {
			return fmt.Errorf("failed to document %s: %w", page.File, err)
		}
		w.Raw(doc)
	}

	filename := filepath.Join(outDir, "index.md")
	if err := os.WriteFile(filename, w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated index.md")
	return nil
}

// pageDoc renders one page section: its title, its controls and the
// markdown form of its <main> element.
func pageDoc(page uiPage) (string, error) {
	data, err := resources.ReadPage(resources.FS(), page.File)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := page.File
	if t := findElement(doc, "title"); t != nil {
		title = getTextContent(t)
	}

	w := NewMarkdownWriter()
	w.Header(2, title)
	w.Paragraph("Served at " + InlineCode(page.Route) + ".")

	if controls := collectControls(doc); len(controls) > 0 {
		w.Header(3, "Elements")
		w.Table([]string{"ID", "Element"}, controls)
	}

	mainEl := findElement(doc, "main")
	if mainEl == nil {
		return w.String(), nil
	}

	md, err := htmltomarkdown.ConvertString(renderNode(mainEl))
	if err != nil {
		return "", fmt.Errorf("failed to convert to markdown: %w", err)
	}

	w.Header(3, "Content")
	w.Raw(demoteHeadings(strings.TrimSpace(md), 3))
	return w.String(), nil
}

// collectControls lists every element with an id, in document order.
func collectControls(n *html.Node) [][]string {
	var rows [][]string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id := getAttr(n, "id"); id != "" {
				rows = append(rows, []string{InlineCode("#" + id), n.Data})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return rows
}

// demoteHeadings shifts markdown ATX headings so the shallowest becomes level+1.
func demoteHeadings(md string, level int) string {
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, "#") {
			continue
		}
		depth := len(line) - len(strings.TrimLeft(line, "#"))
		lines[i] = strings.Repeat("#", min(depth+level, 6)) + line[depth:]
	}
	return strings.Join(lines, "\n")
}

func codeFirstColumns(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r[0], InlineCode(r[1]), r[2]})
	}
	return out
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// getAttr returns the value of an attribute, or empty string if not found.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// getTextContent returns the text content of a node and its children.
func getTextContent(n *html.Node) string {
	var sb strings.Builder
	var getText func(*html.Node)
	getText = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			getText(c)
		}
	}
	getText(n)
	return strings.TrimSpace(sb.String())
}

// renderNode renders an HTML node back to string.
func renderNode(n *html.Node) string {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return ""
	}
	return sb.String()
}
