package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/pdftitle/internal/config"
)

// write renders results in the given format.
func write(w io.Writer, format string, results []result) error {
	switch format {
	case config.FormatJSON:
		return writeJSON(w, results)
	case config.FormatHTML:
		return writeHTML(w, results)
	default:
		return writeText(w, results)
	}
}

// writeText prints one title per line, prefixed with the path when there
// is more than one file. Failed files are left out.
func writeText(w io.Writer, results []result) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		if r.Error != "" {
			continue
		}
		if len(results) > 1 {
			fmt.Fprintf(bw, "%s: %s\n", r.Path, r.Title)
		} else {
			fmt.Fprintln(bw, r.Title)
		}
	}
	return bw.Flush()
}

func writeJSON(w io.Writer, results []result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(results)
}

// writeHTML renders a small HTML document with a definition list of paths
// and titles.
func writeHTML(w io.Writer, results []result) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(withText(element(atom.Title), "PDF titles"))
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)

	list := element(atom.Dl)
	body.AppendChild(list)

	for _, r := range results {
		list.AppendChild(withText(element(atom.Dt), r.Path))
		if r.Error != "" {
			list.AppendChild(withText(element(atom.Dd, class("error")), r.Error))
			continue
		}
		list.AppendChild(withText(element(atom.Dd, class("title")), r.Title))
		for _, warning := range r.Warnings {
			list.AppendChild(withText(element(atom.Dd, class("warning")), warning))
		}
	}

	if err := html.Render(w, doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a, Attr: attrs}
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func class(name string) html.Attribute {
	return html.Attribute{Key: "class", Val: name}
}
