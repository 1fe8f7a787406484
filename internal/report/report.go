// Package report renders a compilation result as a Markdown walkthrough and,
// through goldmark, as HTML.
package report

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/coregx/redfa"
)

// Markdown returns the conversion walkthrough for res.
func Markdown(res *redfa.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Regex to DFA: `%s`\n\n", res.Regex)

	b.WriteString("## Parsing\n\n")
	b.WriteString("| Stage | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Input | `%s` |\n", cell(res.Regex))
	fmt.Fprintf(&b, "| Explicit concatenation | `%s` |\n", cell(res.FormattedRegex))
	fmt.Fprintf(&b, "| Postfix | `%s` |\n", cell(res.Postfix))
	fmt.Fprintf(&b, "| Alphabet | `%s` |\n\n", cell(res.Alphabet))

	b.WriteString("## ε-NFA\n\n")
	fmt.Fprintf(&b, "%d states, start state %d, final state %d.\n\n",
		len(res.NFA.Nodes), res.NFA.StartState, res.NFA.FinalState)
	b.WriteString("| From | Symbol | To |\n|---|---|---|\n")
	for _, e := range res.NFA.Edges {
		fmt.Fprintf(&b, "| %d | %s | %d |\n", e.From, e.Label, e.To)
	}
	b.WriteString("\n")

	b.WriteString("## Subset construction\n\n")
	for _, step := range res.DFA.ConversionSteps {
		fmt.Fprintf(&b, "### %s\n\n", strings.TrimSuffix(step.Title, ":"))
		b.WriteString("```\n")
		for _, line := range step.Transitions {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("```\n\n")
	}

	b.WriteString("## DFA\n\n")
	fmt.Fprintf(&b, "%d states, start state %d, final states %v.\n\n",
		len(res.DFA.Nodes), res.DFA.StartState, res.DFA.FinalStates)
	writeTransitionTable(&b, res)

	return b.String()
}

// writeTransitionTable writes one row per DFA state and one column per
// alphabet symbol; "-" marks a missing transition.
func writeTransitionTable(b *strings.Builder, res *redfa.Result) {
	symbols := []rune(res.Alphabet)

	b.WriteString("| State | NFA states | Final |")
	for _, r := range symbols {
		fmt.Fprintf(b, " %c |", r)
	}
	b.WriteString("\n|---|---|---|")
	for range symbols {
		b.WriteString("---|")
	}
	b.WriteString("\n")

	type key struct {
		from  uint32
		label string
	}
	targets := make(map[key]uint32, len(res.DFA.Edges))
	for _, e := range res.DFA.Edges {
		targets[key{e.From, e.Label}] = e.To
	}

	for _, n := range res.DFA.Nodes {
		final := ""
		if slices.Contains(res.DFA.FinalStates, n.ID) {
			final = "yes"
		}
		fmt.Fprintf(b, "| %d | {%s} | %s |", n.ID, joinIDs(n.NFAStates), final)
		for _, r := range symbols {
			if to, ok := targets[key{n.ID, string(r)}]; ok {
				fmt.Fprintf(b, " %d |", to)
			} else {
				b.WriteString(" - |")
			}
		}
		b.WriteString("\n")
	}
}

// HTML renders Markdown(res) to w as an HTML fragment.
func HTML(w io.Writer, res *redfa.Result) error {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(res)), &buf); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Page wraps HTML(res) in a minimal standalone document.
func Page(w io.Writer, res *redfa.Result) error {
	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head><body>\n",
		html.EscapeString(res.Regex)); err != nil {
		return err
	}
	if err := HTML(w, res); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body></html>\n")
	return err
}

// cell escapes the table separator inside a GFM table cell.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func joinIDs(ids []uint32) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ",")
}
