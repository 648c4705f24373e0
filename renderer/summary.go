package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/tracker"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the portfolio summary as markdown.
func SummaryMarkdown(s *tracker.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	cur := s.ReportingCurrency
	p := s.Portfolio

	doc.H1(fmt.Sprintf("Portfolio Summary on %s", p.To))
	doc.PlainText(fmt.Sprintf("Total Market Value: %s", md.Bold(Money(p.End, cur))))
	doc.PlainText(fmt.Sprintf("Since %s: %s (%s)", p.From, SignedMoney(p.Change(), cur), Percent(p.Return())))

	if len(s.Holdings) > 0 {
		doc.H2("Holdings")
		rows := make([][]string, 0, len(s.Holdings)+1)
		for _, h := range s.Holdings {
			rows = append(rows, []string{h.Name, h.From.String(), Money(h.Start, cur), Money(h.End, cur), SignedMoney(h.Change(), cur), Percent(h.Return())})
		}
		rows = append(rows, []string{md.Bold("Total"), p.From.String(), Money(p.Start, cur), md.Bold(Money(p.End, cur)), SignedMoney(p.Change(), cur), Percent(p.Return())})
		doc.Table(md.TableSet{
			Header: []string{"Holding", "Since", "Start", "End", "Change", "Return"},
			Rows:   rows,
		})
	}

	if len(s.Benchmarks) > 0 {
		doc.H2("Benchmarks")
		rows := make([][]string, 0, len(s.Benchmarks))
		for _, b := range s.Benchmarks {
			rows = append(rows, []string{b.Name, b.From.String(), Points(b.Start), Points(b.End), Percent(b.Return())})
		}
		doc.Table(md.TableSet{
			Header: []string{"Benchmark", "Since", "Start", "End", "Return"},
			Rows:   rows,
		})
	}

	return doc.String()
}

// CommentaryMarkdown renders an analyst commentary as a markdown section.
func CommentaryMarkdown(text string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Commentary")
	doc.PlainText(text)
	return doc.String()
}
