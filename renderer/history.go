package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/costbasis"
	md "github.com/nao1215/markdown"
)

// Options tune the rendering of a reconstruction.
type Options struct {
	Currency    string // ISO code of the prices currency, empty for plain numbers
	Transitions bool   // append the share count transitions
}

// HistoryMarkdown renders the reconstructed series of a security, most recent first.
func HistoryMarkdown(name string, s *costbasis.Series, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("History for %s", name))
	if p, ok := s.CostBasis(); ok {
		doc.PlainText(fmt.Sprintf("Cost basis on %s: %s shares worth %s.", p.Date, Shares(p.Shares), Money(p.Value, opts.Currency)))
		doc.PlainText("")
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Shares", "Price", "Value"},
		Rows:   [][]string{},
	}
	for on, p := range s.Reverse() {
		table.Rows = append(table.Rows, []string{
			on.String(),
			Shares(p.Shares),
			Money(p.Price, opts.Currency),
			Money(p.Value, opts.Currency),
		})
	}
	doc.Table(table)

	out := doc.String()
	if opts.Transitions && len(s.Transitions()) > 0 {
		out += "\n" + TransitionsMarkdown(s.Transitions(), opts.Currency)
	}
	return out
}

// TransitionsMarkdown renders the log of share count changes, most recent first.
func TransitionsMarkdown(transitions []costbasis.Transition, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Transitions")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Event", "Effective", "Price", "Dividend", "Split", "Shares After", "Shares Before"},
		Rows:   [][]string{},
	}
	for _, t := range transitions {
		var dividend, split string
		if t.Dividend != nil {
			dividend = Money(*t.Dividend, currency)
		}
		if t.Split != nil {
			split = t.Split.String()
		}
		table.Rows = append(table.Rows, []string{
			t.Date.String(),
			t.Effective.String(),
			Money(t.Price, currency),
			dividend,
			split,
			Shares(t.SharesAfter),
			Shares(t.SharesBefore),
		})
	}
	doc.Table(table)
	return doc.String()
}

// TimelineMarkdown renders the merged corporate actions, most recent first.
func TimelineMarkdown(name string, tl costbasis.Timeline, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Timeline for %s", name))
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Dividend", "Split"},
		Rows:      [][]string{},
	}
	for e := range tl.Backward() {
		var dividend, split string
		if e.HasDividend() {
			dividend = Money(*e.Dividend, currency)
		}
		if e.HasSplit() {
			split = e.Split.String()
		}
		table.Rows = append(table.Rows, []string{e.Date.String(), dividend, split})
	}
	doc.Table(table)
	return doc.String()
}

// CostBasis is the outcome of one security in a batch.
type CostBasis struct {
	Name     string
	Currency string
	Series   *costbasis.Series
}

// BatchMarkdown renders the cost basis and current position of several securities.
func BatchMarkdown(items []CostBasis) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Cost Basis")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Security", "Since", "Shares", "Value", "Latest", "Shares", "Value"},
		Rows:   [][]string{},
	}
	for _, it := range items {
		first, _ := it.Series.CostBasis()
		last, _ := it.Series.Latest()
		table.Rows = append(table.Rows, []string{
			it.Name,
			first.Date.String(),
			Shares(first.Shares),
			Money(first.Value, it.Currency),
			last.Date.String(),
			Shares(last.Shares),
			Money(last.Value, it.Currency),
		})
	}
	doc.Table(table)
	return doc.String()
}
