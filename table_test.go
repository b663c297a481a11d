package mdt

import (
	"strings"
	"testing"
)

func tableRows(table *Node) []*Node {
	var rows []*Node
	for part := table.FirstChild(); part != nil; part = part.NextSibling() {
		for row := part.FirstChild(); row != nil; row = row.NextSibling() {
			rows = append(rows, row)
		}
	}
	return rows
}

func cellTexts(row *Node) []string {
	var texts []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		texts = append(texts, strings.TrimSpace(cell.CopyAllText()))
	}
	return texts
}

func TestBasicTable(t *testing.T) {
	doc := loadString(t, "| A | B |\n|---|---|\n| 1 | 2 |\n")
	table := doc.FirstChild()
	if table.Type() != Table {
		t.Fatalf("expected table, got %v", table.Type())
	}
	header := table.FirstChild()
	if header.Type() != TableHeader {
		t.Fatalf("expected table-header, got %v", header.Type())
	}
	body := header.NextSibling()
	if body.Type() != TableBody {
		t.Fatalf("expected table-body, got %v", body.Type())
	}
	rows := tableRows(table)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if got := cellTexts(rows[0]); got[0] != "A" || got[1] != "B" {
		t.Fatalf("header cells: %v", got)
	}
	for cell := rows[0].FirstChild(); cell != nil; cell = cell.NextSibling() {
		if cell.Type() != TableHeaderCell {
			t.Fatalf("expected header cells, got %v", cell.Type())
		}
	}
	if got := cellTexts(rows[1]); got[0] != "1" || got[1] != "2" {
		t.Fatalf("body cells: %v", got)
	}
	for cell := rows[1].FirstChild(); cell != nil; cell = cell.NextSibling() {
		if cell.Type() != TableBodyCellLeft {
			t.Fatalf("expected left cells, got %v", cell.Type())
		}
	}
}

func TestTableAlignment(t *testing.T) {
	doc := loadString(t, "| A | B | C |\n|:-:|--:|---|\n| 1 | 2 | 3 |\n")
	rows := tableRows(doc.FirstChild())
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	want := []NodeType{TableBodyCellCenter, TableBodyCellRight, TableBodyCellLeft}
	got := childTypes(rows[1])
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestTableShortRowPadded(t *testing.T) {
	doc := loadString(t, "| A | B | C |\n|---|---|---|\n| 1 |\n| 1 | 2 | 3 |\n")
	rows := tableRows(doc.FirstChild())
	for i, row := range rows {
		if n := len(childTypes(row)); n != 3 {
			t.Fatalf("row %d: expected 3 cells, got %d", i, n)
		}
	}
}

func TestEscapedPipeDoesNotSplit(t *testing.T) {
	doc := loadString(t, "| a \\| b | c |\n|---|---|\n| 1 | 2 |\n")
	rows := tableRows(doc.FirstChild())
	header := cellTexts(rows[0])
	if len(header) != 2 {
		t.Fatalf("expected 2 header cells, got %v", header)
	}
	if header[0] != "a | b" {
		t.Fatalf("expected escaped pipe kept, got %q", header[0])
	}
}

func TestPipeWithoutSeparatorIsNotTable(t *testing.T) {
	doc := loadString(t, "not a | table\nplain\n")
	if findNode(doc, Table) != nil {
		t.Fatalf("expected no table")
	}
	p := doc.FirstChild()
	if p.Type() != Paragraph {
		t.Fatalf("expected paragraph, got %v", p.Type())
	}
	if got := p.CopyAllText(); !strings.Contains(got, "plain") {
		t.Fatalf("lookahead consumed the next line: %q", got)
	}
}

func TestTableInsideBlockQuote(t *testing.T) {
	doc := loadString(t, "> | A |\n> |---|\n> | 1 |\n")
	quote := doc.FirstChild()
	if quote.Type() != BlockQuote {
		t.Fatalf("expected block-quote, got %v", quote.Type())
	}
	table := findNode(quote, Table)
	if table == nil {
		t.Fatalf("expected table inside quote")
	}
	if len(tableRows(table)) != 2 {
		t.Fatalf("expected header and body rows")
	}
}

func TestTableEndsAtNonPipeLine(t *testing.T) {
	doc := loadString(t, "| A |\n|---|\n| 1 |\nafter\n")
	got := childTypes(doc)
	if len(got) != 2 || got[0] != Table || got[1] != Paragraph {
		t.Fatalf("expected [table paragraph], got %v", got)
	}
}
