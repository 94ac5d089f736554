package notes

import (
	"fmt"
	"strings"
	"testing"
)

func TestExtractJSONArray(t *testing.T) {
	e := NewExtractor()

	input := `Here are the items: [{"description":"Send report","assignee":"Bob","due_date":"2024-01-05","priority":"High"},{"description":"","assignee":"Amy"}]`
	items := e.Extract(input)

	if len(items) != 1 {
		t.Fatalf("got %d items, want 1 (empty description dropped)", len(items))
	}
	want := ExtractedItem{Description: "Send report", Assignee: "Bob", DueDate: "2024-01-05", Priority: "High"}
	if items[0] != want {
		t.Errorf("got %+v, want %+v", items[0], want)
	}
}

func TestExtractAppliesDefaults(t *testing.T) {
	e := NewExtractor()

	items := e.Extract(`[{"description":"Review budget"}]`)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	item := items[0]
	if item.Assignee != "Unassigned" {
		t.Errorf("assignee = %q, want default", item.Assignee)
	}
	if item.DueDate != "No due date specified" {
		t.Errorf("due_date = %q, want default", item.DueDate)
	}
	if item.Priority != "Medium" {
		t.Errorf("priority = %q, want default", item.Priority)
	}
}

func TestExtractPreservesOrder(t *testing.T) {
	e := NewExtractor()

	items := e.Extract(`[{"description":"first"},{"description":"second"},{"description":"third"}]`)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for i, want := range []string{"first", "second", "third"} {
		if items[i].Description != want {
			t.Errorf("items[%d].Description = %q, want %q", i, items[i].Description, want)
		}
	}
}

func TestExtractLineFallback(t *testing.T) {
	e := NewExtractor()

	items := e.Extract("- Follow up with client\n* Schedule demo\nNo other notes.")
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Description != "Follow up with client" {
		t.Errorf("items[0] = %q", items[0].Description)
	}
	if items[1].Description != "Schedule demo" {
		t.Errorf("items[1] = %q", items[1].Description)
	}
	for _, item := range items {
		if item.Assignee != "Unassigned" || item.DueDate != "No due date specified" || item.Priority != "Medium" {
			t.Errorf("fallback item missing defaults: %+v", item)
		}
	}
}

func TestExtractFallbackCap(t *testing.T) {
	e := NewExtractor()

	var b strings.Builder
	for i := 1; i <= 15; i++ {
		fmt.Fprintf(&b, "- Task number %d\n", i)
	}

	items := e.Extract(b.String())
	if len(items) != 10 {
		t.Fatalf("got %d items, want cap of 10", len(items))
	}
	for i := 0; i < 10; i++ {
		want := fmt.Sprintf("Task number %d", i+1)
		if items[i].Description != want {
			t.Errorf("items[%d] = %q, want %q (original order)", i, items[i].Description, want)
		}
	}
}

func TestExtractActionKeywordLine(t *testing.T) {
	e := NewExtractor()

	// A non-bullet line mentioning "action" qualifies under the line rule.
	items := e.Extract("No action items this week.")
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Description != "No action items this week." {
		t.Errorf("description = %q", items[0].Description)
	}
}

func TestExtractSkipsNonObjectEntries(t *testing.T) {
	e := NewExtractor()

	// A stray string inside the array must not sink the whole decode;
	// the object entries around it are still kept.
	items := e.Extract(`Note [{"description":"Send report"}, "misc note", {"description":"Book room"}] done`)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 object entries kept", len(items))
	}
	if items[0].Description != "Send report" || items[1].Description != "Book room" {
		t.Errorf("got %+v, want Send report then Book room", items)
	}
}

func TestExtractMalformedJSONFallsBack(t *testing.T) {
	e := NewExtractor()

	// Trailing comma makes the array undecodable; the bracketed text still
	// contains bullet-free lines so the fallback applies line rules to it.
	items := e.Extract("[{\"description\":\"Send report\",},]\n- Ping the vendor")
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1 from line fallback", len(items))
	}
	if items[0].Description != "Ping the vendor" {
		t.Errorf("description = %q", items[0].Description)
	}
}

func TestExtractNoInput(t *testing.T) {
	e := NewExtractor()

	if items := e.Extract(""); len(items) != 0 {
		t.Errorf("empty input: got %d items, want 0", len(items))
	}
	if items := e.Extract("Plain text without lists or tasks."); len(items) != 0 {
		t.Errorf("plain text: got %d items, want 0", len(items))
	}
}

func TestExtractIdempotentOnFallbackOutput(t *testing.T) {
	e := NewExtractor()

	var b strings.Builder
	for i := 1; i <= 15; i++ {
		fmt.Fprintf(&b, "- Item %d\n", i)
	}
	first := e.Extract(b.String())

	var again strings.Builder
	for _, item := range first {
		fmt.Fprintf(&again, "%s\n", item.Description)
	}
	second := e.Extract(again.String())

	if len(second) > 10 {
		t.Errorf("second pass produced %d items, want <= 10", len(second))
	}
	if len(second) > len(first) {
		t.Errorf("second pass produced %d items, more than first pass %d", len(second), len(first))
	}
}

func TestExtractNonStringFieldsUseDefaults(t *testing.T) {
	e := NewExtractor()

	items := e.Extract(`[{"description":"Check invoices","priority":2}]`)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Priority != "Medium" {
		t.Errorf("priority = %q, want default for non-string value", items[0].Priority)
	}
}

func TestExtractBracketsInsideProse(t *testing.T) {
	e := NewExtractor()

	// First '[' to last ']' is the extraction span; prose brackets around a
	// valid array still decode when the span happens to be the array itself.
	items := e.Extract("model output [{\"description\":\"Draft agenda\"}] end")
	if len(items) != 1 || items[0].Description != "Draft agenda" {
		t.Fatalf("got %+v, want single Draft agenda item", items)
	}
}
