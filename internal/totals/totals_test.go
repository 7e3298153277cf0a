package totals

import (
	"reflect"
	"testing"
)

func TestAggregatorAdd(t *testing.T) {
	a := NewAggregator()
	a.Add("Tritanium", 1000)
	a.Add("Pyerite", 500)
	a.Add("Nocxium", -1)
	a.Add("Tritanium", 1000)

	want := Totals{"Tritanium": 2000, "Pyerite": 500, "Nocxium": -1}
	if got := a.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("Snapshot() = %v, want %v", got, want)
	}
	if got := a.Names(); !reflect.DeepEqual(got, []string{"Tritanium", "Pyerite", "Nocxium"}) {
		t.Errorf("Names() = %v", got)
	}
	if a.Len() != 3 {
		t.Errorf("Len() = %d, want 3", a.Len())
	}
}

func TestAggregatorKeepsNegativeTotals(t *testing.T) {
	a := NewAggregator()
	a.Add("Zydrine", 20)
	a.Add("Zydrine", -50)

	if got := a.Total("Zydrine"); got != -30 {
		t.Errorf("Total(Zydrine) = %d, want -30", got)
	}
}

func TestAggregatorZeroCountCreatesEntry(t *testing.T) {
	a := NewAggregator()
	a.Add("Isogen", 0)

	if _, ok := a.Snapshot()["Isogen"]; !ok {
		t.Error("zero count did not create an entry")
	}
}

func TestNamesAreCaseAndWhitespaceSensitive(t *testing.T) {
	a := NewAggregator()
	a.Add("Tritanium", 1)
	a.Add("tritanium", 1)
	a.Add("Tritanium ", 1)

	if a.Len() != 3 {
		t.Errorf("Len() = %d, want 3 distinct names", a.Len())
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	a := NewAggregator()
	a.Add("Mexallon", 250)

	snap := a.Snapshot()
	snap["Mexallon"] = 0
	snap["Megacyte"] = 1

	if a.Total("Mexallon") != 250 || a.Total("Megacyte") != 0 {
		t.Error("mutating a snapshot changed the aggregator")
	}
}

func TestTotalsShow(t *testing.T) {
	tests := []struct {
		name   string
		totals Totals
		item   string
		want   string
	}{
		{name: "seen", totals: Totals{"Tritanium": 2000}, item: "Tritanium", want: "2000 Tritanium"},
		{name: "negative", totals: Totals{"Nocxium": -1}, item: "Nocxium", want: "-1 Nocxium"},
		{name: "unseen", totals: Totals{}, item: "Megacyte", want: "0 Megacyte"},
		{name: "nil totals", totals: nil, item: "Megacyte", want: "0 Megacyte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.totals.Show(tt.item); got != tt.want {
				t.Errorf("Show(%q) = %q, want %q", tt.item, got, tt.want)
			}
		})
	}
}

func TestSorted(t *testing.T) {
	totals := Totals{"Tritanium": 2000, "Pyerite": 500, "Nocxium": -1, "Isogen": 500}
	firstSeen := []string{"Tritanium", "Pyerite", "Nocxium", "Isogen"}

	tests := []struct {
		name  string
		order Order
		want  []Entry
	}{
		{
			name:  "input order",
			order: ByInput,
			want: []Entry{
				{"Tritanium", 2000}, {"Pyerite", 500}, {"Nocxium", -1}, {"Isogen", 500},
			},
		},
		{
			name:  "by name",
			order: ByName,
			want: []Entry{
				{"Isogen", 500}, {"Nocxium", -1}, {"Pyerite", 500}, {"Tritanium", 2000},
			},
		},
		{
			name:  "by total",
			order: ByTotal,
			want: []Entry{
				{"Tritanium", 2000}, {"Isogen", 500}, {"Pyerite", 500}, {"Nocxium", -1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sorted(totals, tt.order, firstSeen); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sorted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortedInputOrderAppendsUnknownNames(t *testing.T) {
	totals := Totals{"Tritanium": 1, "Megacyte": 2, "Morphite": 3}

	got := Sorted(totals, ByInput, []string{"Tritanium", "Tritanium", "Absent"})
	want := []Entry{{"Tritanium", 1}, {"Megacyte", 2}, {"Morphite", 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sorted() = %v, want %v", got, want)
	}
}

func TestEntryString(t *testing.T) {
	if got := (Entry{Name: "Tritanium", Total: 2000}).String(); got != "2000 Tritanium" {
		t.Errorf("String() = %q", got)
	}
}
