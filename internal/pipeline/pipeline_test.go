package pipeline_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ginjaninja78/eve-parser/internal/grammar"
	"github.com/ginjaninja78/eve-parser/internal/pipeline"
	"github.com/ginjaninja78/eve-parser/internal/source"
	"github.com/ginjaninja78/eve-parser/internal/totals"
)

func TestRunBlueprintScenario(t *testing.T) {
	src := source.Lines([]string{
		"1000 x Tritanium",
		"500 x Pyerite",
		"-1 x Nocxium",
		"1000 x Tritanium",
	})

	result, err := pipeline.New().Run(src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := totals.Totals{"Tritanium": 2000, "Pyerite": 500, "Nocxium": -1}
	if !reflect.DeepEqual(result.Totals, want) {
		t.Errorf("Totals = %v, want %v", result.Totals, want)
	}
	if got := result.Show("Tritanium"); got != "2000 Tritanium" {
		t.Errorf("Show(Tritanium) = %q", got)
	}
}

func TestRunMixedFormats(t *testing.T) {
	input := "1000 x Tritanium\n" +
		"Tritanium\t1000\tBlah\t\t\t1,400 m3\n" +
		"Nocxium\t50\tAdvanced Commodities\t\t\t400 m3\n" +
		"-1 x Nocxium\n" +
		"Isogen 100\n" +
		"100 Isogen\n"

	result, err := pipeline.New().Run(source.NewReader(strings.NewReader(input), 0))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := totals.Totals{"Tritanium": 2000, "Nocxium": 49, "Isogen": 200}
	if !reflect.DeepEqual(result.Totals, want) {
		t.Errorf("Totals = %v, want %v", result.Totals, want)
	}

	wantByGrammar := map[grammar.Kind]int{
		grammar.CountXName:    2,
		grammar.InventoryList: 2,
		grammar.NameCount:     1,
		grammar.CountName:     1,
	}
	if !reflect.DeepEqual(result.Stats.ByGrammar, wantByGrammar) {
		t.Errorf("ByGrammar = %v, want %v", result.Stats.ByGrammar, wantByGrammar)
	}
}

// Each input format on its own produces the same totals.
func TestRunPerFormat(t *testing.T) {
	inputs := map[string]string{
		"blueprint": "1000 x Tritanium\n500 x Pyerite\n250 x Mexallon\n100 x Isogen\n" +
			"50 x Nocxium\n20 x Zydrine\n-1 x Nocxium\n1000 x Tritanium\n100 x Isogen\n",
		"inventory": "Tritanium\t1000\tBlah\t\t\t1,400 m3\n" +
			"Pyerite\t500\tAdvanced Commodities\t\t\t7,100 m3\n" +
			"Mexallon\t250\tAdvanced Commodities\t\t\t1,900 m3\n" +
			"Isogen\t100\tAdvanced Commodities\t\t\t7,400 m3\n" +
			"Nocxium\t50\tAdvanced Commodities\t\t\t400 m3\n" +
			"Nocxium\t-1\tAdvanced Commodities\t\t\t400 m3\n" +
			"Zydrine\t20\tAdvanced Commodities\t\t\t7,400 m3\n" +
			"Tritanium\t1000\tBlah\t\t\t1,400 m3\n" +
			"Isogen\t100\tAdvanced Commodities\t\t\t7,400 m3\n",
		"item then count": "Tritanium\t1000\nPyerite\t500\nMexallon\t250\nIsogen\t100\n" +
			"Nocxium\t50\nNocxium\t-1\nZydrine\t20\nTritanium\t1000\nIsogen\t100\n",
		"count then item": "1000   Tritanium\n500    Pyerite\n250    Mexallon\n100    Isogen\n" +
			"50 Nocxium\n-1 Nocxium\n20 Zydrine\n1000   Tritanium\n100    Isogen\n",
	}
	want := []string{
		"2000 Tritanium", "200 Isogen", "49 Nocxium",
		"500 Pyerite", "250 Mexallon", "20 Zydrine",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			result, err := pipeline.New().Run(source.NewReader(strings.NewReader(input), 0))
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			for _, w := range want {
				item := w[strings.Index(w, " ")+1:]
				if got := result.Show(item); got != w {
					t.Errorf("Show(%q) = %q, want %q", item, got, w)
				}
			}
			if len(result.Totals) != 6 {
				t.Errorf("got %d items, want 6: %v", len(result.Totals), result.Totals)
			}
		})
	}
}

func TestRunSkipsUnrecognizedLines(t *testing.T) {
	src := source.Lines([]string{
		"Name\tQuantity\tGroup\tVolume",
		"",
		"Tritanium\t1000\tMineral\t\t\t10 m3",
		"some chatter from the clipboard",
		"1000 x Tritanium x extra",
	})

	result, err := pipeline.New().Run(src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !reflect.DeepEqual(result.Totals, totals.Totals{"Tritanium": 1000}) {
		t.Errorf("Totals = %v", result.Totals)
	}
	if result.Stats.LinesRead != 5 || result.Stats.LinesMatched != 1 || result.Stats.LinesSkipped != 4 {
		t.Errorf("Stats = %+v", result.Stats)
	}
}

func TestRunEmptySource(t *testing.T) {
	result, err := pipeline.New().Run(source.Lines(nil))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Totals) != 0 {
		t.Errorf("Totals = %v, want empty", result.Totals)
	}
	if got := result.Show("Megacyte"); got != "0 Megacyte" {
		t.Errorf("Show(Megacyte) = %q, want %q", got, "0 Megacyte")
	}
}

type brokenSource struct {
	lines []string
	err   error
	line  string
}

func (b *brokenSource) Next() bool {
	if len(b.lines) == 0 {
		return false
	}
	b.line, b.lines = b.lines[0], b.lines[1:]
	return true
}

func (b *brokenSource) Line() string { return b.line }
func (b *brokenSource) Err() error   { return b.err }

func TestRunSourceErrorReturnsNoTotals(t *testing.T) {
	boom := errors.New("connection reset")
	src := &brokenSource{lines: []string{"1000 x Tritanium"}, err: boom}

	result, err := pipeline.New().Run(src)
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want %v", err, boom)
	}
	if result != nil {
		t.Errorf("Run() returned partial totals: %+v", result)
	}
}

func TestRunEntriesKeepInputOrder(t *testing.T) {
	src := source.Lines([]string{"5 Zydrine", "1 Tritanium", "2 Zydrine", "3 Isogen"})

	result, err := pipeline.New().Run(src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var got []string
	for _, e := range result.Entries(totals.ByInput) {
		got = append(got, e.String())
	}
	want := []string{"7 Zydrine", "1 Tritanium", "3 Isogen"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Entries = %v, want %v", got, want)
	}
}

func TestRunWithCustomDispatcher(t *testing.T) {
	countName, _ := grammar.Lookup(grammar.CountName)
	p := pipeline.New(pipeline.WithDispatcher(grammar.NewDispatcher(countName)))

	result, err := p.Run(source.Lines([]string{"1000 x Tritanium", "5 Isogen"}))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !reflect.DeepEqual(result.Totals, totals.Totals{"Isogen": 5}) {
		t.Errorf("Totals = %v", result.Totals)
	}
}

func TestPipelineIsReusable(t *testing.T) {
	p := pipeline.New()

	first, err := p.Run(source.Lines([]string{"1 Tritanium"}))
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.Run(source.Lines([]string{"2 Tritanium"}))
	if err != nil {
		t.Fatal(err)
	}
	if first.Totals.Total("Tritanium") != 1 || second.Totals.Total("Tritanium") != 2 {
		t.Errorf("runs shared state: first %v, second %v", first.Totals, second.Totals)
	}
}
