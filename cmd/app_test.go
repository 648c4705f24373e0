package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
)

// fakeAPI serves canned histories for the symbols used by testConfig.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	histories := map[string]string{
		"^FTSE": `{"2020-01-02": {"close": "7604.30"}, "2020-01-03": {"close": "7622.40"}}`,
		"VOD.L": `{"2020-01-02": {"close": "1000"}, "2020-01-03": {"close": "1010"}, "2020-01-06": {"close": "1020"}}`,
		"AAPL":  `{"2020-01-02": {"close": "10"}, "2020-01-03": {"close": "12.5"}}`,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/history", func(w http.ResponseWriter, r *http.Request) {
		h, ok := histories[r.URL.Query().Get("symbol")]
		if !ok {
			fmt.Fprint(w, `{"Message": "unknown symbol"}`)
			return
		}
		fmt.Fprintf(w, `{"name": %q, "history": %s}`, r.URL.Query().Get("symbol"), h)
	})
	mux.HandleFunc("/forex_history", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"symbol": "USDGBP", "history": {"2020-01-02": "0.5", "2020-01-03": "0.4", "2020-01-04": "0.4"}}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// testConfig writes a configuration pointing at srv and returns the CSV directory.
func testConfig(t *testing.T, srv *httptest.Server, extra string) string {
	t.Helper()
	root := t.TempDir()
	csvDir := filepath.Join(root, "csv")
	content := fmt.Sprintf(`
api_key = "test-key"
base_url = %q
json_dir = %q
csv_dir = %q
log_level = "error"
currencies = ["USD"]

[[benchmarks]]
symbol = "^FTSE"
currency = "GBP"

[[stocks]]
symbol = "VOD.L"
currency = "GBP"
amount = 10
date = "2020-01-02"

[[stocks]]
symbol = "AAPL"
currency = "USD"
amount = 4
date = "2020-01-02"

%s
`, srv.URL, filepath.Join(root, "json"), csvDir, extra)
	file := filepath.Join(root, "tracker.toml")
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	old := *configFile
	*configFile = file
	t.Cleanup(func() { *configFile = old })
	return csvDir
}

func execute(c subcommands.Command) subcommands.ExitStatus {
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	return c.Execute(context.Background(), f)
}

func TestRun(t *testing.T) {
	csvDir := testConfig(t, fakeAPI(t), "")
	if got := execute(&runCmd{}); got != subcommands.ExitSuccess {
		t.Fatalf("run = %v want ExitSuccess", got)
	}

	got, err := os.ReadFile(filepath.Join(csvDir, "processed.csv"))
	if err != nil {
		t.Fatal(err)
	}
	want := "date,value\n2020-01-02,120.0\n2020-01-03,121.0\n2020-01-06,102.0\n"
	if string(got) != want {
		t.Errorf("processed.csv = %q want %q", got, want)
	}
	for _, name := range []string{"^FTSE.csv", "chart.png", "tracker.xlsx", "summary.md", "summary.html"} {
		if _, err := os.Stat(filepath.Join(csvDir, name)); err != nil {
			t.Errorf("run did not write %s: %v", name, err)
		}
	}
}

func TestStages(t *testing.T) {
	csvDir := testConfig(t, fakeAPI(t), "[reports]\nchart = false\nworkbook = false\nsummary = false\n")
	for _, c := range []subcommands.Command{&fetchCmd{}, &convertCmd{}, &valueCmd{}, &exportCmd{}} {
		if got := execute(c); got != subcommands.ExitSuccess {
			t.Fatalf("%s = %v want ExitSuccess", c.Name(), got)
		}
	}
	if _, err := os.Stat(filepath.Join(csvDir, "processed.csv")); err != nil {
		t.Errorf("export did not write processed.csv: %v", err)
	}
	if _, err := os.Stat(filepath.Join(csvDir, "tracker.xlsx")); err == nil {
		t.Error("export wrote tracker.xlsx while disabled")
	}

	s := &summaryCmd{save: true}
	if got := s.Execute(context.Background(), flag.NewFlagSet("summary", flag.ContinueOnError)); got != subcommands.ExitSuccess {
		t.Fatalf("summary = %v want ExitSuccess", got)
	}
	if _, err := os.Stat(filepath.Join(csvDir, "summary.md")); err != nil {
		t.Errorf("summary -save did not write summary.md: %v", err)
	}
}

func TestRunFailures(t *testing.T) {
	srv := fakeAPI(t)
	testConfig(t, srv, "")
	srv.Close()
	if got := execute(&runCmd{}); got != subcommands.ExitFailure {
		t.Errorf("run with the API down = %v want ExitFailure", got)
	}

	*configFile = filepath.Join(t.TempDir(), "missing.toml")
	if got := execute(&fetchCmd{}); got != subcommands.ExitFailure {
		t.Errorf("fetch with a missing configuration = %v want ExitFailure", got)
	}
}

func TestCompletion(t *testing.T) {
	commander := subcommands.NewCommander(flag.NewFlagSet("ptrack", flag.ContinueOnError), "ptrack")
	Register(commander)
	sub := Completion().Sub
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if _, ok := sub[c.Name()]; !ok {
			t.Errorf("Completion() does not complete %q", c.Name())
		}
	})
}
