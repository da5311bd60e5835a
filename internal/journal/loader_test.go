package journal

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestLoadAll(t *testing.T) {
	loader := NewLoader("", DefaultBlacklist, nil)

	result, err := loader.LoadAll(filepath.Join("testdata", "logs"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(result.Sources) != 2 {
		t.Fatalf("expected 2 sources (no recursion, pattern only), got %v", result.Sources)
	}
	if result.Blacklisted != 2 {
		t.Fatalf("expected 2 blacklisted records, got %d", result.Blacklisted)
	}

	want := []string{"Fileheader", "Docked", "MissionAccepted", "Scan", "MissionCompleted", "MarketBuy"}
	if got := kinds(result.Records); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order:\n got %v\nwant %v", got, want)
	}

	for i := 1; i < len(result.Records); i++ {
		if result.Records[i].Timestamp.Before(result.Records[i-1].Timestamp) {
			t.Fatalf("records not sorted at %d", i)
		}
	}

	accepted := result.Records[2]
	if accepted.Source != "Journal.2024-03-02T100000.01.log" || accepted.Line != 5 {
		t.Fatalf("expected source and line to survive merge, got %s:%d", accepted.Source, accepted.Line)
	}
}

func TestLoadAll_Idempotent(t *testing.T) {
	loader := NewLoader("", DefaultBlacklist, nil)
	dir := filepath.Join("testdata", "logs")

	first, err := loader.LoadAll(dir)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := loader.LoadAll(dir)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !reflect.DeepEqual(first.Records, second.Records) {
		t.Fatalf("expected identical streams across loads")
	}
}

func TestLoadAll_StableTies(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.log",
		`{"timestamp":"2024-03-02T10:00:00Z","event":"First"}`,
		`{"timestamp":"2024-03-02T10:00:00Z","event":"Second"}`,
	)
	writeSource(t, dir, "b.log",
		`{"timestamp":"2024-03-02T09:59:59Z","event":"Earliest"}`,
		`{"timestamp":"2024-03-02T10:00:00Z","event":"Third"}`,
	)

	result, err := NewLoader("", nil, nil).LoadAll(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := []string{"Earliest", "First", "Second", "Third"}
	if got := kinds(result.Records); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order:\n got %v\nwant %v", got, want)
	}
}

func TestLoadAll_Blacklist(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.log",
		`{"timestamp":"2024-03-02T10:00:00Z","event":"Music"}`,
		`{"timestamp":"2024-03-02T10:00:01Z","event":"ReceiveText"}`,
		`{"timestamp":"2024-03-02T10:00:02Z","event":"Docked","MarketID":1}`,
	)

	t.Run("default drops Music", func(t *testing.T) {
		result, err := NewLoader("", DefaultBlacklist, nil).LoadAll(dir)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		for _, rec := range result.Records {
			if rec.Kind == "Music" {
				t.Fatalf("blacklisted kind leaked into stream")
			}
		}
		if len(result.Records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(result.Records))
		}
	})

	t.Run("custom blacklist", func(t *testing.T) {
		result, err := NewLoader("", []string{"Music", "ReceiveText"}, nil).LoadAll(dir)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if got := kinds(result.Records); !reflect.DeepEqual(got, []string{"Docked"}) {
			t.Fatalf("unexpected kinds: %v", got)
		}
	})

	t.Run("empty blacklist keeps everything", func(t *testing.T) {
		result, err := NewLoader("", []string{}, nil).LoadAll(dir)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(result.Records) != 3 || result.Blacklisted != 0 {
			t.Fatalf("expected all records kept, got %d (%d dropped)", len(result.Records), result.Blacklisted)
		}
	})
}

func TestLoadAll_BlacklistSkipsPayloadChecks(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.log",
		`{"timestamp":"2024-03-02T10:00:00Z","event":"Docked","StationName":"Jameson Memorial"}`,
		`{"timestamp":"2024-03-02T10:00:01Z","event":"Undocked"}`,
	)

	result, err := NewLoader("", []string{"Docked"}, nil).LoadAll(dir)
	if err != nil {
		t.Fatalf("expected blacklisted line to be dropped before payload decoding, got %v", err)
	}
	if got := kinds(result.Records); !reflect.DeepEqual(got, []string{"Undocked"}) || result.Blacklisted != 1 {
		t.Fatalf("unexpected stream: %v (%d dropped)", got, result.Blacklisted)
	}

	if _, err := NewLoader("", nil, nil).LoadAll(dir); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField when Docked is kept, got %v", err)
	}

	writeSource(t, dir, "b.log", `{"timestamp":"later","event":"Docked","MarketID":1}`)
	var tsErr *TimestampError
	if _, err := NewLoader("", []string{"Docked"}, nil).LoadAll(dir); !errors.As(err, &tsErr) {
		t.Fatalf("expected TimestampError for a blacklisted line, got %v", err)
	}
}

func TestLoadAll_DecodeErrorNamesSource(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "broken.log",
		`{"timestamp":"2024-03-02T10:00:00Z","event":"Docked","MarketID":1}`,
		`{"timestamp": nope}`,
	)

	_, err := NewLoader("", nil, nil).LoadAll(dir)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decodeErr.Source != "broken.log" || decodeErr.Line != 2 {
		t.Fatalf("expected broken.log line 2, got %s line %d", decodeErr.Source, decodeErr.Line)
	}
}

func TestLoadAll_TimestampError(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "bad-time.log", `{"timestamp":"02/03/2024","event":"Docked","MarketID":1}`)

	_, err := NewLoader("", nil, nil).LoadAll(dir)
	var tsErr *TimestampError
	if !errors.As(err, &tsErr) {
		t.Fatalf("expected TimestampError, got %v", err)
	}
}

func TestLoadAll_MissingDirectory(t *testing.T) {
	if _, err := NewLoader("", nil, nil).LoadAll(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadAll_CompressedSource(t *testing.T) {
	lines := []string{
		`{"timestamp":"2024-03-02T10:00:00Z","event":"Docked","MarketID":9,"StationName":"Jameson Memorial","StarSystem":"Shinrarta Dezhra"}`,
		`{"timestamp":"2024-03-02T10:01:00Z","event":"MarketSell","MarketID":9,"Type":"gold","Count":1,"TotalSale":400}`,
	}

	plainDir := t.TempDir()
	writeSource(t, plainDir, "Journal.01.log", lines...)

	packedDir := t.TempDir()
	writeCompressedSource(t, packedDir, "Journal.01.log.zst", lines...)

	plain, err := NewLoader("", nil, nil).LoadAll(plainDir)
	if err != nil {
		t.Fatalf("plain load: %v", err)
	}
	packed, err := NewLoader("", nil, nil).LoadAll(packedDir)
	if err != nil {
		t.Fatalf("compressed load: %v", err)
	}

	if len(packed.Records) != 2 {
		t.Fatalf("expected 2 records from compressed source, got %d", len(packed.Records))
	}
	for i := range plain.Records {
		plain.Records[i].Source = ""
		packed.Records[i].Source = ""
	}
	if !reflect.DeepEqual(plain.Records, packed.Records) {
		t.Fatalf("compressed source decoded differently")
	}
}

func TestDiscover_Pattern(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "Journal.01.log")
	writeSource(t, dir, "Status.json")
	writeSource(t, dir, "Journal.02.log")

	sources, err := NewLoader("Journal.*.log", nil, nil).Discover(dir)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	want := []string{filepath.Join(dir, "Journal.01.log"), filepath.Join(dir, "Journal.02.log")}
	if !reflect.DeepEqual(sources, want) {
		t.Fatalf("unexpected sources: %v", sources)
	}

	if _, err := NewLoader("[", nil, nil).Discover(dir); err == nil {
		t.Fatalf("expected invalid pattern error")
	}
}

func TestLoadAll_PlainShadowsCompressedCopy(t *testing.T) {
	line := `{"timestamp":"2024-03-02T10:00:00Z","event":"Docked","MarketID":9}`
	dir := t.TempDir()
	writeSource(t, dir, "Journal.01.log", line)
	writeCompressedSource(t, dir, "Journal.01.log.zst", line)
	writeCompressedSource(t, dir, "Journal.02.log.zst", `{"timestamp":"2024-03-02T11:00:00Z","event":"Undocked"}`)

	var logs bytes.Buffer
	loader := NewLoader("", nil, slog.New(slog.NewTextHandler(&logs, nil)))
	result, err := loader.LoadAll(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := []string{filepath.Join(dir, "Journal.01.log"), filepath.Join(dir, "Journal.02.log.zst")}
	if !reflect.DeepEqual(result.Sources, want) {
		t.Fatalf("unexpected sources: %v", result.Sources)
	}
	if got := kinds(result.Records); !reflect.DeepEqual(got, []string{"Docked", "Undocked"}) {
		t.Fatalf("expected each record once, got %v", got)
	}
	if !strings.Contains(logs.String(), "Journal.01.log.zst") {
		t.Fatalf("expected a warning naming the skipped source, got %q", logs.String())
	}
}

func kinds(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Kind)
	}
	return out
}

func writeSource(t *testing.T, dir, name string, lines ...string) {
	t.Helper()
	contents := ""
	for _, line := range lines {
		contents += line + "\n"
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o600); err != nil {
		t.Fatalf("writing source: %v", err)
	}
}

func writeCompressedSource(t *testing.T, dir, name string, lines ...string) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("creating source: %v", err)
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatalf("creating encoder: %v", err)
	}
	for _, line := range lines {
		if _, err := enc.Write([]byte(line + "\n")); err != nil {
			t.Fatalf("writing compressed line: %v", err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("closing encoder: %v", err)
	}
}
