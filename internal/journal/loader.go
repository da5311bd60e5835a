package journal

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/valyala/fastjson"

	"leeter/internal/logging"
)

const (
	DefaultPattern = "*.log"

	zstdSuffix = ".zst"
)

// DefaultBlacklist is dropped at load time unless configured otherwise.
var DefaultBlacklist = []string{"Music"}

// Result is the merged, time-ordered stream of one directory.
type Result struct {
	Records     []Record
	Sources     []string
	Blacklisted int
}

type Loader struct {
	Pattern   string
	Blacklist map[string]struct{}
	Logger    *slog.Logger
}

func NewLoader(pattern string, blacklist []string, logger *slog.Logger) *Loader {
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultPattern
	}
	set := make(map[string]struct{}, len(blacklist))
	for _, kind := range blacklist {
		set[kind] = struct{}{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{Pattern: pattern, Blacklist: set, Logger: logger}
}

// LoadAll reads every matching source directly inside dir and merges their
// records into one stream ordered by timestamp. Records with equal
// timestamps keep their encounter order: sources by name, then line order.
func (l *Loader) LoadAll(dir string) (*Result, error) {
	sources, err := l.Discover(dir)
	if err != nil {
		return nil, err
	}

	result := &Result{Sources: sources}
	for _, path := range sources {
		records, dropped, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		result.Records = append(result.Records, records...)
		result.Blacklisted += dropped
		logging.WithSource(l.Logger, filepath.Base(path)).Debug("loaded journal source", "records", len(records), "blacklisted", dropped)
	}

	slices.SortStableFunc(result.Records, func(a, b Record) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	return result, nil
}

// Discover lists the sources in dir matching the loader pattern, plus their
// zstd-compressed counterparts. A compressed source is skipped when its plain
// form sits next to it. Subdirectories are not visited.
func (l *Loader) Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading log directory: %w", err)
	}

	files := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			files[entry.Name()] = struct{}{}
		}
	}

	var sources []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		plain := strings.TrimSuffix(name, zstdSuffix)
		matched, err := filepath.Match(l.Pattern, plain)
		if err != nil {
			return nil, fmt.Errorf("invalid log pattern %q: %w", l.Pattern, err)
		}
		if !matched {
			continue
		}
		if plain != name {
			if _, ok := files[plain]; ok {
				logging.WithSource(l.Logger, name).Warn("skipping compressed journal source shadowed by plain file", "plain", plain)
				continue
			}
		}
		sources = append(sources, filepath.Join(dir, name))
	}
	return sources, nil
}

func (l *Loader) blocked(kind string) bool {
	_, ok := l.Blacklist[kind]
	return ok
}

// LoadFile decodes one source in line order and reports how many records
// the blacklist removed.
func (l *Loader) LoadFile(path string) ([]Record, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening log source: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, zstdSuffix) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, 0, fmt.Errorf("opening compressed log source %s: %w", path, err)
		}
		defer dec.Close()
		reader = dec
	}

	source := filepath.Base(path)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	var parser fastjson.Parser
	var records []Record
	dropped := 0
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		rec, skipped, err := decodeLine(&parser, source, lineNum, []byte(line), l.blocked)
		if err != nil {
			return nil, 0, err
		}
		if skipped {
			dropped++
			continue
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("reading %s at line %d: %w", source, lineNum, err)
	}

	return records, dropped, nil
}
