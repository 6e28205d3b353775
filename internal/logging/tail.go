package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Entry is one decoded line of the JSON log.
type Entry struct {
	Time    string
	Level   zapcore.Level
	Logger  string
	Message string
	Fields  map[string]any
	Raw     string
}

// Tail returns up to maxLines entries from the end of the log at path, oldest
// first. maxLines <= 0 returns everything. Entries below minLevel are dropped
// before counting. A missing file yields no entries.
func Tail(path string, maxLines int, minLevel zapcore.Level) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		e := ParseEntry(line)
		if e.Level < minLevel {
			continue
		}
		entries = append(entries, e)
		if maxLines > 0 && len(entries) > 2*maxLines {
			entries = append(entries[:0], entries[len(entries)-maxLines:]...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if maxLines > 0 && len(entries) > maxLines {
		entries = entries[len(entries)-maxLines:]
	}
	return entries, nil
}

// ParseEntry decodes a JSON log line. Lines that are not JSON come back with
// only Raw and Message set, at info level.
func ParseEntry(line string) Entry {
	e := Entry{Raw: line, Message: line, Level: zapcore.InfoLevel}

	var fields map[string]any
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		return e
	}
	take := func(key string) string {
		v, _ := fields[key].(string)
		delete(fields, key)
		return v
	}

	e.Time = take("time")
	if lvl, err := zapcore.ParseLevel(take("level")); err == nil {
		e.Level = lvl
	}
	e.Logger = take("logger")
	e.Message = take("msg")
	delete(fields, "caller")
	delete(fields, "stacktrace")
	if len(fields) > 0 {
		e.Fields = fields
	}
	return e
}

// String renders the entry as a single human readable line.
func (e Entry) String() string {
	if e.Time == "" && e.Fields == nil && e.Message == e.Raw {
		return e.Raw
	}

	var b strings.Builder
	if e.Time != "" {
		b.WriteString(e.Time)
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%-5s %s", e.Level.CapitalString(), e.Message)

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Fields[k])
	}
	return b.String()
}
