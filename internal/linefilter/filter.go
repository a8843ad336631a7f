package linefilter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"biblioteca/internal/fileutil"
	"biblioteca/internal/language"
	"biblioteca/internal/logging"
)

// DefaultField is the record field compared against the allow-set.
const DefaultField = "language"

const bufferSize = 64 * 1024

var (
	// ErrLocked is returned when another run holds the lock for the same file.
	ErrLocked = errors.New("another filter run holds the lock")
	// ErrNoLanguages is returned when the allow-set is empty.
	ErrNoLanguages = errors.New("allow-set has no language tags")
	// ErrEmptyPath is returned when Run is given no source path.
	ErrEmptyPath = errors.New("source path is empty")

	errEmptyLine = errors.New("empty line")
	errNotObject = errors.New("not a JSON object")
)

// Options configures a filter run.
type Options struct {
	// Path is the line-delimited JSON file rewritten in place.
	Path string
	// Allowed holds the exact tags to keep.
	Allowed language.Set
	// Field defaults to DefaultField.
	Field string
	// DryRun scans and counts without touching the file.
	DryRun bool
	// Backup copies the original to "<Path>.bak" before it is replaced.
	Backup bool
	Logger *slog.Logger
}

// Counts tallies lines by outcome. Total == Kept + Malformed + Unmatched.
type Counts struct {
	Total     int
	Kept      int
	Malformed int
	Unmatched int
}

// Result reports a completed run.
type Result struct {
	Counts
	Path       string
	BackupPath string
	Replaced   bool
	Elapsed    time.Duration
}

// Run filters opts.Path in place. A missing source fails before any file is
// created. On any error, including cancellation, the source is left
// untouched and the temporary file is removed.
func Run(ctx context.Context, opts Options) (Result, error) {
	start := time.Now()
	result := Result{Path: opts.Path}
	if strings.TrimSpace(opts.Path) == "" {
		return result, ErrEmptyPath
	}

	m, err := newMatcher(opts.Allowed, opts.Field)
	if err != nil {
		return result, err
	}
	logger := logging.NewComponentLogger(logging.WithContext(ctx, opts.Logger), "linefilter").
		With(logging.String(logging.FieldPath, opts.Path))

	in, err := openSource(opts.Path)
	if err != nil {
		return result, err
	}
	defer in.Close()

	if opts.DryRun {
		counts, err := filterLines(ctx, in, io.Discard, m, logger)
		result.Counts = counts
		result.Elapsed = time.Since(start)
		if err != nil {
			return result, err
		}
		logger.Info("dry run complete", countAttrs(result)...)
		return result, nil
	}

	lock := flock.New(opts.Path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return result, fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return result, fmt.Errorf("%s: %w", opts.Path, ErrLocked)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Debug("release lock failed", logging.Error(err))
		}
	}()

	tmp, err := fileutil.CreateTemp(opts.Path)
	if err != nil {
		return result, err
	}
	logger.Debug("writing filtered output", logging.String("temp_path", tmp.Name()))

	counts, err := filterLines(ctx, in, tmp, m, logger)
	result.Counts = counts
	if err != nil {
		discardTemp(logger, tmp)
		result.Elapsed = time.Since(start)
		return result, err
	}
	_ = in.Close()

	if opts.Backup {
		backup := opts.Path + ".bak"
		if err := fileutil.CopyFileVerified(opts.Path, backup); err != nil {
			discardTemp(logger, tmp)
			result.Elapsed = time.Since(start)
			return result, fmt.Errorf("backup source: %w", err)
		}
		result.BackupPath = backup
	}

	if err := fileutil.CommitFile(tmp, opts.Path); err != nil {
		result.Elapsed = time.Since(start)
		return result, fmt.Errorf("replace %s: %w", opts.Path, err)
	}
	result.Replaced = true
	result.Elapsed = time.Since(start)

	logger.Info("filter complete", countAttrs(result)...)
	return result, nil
}

// Filter copies the lines of r that match the allow-set to w, unchanged.
// It is the streaming core of Run and touches no files.
func Filter(ctx context.Context, r io.Reader, w io.Writer, allowed language.Set, field string) (Counts, error) {
	m, err := newMatcher(allowed, field)
	if err != nil {
		return Counts{}, err
	}
	return filterLines(ctx, r, w, m, logging.NewNop())
}

func newMatcher(allowed language.Set, field string) (matcher, error) {
	if allowed.Len() == 0 {
		return matcher{}, ErrNoLanguages
	}
	field = strings.TrimSpace(field)
	if field == "" {
		field = DefaultField
	}
	return matcher{field: field, allowed: allowed}, nil
}

func openSource(path string) (*os.File, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	info, err := in.Stat()
	if err != nil {
		_ = in.Close()
		return nil, fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		_ = in.Close()
		return nil, fmt.Errorf("open source: %s is a directory", path)
	}
	return in, nil
}

func filterLines(ctx context.Context, r io.Reader, w io.Writer, m matcher, logger *slog.Logger) (Counts, error) {
	var counts Counts
	reader := bufio.NewReaderSize(r, bufferSize)
	writer := bufio.NewWriterSize(w, bufferSize)

	for {
		if err := ctx.Err(); err != nil {
			return counts, err
		}

		line, readErr := reader.ReadBytes('\n')
		if len(line) > 0 {
			counts.Total++
			kind, parseErr := m.classify(line)
			switch kind {
			case outcomeKept:
				if _, err := writer.Write(line); err != nil {
					return counts, fmt.Errorf("write output: %w", err)
				}
				counts.Kept++
			case outcomeMalformed:
				counts.Malformed++
				logger.Debug("skipping malformed line",
					logging.Int("line", counts.Total),
					logging.Error(parseErr))
			default:
				counts.Unmatched++
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return counts, fmt.Errorf("read source: %w", readErr)
		}
	}

	if err := writer.Flush(); err != nil {
		return counts, fmt.Errorf("write output: %w", err)
	}
	return counts, nil
}

func discardTemp(logger *slog.Logger, tmp *os.File) {
	if err := fileutil.Discard(tmp); err != nil {
		logging.WarnWithContext(logger, "temporary file cleanup failed", "tempfile_cleanup_failed",
			logging.String("temp_path", tmp.Name()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "remove the leftover .tmp file by hand"))
	}
}

func countAttrs(r Result) []any {
	return logging.Args(
		logging.Int("total", r.Total),
		logging.Int("kept", r.Kept),
		logging.Int("malformed", r.Malformed),
		logging.Int("unmatched", r.Unmatched),
		logging.Duration("elapsed", r.Elapsed),
	)
}
