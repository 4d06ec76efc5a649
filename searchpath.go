package mibxref

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/golangsnmp/mibxref/internal/types"
)

// PathEnv names the environment variable holding stub directories.
// A leading "+" appends to the configured list, a leading "-" prepends,
// anything else replaces it.
const PathEnv = "MIBXREF_PATH"

type pathOp int

const (
	pathReplace pathOp = iota
	pathAppend
	pathPrepend
)

// systemSources returns Sources for all discovered stub directories.
func systemSources(logger *slog.Logger) []Source {
	dirs := SystemPaths(logger)
	var sources []Source
	for _, d := range dirs {
		if src, err := DirTree(d); err == nil {
			sources = append(sources, src)
		}
	}
	return sources
}

// SystemPaths returns the stub directories from the defaults, the stubdirs
// directives of the config files and MIBXREF_PATH, applied in that order,
// deduplicated and filtered to directories that exist.
func SystemPaths(logger *slog.Logger) []string {
	log := types.Logger{L: logger}
	paths := defaultPaths()
	for _, cf := range pathConfigFiles() {
		paths = applyConfigFile(cf, paths, &log)
	}
	if v := os.Getenv(PathEnv); v != "" {
		paths = applyEnv(v, paths)
	}
	paths = filterExistingDirs(dedup(paths))
	log.Log(slog.LevelDebug, "system paths", slog.Any("dirs", paths))
	return paths
}

func defaultPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".mibxref", "stubs"))
	}
	return append(paths,
		"/usr/local/share/mibxref/stubs",
		"/usr/share/mibxref/stubs",
	)
}

func pathConfigFiles() []string {
	files := []string{"/etc/mibxref/paths.conf"}
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, filepath.Join(home, ".mibxref", "paths.conf"))
	}
	return files
}

// parsePathLine parses a single paths.conf line for stubdirs directives.
// Supports both "stubdirs +/path" (prefix on value) and "+stubdirs /path"
// (prefix on directive).
func parsePathLine(line string) (pathOp, []string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return 0, nil, false
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, nil, false
	}

	directive := fields[0]
	value := fields[1]

	switch directive {
	case "stubdirs":
		op, dirs := parsePrefixed(value)
		return op, dirs, true
	case "+stubdirs":
		return pathAppend, splitPaths(value), true
	case "-stubdirs":
		return pathPrepend, splitPaths(value), true
	default:
		return 0, nil, false
	}
}

func parsePrefixed(value string) (pathOp, []string) {
	if strings.HasPrefix(value, "+") {
		return pathAppend, splitPaths(value[1:])
	}
	if strings.HasPrefix(value, "-") {
		return pathPrepend, splitPaths(value[1:])
	}
	return pathReplace, splitPaths(value)
}

func applyEnv(value string, current []string) []string {
	op, dirs := parsePrefixed(value)
	return applyOp(op, dirs, current)
}

func applyOp(op pathOp, dirs, current []string) []string {
	switch op {
	case pathAppend:
		return append(current, dirs...)
	case pathPrepend:
		return append(dirs, current...)
	default:
		return dirs
	}
}

func applyConfigFile(path string, current []string, logger *types.Logger) []string {
	f, err := os.Open(path)
	if err != nil {
		return current
	}
	defer f.Close() //nolint:errcheck // best-effort config file read

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		op, dirs, ok := parsePathLine(scanner.Text())
		if !ok {
			continue
		}
		current = applyOp(op, dirs, current)
	}
	if err := scanner.Err(); err != nil {
		logger.Log(slog.LevelDebug, "error reading config file", slog.String("path", path), slog.Any("error", err))
	}
	return current
}

func splitPaths(s string) []string {
	if s == "" {
		return nil
	}
	var result []string
	for _, p := range filepath.SplitList(s) {
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func dedup(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	var result []string
	for _, p := range paths {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			result = append(result, p)
		}
	}
	return result
}

func filterExistingDirs(paths []string) []string {
	var result []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err == nil && info.IsDir() {
			result = append(result, p)
		}
	}
	return result
}
