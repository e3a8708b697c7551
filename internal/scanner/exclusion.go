package scanner

import (
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Pattern represents a compiled exclusion pattern
type Pattern struct {
	Raw   string         // Original pattern string
	Regex *regexp.Regexp // Compiled regex
	IsDir bool           // Whether pattern is for directories (ends with /)
}

// ExclusionResult indicates whether a path was excluded and by what.
type ExclusionResult struct {
	Excluded bool
	Pattern  string
}

// Excluder matches paths against glob patterns. `*` and `?` stay within one
// path component, `**` crosses separators, a trailing `/` limits the pattern
// to directories.
type Excluder struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// NewExcluder creates an empty Excluder.
func NewExcluder(logger *zap.Logger) *Excluder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Excluder{
		logger: logger.With(zap.String("component", "excluder")),
	}
}

// AddPattern compiles and registers one glob.
func (e *Excluder) AddPattern(patternStr string) error {
	if strings.TrimSpace(patternStr) == "" {
		return WrapError(ErrInvalidPattern, "empty pattern")
	}
	pattern, err := compilePattern(patternStr)
	if err != nil {
		return WrapError(ErrInvalidPattern, "compile pattern %s", patternStr)
	}
	e.patterns = append(e.patterns, pattern)

	e.logger.Debug("added exclusion pattern", zap.String("pattern", patternStr))
	return nil
}

// AddPatterns registers every glob, stopping at the first invalid one.
func (e *Excluder) AddPatterns(patterns []string) error {
	for _, p := range patterns {
		if err := e.AddPattern(p); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of registered patterns.
func (e *Excluder) Len() int {
	return len(e.patterns)
}

// ShouldExclude checks path against every pattern in registration order.
func (e *Excluder) ShouldExclude(path string, isDir bool) *ExclusionResult {
	return e.match(filepath.Clean(path), "", isDir)
}

// ShouldExcludeUnder is ShouldExclude for a path found below root; patterns
// containing a separator also match the path relative to root, so
// "SkyUI/*.ini" works without a leading "**/".
func (e *Excluder) ShouldExcludeUnder(root, path string, isDir bool) *ExclusionResult {
	cleanPath := filepath.Clean(path)
	relPath, err := filepath.Rel(filepath.Clean(root), cleanPath)
	if err != nil || relPath == "." || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		relPath = ""
	}
	return e.match(cleanPath, relPath, isDir)
}

func (e *Excluder) match(cleanPath, relPath string, isDir bool) *ExclusionResult {
	baseName := filepath.Base(cleanPath)
	for _, pattern := range e.patterns {
		if matchPattern(pattern, baseName, cleanPath, relPath, isDir) {
			return &ExclusionResult{Excluded: true, Pattern: pattern.Raw}
		}
	}
	return &ExclusionResult{Excluded: false}
}

// compilePattern compiles a glob pattern into a regex
func compilePattern(patternStr string) (*Pattern, error) {
	pattern := &Pattern{
		Raw:   patternStr,
		IsDir: strings.HasSuffix(patternStr, "/"),
	}
	if pattern.IsDir {
		patternStr = strings.TrimSuffix(patternStr, "/")
	}

	regex, err := regexp.Compile(globToRegex(patternStr))
	if err != nil {
		return nil, WrapError(err, "compile pattern regex %s", patternStr)
	}
	pattern.Regex = regex
	return pattern, nil
}

// globToRegex converts a glob pattern to an anchored, case-insensitive regex;
// game data paths are matched the way NTFS compares names.
func globToRegex(glob string) string {
	var result strings.Builder
	result.WriteString("(?i)^")

	for i := 0; i < len(glob); i++ {
		ch := glob[i]
		switch ch {
		case '*':
			if i+1 < len(glob) && glob[i+1] == '*' {
				result.WriteString(".*")
				i++
			} else {
				result.WriteString("[^/\\\\]*")
			}
		case '?':
			result.WriteString("[^/\\\\]")
		case '.', '+', '(', ')', '[', ']', '{', '}', '^', '$', '|', '\\':
			result.WriteRune('\\')
			result.WriteRune(rune(ch))
		default:
			result.WriteRune(rune(ch))
		}
	}

	result.WriteString("$")
	return result.String()
}

// matchPattern checks the base name, then the slash-normalised full and
// relative paths for patterns containing a separator.
func matchPattern(pattern *Pattern, baseName, fullPath, relPath string, isDir bool) bool {
	if pattern.IsDir && !isDir {
		return false
	}
	if pattern.Regex.MatchString(baseName) {
		return true
	}
	if !strings.ContainsAny(strings.TrimSuffix(pattern.Raw, "/"), "/\\") {
		return false
	}
	if pattern.Regex.MatchString(filepath.ToSlash(fullPath)) {
		return true
	}
	return relPath != "" && pattern.Regex.MatchString(filepath.ToSlash(relPath))
}
