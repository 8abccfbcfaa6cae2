package tui

import (
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rusenback/docker-gateway/internal/model"
)

type logLevel int

const (
	levelNone logLevel = iota
	levelDebug
	levelInfo
	levelWarning
	levelError
)

var (
	// Log level patterns
	errorPattern   = regexp.MustCompile(`(?i)\b(error|err|fatal|fail|failed|exception|panic)\b`)
	warningPattern = regexp.MustCompile(`(?i)\b(warn|warning|caution)\b`)
	infoPattern    = regexp.MustCompile(`(?i)\b(info|information)\b`)
	debugPattern   = regexp.MustCompile(`(?i)\b(debug|trace)\b`)

	// Pattern highlighting
	ipPattern   = regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`)
	urlPattern  = regexp.MustCompile(`https?://[^\s]+`)
	pathPattern = regexp.MustCompile(`(/[\w\-./]+)+`)

	errorLogStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")) // Red
	warningLogStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387")) // Orange
	infoLogStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA")) // Blue
	debugLogStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")) // Dim
	defaultLogStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4"))

	ipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")) // Yellow
	urlStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#89DCEB")) // Cyan
	pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CBA6F7")) // Purple
)

// levelOf detects the severity mentioned in a log line
func levelOf(message string) logLevel {
	switch {
	case errorPattern.MatchString(message):
		return levelError
	case warningPattern.MatchString(message):
		return levelWarning
	case infoPattern.MatchString(message):
		return levelInfo
	case debugPattern.MatchString(message):
		return levelDebug
	default:
		return levelNone
	}
}

// styleLogEntry colors a log line by level. The plain text is cut to maxWidth
// before styling so escape codes are never split.
func styleLogEntry(entry model.LogEntry, maxWidth int) string {
	message := strings.ReplaceAll(entry.Message, "\t", "    ")
	if maxWidth > 0 {
		message = truncate(message, maxWidth)
	}

	switch levelOf(message) {
	case levelError:
		return errorLogStyle.Render(message)
	case levelWarning:
		return warningLogStyle.Render(message)
	case levelInfo:
		return infoLogStyle.Render(message)
	case levelDebug:
		return debugLogStyle.Render(message)
	default:
		return highlight(message)
	}
}

// highlight marks IPs, URLs and paths in an otherwise plain line
func highlight(message string) string {
	type span struct {
		start, end int
		style      lipgloss.Style
	}

	var spans []span
	taken := make([]bool, len(message))
	mark := func(re *regexp.Regexp, style lipgloss.Style, accept func(string) bool) {
		for _, loc := range re.FindAllStringIndex(message, -1) {
			if accept != nil && !accept(message[loc[0]:loc[1]]) {
				continue
			}
			overlap := false
			for i := loc[0]; i < loc[1]; i++ {
				if taken[i] {
					overlap = true
					break
				}
			}
			if overlap {
				continue
			}
			for i := loc[0]; i < loc[1]; i++ {
				taken[i] = true
			}
			spans = append(spans, span{loc[0], loc[1], style})
		}
	}

	mark(urlPattern, urlStyle, nil)
	mark(ipPattern, ipStyle, nil)
	// Only highlight things that look like real paths (at least 2 segments)
	mark(pathPattern, pathStyle, func(s string) bool { return strings.Count(s, "/") >= 2 })

	if len(spans) == 0 {
		return defaultLogStyle.Render(message)
	}

	slices.SortFunc(spans, func(a, b span) int { return a.start - b.start })

	var b strings.Builder
	pos := 0
	for _, sp := range spans {
		if sp.start > pos {
			b.WriteString(defaultLogStyle.Render(message[pos:sp.start]))
		}
		b.WriteString(sp.style.Render(message[sp.start:sp.end]))
		pos = sp.end
	}
	if pos < len(message) {
		b.WriteString(defaultLogStyle.Render(message[pos:]))
	}
	return b.String()
}
