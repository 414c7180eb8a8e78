package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/astropost/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Snapshot is everything the status screen shows.
type Snapshot struct {
	Session    domain.SessionStatus `json:"session"`
	Automation domain.ScheduleState  `json:"automation"`
	LastCycle  *domain.CycleRecord   `json:"last_cycle,omitempty"`
}

type RenderOptions struct {
	Now time.Time
	// StaleAfter flags a last cycle older than this. Zero disables the check.
	StaleAfter time.Duration
}

func renderView(snapshot Snapshot, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("astropost"),
		s.header.Render(fmt.Sprintf("topics per cycle: %d", domain.TopicCount)),
		s.section.Render(sessionLine(snapshot.Session, s)),
		automationLine(snapshot.Automation, opts, s),
	}

	if snapshot.LastCycle == nil {
		lines = append(lines, s.section.Render(s.empty.Render("No cycles recorded yet.")))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.section.Render(renderCycle(*snapshot.LastCycle, opts, s)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func sessionLine(session domain.SessionStatus, s styles) string {
	label := s.key.Render("session:")
	if !session.Authenticated {
		return label + " " + s.warning.Render("not authenticated")
	}
	return label + " " + s.good.Render("authenticated as "+session.Account)
}

func automationLine(state domain.ScheduleState, opts RenderOptions, s styles) string {
	label := s.key.Render("automation:")
	if !state.Active {
		line := label + " " + s.detail.Render("idle")
		if !state.LastRun.IsZero() {
			line += " " + s.header.Render("(last run "+formatAt(state.LastRun, opts.Now)+")")
		}
		return line
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		label,
		" ",
		s.good.Render("daily at "+state.At),
		" ",
		s.detail.Render("("+formatRelative(state.NextRun, opts.Now)+")"),
	)
}

func renderCycle(record domain.CycleRecord, opts RenderOptions, s styles) string {
	title := fmt.Sprintf("last cycle: %s, %s", record.Trigger, modeLabel(record.Mode))
	parts := []string{
		s.key.Render(title),
		lipgloss.JoinHorizontal(lipgloss.Top,
			s.detail.Render("outcome:"), " ", outcomeStyle(record.Outcome, s).Render(string(record.Outcome))),
		lipgloss.JoinHorizontal(lipgloss.Top,
			s.detail.Render("generated:"), " ",
			renderProgressBar(len(record.Generated), domain.TopicCount, 24, s), " ",
			s.detail.Render(fmt.Sprintf("%d/%d", len(record.Generated), domain.TopicCount))),
	}

	if record.Mode != domain.PublishModeNone {
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top,
			s.detail.Render("published:"), " ",
			renderProgressBar(len(record.Published), max(len(record.Generated), 1), 24, s), " ",
			s.detail.Render(fmt.Sprintf("%d/%d", len(record.Published), len(record.Generated)))))
	}

	for _, failure := range record.Failures {
		parts = append(parts, s.warning.Render(fmt.Sprintf("  %s: %s", failure.Topic.Title(), failure.Reason)))
	}
	if record.Reason != "" && len(record.Failures) == 0 {
		parts = append(parts, s.warning.Render("  "+record.Reason))
	}

	finished := s.header.Render("finished " + formatAt(record.FinishedAt, opts.Now))
	if isStale(record.FinishedAt, opts) {
		finished += " " + s.warning.Render("[stale]")
	}
	parts = append(parts, finished)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func modeLabel(mode domain.PublishMode) string {
	if mode == "" || mode == domain.PublishModeNone {
		return "generate only"
	}
	return string(mode)
}

func outcomeStyle(outcome domain.CycleOutcome, s styles) lipgloss.Style {
	switch outcome {
	case domain.CycleOutcomePublished, domain.CycleOutcomeGenerated:
		return s.good
	case domain.CycleOutcomePartial:
		return s.partial
	default:
		return s.warning
	}
}

func isStale(finished time.Time, opts RenderOptions) bool {
	if opts.Now.IsZero() || opts.StaleAfter <= 0 || finished.IsZero() {
		return false
	}
	return opts.Now.Sub(finished) > opts.StaleAfter
}

func renderProgressBar(done, total, width int, s styles) string {
	if width <= 0 || total <= 0 {
		return ""
	}

	fraction := float64(done) / float64(total)
	filled := int(math.Round(float64(width) * fraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func formatAt(at, now time.Time) string {
	if at.IsZero() {
		return "never"
	}
	if now.IsZero() {
		return at.Format(time.RFC3339)
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := at.In(now.Location()).Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return at.In(now.Location()).Format("15:04")
	}

	return at.In(now.Location()).Format("15:04 on 02 Jan")
}

func formatRelative(next, now time.Time) string {
	if next.IsZero() {
		return "next run unknown"
	}
	if now.IsZero() {
		return "next run " + formatAt(next, now)
	}
	if !next.After(now) {
		return "running now"
	}

	remaining := next.Sub(now)
	if remaining < time.Hour {
		minutes := int(math.Ceil(remaining.Minutes()))
		suffix := "minutes"
		if minutes == 1 {
			suffix = "minute"
		}
		return fmt.Sprintf("next run in %d %s (%s)", minutes, suffix, formatAt(next, now))
	}

	hours := int(math.Ceil(remaining.Hours()))
	suffix := "hours"
	if hours == 1 {
		suffix = "hour"
	}
	return fmt.Sprintf("next run in %d %s (%s)", hours, suffix, formatAt(next, now))
}
