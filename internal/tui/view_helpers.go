package tui

import (
	"fmt"
	"strings"

	"github.com/federico588/biblioteca-tui/models"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(helpStyle.Render("ctrl+c: quit"))

	return b.String()
}

// refOption is one entry of a foreign-reference selector, loaded from the
// referenced resource's list endpoint when a form opens.
type refOption struct {
	id    string
	label string
}

// withNone prepends the empty choice used by optional references.
func withNone(options []refOption) []refOption {
	return append([]refOption{{id: "", label: "(none)"}}, options...)
}

// findRef returns the index of the option with the given id, or 0 so the
// selector always points at something.
func findRef(options []refOption, id string) int {
	for i, o := range options {
		if o.id == id {
			return i
		}
	}
	return 0
}

func cycleIdx(idx, n int, forward bool) int {
	if n == 0 {
		return 0
	}
	if forward {
		return (idx + 1) % n
	}
	return (idx - 1 + n) % n
}

func selMark(focused bool) string {
	if focused {
		return "‹›"
	}
	return "  "
}

// refSelectorLabel renders the state of a reference selector row.
func refSelectorLabel(options []refOption, idx int, loading bool) string {
	switch {
	case loading:
		return "loading..."
	case len(options) == 0:
		return "nothing to select"
	case idx < len(options):
		return fmt.Sprintf("%s (%d/%d)", fitText(options[idx].label, 30), idx+1, len(options))
	}
	return "-"
}

func valueOrDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

func fitText(v string, max int) string {
	runes := []rune(v)
	if max <= 0 || len(runes) <= max {
		return v
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func checkbox(v bool) string {
	if v {
		return "[x]"
	}
	return "[ ]"
}

// shortID trims a UUID down to its first block for list columns.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return fitText(id, 8)
}

func toastStyleFor(severity models.Severity) func(...string) string {
	switch severity {
	case models.SeveritySuccess:
		return toastSuccessStyle.Render
	case models.SeverityError:
		return toastErrorStyle.Render
	case models.SeverityWarning:
		return toastWarningStyle.Render
	default:
		return toastInfoStyle.Render
	}
}

func renderToasts(active []models.Notification) string {
	if len(active) == 0 {
		return ""
	}

	var b strings.Builder
	for _, n := range active {
		b.WriteString("\n")
		b.WriteString(toastStyleFor(n.Severity)(fmt.Sprintf("[%s] %s", n.Severity, n.Message)))
	}
	return b.String()
}
