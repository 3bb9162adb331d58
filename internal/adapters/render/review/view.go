package review

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
)

type RenderOptions struct {
	Now time.Time

	// SelectedIDs marks confirmations staged for a bulk action.
	SelectedIDs map[string]bool
}

func renderSessionsView(sessions []domain.AuthSession, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Pending Sign-in Requests"),
		s.header.Render(fmt.Sprintf("sessions: %d", len(sessions))),
	}

	if len(sessions) == 0 {
		lines = append(lines, s.empty.Render("No sign-in requests waiting for approval."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, session := range sessions {
		lines = append(lines, s.section.Render(renderSession(session, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSession(session domain.AuthSession, s styles) string {
	device := session.DeviceFriendlyName
	if device == "" {
		device = "unknown device"
	}

	parts := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			s.headline.Render(device),
			" ",
			s.id.Render(fmt.Sprintf("(%s)", session.ClientID)),
		),
	}

	if location := session.Location(); location != "" {
		parts = append(parts, s.detail.Render("from: "+location))
	}
	if session.IP != "" {
		parts = append(parts, s.meta.Render("ip: "+session.IP))
	}
	if session.RequestedPersistence == domain.PersistencePersistent {
		parts = append(parts, s.meta.Render("requests: remembered sign-in"))
	}
	if session.RequestorLocationMismatch {
		parts = append(parts, s.warning.Render("[location differs from this device]"))
	}
	if session.HighUsageLogin {
		parts = append(parts, s.warning.Render("[high-usage login]"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderConfirmationsView(confirmations []domain.Confirmation, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Pending Confirmations"),
		s.header.Render(fmt.Sprintf("confirmations: %d", len(confirmations))),
	}

	if len(confirmations) == 0 {
		lines = append(lines, s.empty.Render("Nothing waiting for confirmation."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, confirmation := range confirmations {
		lines = append(lines, s.section.Render(renderConfirmation(confirmation, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderConfirmation(confirmation domain.Confirmation, opts RenderOptions, s styles) string {
	marker := "  "
	if opts.SelectedIDs[confirmation.ID] {
		marker = s.selected.Render("> ")
	}

	headline := confirmation.Headline
	if headline == "" {
		headline = typeLabel(confirmation)
	}

	parts := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			marker,
			s.headline.Render(headline),
			" ",
			s.id.Render(fmt.Sprintf("#%s", confirmation.ID)),
		),
	}

	for _, line := range confirmation.Summary {
		parts = append(parts, s.detail.Render("  "+line))
	}

	meta := typeLabel(confirmation)
	if age := formatAge(confirmation.CreationTime, opts.Now); age != "" {
		meta += ", " + age
	}
	parts = append(parts, s.meta.Render("  "+meta))

	if !confirmation.Type.Known() {
		parts = append(parts, s.warning.Render("  [unrecognized confirmation type, review in the Steam app]"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func typeLabel(confirmation domain.Confirmation) string {
	if confirmation.TypeName != "" {
		return confirmation.TypeName
	}
	return string(confirmation.Type)
}

func formatAge(createdAt, now time.Time) string {
	if createdAt.IsZero() || now.IsZero() || createdAt.After(now) {
		return ""
	}

	age := now.Sub(createdAt)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(math.Floor(age.Hours()/24)))
	}
}
