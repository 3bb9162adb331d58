package accounts

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
)

type RenderOptions struct {
	ShowAvatars bool
}

func renderView(snapshot domain.AccountSnapshot, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Steam Accounts"),
		s.header.Render(fmt.Sprintf("accounts: %d", len(snapshot.Accounts))),
	}

	if len(snapshot.Accounts) == 0 {
		lines = append(lines, s.empty.Render("No accounts registered. Run 'sda accounts add' to link one."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, account := range snapshot.Accounts {
		lines = append(lines, renderAccount(account, account.Username == snapshot.ActiveAccountName, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAccount(account domain.Account, active bool, opts RenderOptions, s styles) string {
	marker := "  "
	name := s.name.Render(account.Username)
	if active {
		marker = s.marker.Render("* ")
		name = s.active.Render(account.Username)
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, marker, name)
	if opts.ShowAvatars && account.AvatarURL != "" {
		line = lipgloss.JoinHorizontal(lipgloss.Top, line, " ", s.avatar.Render(account.AvatarURL))
	}

	return line
}
