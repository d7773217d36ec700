// Package style maps semantic display roles to terminal attributes so the
// renderers never hard-code escape sequences. A disabled Styles value renders
// everything plain, which keeps piped output clean.
package style

import "github.com/fatih/color"

// Role names a reason a cell or row gets emphasis.
type Role string

const (
	// RoleAward marks seasons where the player won MVP, Cy Young or ROY.
	RoleAward Role = "award"
	// RoleAllStar marks all-star seasons.
	RoleAllStar Role = "all_star"
	// RoleTraded dims single-team stint rows of a traded season.
	RoleTraded Role = "traded"
	// RoleLeagueLeader bolds a value leading its own league.
	RoleLeagueLeader Role = "league_leader"
	// RoleMLBLeader bolds+italicizes a value leading both leagues.
	RoleMLBLeader Role = "mlb_leader"
	// RoleBetter marks a value beating the comparison value.
	RoleBetter Role = "better"
	// RoleWorse marks a value losing to the comparison value.
	RoleWorse Role = "worse"
)

// Styles is the injected role table.
type Styles struct {
	colors map[Role]*color.Color
}

// New builds the default ANSI role table. When enabled is false every role
// renders as plain text.
func New(enabled bool) Styles {
	colors := map[Role]*color.Color{
		RoleAward:        color.New(color.FgMagenta),
		RoleAllStar:      color.New(color.FgYellow),
		RoleTraded:       color.New(color.FgHiBlack),
		RoleLeagueLeader: color.New(color.Bold),
		RoleMLBLeader:    color.New(color.Bold, color.Italic),
		RoleBetter:       color.New(color.FgGreen, color.Bold, color.Italic),
		// 256-color orange; there is no standard 16-color slot for it.
		RoleWorse: color.New(38, 5, 208, color.Bold, color.Italic),
	}
	for _, c := range colors {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return Styles{colors: colors}
}

// Apply wraps s in the role's attributes; unknown roles pass through.
func (st Styles) Apply(role Role, s string) string {
	c, ok := st.colors[role]
	if !ok {
		return s
	}
	return c.Sprint(s)
}
