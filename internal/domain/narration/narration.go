// Package narration declares the ports the simulation talks through when
// something worth telling the player happens.
// This package is PURE and must NOT import any infrastructure packages.
package narration

// Style is an advisory presentation tag. It never affects simulation outcome.
type Style string

const (
	StylePlain       Style = ""
	StyleWarning     Style = "warning"
	StyleItem        Style = "item"
	StyleAchievement Style = "achievement"
	StyleCombat      Style = "combat"
	StyleDeath       Style = "death"
	StyleDebug       Style = "debug"
)

// Narrator receives one line per meaningful event.
type Narrator interface {
	AppendLogLine(message string, style Style)
}

// Notifier shows rare, high-salience messages.
type Notifier interface {
	ShowModal(title, message string)
}

// Discard implements both ports and drops everything.
type Discard struct{}

func (Discard) AppendLogLine(string, Style) {}
func (Discard) ShowModal(string, string)     {}
