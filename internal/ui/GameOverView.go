package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const (
	playAgainButton = iota
	exitButton
)

// GameOverState holds the data and local state for rendering the game over screen.
type GameOverState struct {
	FinalScore     int
	FinalLines     int
	FinalLevel     int
	SelectedButton int
	ScreenWidth    int
	ScreenHeight   int
}

var (
	gameOverButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = gameOverButtonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15"))
)

// RenderGameOverScreen draws the final score and the buttons.
func (g *GameOverState) RenderGameOverScreen() string {
	messageStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("9")).
		Padding(2, 5).
		Align(lipgloss.Center)

	title := messageStyle.Render("G A M E   O V E R")

	stats := fmt.Sprintf("\nFinal Score: %d\nLines: %d\nLevel: %d\n", g.FinalScore, g.FinalLines, g.FinalLevel)

	playAgain := gameOverButtonStyle.Render("PLAY AGAIN")
	exit := gameOverButtonStyle.Render("EXIT")

	if g.SelectedButton == playAgainButton {
		playAgain = selectedButtonStyle.Render("PLAY AGAIN")
	} else {
		exit = selectedButtonStyle.Render("EXIT")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, playAgain, exit)

	content := lipgloss.JoinVertical(lipgloss.Center, title, stats, buttons)

	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(content),
	)
}
