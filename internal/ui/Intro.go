package ui

import (
	"strings"

	"github.com/Mshel/tetrad/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// IntroModel holds the state for the main menu.
type IntroModel struct {
	selected IntroSubmitMsg
	width    int
	height   int
}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{selected: introStart, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "right", "l", "tab":
			// two buttons, so any direction toggles
			if m.selected == introStart {
				m.selected = introDemo
			} else {
				m.selected = introStart
			}
		case "enter":
			selected := m.selected
			return m, func() tea.Msg { return selected }
		case "q", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

var tetradAscii = `
 ██████████ ██████████ ██████████ ████████     ████     ████████
     ██     ██             ██     ██     ██   ██  ██    ██     ██
     ██     ████████       ██     ████████   ██    ██   ██     ██
     ██     ██             ██     ██   ██    ████████   ██     ██
     ██     ██████████     ██     ██    ██   ██    ██   ████████
`

var introBlocks = []struct {
	text  string
	color game.Cell
}{
	{"████", 1},
	{"██████", 2},
	{"████", 3},
	{"██████", 4},
	{"██████", 5},
	{"████", 6},
	{"██████", 7},
}

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("87"))

	introButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 3).
				Margin(1, 2).
				Border(lipgloss.RoundedBorder())

	introSelectedButtonStyle = introButtonStyle.
					Background(lipgloss.Color("87")).
					Foreground(lipgloss.Color("0"))
)

func (m IntroModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciiStyle.Render(tetradAscii))
	sb.WriteString("\n")

	var blocks []string
	for _, block := range introBlocks {
		blocks = append(blocks, cellStyle(block.color).Render(block.text))
	}
	sb.WriteString(strings.Join(blocks, " "))
	sb.WriteString("\n")

	start := introButtonStyle.Render("Start Game")
	demo := introButtonStyle.Render("Watch Demo")

	if m.selected == introStart {
		start = introSelectedButtonStyle.Render("Start Game")
	} else {
		demo = introSelectedButtonStyle.Render("Watch Demo")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, start, demo)

	content := lipgloss.JoinVertical(lipgloss.Center, sb.String(), buttons)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
