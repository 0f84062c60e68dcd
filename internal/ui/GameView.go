package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Mshel/tetrad/internal/game"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
)

type GameState int

const (
	StatePlaying GameState = iota
	StateGameOver
)

// frameMsg is the host clock. Each one advances the game by the time since the
// previous frame.
type frameMsg time.Time

const defaultFrameInterval = 16 * time.Millisecond

var (
	voidColor    = "233"
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	voidStyle  = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Render("  ")
	titleStyle = lipgloss.NewStyle().Bold(true)

	// indexed by color id
	cellColors = [game.MaxCell + 1]lipgloss.Color{
		"0",   // empty
		"51",  // cyan
		"33",  // blue
		"208", // orange
		"226", // yellow
		"46",  // green
		"129", // purple
		"196", // red
	}
)

const (
	blockRune = "██"
	ghostRune = "░░"
)

func cellStyle(color game.Cell) lipgloss.Style {
	return lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(cellColors[min(color, game.MaxCell)])
}

// GameOptions configures one game screen.
type GameOptions struct {
	PlayerName    string
	Autoplay      bool
	FrameInterval time.Duration
	// nil when running in a local terminal
	Session ssh.Session
}

type GameViewModel struct {
	ScreenWidth  int
	ScreenHeight int
	gameManager  *game.GameManager
	autopilot    *game.Autopilot
	options      GameOptions

	keys      keyMap
	help      help.Model
	lastFrame time.Time

	gameState     GameState
	gameOverState GameOverState
}

// NewGameModel starts a fresh game on gm and returns the screen that plays it.
func NewGameModel(gm *game.GameManager, strategy game.Strategy, options GameOptions, screenWidth int, screenHeight int) GameViewModel {
	if options.FrameInterval <= 0 {
		options.FrameInterval = defaultFrameInterval
	}
	gm.NewGame()

	return GameViewModel{
		gameManager:  gm,
		autopilot:    game.NewAutopilot(gm, strategy),
		options:      options,
		keys:         defaultKeys,
		help:         help.New(),
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		gameState:    StatePlaying,
		gameOverState: GameOverState{
			ScreenWidth:  screenWidth,
			ScreenHeight: screenHeight,
		},
	}
}

func (m GameViewModel) Init() tea.Cmd {
	return m.nextFrame()
}

func (m GameViewModel) nextFrame() tea.Cmd {
	return tea.Tick(m.options.FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Autoplay reports whether the autopilot is driving the game.
func (m GameViewModel) Autoplay() bool { return m.options.Autoplay }

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
		m.gameOverState.ScreenWidth, m.gameOverState.ScreenHeight = msg.Width, msg.Height
		return m, nil

	case frameMsg:
		m = m.advance(time.Time(msg))
		return m, m.nextFrame()

	case tea.KeyMsg:
		if m.gameState == StateGameOver {
			return m.updateGameOver(msg)
		}
		return m.updatePlaying(msg)
	}

	return m, nil
}

func (m GameViewModel) advance(now time.Time) GameViewModel {
	elapsed := m.options.FrameInterval
	if !m.lastFrame.IsZero() {
		elapsed = max(0, now.Sub(m.lastFrame))
	}
	m.lastFrame = now

	if m.gameState != StatePlaying {
		return m
	}

	if m.options.Autoplay {
		m.autopilot.Step()
	}
	m.gameManager.Advance(elapsed)

	return m.checkGameOver()
}

// checkGameOver switches to the game over screen once per finished game.
func (m GameViewModel) checkGameOver() GameViewModel {
	finalScore, over := m.gameManager.TakeGameOver()
	if !over {
		return m
	}

	log.Info("Game over", "player", m.options.PlayerName, "remote", m.remoteAddr(), "score", finalScore, "lines", m.gameManager.Lines(), "autoplay", m.options.Autoplay)
	if err := m.autopilot.LastError(); err != nil {
		log.Warn("Autopilot strategy reported an error during the game", "strategy", m.autopilot.Strategy.Name(), "error", err)
	}

	m.gameState = StateGameOver
	m.gameOverState.FinalScore = finalScore
	m.gameOverState.FinalLines = m.gameManager.Lines()
	m.gameOverState.FinalLevel = m.gameManager.Level()
	m.gameOverState.SelectedButton = playAgainButton
	return m
}

func (m GameViewModel) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Autoplay) {
		m.options.Autoplay = !m.options.Autoplay
		log.Debug("Autopilot toggled", "player", m.options.PlayerName, "enabled", m.options.Autoplay)
		return m, nil
	}

	command := m.keys.commandFor(msg)
	if command == game.CommandNone {
		return m, nil
	}

	// the autopilot owns the piece while it is engaged
	if m.options.Autoplay && command != game.CommandNewGame && command != game.CommandQuit {
		return m, nil
	}

	if !m.gameManager.Execute(command) {
		return m, tea.Quit
	}
	return m.checkGameOver(), nil
}

func (m GameViewModel) updateGameOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.gameOverState.SelectedButton = playAgainButton
	case "right", "l":
		m.gameOverState.SelectedButton = exitButton
	case "n":
		return m.playAgain(), nil
	case "q", "esc":
		return m, tea.Quit
	case "enter":
		if m.gameOverState.SelectedButton == exitButton {
			return m, tea.Quit
		}
		return m.playAgain(), nil
	}
	return m, nil
}

func (m GameViewModel) playAgain() GameViewModel {
	m.gameManager.Execute(game.CommandNewGame)
	m.gameState = StatePlaying
	return m
}

func (m GameViewModel) remoteAddr() string {
	if m.options.Session == nil {
		return "local"
	}
	return m.options.Session.RemoteAddr().String()
}

func (m GameViewModel) View() string {
	if m.gameState == StateGameOver {
		return m.gameOverState.RenderGameOverScreen()
	}

	snapshot := m.gameManager.Snapshot()

	board := mapViewStyle.Render(renderBoard(snapshot))
	status := statusPanelStyle.Render(m.renderStatusPanel(snapshot))

	content := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, board, status),
		m.help.View(m.keys),
	)

	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, content)
}

// renderBoard draws the grid two terminal columns per cell.
func renderBoard(snapshot game.Snapshot) string {
	var sb strings.Builder
	for y := 0; y < snapshot.Height; y++ {
		for x := 0; x < snapshot.Width; x++ {
			cell, ghost := snapshot.CellAt(x, y)
			switch {
			case cell == game.EmptyCell:
				sb.WriteString(voidStyle)
			case ghost:
				sb.WriteString(cellStyle(cell).Render(ghostRune))
			default:
				sb.WriteString(cellStyle(cell).Render(blockRune))
			}
		}
		if y < snapshot.Height-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderPreview draws a piece view inside its 4x4 box.
func renderPreview(view *game.PieceView) string {
	var sb strings.Builder
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if view != nil && containsPoint(view.Cells, game.Point{X: x, Y: y}) {
				sb.WriteString(cellStyle(view.Color).Render(blockRune))
			} else {
				sb.WriteString(voidStyle)
			}
		}
		if y < 3 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func containsPoint(points [4]game.Point, point game.Point) bool {
	for _, candidate := range points {
		if candidate == point {
			return true
		}
	}
	return false
}

func (m GameViewModel) renderStatusPanel(snapshot game.Snapshot) string {
	var statusContent strings.Builder

	statusContent.WriteString(titleStyle.Render("--- Player ---") + "\n")
	statusContent.WriteString(m.options.PlayerName + "\n\n")

	statusContent.WriteString(fmt.Sprintf("Score: %d\n", snapshot.Score))
	statusContent.WriteString(fmt.Sprintf("Lines: %d\n", snapshot.Lines))
	statusContent.WriteString(fmt.Sprintf("Level: %d\n", snapshot.Level))
	statusContent.WriteString(fmt.Sprintf("Speed: %s\n", snapshot.GravityInterval))

	statusContent.WriteString("\n" + titleStyle.Render("--- Next ---") + "\n")
	statusContent.WriteString(renderPreview(snapshot.Next) + "\n")

	autopilot := "off"
	if m.options.Autoplay {
		autopilot = "on (" + m.autopilot.Strategy.Name() + ")"
	}
	statusContent.WriteString("\n" + fmt.Sprintf("Autopilot: %s", autopilot))

	return statusContent.String()
}
