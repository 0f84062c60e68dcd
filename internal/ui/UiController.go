package ui

import (
	"time"

	"github.com/Mshel/tetrad/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
)

// Messages for state transitions
type IntroSubmitMsg int // 0 for Start, 1 for Demo
type SetupSubmitMsg struct {
	Name string
}

const (
	introStart IntroSubmitMsg = iota
	introDemo
)

const demoPlayerName = "autopilot"

type ControllerModel struct {
	CurrentScreen Screen
	GameManager   *game.GameManager
	Strategy      game.Strategy
	FrameInterval time.Duration

	IntroModel tea.Model
	SetupModel tea.Model
	GameModel  tea.Model

	// nil when running in a local terminal
	CurrentUserSession ssh.Session
	ScreenWidth        int
	ScreenHeight       int
}

func NewControllerModel(gameManager *game.GameManager, strategy game.Strategy, frameInterval time.Duration, userSession ssh.Session, screenWidth int, screenHeight int) ControllerModel {
	return ControllerModel{
		GameManager:   gameManager,
		Strategy:      strategy,
		FrameInterval: frameInterval,
		CurrentScreen: IntroScreen,

		IntroModel: NewIntroModel(screenWidth, screenHeight),
		SetupModel: NewInitialSetupModel(screenWidth, screenHeight),

		CurrentUserSession: userSession,
		ScreenWidth:        screenWidth,
		ScreenHeight:       screenHeight,
	}
}

// StartAutoplay skips the menus and opens a demo game.
func (m ControllerModel) StartAutoplay() ControllerModel {
	m.CurrentScreen = GameScreen
	m.GameModel = m.newGame(demoPlayerName, true)
	return m
}

func (m ControllerModel) newGame(name string, autoplay bool) GameViewModel {
	return NewGameModel(m.GameManager, m.Strategy, GameOptions{
		PlayerName:    name,
		Autoplay:      autoplay,
		FrameInterval: m.FrameInterval,
		Session:       m.CurrentUserSession,
	}, m.ScreenWidth, m.ScreenHeight)
}

func (m ControllerModel) Init() tea.Cmd {
	if m.CurrentScreen == GameScreen && m.GameModel != nil {
		return m.GameModel.Init()
	}
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth, m.ScreenHeight = msg.Width, msg.Height
		m.IntroModel, _ = m.IntroModel.Update(msg)
		m.SetupModel, _ = m.SetupModel.Update(msg)
		if m.GameModel != nil {
			m.GameModel, _ = m.GameModel.Update(msg)
		}
		return m, nil

	case IntroSubmitMsg:
		switch msg {
		case introStart:
			m.CurrentScreen = SetupScreen
			return m, m.SetupModel.Init()
		case introDemo:
			m.CurrentScreen = GameScreen
			m.GameModel = m.newGame(demoPlayerName, true)
			return m, m.GameModel.Init()
		}

	case SetupSubmitMsg:
		m.CurrentScreen = GameScreen
		m.GameModel = m.newGame(msg.Name, false)
		return m, m.GameModel.Init()

	default:
		switch m.CurrentScreen {
		case IntroScreen:
			m.IntroModel, cmd = m.IntroModel.Update(msg)
			cmds = append(cmds, cmd)
		case SetupScreen:
			m.SetupModel, cmd = m.SetupModel.Update(msg)
			cmds = append(cmds, cmd)
		case GameScreen:
			if m.GameModel != nil {
				m.GameModel, cmd = m.GameModel.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}
