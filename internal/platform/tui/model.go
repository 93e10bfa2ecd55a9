package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/paper-runner/internal/config"
	"github.com/vovakirdan/paper-runner/internal/core"
	"github.com/vovakirdan/paper-runner/internal/games/runner"
	"github.com/vovakirdan/paper-runner/internal/progression"
	"github.com/vovakirdan/paper-runner/internal/replay"
	"github.com/vovakirdan/paper-runner/internal/storage"
)

// RunStore records finished runs and serves them to the scoreboard.
type RunStore interface {
	RunHistory
	SaveRun(r storage.RunRecord) (string, error)
}

// Options configures a Model.
type Options struct {
	Config    config.RunnerConfig
	Runtime   core.RuntimeConfig // screen size, tick rate override, seed, profile
	Progress  *progression.Store
	History   RunStore // optional
	RecordDir string   // write a replay per finished run when set
	Logger    *log.Logger
}

// Model is the Bubble Tea model for Paper Runner.
type Model struct {
	session   *runner.Session
	cfg       config.RunnerConfig
	history   RunStore
	profile   string
	recordDir string
	logger    *log.Logger

	screen *core.Screen
	keys   KeyMap
	help   help.Model
	width  int
	height int

	pending    core.InputFrame
	duckFrames int // frames left before an automatic stand
	tickID     int
	lastTick   time.Time

	notice     string
	scoreboard *ScoreboardModel
	quitting   bool
}

// NewModel creates a model sitting on the session's menu.
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	rt := opts.Runtime
	defaults := core.DefaultConfig()
	if rt.ScreenW <= 0 || rt.ScreenH <= 0 {
		rt.ScreenW, rt.ScreenH = defaults.ScreenW, defaults.ScreenH
	}
	if rt.Profile == "" {
		rt.Profile = defaults.Profile
	}
	if rt.TickRate > 0 {
		opts.Config.Timing.TickRate = rt.TickRate
	}

	m := Model{
		session: runner.NewSession(opts.Config, opts.Progress,
			runner.WithLogger(opts.Logger),
			runner.WithSeed(rt.Seed),
		),
		cfg:       opts.Config,
		history:   opts.History,
		profile:   rt.Profile,
		recordDir: opts.RecordDir,
		logger:    opts.Logger,
		screen:    core.NewScreen(rt.ScreenW, rt.ScreenH),
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}
	m.resize(rt.ScreenW, rt.ScreenH)
	return m
}

// Session returns the session the model drives.
func (m Model) Session() *runner.Session {
	return m.session
}

// Init initializes the model. Ticks only run while a run is in progress.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if m.scoreboard != nil {
			sb, _ := m.scoreboard.Update(msg)
			m.scoreboard = &sb
		}
		return m, nil

	case tea.KeyMsg:
		if m.scoreboard != nil {
			return m.updateScoreboard(msg)
		}
		return m.handleKey(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// resize maps the terminal onto the world viewport. The last row belongs to the help bar.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	rows := max(height-1, 1)
	m.screen.Resize(width, rows)
	m.help.Width = width
	m.session.Resize(
		float64(width)*m.cfg.Viewport.CellWidth,
		float64(rows)*m.cfg.Viewport.CellHeight,
	)
}

func (m Model) updateScoreboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sb, cmd := m.scoreboard.Update(msg)
	switch {
	case sb.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case sb.IsGoingBack():
		m.scoreboard = nil
		return m, nil
	}
	m.scoreboard = &sb
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.keys.Resolve(msg)
	if cmd != CmdNone {
		m.notice = ""
	}
	state := m.session.State()

	switch cmd {
	case CmdQuit:
		m.quitting = true
		return m, tea.Quit

	case CmdScreenshot:
		m.saveScreenshot()

	case CmdJump:
		if state == runner.StatePlaying {
			// Stand applies before jump within a frame, so a ducking player can jump straight up
			if m.duckFrames > 0 {
				m.pending.Set(core.ActionStand)
				m.duckFrames = 0
			}
			m.pending.Set(core.ActionJump)
		}

	case CmdDuck:
		if state == runner.StatePlaying {
			m.pending.Set(core.ActionDuck)
			m.duckFrames = m.cfg.Timing.DuckHold
		}

	case CmdPause:
		if m.session.TogglePause() && m.session.State() == runner.StatePlaying {
			return m, m.restartTicks()
		}

	case CmdStart:
		if state == runner.StateGameOver {
			m.session.ReturnToMenu()
		}
		if m.session.Start() {
			m.pending.Clear()
			m.duckFrames = 0
			return m, m.restartTicks()
		}

	case CmdMenu:
		m.session.ReturnToMenu()

	case CmdUpgradeHealth:
		if state == runner.StateMenu {
			m.upgrade(progression.StatHealth)
		}

	case CmdUpgradeSpeed:
		if state == runner.StateMenu {
			m.upgrade(progression.StatSpeed)
		}

	case CmdScores:
		if state == runner.StateMenu || state == runner.StateGameOver {
			if m.history == nil {
				m.notice = "Run history unavailable"
				break
			}
			sb := NewScoreboardModel(m.history, m.profile, m.cfg.Timing.TickRate, m.width, m.height)
			m.scoreboard = &sb
		}
	}

	return m, nil
}

// restartTicks starts a new tick chain; ticks from an older chain are ignored.
func (m *Model) restartTicks() tea.Cmd {
	m.tickID++
	m.lastTick = time.Time{}
	return tickCmd(m.cfg.Timing.TickRate, m.tickID)
}

// handleTick advances the session by the wall time since the previous tick.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.ID != m.tickID || m.session.State() != runner.StatePlaying {
		return m, nil
	}

	dt := time.Second / time.Duration(m.cfg.Timing.TickRate)
	if !m.lastTick.IsZero() {
		dt = msg.Time.Sub(m.lastTick)
	}
	m.lastTick = msg.Time

	if steps := m.session.Advance(dt, m.pending); steps > 0 {
		m.pending.Clear()
		if m.duckFrames > 0 {
			m.duckFrames -= steps
			if m.duckFrames <= 0 {
				m.duckFrames = 0
				m.pending.Set(core.ActionStand)
			}
		}
	}

	if m.session.State() == runner.StateGameOver {
		m.finishRun()
		return m, nil
	}
	return m, tickCmd(m.cfg.Timing.TickRate, m.tickID)
}

// upgrade spends coins from the menu and reports the outcome.
func (m *Model) upgrade(stat progression.Stat) {
	store := m.session.Store()
	err := store.Upgrade(stat)
	switch {
	case err == nil:
		m.notice = fmt.Sprintf("Upgraded %s! Grade %s", stat, store.Grade())
	case errors.Is(err, progression.ErrInsufficientFunds):
		m.notice = fmt.Sprintf("Need %d coins to upgrade %s", store.Price(), stat)
	default:
		m.notice = "Upgraded, but progress could not be saved"
	}
}

// finishRun records the run that just ended.
func (m *Model) finishRun() {
	snap := m.session.Snapshot()
	runID := uuid.NewString()

	if m.history != nil {
		_, err := m.history.SaveRun(storage.RunRecord{
			RunID:   runID,
			Profile: m.profile,
			Score:   snap.Score,
			Coins:   snap.Coins,
			Frames:  snap.Frame,
		})
		if err != nil {
			m.logger.Warn("could not save run", "error", err)
		}
	}

	if m.recordDir == "" {
		return
	}
	path := filepath.Join(m.recordDir, runID+".replay")
	f := replay.FromJournal(m.cfg, m.session.Journal(), runID, m.profile)
	if err := replay.Save(path, f); err != nil {
		m.logger.Warn("could not save replay", "error", err)
		m.notice = "Could not save replay"
		return
	}
	m.logger.Info("replay saved", "path", path, "frames", len(f.Inputs))
	m.notice = "Replay saved: " + filepath.Base(path)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.session.Render(m.screen)

	dir := config.UserPath("screenshots")
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("runner_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.notice = "Screenshot saved"
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}

	m.session.Render(m.screen)
	if m.notice != "" {
		m.screen.DrawTextCentered(m.screen.Height()-1, m.notice, core.ColorBrightYellow)
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.helpKeys()))
}

func (m Model) helpKeys() help.KeyMap {
	switch m.session.State() {
	case runner.StateMenu:
		return bindingList(m.keys.MenuHelp())
	case runner.StateGameOver:
		return bindingList{m.keys.Start, m.keys.Menu, m.keys.Scores, m.keys.Quit}
	default:
		return m.keys
	}
}

// Run starts the Bubble Tea program with a model built from opts.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
