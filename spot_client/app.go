package main

import (
	"errors"
	"strconv"

	"spotdrop/apiclient"
	"spotdrop/config"
	"spotdrop/geocode"
	"spotdrop/navigation"
	"spotdrop/session"
	"spotdrop/spotfeed"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// screenModel is one screen in the navigation stack.
type screenModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screenModel, tea.Cmd)
	View() string
}

// closer is implemented by screens that own background work, stopped when the
// screen leaves the stack.
type closer interface {
	Close()
}

func closeModel(m screenModel) {
	if c, ok := m.(closer); ok {
		c.Close()
	}
}

type appDeps struct {
	cfg      *config.Config
	api      *apiclient.Client
	sessions *session.Store
	spots    *spotfeed.Service
	geo      geocode.Geocoder
}

// Navigation messages. Screens emit these instead of touching the stack.
type navPushMsg struct{ entry navigation.Entry }
type navPopMsg struct{}
type navResetMsg struct{ entry navigation.Entry }

func navPush(e navigation.Entry) tea.Cmd {
	return func() tea.Msg { return navPushMsg{entry: e} }
}

func navPop() tea.Msg { return navPopMsg{} }

func navReset(e navigation.Entry) tea.Cmd {
	return func() tea.Msg { return navResetMsg{entry: e} }
}

// statusMsg replaces the mobile app's blocking alert: failures surface in the
// status line and state stays as it was.
type statusMsg struct{ text string }

func status(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

// App is the root model: the navigation stack plus one live model per stacked
// screen.
type App struct {
	deps   appDeps
	nav    navigation.Stack
	models []screenModel
	status string
}

func newApp(deps appDeps) *App {
	return &App{deps: deps}
}

func (a *App) Init() tea.Cmd {
	// Resume the persisted session if one exists; otherwise start at login.
	start := navigation.Entry{Screen: navigation.Login}
	if _, err := a.deps.sessions.Load(); err == nil {
		start = navigation.Entry{Screen: navigation.SpotDirectory}
	}
	return a.push(start)
}

func (a *App) pop() {
	a.nav.Pop()
	closeModel(a.models[len(a.models)-1])
	a.models = a.models[:len(a.models)-1]
}

func (a *App) push(e navigation.Entry) tea.Cmd {
	model, cmd := a.buildScreen(e)
	if model == nil {
		return cmd
	}
	a.nav.Push(e)
	a.models = append(a.models, model)
	return tea.Batch(model.Init(), cmd)
}

// buildScreen constructs the model for an entry. Screens that need a session
// and find none redirect to login instead of proceeding.
func (a *App) buildScreen(e navigation.Entry) (screenModel, tea.Cmd) {
	var sess session.Session
	if screenNeedsSession(e.Screen) {
		var err error
		sess, err = a.deps.sessions.Load()
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				log.Error().Err(err).Msg("failed to load session")
			}
			return nil, tea.Batch(
				navReset(navigation.Entry{Screen: navigation.Login}),
				status("Please log in first"),
			)
		}
	}

	switch e.Screen {
	case navigation.Login:
		return newLoginModel(a.deps), nil
	case navigation.Register:
		return newRegisterModel(a.deps), nil
	case navigation.SpotDirectory:
		return newDirectoryModel(a.deps, sess), nil
	case navigation.SpotCreate:
		return newCreateModel(a.deps, sess), nil
	case navigation.MapExplorer:
		return newMapModel(a.deps), nil
	case navigation.ChatList:
		return newChatListModel(a.deps, sess), nil
	case navigation.Chat:
		params, ok := e.Params.(navigation.ChatParams)
		if !ok {
			return nil, status("Bad chat parameters")
		}
		selfID, err1 := strconv.Atoi(params.SelfUserID)
		counterpartID, err2 := strconv.Atoi(params.CounterpartID)
		if err1 != nil || err2 != nil {
			log.Error().Str("self", params.SelfUserID).Str("counterpart", params.CounterpartID).
				Msg("bad chat params")
			return nil, status("Bad chat parameters")
		}
		return newChatModel(a.deps, selfID, counterpartID), nil
	case navigation.Profile:
		params, ok := e.Params.(navigation.ProfileParams)
		if !ok {
			return nil, status("Bad profile parameters")
		}
		return newProfileModel(a.deps, params), nil
	}
	return nil, nil
}

func screenNeedsSession(s navigation.Screen) bool {
	switch s {
	case navigation.SpotDirectory, navigation.SpotCreate, navigation.ChatList:
		return true
	}
	return false
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "esc":
			if a.nav.Len() > 1 {
				a.pop()
				a.status = ""
				return a, nil
			}
			return a, tea.Quit
		}
	case navPushMsg:
		return a, a.push(msg.entry)
	case navPopMsg:
		if a.nav.Len() > 1 {
			a.pop()
		}
		return a, nil
	case navResetMsg:
		model, cmd := a.buildScreen(msg.entry)
		if model == nil {
			return a, cmd
		}
		for _, old := range a.models {
			closeModel(old)
		}
		a.nav.Reset(msg.entry)
		a.models = a.models[:0]
		a.models = append(a.models, model)
		return a, tea.Batch(model.Init(), cmd)
	case statusMsg:
		a.status = msg.text
		return a, nil
	}

	if len(a.models) == 0 {
		return a, nil
	}
	top := len(a.models) - 1
	model, cmd := a.models[top].Update(msg)
	a.models[top] = model
	return a, cmd
}

func (a *App) View() string {
	if len(a.models) == 0 {
		return ""
	}
	title := titleStyle.Render("spotdrop — " + a.nav.Top().Screen.String())
	body := a.models[len(a.models)-1].View()
	footer := helpStyle.Render("esc back · ctrl+c quit")
	if a.status != "" {
		footer = statusStyle.Render(a.status) + "\n" + footer
	}
	return title + "\n\n" + body + "\n" + footer
}
