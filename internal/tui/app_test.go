package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/advisor/internal/advisor"
	"github.com/sant0-9/advisor/internal/config"
)

type askCall struct {
	text, persona, credential string
}

type fakeAsker struct {
	result advisor.Result
	calls  []askCall
}

func (f *fakeAsker) Ask(_ context.Context, text, personaID, credential string) advisor.Result {
	f.calls = append(f.calls, askCall{text, personaID, credential})
	res := f.result
	res.Persona = personaID
	return res
}

type fakeCreds struct {
	key string
}

func (f fakeCreds) Resolve(context.Context) (string, bool) {
	return f.key, f.key != ""
}

func newTestApp(t *testing.T, creds CredentialSource, result advisor.Result) (*App, *fakeAsker) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	asker := &fakeAsker{result: result}
	app := NewApp(config.DefaultConfig(), asker, creds)
	app.render = func(md string, _ int) (string, error) { return md, nil }
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return app, asker
}

func press(a *App, msg tea.KeyMsg) tea.Cmd {
	_, cmd := a.Update(msg)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// findAnswer runs cmd (and any batched commands) until it yields an answerMsg.
func findAnswer(t *testing.T, cmd tea.Cmd) answerMsg {
	t.Helper()
	require.NotNil(t, cmd)
	switch msg := cmd().(type) {
	case answerMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if ans, ok := c().(answerMsg); ok {
				return ans
			}
		}
	}
	t.Fatal("no answer produced")
	return answerMsg{}
}

func TestSubmitEmptyInputWarns(t *testing.T) {
	app, asker := newTestApp(t, fakeCreds{key: "sk-test"}, advisor.Result{Text: "never"})

	app.state.input.SetValue("   \n ")
	cmd := press(app, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Nil(t, cmd)
	assert.Equal(t, advisor.EmptyInputWarning, app.state.warning)
	assert.False(t, app.state.asking)
	assert.Empty(t, asker.calls)
	assert.Equal(t, viewAsk, app.view)
	assert.Contains(t, app.View(), "The input is empty")
}

func TestSubmitMissingCredentialBlocks(t *testing.T) {
	app, asker := newTestApp(t, fakeCreds{}, advisor.Result{Text: "never"})

	app.state.input.SetValue("Is coffee bad for sleep?")
	cmd := press(app, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Nil(t, cmd)
	assert.Contains(t, app.state.errorMsg, "OPENAI_API_KEY")
	assert.Empty(t, asker.calls)
	assert.Contains(t, app.View(), "API key is not configured")
}

func TestSubmitAsksSelectedPersona(t *testing.T) {
	reply := "Slice the carrot into planks, then into thin matchsticks."
	app, asker := newTestApp(t, fakeCreds{key: "sk-test"}, advisor.Result{Text: reply, Model: "gpt-4o-mini"})

	press(app, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusPersona, app.state.focus)
	press(app, tea.KeyMsg{Type: tea.KeyDown})
	press(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, focusInput, app.state.focus)
	assert.Equal(t, "culinary-expert", app.state.selectedPersona().ID)

	app.state.input.SetValue("How do I julienne a carrot?")
	cmd := press(app, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, app.state.asking)
	assert.Contains(t, app.View(), "Culinary Expert")

	// Keys are ignored while the request is in flight.
	assert.Nil(t, press(app, tea.KeyMsg{Type: tea.KeyCtrlS}))

	ans := findAnswer(t, cmd)
	require.Len(t, asker.calls, 1)
	assert.Equal(t, askCall{"How do I julienne a carrot?", "culinary-expert", "sk-test"}, asker.calls[0])

	app.Update(ans)
	assert.False(t, app.state.asking)
	assert.Equal(t, viewResult, app.view)
	assert.Contains(t, app.View(), reply)

	press(app, runes("n"))
	assert.Equal(t, viewAsk, app.view)
	assert.Empty(t, app.state.input.Value())
	assert.Equal(t, "culinary-expert", app.state.selectedPersona().ID)
}

func TestFailureShownAsText(t *testing.T) {
	failed := advisor.Result{Err: errors.New("openai error (status 401): Incorrect API key provided")}
	app, _ := newTestApp(t, fakeCreds{key: "sk-bad"}, failed)

	app.state.input.SetValue("What is a balanced breakfast?")
	ans := findAnswer(t, press(app, tea.KeyMsg{Type: tea.KeyCtrlS}))
	app.Update(ans)

	out := app.View()
	assert.Equal(t, viewResult, app.view)
	assert.Contains(t, out, "Error: openai error (status 401)")
	assert.Contains(t, out, "Check your API key")
}

func TestEscNavigation(t *testing.T) {
	app, _ := newTestApp(t, fakeCreds{key: "k"}, advisor.Result{})

	press(app, tea.KeyMsg{Type: tea.KeyF1})
	assert.Equal(t, viewHelp, app.view)
	press(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, viewAsk, app.view)

	cmd := press(app, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, app.View())
}

func TestSettingsSavesAPIKey(t *testing.T) {
	app, _ := newTestApp(t, fakeCreds{}, advisor.Result{})

	press(app, tea.KeyMsg{Type: tea.KeyF2})
	require.Equal(t, viewSettings, app.view)
	assert.Contains(t, app.View(), "Not set")

	press(app, runes("k"))
	require.Equal(t, "apikey", app.state.settingsMode)
	app.state.apiKeyInput.SetValue("sk-new-key-1234")

	cmd := press(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, "sk-new-key-1234", app.state.config.APIKey)

	app.Update(cmd())
	assert.Equal(t, "Saved to config.yaml", app.state.settingsNotice)
	assert.Contains(t, app.View(), "sk-n****1234")

	path, err := config.ConfigPath()
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, ".config", filepath.Base(filepath.Dir(filepath.Dir(path))))
}

func TestSettingsTestConnection(t *testing.T) {
	tests := []struct {
		name    string
		creds   fakeCreds
		pingErr error
		want    string
	}{
		{"ok", fakeCreds{key: "sk-test"}, nil, "Connection OK"},
		{"rejected", fakeCreds{key: "sk-bad"}, errors.New("invalid API key"), "Connection failed: invalid API key"},
		{"no key", fakeCreds{}, nil, "API key is not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t, tt.creds, advisor.Result{})
			var pinged string
			app.ping = func(_ context.Context, _ *config.Config, apiKey string) error {
				pinged = apiKey
				return tt.pingErr
			}

			press(app, tea.KeyMsg{Type: tea.KeyF2})
			cmd := press(app, runes("t"))
			if cmd != nil {
				app.Update(cmd())
				assert.Equal(t, tt.creds.key, pinged)
			} else {
				assert.Empty(t, pinged)
			}
			assert.Equal(t, tt.want, app.state.settingsNotice)
		})
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four\nfive", 9)
	assert.Equal(t, "one two\nthree\nfour\nfive", got)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
