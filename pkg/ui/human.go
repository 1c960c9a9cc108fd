package ui

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vctt94/pokerenv/pkg/poker"
)

// ErrAborted is returned by HumanPolicy when the player quits the prompt.
var ErrAborted = errors.New("decision aborted by player")

// decisionModel is the bubbletea model of a single decision.
type decisionModel struct {
	obs      poker.Observation
	legal    []poker.LegalAction
	selected int
	amount   string
	err      error

	chosen  *poker.Action
	aborted bool
}

func newDecisionModel(obs poker.Observation, legal []poker.LegalAction) decisionModel {
	return decisionModel{obs: obs, legal: legal}
}

func (m decisionModel) Init() tea.Cmd {
	return nil
}

func (m decisionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.aborted = true
		return m, tea.Quit
	case "up", "k":
		m.selected = max(0, m.selected-1)
		m.err = nil
	case "down", "j":
		m.selected = min(len(m.legal)-1, m.selected+1)
		m.err = nil
	case "backspace":
		if len(m.amount) > 0 {
			m.amount = m.amount[:len(m.amount)-1]
		}
		m.err = nil
	case "enter":
		action, err := m.action()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.chosen = &action
		return m, tea.Quit
	default:
		if s := key.String(); len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			// Typing an amount jumps to the raise entry.
			for i, l := range m.legal {
				if l.Kind == poker.Raise {
					m.selected = i
				}
			}
			m.amount += s
			m.err = nil
		}
	}
	return m, nil
}

// action converts the current selection into an Action, checking a typed
// raise amount against the offered range.
func (m decisionModel) action() (poker.Action, error) {
	if len(m.legal) == 0 {
		return poker.Action{}, errors.New("no legal actions")
	}
	l := m.legal[m.selected]
	switch l.Kind {
	case poker.Call:
		return poker.Action{Kind: poker.Call, Amount: l.Min}, nil
	case poker.Raise:
		if m.amount == "" {
			return poker.Action{Kind: poker.Raise, Amount: l.Min}, nil
		}
		amount, err := strconv.ParseInt(m.amount, 10, 64)
		if err != nil {
			return poker.Action{}, fmt.Errorf("invalid amount %q", m.amount)
		}
		if amount < l.Min || amount > l.Max {
			return poker.Action{}, fmt.Errorf("raise must be between %d and %d", l.Min, l.Max)
		}
		return poker.Action{Kind: poker.Raise, Amount: amount}, nil
	}
	return poker.Action{Kind: l.Kind}, nil
}

func (m decisionModel) View() string {
	if m.chosen != nil || m.aborted {
		return ""
	}

	var s strings.Builder
	s.WriteString(TitleStyle.Render(fmt.Sprintf("%s to act (%s)", m.obs.Name, m.obs.Phase)))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Board: %s\n", formatCards(m.obs.CommunityCards)))
	s.WriteString(fmt.Sprintf("Hand:  %s\n", formatCards(m.obs.HoleCards)))
	s.WriteString(PotStyle.Render(fmt.Sprintf("Pot: %d", m.obs.Pot)))
	s.WriteString("\n\n")
	s.WriteString(renderPlayersCompact(m.obs))
	s.WriteString("\n")

	for i, l := range m.legal {
		if i == m.selected {
			s.WriteString(FocusedStyle.Render("▶ " + l.String()))
		} else {
			s.WriteString(BlurredStyle.Render("  " + l.String()))
		}
		s.WriteString("\n")
	}
	if m.amount != "" {
		s.WriteString(fmt.Sprintf("\nRaise to: %s\n", m.amount))
	}
	if m.err != nil {
		s.WriteString("\n" + ErrorStyle.Render(m.err.Error()) + "\n")
	}
	s.WriteString("\n" + HelpStyle.Render("↑/↓ select, digits set the raise amount, enter confirms, q quits"))
	return s.String()
}

// HumanPolicy asks a person for every decision through a terminal prompt.
type HumanPolicy struct {
	opts []tea.ProgramOption
	name string
}

// NewHumanPolicy creates a HumanPolicy. Program options select the input and
// output the prompt uses; by default it runs on the controlling terminal.
func NewHumanPolicy(opts ...tea.ProgramOption) *HumanPolicy {
	return &HumanPolicy{opts: opts}
}

// NewHumanPolicyIO creates a HumanPolicy reading keys from in and drawing to
// out.
func NewHumanPolicyIO(in io.Reader, out io.Writer) *HumanPolicy {
	return NewHumanPolicy(tea.WithInput(in), tea.WithOutput(out))
}

// AssignName records the seat name given by the game.
func (h *HumanPolicy) AssignName(name string) {
	h.name = name
}

// Name returns the seat name, if assigned.
func (h *HumanPolicy) Name() string {
	return h.name
}

// Decide runs the prompt until the player confirms an action or quits.
func (h *HumanPolicy) Decide(obs poker.Observation, legal []poker.LegalAction) (poker.Action, error) {
	if len(legal) == 0 {
		return poker.Action{}, errors.New("no legal actions offered")
	}
	final, err := tea.NewProgram(newDecisionModel(obs, legal), h.opts...).Run()
	if err != nil {
		return poker.Action{}, fmt.Errorf("human prompt: %w", err)
	}
	m, ok := final.(decisionModel)
	if !ok || m.aborted || m.chosen == nil {
		return poker.Action{}, ErrAborted
	}
	return *m.chosen, nil
}
