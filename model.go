package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusCode
	focusMenu
	focusGateInfo
	focusInputParam
	focusSelectControls
)

// codePane selects what the code panel shows.
type codePane int

const (
	paneQASM codePane = iota
	paneQiskit
)

// Model represents the TUI application state.
type Model struct {
	session     *Session // history + circuit; the only mutation path
	cursorQubit int
	width       int
	height      int
	codeView    textarea.Model
	pane        codePane
	focus       focus
	statusMsg   string
	statusErr   bool

	// Menu state
	menuCat       int
	menuItem      int
	menuFilter    string
	menuFiltering bool

	// Pending gate state (control selection / angle input)
	pendingGate     GateKind
	pendingControls []int
	selQubit        int
	paramInput      string
}

func initialModel() Model {
	ta := textarea.New()
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true

	m := Model{
		session:  NewSession(),
		codeView: ta,
	}
	m.syncCodeView()
	return m
}

// syncCodeView regenerates the code panel from the live circuit.
func (m *Model) syncCodeView() {
	circ := m.session.Circuit()
	switch m.pane {
	case paneQiskit:
		m.codeView.SetValue(circ.GenerateQiskit())
	default:
		m.codeView.SetValue(circ.ToQASM())
	}
}

// applyOp routes an edit through the session and reports the outcome on the
// status line.
func (m *Model) applyOp(op Operation) {
	if err := m.session.Apply(op); err != nil {
		var replayErr *ReplayError
		if errors.As(err, &replayErr) {
			m.setError(replayErr.Cause.Error())
		} else {
			m.setError(err.Error())
		}
		return
	}
	m.setStatus(op.Describe())
	m.syncCodeView()
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusErr = false
}

func (m *Model) setError(msg string) {
	m.statusMsg = msg
	m.statusErr = true
}

// clearPending resets the in-flight gate selection state.
func (m *Model) clearPending() {
	m.pendingControls = nil
	m.paramInput = ""
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		codeW := max(msg.Width/3-6, 20)
		m.codeView.SetWidth(codeW)
		ctrlH := 6
		circH := msg.Height - ctrlH - 4
		m.codeView.SetHeight(max(circH-4, 4))

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""
		m.statusErr = false

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusCode
				m.codeView.Focus()
			case "up", "k":
				if m.cursorQubit > 0 {
					m.cursorQubit--
				}
			case "down", "j":
				if m.cursorQubit < m.session.Circuit().NumQubits-1 {
					m.cursorQubit++
				}
			case "+", "=":
				m.applyOp(AddQubitOp())
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
				m.menuFiltering = false
				m.menuFilter = ""
			case "u":
				m.doUndo()
			case "r":
				m.doRedo()
			case "c":
				if m.pane == paneQASM {
					m.pane = paneQiskit
				} else {
					m.pane = paneQASM
				}
				m.syncCodeView()
			case "ctrl+r":
				m.session.Clear()
				m.cursorQubit = 0
				m.syncCodeView()
				m.setStatus("Circuit cleared")
			}

		case focusCode:
			switch key {
			case "tab", "esc":
				m.focus = focusCircuit
				m.codeView.Blur()
			case "up", "down", "left", "right", "pgup", "pgdown", "home", "end":
				// Navigation only; the pane shows generated code and is
				// never edited directly.
				var cmd tea.Cmd
				m.codeView, cmd = m.codeView.Update(msg)
				cmds = append(cmds, cmd)
			}

		case focusMenu:
			m = m.updateMenu(key)

		case focusGateInfo:
			switch key {
			case "esc", "?", "enter":
				m.focus = focusMenu
			}

		case focusInputParam:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.clearPending()
			case "backspace":
				if len(m.paramInput) > 0 {
					m.paramInput = m.paramInput[:len(m.paramInput)-1]
				}
			case "enter":
				angle, ok := parseParamExpr(m.paramInput)
				if !ok {
					m.setError("Invalid angle — use numbers or pi expressions (e.g. pi/2, 3*pi/4)")
					break
				}
				op, err := RotationOp(m.pendingGate, m.cursorQubit, angle)
				if err != nil {
					m.setError(err.Error())
					m.focus = focusCircuit
					m.clearPending()
					break
				}
				m.applyOp(op)
				m.focus = focusCircuit
				m.clearPending()
			default:
				if len(key) == 1 && isAngleChar(key[0]) {
					m.paramInput += key
				}
			}

		case focusSelectControls:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.clearPending()
			case "up", "k":
				for next := m.selQubit - 1; next >= 0; next-- {
					if m.selectableControl(next) {
						m.selQubit = next
						break
					}
				}
			case "down", "j":
				for next := m.selQubit + 1; next < m.session.Circuit().NumQubits; next++ {
					if m.selectableControl(next) {
						m.selQubit = next
						break
					}
				}
			case "enter":
				m.pendingControls = append(m.pendingControls, m.selQubit)
				if len(m.pendingControls) < m.pendingGate.NumControls() {
					m.advanceControlSelection()
					break
				}
				op, err := AddGateOp(m.pendingGate, []int{m.cursorQubit}, m.pendingControls...)
				if err != nil {
					m.setError(err.Error())
				} else {
					m.applyOp(op)
				}
				m.focus = focusCircuit
				m.clearPending()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// updateMenu handles keys while the gate picker is open.
func (m Model) updateMenu(key string) Model {
	if m.menuFiltering {
		switch key {
		case "esc":
			m.menuFiltering = false
			m.menuFilter = ""
			m.menuItem = 0
			return m
		case "backspace":
			if len(m.menuFilter) > 0 {
				m.menuFilter = m.menuFilter[:len(m.menuFilter)-1]
				m.menuItem = 0
			}
			return m
		case "up":
			if m.menuItem > 0 {
				m.menuItem--
			}
			return m
		case "down":
			if m.menuItem < len(m.visibleMenuItems())-1 {
				m.menuItem++
			}
			return m
		case "enter":
			return m.chooseMenuItem()
		default:
			if len(key) == 1 {
				m.menuFilter += key
				m.menuItem = 0
			}
			return m
		}
	}

	switch key {
	case "esc":
		m.focus = focusCircuit
	case "/":
		m.menuFiltering = true
		m.menuFilter = ""
		m.menuItem = 0
	case "?":
		m.focus = focusGateInfo
	case "up", "k":
		if m.menuItem > 0 {
			m.menuItem--
		}
	case "down", "j":
		if m.menuItem < len(gateMenu[m.menuCat].items)-1 {
			m.menuItem++
		}
	case "left", "h":
		if m.menuCat > 0 {
			m.menuCat--
			m.menuItem = 0
		}
	case "right", "l":
		if m.menuCat < len(gateMenu)-1 {
			m.menuCat++
			m.menuItem = 0
		}
	case "enter":
		return m.chooseMenuItem()
	}
	return m
}

// chooseMenuItem starts the flow for the selected gate: angle input for
// rotations, control selection for controlled gates, immediate apply
// otherwise.
func (m Model) chooseMenuItem() Model {
	items := m.visibleMenuItems()
	if m.menuItem >= len(items) {
		return m
	}
	item := items[m.menuItem]
	m.pendingGate = item.gate
	m.menuFiltering = false
	m.menuFilter = ""

	if item.needsParam() {
		m.paramInput = ""
		m.focus = focusInputParam
		return m
	}

	if n := item.gate.NumControls(); n > 0 {
		if m.session.Circuit().NumQubits < n+1 {
			m.setError(fmt.Sprintf("%s needs %d qubits — add more first", item.gate, n+1))
			m.focus = focusCircuit
			return m
		}
		m.pendingControls = nil
		m.focus = focusSelectControls
		m.advanceControlSelection()
		return m
	}

	op, err := AddGateOp(item.gate, []int{m.cursorQubit})
	if err != nil {
		m.setError(err.Error())
	} else {
		m.applyOp(op)
	}
	m.focus = focusCircuit
	return m
}

// selectableControl reports whether the qubit can still be chosen as a
// control (not the target, not already picked).
func (m Model) selectableControl(q int) bool {
	return q != m.cursorQubit && !slices.Contains(m.pendingControls, q)
}

// advanceControlSelection moves the selection highlight to the first
// qubit still available as a control.
func (m *Model) advanceControlSelection() {
	for q := 0; q < m.session.Circuit().NumQubits; q++ {
		if m.selectableControl(q) {
			m.selQubit = q
			return
		}
	}
}

func (m *Model) doUndo() {
	op, err := m.session.Undo()
	if err != nil {
		if errors.Is(err, ErrNothingToUndo) {
			m.setStatus("No actions to undo")
		} else {
			m.setError(err.Error())
		}
		return
	}
	m.cursorQubit = min(m.cursorQubit, m.session.Circuit().NumQubits-1)
	m.setStatus("Undid: " + op.Describe())
	m.syncCodeView()
}

func (m *Model) doRedo() {
	op, err := m.session.Redo()
	if err != nil {
		if errors.Is(err, ErrNothingToRedo) {
			m.setStatus("No actions to redo")
		} else {
			m.setError(err.Error())
		}
		return
	}
	m.setStatus("Redid: " + op.Describe())
	m.syncCodeView()
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	codeWidth := m.width / 3
	circuitWidth := m.width - codeWidth - 4
	controlsHeight := 6
	circuitHeight := max(m.height-controlsHeight-2, 6)

	circuitPanel := m.renderCircuitPanel(circuitWidth, circuitHeight)
	codePanel := m.renderCodePanel(codeWidth, circuitHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, codePanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	switch m.focus {
	case focusMenu:
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	case focusGateInfo:
		frame = overlayAt(frame, m.renderGateInfo(), 2, 2)
	case focusInputParam:
		frame = overlayAt(frame, m.renderParamInput(), 2, 2)
	}

	return frame
}

// renderParamInput renders the rotation-angle input overlay.
func (m Model) renderParamInput() string {
	s := titleStyle.Render(fmt.Sprintf("%s Gate — Rotation Angle", m.pendingGate)) +
		"\n\n" +
		fmt.Sprintf("Angle: %s_", m.paramInput) +
		"\n\n" +
		dimStyle.Render("Examples: pi/2, 3*pi/4, 1.57")
	return menuBorderStyle.Render(s)
}
