package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/contractdesk/internal/config"
	"github.com/five82/contractdesk/internal/contracts"
	"github.com/five82/contractdesk/internal/state"
)

// Editor fields in focus order.
const (
	edNumber = iota
	edName
	edContractDate
	edParties
	edDeadline
	edPlanned
	edActual
	edReadiness
	edAttachPath
	edAttachList
	editorFieldCount
)

const editorInputCount = edActual + 1

var editorLabels = [editorInputCount]string{
	"Number *",
	"Name *",
	"Contract date *",
	"Parties",
	"Execution deadline",
	"Planned amount",
	"Actual amount",
}

// attachment is a file staged in the form. Staged files are listed only;
// they are never sent to the server.
type attachment struct {
	Path string
	Name string
	Size int64
}

// submitDraftMsg carries a validated payload from the form to the model.
type submitDraftMsg struct{ payload contracts.Payload }

// editorForm is the create/edit modal.
type editorForm struct {
	mode        state.EditorMode
	inputs      [editorInputCount]textinput.Model
	readiness   textarea.Model
	attachPath  textinput.Model
	attachments []attachment
	attachIdx   int
	focus       int
	err         string
	submitting  bool
}

func newEditorForm(mode state.EditorMode, d contracts.Draft) editorForm {
	values := [editorInputCount]string{
		d.Number, d.Name, d.ContractDate, d.Parties,
		d.ExecutionDeadline, d.PlannedAmount, d.ActualAmount,
	}
	placeholders := [editorInputCount]string{
		"e.g. 42/2024", "Contract name", "YYYY-MM-DD", "Customer, contractor",
		"YYYY-MM-DD", "e.g. 1250000.00", "e.g. 980000",
	}

	f := editorForm{mode: mode}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 255
		ti.Width = 40
		ti.SetValue(values[i])
		f.inputs[i] = ti
	}

	ta := textarea.New()
	ta.Placeholder = "Current state of the work"
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetWidth(48)
	ta.SetHeight(3)
	ta.SetValue(d.ReadinessDescription)
	f.readiness = ta

	ap := textinput.New()
	ap.Prompt = ""
	ap.Placeholder = "Path to a file, enter attaches"
	ap.CharLimit = 1024
	ap.Width = 40
	f.attachPath = ap

	f.focusField(edNumber)
	return f
}

// draft collects the current form values.
func (f editorForm) draft() contracts.Draft {
	return contracts.Draft{
		Number:               f.inputs[edNumber].Value(),
		Name:                 f.inputs[edName].Value(),
		ContractDate:         f.inputs[edContractDate].Value(),
		Parties:              f.inputs[edParties].Value(),
		ExecutionDeadline:    f.inputs[edDeadline].Value(),
		PlannedAmount:        f.inputs[edPlanned].Value(),
		ActualAmount:         f.inputs[edActual].Value(),
		ReadinessDescription: f.readiness.Value(),
	}
}

func (f *editorForm) focusField(i int) {
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.readiness.Blur()
	f.attachPath.Blur()

	f.focus = (i + editorFieldCount) % editorFieldCount
	switch {
	case f.focus < editorInputCount:
		f.inputs[f.focus].Focus()
	case f.focus == edReadiness:
		f.readiness.Focus()
	case f.focus == edAttachPath:
		f.attachPath.Focus()
	}
}

// stage adds the file at the attachment path to the staged list.
func (f *editorForm) stage() {
	raw := strings.TrimSpace(f.attachPath.Value())
	if raw == "" {
		return
	}
	path, err := config.ExpandPath(raw)
	if err != nil {
		f.err = fmt.Sprintf("attachment: %v", err)
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		f.err = fmt.Sprintf("attachment: %v", err)
		return
	}
	if info.IsDir() {
		f.err = fmt.Sprintf("attachment: %s is a directory", raw)
		return
	}
	f.err = ""
	f.attachPath.SetValue("")
	for _, a := range f.attachments {
		if a.Path == path {
			return
		}
	}
	f.attachments = append(f.attachments, attachment{Path: path, Name: filepath.Base(path), Size: info.Size()})
}

func (f *editorForm) unstage() {
	if f.attachIdx < 0 || f.attachIdx >= len(f.attachments) {
		return
	}
	f.attachments = append(f.attachments[:f.attachIdx], f.attachments[f.attachIdx+1:]...)
	if f.attachIdx >= len(f.attachments) {
		f.attachIdx = max(len(f.attachments)-1, 0)
	}
}

func (f editorForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateFocused(msg)
	}
	if f.submitting {
		return f, nil, false
	}

	switch {
	case key.Matches(km, keys.Escape):
		return f, nil, true
	case key.Matches(km, keys.Submit):
		payload, err := f.draft().Payload()
		if err != nil {
			f.err = err.Error()
			return f, nil, false
		}
		f.err = ""
		return f, func() tea.Msg { return submitDraftMsg{payload: payload} }, false
	case key.Matches(km, keys.FocusNext):
		f.focusField(f.focus + 1)
		return f, nil, false
	case key.Matches(km, keys.FocusPrev):
		f.focusField(f.focus - 1)
		return f, nil, false
	}

	switch f.focus {
	case edAttachPath:
		if key.Matches(km, keys.Confirm) {
			f.stage()
			return f, nil, false
		}
	case edAttachList:
		switch {
		case key.Matches(km, keys.Up):
			if f.attachIdx > 0 {
				f.attachIdx--
			}
		case key.Matches(km, keys.Down):
			if f.attachIdx < len(f.attachments)-1 {
				f.attachIdx++
			}
		case key.Matches(km, keys.RemoveItem), km.String() == "backspace":
			f.unstage()
		}
		return f, nil, false
	case edReadiness:
	default:
		if key.Matches(km, keys.Confirm) {
			f.focusField(f.focus + 1)
			return f, nil, false
		}
	}

	return f.updateFocused(msg)
}

func (f editorForm) updateFocused(msg tea.Msg) (Modal, tea.Cmd, bool) {
	var cmd tea.Cmd
	switch {
	case f.focus < editorInputCount:
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	case f.focus == edReadiness:
		f.readiness, cmd = f.readiness.Update(msg)
	case f.focus == edAttachPath:
		f.attachPath, cmd = f.attachPath.Update(msg)
	}
	return f, cmd, false
}

func (f editorForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	label := func(i int, text string) string {
		text = padRight(text, 20)
		if i == f.focus {
			return styles.AccentText.Render(text)
		}
		return styles.MutedText.Render(text)
	}

	title := "New contract"
	if f.mode == state.EditorEdit {
		title = "Edit contract"
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 60)))
	b.WriteString("\n\n")

	for i, input := range f.inputs {
		b.WriteString(label(i, editorLabels[i]))
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(label(edReadiness, "Readiness"))
	b.WriteString("\n")
	b.WriteString(f.readiness.View())
	b.WriteString("\n\n")

	b.WriteString(label(edAttachPath, "Attach file"))
	b.WriteString(f.attachPath.View())
	b.WriteString("\n")
	b.WriteString(label(edAttachList, fmt.Sprintf("Attachments (%d)", len(f.attachments))))
	b.WriteString("\n")
	if len(f.attachments) == 0 {
		b.WriteString(styles.FaintText.Render("  none staged"))
		b.WriteString("\n")
	}
	for i, a := range f.attachments {
		line := fmt.Sprintf("  %s  %s", truncate(a.Name, 40), humanSize(a.Size))
		if f.focus == edAttachList && i == f.attachIdx {
			b.WriteString(styles.Selected.Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("Files are listed here only and are not uploaded."))
	b.WriteString("\n\n")

	switch {
	case f.submitting:
		b.WriteString(styles.WarningText.Render("Saving..."))
		b.WriteString("\n")
	case f.err != "":
		b.WriteString(styles.DangerText.Render(f.err))
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("Ctrl+S: Save  •  Tab: Next field  •  Esc: Cancel"))

	return renderOverlay(theme, width, height, min(76, max(width-4, 40)), b.String())
}
