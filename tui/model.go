// Package tui implements the interactive import wizard: process selection,
// file picking, header toggle, column mapping, confirmation and the write
// itself, one step at a time in the terminal.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harvesting-media/dataproc/process"
	"github.com/harvesting-media/dataproc/table"
)

// WriteFunc writes a transformed table to the definition's worksheet.
type WriteFunc func(ctx context.Context, d process.Definition, t *table.Table) error

// Options configure a wizard run. File skips the file picker when set;
// DryRun stops after the summary without calling Write.
type Options struct {
	File       string
	HasHeaders bool
	DryRun     bool
	Write      WriteFunc
}

type state int

const (
	stateProcess state = iota
	stateFilePicker
	stateHeaders
	stateMapping
	stateConfirm
	stateWriting
	stateDone
	stateError
)

type fileLoadedMsg struct {
	src *table.Table
	err error
}

type writeDoneMsg struct {
	err error
}

type Model struct {
	opts       Options
	state      state
	processes  []process.Definition
	cursor     int
	definition process.Definition
	filepicker filepicker.Model
	file       string
	hasHeaders bool
	src        *table.Table
	mapping    map[string]string
	fieldIx    int
	out        *table.Table
	summary    process.Summary
	spinner    spinner.Model
	err        error
	quit       bool
}

func initialModel(opts Options) Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".csv", ".xlsx", ".txt", ".tsv"}
	if cwd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = cwd
	} else {
		fp.CurrentDirectory = "."
	}
	fp.Styles.Cursor = SelectedStyle
	fp.Styles.Directory = CheckedStyle
	fp.Styles.File = UnselectedStyle
	fp.Styles.Selected = SelectedStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SelectedStyle

	return Model{
		opts:       opts,
		state:      stateProcess,
		processes:  process.Processes(),
		filepicker: fp,
		file:       opts.File,
		hasHeaders: opts.HasHeaders,
		mapping:    map[string]string{},
		spinner:    sp,
	}
}

// Run drives the wizard to completion and returns the error the run ended
// with, if any.
func Run(opts Options) error {
	final, err := tea.NewProgram(initialModel(opts)).Run()
	if err != nil {
		return err
	}

	if m, ok := final.(Model); ok {
		if m.err != nil {
			return m.err
		}

		if m.quit {
			return fmt.Errorf("import cancelled")
		}
	}

	return nil
}

func (m Model) Init() tea.Cmd {
	return m.filepicker.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateDone && m.state != stateError {
				m.quit = true
			}
			return m, tea.Quit
		}

		switch m.state {
		case stateProcess:
			return m.updateProcess(msg)

		case stateHeaders:
			return m.updateHeaders(msg)

		case stateMapping:
			return m.updateMapping(msg)

		case stateConfirm:
			return m.updateConfirm(msg)

		case stateDone, stateError:
			return m, tea.Quit
		}

	case fileLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}

		m.src = msg.src
		m.mapping = map[string]string{}
		m.fieldIx = 0
		m.cursor = 0
		m.state = stateMapping
		return m, nil

	case writeDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}

		m.state = stateDone
		return m, nil

	case spinner.TickMsg:
		if m.state == stateWriting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.state == stateFilePicker {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			m.file = path
			m.state = stateHeaders
			return m, nil
		}

		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			m.state = stateProcess
			return m, nil
		}

		return m, cmd
	}

	return m, nil
}

func (m Model) updateProcess(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.processes)-1 {
			m.cursor++
		}

	case "enter":
		m.definition = m.processes[m.cursor]
		m.cursor = 0

		if m.file != "" {
			m.state = stateHeaders
		} else {
			m.state = stateFilePicker
			return m, m.filepicker.Init()
		}
	}

	return m, nil
}

func (m Model) updateHeaders(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ", "h":
		m.hasHeaders = !m.hasHeaders

	case "esc":
		if m.opts.File == "" {
			m.state = stateFilePicker
			return m, m.filepicker.Init()
		}
		m.state = stateProcess

	case "enter":
		return m, m.loadFile()
	}

	return m, nil
}

func (m Model) updateMapping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.src.Header)-1 {
			m.cursor++
		}

	case "esc":
		if m.fieldIx > 0 {
			m.fieldIx--
			m.cursor = 0
		} else {
			m.state = stateHeaders
		}

	case "enter":
		field := m.definition.Fields[m.fieldIx]
		m.mapping[field.Key] = m.src.Header[m.cursor]

		if m.fieldIx < len(m.definition.Fields)-1 {
			m.fieldIx++
			m.cursor = 0
			return m, nil
		}

		out, err := m.definition.Apply(m.src, m.mapping)
		if err != nil {
			m.err = err
			m.state = stateError
			return m, nil
		}

		m.out = out
		m.summary = m.definition.Summarize(out)
		m.state = stateConfirm
	}

	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.fieldIx = len(m.definition.Fields) - 1
		m.cursor = 0
		m.state = stateMapping

	case "enter":
		if m.opts.DryRun {
			m.state = stateDone
			return m, nil
		}

		m.state = stateWriting
		return m, tea.Batch(m.spinner.Tick, m.writeTable())
	}

	return m, nil
}

func (m Model) loadFile() tea.Cmd {
	file := m.file
	hasHeaders := m.hasHeaders

	return func() tea.Msg {
		f, err := os.Open(file)
		if err != nil {
			return fileLoadedMsg{err: fmt.Errorf("unable to open '%s' (%w)", file, err)}
		}

		defer f.Close()

		src, err := table.Read(f, file, hasHeaders)
		return fileLoadedMsg{src: src, err: err}
	}
}

func (m Model) writeTable() tea.Cmd {
	write := m.opts.Write
	definition := m.definition
	out := m.out

	return func() tea.Msg {
		return writeDoneMsg{err: write(context.Background(), definition, out)}
	}
}

func (m Model) View() string {
	switch m.state {
	case stateProcess:
		return m.viewProcess()
	case stateFilePicker:
		return m.viewFilePicker()
	case stateHeaders:
		return m.viewHeaders()
	case stateMapping:
		return m.viewMapping()
	case stateConfirm:
		return m.viewConfirm()
	case stateWriting:
		return m.viewWriting()
	case stateDone:
		return m.viewDone()
	case stateError:
		return m.viewError()
	}

	return ""
}

func (m Model) viewProcess() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Harvesting Media - Data Processor"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Select a process"))
	s.WriteString("\n\n")

	for i, d := range m.processes {
		line := fmt.Sprintf("  %s (%s, %s)", d.Name, d.Worksheet, d.Mode)
		if m.cursor == i {
			line = SelectedStyle.Render("> " + strings.TrimLeft(line, " "))
		}

		s.WriteString(line)
		s.WriteString("\n")
	}

	s.WriteString(HelpStyle.Render("↑/↓: navigate • enter: select • q: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Select a file"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("CSV, XLSX, TXT or TSV"))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("esc: back • q: quit"))

	return s.String()
}

func (m Model) viewHeaders() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("File headers"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("File: %s", filepath.Base(m.file))))
	s.WriteString("\n\n")

	checked := "[ ]"
	if m.hasHeaders {
		checked = "[x]"
	}

	s.WriteString(fmt.Sprintf("%s File has headers\n", checked))
	s.WriteString(HelpStyle.Render("space: toggle • enter: continue • esc: back • q: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewMapping() string {
	var s strings.Builder

	field := m.definition.Fields[m.fieldIx]

	s.WriteString(TitleStyle.Render(fmt.Sprintf("Map '%s' (%d/%d)", field.Label, m.fieldIx+1, len(m.definition.Fields))))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Select the source column"))
	s.WriteString("\n\n")

	for i, column := range m.src.Header {
		line := "  " + column
		if m.cursor == i {
			line = SelectedStyle.Render("> " + column)
		} else if mapped(m.mapping, column) {
			line = CheckedStyle.Render("  " + column + " (mapped)")
		}

		s.WriteString(line)
		s.WriteString("\n")
	}

	s.WriteString(HelpStyle.Render("↑/↓: navigate • enter: select • esc: back • q: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewConfirm() string {
	var s strings.Builder

	action := "overwrite"
	if m.definition.Mode == process.Append {
		action = "append to"
	}

	s.WriteString(TitleStyle.Render("Ready to import"))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Process:   %s\n", m.definition.Name))
	s.WriteString(fmt.Sprintf("Worksheet: %s (%s)\n", m.definition.Worksheet, action))
	s.WriteString(fmt.Sprintf("Rows:      %d\n", m.summary.Rows))
	s.WriteString("\n")

	for _, f := range m.definition.Fields {
		s.WriteString(fmt.Sprintf("  %s ← %s\n", f.Label, m.mapping[f.Key]))
	}

	if m.opts.DryRun {
		s.WriteString("\n")
		s.WriteString(SubtitleStyle.Render("Dry run - nothing will be written"))
	}

	s.WriteString(HelpStyle.Render("enter: import • esc: back • q: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewWriting() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Writing..."))
	s.WriteString("\n\n")
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.spinner.View(), fmt.Sprintf(" Writing %d rows to '%s'", m.summary.Rows, m.definition.Worksheet)))

	return BoxStyle.Render(s.String())
}

func (m Model) viewDone() string {
	var s strings.Builder

	title := "Import complete"
	if m.opts.DryRun {
		title = "Dry run complete - nothing written"
	}

	s.WriteString(SuccessStyle.Render(title))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Process:       %s\n", m.summary.Process))
	s.WriteString(fmt.Sprintf("Worksheet:     %s\n", m.summary.Worksheet))
	s.WriteString(fmt.Sprintf("Mode:          %s\n", m.summary.Mode))
	s.WriteString(fmt.Sprintf("Rows:          %d\n", m.summary.Rows))
	s.WriteString(fmt.Sprintf("Unique emails: %d\n", m.summary.UniqueEmails))
	s.WriteString(HelpStyle.Render("Press any key to exit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("Error"))
	s.WriteString("\n\n")
	s.WriteString(m.err.Error())
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Press any key to exit"))

	return BoxStyle.Render(s.String())
}

func mapped(mapping map[string]string, column string) bool {
	for _, v := range mapping {
		if v == column {
			return true
		}
	}

	return false
}
