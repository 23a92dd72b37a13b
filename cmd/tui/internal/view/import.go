package view

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hamrotrack/internal/importer"
	"hamrotrack/internal/transaction"
	"hamrotrack/internal/wallet"
)

type importState int

const (
	importStateFilePick importState = iota
	importStateWalletSelect
	importStatePreview
	importStateImporting
	importStateResult
)

const previewRows = 15

type ImportModel struct {
	CommonModel
	transactions *transaction.Store
	wallets      *wallet.Store

	state        importState
	filePicker   filepicker.Model
	rows         []importer.Row
	walletCursor int

	status string
	err    error
}

func NewImportModel(transactions *transaction.Store, wallets *wallet.Store) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		transactions: transactions,
		wallets:      wallets,
		filePicker:   fp,
	}
}

func (m ImportModel) Title() string { return "Import Statement" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateWalletSelect:
		return "Esc: back | Enter: select wallet"
	case importStatePreview:
		return "Esc: cancel | Enter: import"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return tea.Batch(m.filePicker.Init(), m.loadWalletsCmd())
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		switch m.state {
		case importStateWalletSelect:
			return m.updateWalletSelect(msg)
		case importStatePreview:
			if msg.Type == tea.KeyEnter {
				m.state = importStateImporting
				m.status = fmt.Sprintf("Importing %d rows...", len(m.rows))

				return m, m.importCmd()
			}

			return m, nil
		}

	case statementParsedMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.rows = msg.rows
		m.walletCursor = 0
		m.state = importStateWalletSelect

		return m, nil

	case importDoneMsg:
		m.state = importStateResult
		m.err = nil
		m.status = fmt.Sprintf("Imported %d of %d rows.", msg.created, msg.total)

		if msg.created < msg.total {
			m.err = fmt.Errorf("%d rows failed", msg.total-msg.created)
		}

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		return m, m.parseCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateWalletSelect, importStatePreview, importStateResult:
		m.state = importStateFilePick
		m.rows = nil
		m.err = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateWalletSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	wallets := m.wallets.Items()

	switch msg.Type {
	case tea.KeyUp:
		if m.walletCursor > 0 {
			m.walletCursor--
		}
	case tea.KeyDown:
		if m.walletCursor < len(wallets)-1 {
			m.walletCursor++
		}
	case tea.KeyEnter:
		if len(wallets) == 0 {
			m.status = "Create a wallet first."
			return m, nil
		}

		m.state = importStatePreview
	}

	return m, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			"Select a statement CSV:\n\n" + m.filePicker.View(),
		)
	case importStateWalletSelect:
		return m.viewWalletSelect()
	case importStatePreview:
		return m.viewPreview()
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewWalletSelect() string {
	wallets := m.wallets.Items()
	if len(wallets) == 0 {
		return lipgloss.NewStyle().Padding(2).Render("No wallets yet. Create one first.")
	}

	s := fmt.Sprintf("Parsed %d rows. Import into which wallet?\n\n", len(m.rows))

	for i, w := range wallets {
		cursor := " "
		if i == m.walletCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s (%s)\n", cursor, w.Name, w.Currency)
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ImportModel) viewPreview() string {
	s := fmt.Sprintf("Importing %d rows:\n\n", len(m.rows))

	for i, r := range m.rows {
		if i == previewRows {
			s += faint(fmt.Sprintf("  ... and %d more\n", len(m.rows)-previewRows))
			break
		}

		sign := "+"
		if r.Kind == transaction.KindExpense {
			sign = "-"
		}

		s += fmt.Sprintf("  %s  %s%s  %s\n", FormatDate(r.Date), sign, r.Amount.StringFixed(2), r.Description)
	}

	s += "\nEnter to import, Esc to cancel."

	return lipgloss.NewStyle().Padding(1).Render(s)
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)

	color := lipgloss.Color("46")
	if m.err != nil {
		color = lipgloss.Color("196")
	}

	return style.Render(
		lipgloss.NewStyle().Foreground(color).Render(m.status) +
			"\n\n(Esc to go back)",
	)
}

// Messages

type statementParsedMsg struct {
	rows []importer.Row
	err  error
}

func (m ImportModel) parseCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return statementParsedMsg{err: err}
		}
		defer f.Close()

		rows, err := importer.Parse(f)
		if err != nil {
			return statementParsedMsg{err: err}
		}

		if len(rows) == 0 {
			return statementParsedMsg{err: fmt.Errorf("no data rows in %s", path)}
		}

		return statementParsedMsg{rows: rows}
	}
}

type importDoneMsg struct {
	created int
	total   int
}

// importCmd creates the parsed rows one at a time. Each row fails
// independently; one rejection does not abort the rest.
func (m ImportModel) importCmd() tea.Cmd {
	rows := m.rows
	wallets := m.wallets.Items()
	walletID := wallets[m.walletCursor].ID
	store := m.transactions

	return func() tea.Msg {
		created := 0

		for _, r := range rows {
			ctx, cancel := GwCtx()
			err := store.Create(ctx, r.Params(walletID, nil))
			cancel()

			if err == nil {
				created++
			}
		}

		return importDoneMsg{created: created, total: len(rows)}
	}
}

func (m ImportModel) loadWalletsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		_ = m.wallets.Fetch(ctx)

		return nil
	}
}
