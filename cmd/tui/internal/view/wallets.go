package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hamrotrack/internal/money"
	"hamrotrack/internal/wallet"
)

type walletState int

const (
	walletStateBrowse walletState = iota
	walletStateAdd
	walletStateRename
)

type WalletsModel struct {
	CommonModel
	wallets *wallet.Store

	state walletState
	table table.Model
	form  *huh.Form
	items []wallet.Wallet

	loading bool
	err     error
	status  string

	// Form field bindings
	formName     string
	formCurrency string
	formBalance  string
	renameID     uuid.UUID
}

func NewWalletsModel(wallets *wallet.Store) WalletsModel {
	columns := []table.Column{
		{Title: "Name", Width: 20},
		{Title: "Currency", Width: 10},
		{Title: "Balance", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return WalletsModel{
		wallets: wallets,
		table:   t,
		loading: true,
	}
}

func (m WalletsModel) Title() string { return "Wallets" }

func (m WalletsModel) ShortHelp() string {
	if m.state != walletStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | Enter: focus | a: add | e: rename | x: delete | r: refresh"
}

func (m WalletsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m WalletsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case walletLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.refreshTable()

		return m, nil

	case walletMutatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		m.state = walletStateBrowse
		m.form = nil
		m.table.Focus()
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case walletStateBrowse:
		return m.updateBrowse(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m WalletsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "enter":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.items) {
				m.wallets.Select(m.items[idx].ID)
				m.status = fmt.Sprintf("Focused %s.", m.items[idx].Name)
			}

			return m, nil
		case "a":
			return m.enterAddMode()
		case "e":
			return m.enterRenameMode()
		case "x":
			return m, m.deleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m WalletsModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formCurrency = "USD"
	m.formBalance = "0"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("currency").
				Title("Currency").
				Placeholder("USD").
				Value(&m.formCurrency).
				Validate(func(s string) error {
					if len(strings.TrimSpace(s)) != 3 {
						return fmt.Errorf("use a 3-letter ISO code")
					}
					return nil
				}),

			huh.NewInput().
				Key("balance").
				Title("Opening balance").
				Placeholder("0.00").
				Value(&m.formBalance).
				Validate(func(s string) error {
					if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("not a number")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = walletStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m WalletsModel) enterRenameMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return m, nil
	}

	m.renameID = m.items[idx].ID
	m.formName = m.items[idx].Name

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("New name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = walletStateRename
	m.table.Blur()

	return m, m.form.Init()
}

func (m WalletsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = walletStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == walletStateRename {
		return m, m.renameCmd()
	}

	return m, m.createCmd()
}

func (m WalletsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading wallets...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.state != walletStateBrowse && m.form != nil {
		title := "Add Wallet"
		if m.state == walletStateRename {
			title = "Rename Wallet"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faint(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *WalletsModel) refreshTable() {
	m.items = m.wallets.Items()

	rows := make([]table.Row, 0, len(m.items))
	for _, w := range m.items {
		rows = append(rows, table.Row{
			w.Name,
			w.Currency,
			money.Format(w.Balance, w.Currency),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type walletLoadedMsg struct {
	err error
}

func (m WalletsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		return walletLoadedMsg{err: m.wallets.Fetch(ctx)}
	}
}

type walletMutatedMsg struct {
	status string
	err    error
}

func (m WalletsModel) createCmd() tea.Cmd {
	params := wallet.CreateParams{
		Name:     strings.TrimSpace(m.formName),
		Currency: strings.ToUpper(strings.TrimSpace(m.formCurrency)),
	}
	params.Balance, _ = decimal.NewFromString(strings.TrimSpace(m.formBalance))

	store := m.wallets

	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		if err := store.Create(ctx, params); err != nil {
			return walletMutatedMsg{err: err}
		}

		return walletMutatedMsg{status: "Wallet created."}
	}
}

func (m WalletsModel) renameCmd() tea.Cmd {
	id := m.renameID
	name := strings.TrimSpace(m.formName)
	store := m.wallets

	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		if err := store.Update(ctx, id, wallet.Patch{Name: &name}); err != nil {
			return walletMutatedMsg{err: err}
		}

		return walletMutatedMsg{status: "Wallet renamed."}
	}
}

func (m WalletsModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	id := m.items[idx].ID
	store := m.wallets

	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		if err := store.Delete(ctx, id); err != nil {
			return walletMutatedMsg{err: err}
		}

		return walletMutatedMsg{status: "Wallet deleted."}
	}
}
