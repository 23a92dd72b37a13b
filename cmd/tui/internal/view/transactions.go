package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hamrotrack/internal/category"
	"hamrotrack/internal/export"
	"hamrotrack/internal/gateway"
	"hamrotrack/internal/money"
	"hamrotrack/internal/resolve"
	"hamrotrack/internal/transaction"
	"hamrotrack/internal/wallet"
)

type txState int

const (
	txStateBrowse txState = iota
	txStateAdd
	txStateEdit
)

type TransactionsModel struct {
	CommonModel
	transactions *transaction.Store
	wallets      *wallet.Store
	categories   *category.Store

	state   txState
	table   table.Model
	form    *huh.Form
	visible []transaction.Transaction

	// Filter cycling
	kindFilterIdx int
	dateFilterIdx int
	filter        transaction.Filter

	loading bool
	err     error
	status  string

	// Form field bindings
	formKind     string
	formAmount   string
	formDesc     string
	formDate     string
	formWallet   string
	formCategory string
	editID       uuid.UUID
}

func NewTransactionsModel(transactions *transaction.Store, wallets *wallet.Store, categories *category.Store) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Kind", Width: 8},
		{Title: "Amount", Width: 14},
		{Title: "Category", Width: 14},
		{Title: "Wallet", Width: 12},
		{Title: "Description", Width: 32},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
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

	return TransactionsModel{
		transactions: transactions,
		wallets:      wallets,
		categories:   categories,
		table:        t,
		loading:      true,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	if m.state != txStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | e: edit | x: delete | k: kind filter | d: date filter | c: export | r: refresh"
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case txLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.refreshTable()

		return m, nil

	case txMutatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		m.state = txStateBrowse
		m.form = nil
		m.table.Focus()
		m.refreshTable()

		return m, nil

	case txExportedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Export failed: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Exported to %s", msg.path)
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case txStateBrowse:
		return m.updateBrowse(msg)
	case txStateAdd, txStateEdit:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterAddMode()
		case "e":
			return m.enterEditMode()
		case "x":
			return m, m.deleteCmd()
		case "k":
			m.kindFilterIdx = (m.kindFilterIdx + 1) % 3
			m.applyFilter()
			m.refreshTable()

			return m, nil
		case "d":
			m.dateFilterIdx = (m.dateFilterIdx + 1) % 3
			m.applyFilter()
			m.refreshTable()

			return m, nil
		case "c":
			return m, m.exportCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransactionsModel) enterAddMode() (tea.Model, tea.Cmd) {
	wallets := m.wallets.Items()
	if len(wallets) == 0 {
		m.status = "Create a wallet first."
		return m, nil
	}

	m.formKind = string(transaction.KindExpense)
	m.formAmount = ""
	m.formDesc = ""
	m.formDate = time.Now().Format(time.DateOnly)
	m.formWallet = wallets[0].ID.String()
	m.formCategory = ""

	walletOpts := make([]huh.Option[string], 0, len(wallets))
	for _, w := range wallets {
		walletOpts = append(walletOpts, huh.NewOption(w.Name, w.ID.String()))
	}

	categoryOpts := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, c := range m.categories.Items() {
		categoryOpts = append(categoryOpts, huh.NewOption(c.Name, c.ID.String()))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("kind").
				Title("Kind").
				Options(
					huh.NewOption("Expense", string(transaction.KindExpense)),
					huh.NewOption("Income", string(transaction.KindIncome)),
				).
				Value(&m.formKind),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&m.formAmount).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("not a number")
					}
					if d.IsZero() {
						return fmt.Errorf("amount cannot be zero")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder(time.DateOnly).
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := gateway.ParseDate(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("wallet").
				Title("Wallet").
				Options(walletOpts...).
				Value(&m.formWallet),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(categoryOpts...).
				Value(&m.formCategory),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return m, nil
	}

	t := m.visible[idx]

	m.editID = t.ID
	m.formKind = string(t.Kind())
	m.formAmount = t.Magnitude().String()
	m.formDesc = t.Description
	m.formDate = FormatDate(t.Date)
	m.formCategory = ""

	if t.CategoryID != nil {
		m.formCategory = t.CategoryID.String()
	}

	categoryOpts := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, c := range m.categories.Items() {
		categoryOpts = append(categoryOpts, huh.NewOption(c.Name, c.ID.String()))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("kind").
				Title("Kind").
				Options(
					huh.NewOption("Expense", string(transaction.KindExpense)),
					huh.NewOption("Income", string(transaction.KindIncome)),
				).
				Value(&m.formKind),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.formAmount).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("not a number")
					}
					if d.IsZero() {
						return fmt.Errorf("amount cannot be zero")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := gateway.ParseDate(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(categoryOpts...).
				Value(&m.formCategory),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = txStateBrowse
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

	if m.state == txStateEdit {
		return m, m.updateCmd()
	}

	return m, m.createCmd()
}

func (m TransactionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	kindLabels := []string{"All", "Income", "Expense"}
	dateLabels := []string{"All Time", "This Month", "Last Month"}

	header := fmt.Sprintf(
		"Filter: [k] Kind: %s | [d] Date: %s",
		activeStyle(kindLabels[m.kindFilterIdx]),
		activeStyle(dateLabels[m.dateFilterIdx]),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state != txStateBrowse && m.form != nil {
		title := "Add Transaction"
		if m.state == txStateEdit {
			title = "Edit Transaction"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faint(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *TransactionsModel) applyFilter() {
	switch m.kindFilterIdx {
	case 1:
		k := transaction.KindIncome
		m.filter.Kind = &k
	case 2:
		k := transaction.KindExpense
		m.filter.Kind = &k
	default:
		m.filter.Kind = nil
	}

	now := time.Now()

	switch m.dateFilterIdx {
	case 1:
		s := gateway.Date{Time: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)}
		e := gateway.Date{Time: s.AddDate(0, 1, -1)}
		m.filter.StartDate = &s
		m.filter.EndDate = &e
	case 2:
		s := gateway.Date{Time: time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, time.UTC)}
		e := gateway.Date{Time: s.AddDate(0, 1, -1)}
		m.filter.StartDate = &s
		m.filter.EndDate = &e
	default:
		m.filter.StartDate = nil
		m.filter.EndDate = nil
	}
}

func (m *TransactionsModel) refreshTable() {
	m.visible = m.transactions.Filtered(m.filter)

	wallets := m.wallets.Items()
	categories := m.categories.Items()

	rows := make([]table.Row, 0, len(m.visible))
	for _, t := range m.visible {
		rows = append(rows, table.Row{
			FormatDate(t.Date),
			string(t.Kind()),
			money.Format(t.Amount, resolve.WalletCurrency(wallets, t.WalletID)),
			resolve.CategoryName(categories, t.CategoryID),
			resolve.WalletName(wallets, t.WalletID),
			t.Description,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type txLoadedMsg struct {
	err error
}

func (m TransactionsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		if err := m.wallets.Fetch(ctx); err != nil {
			return txLoadedMsg{err: err}
		}

		if err := m.categories.Fetch(ctx); err != nil {
			return txLoadedMsg{err: err}
		}

		return txLoadedMsg{err: m.transactions.Fetch(ctx, nil)}
	}
}

type txMutatedMsg struct {
	status string
	err    error
}

func (m TransactionsModel) createCmd() tea.Cmd {
	params := transaction.CreateParams{
		Kind:        transaction.Kind(m.formKind),
		Description: strings.TrimSpace(m.formDesc),
	}

	params.Amount, _ = decimal.NewFromString(strings.TrimSpace(m.formAmount))
	params.Date, _ = gateway.ParseDate(strings.TrimSpace(m.formDate))

	if id, err := uuid.Parse(m.formWallet); err == nil {
		params.WalletID = id
	}

	if id, err := uuid.Parse(m.formCategory); err == nil {
		params.CategoryID = &id
	}

	store := m.transactions

	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		if err := store.Create(ctx, params); err != nil {
			return txMutatedMsg{err: err}
		}

		return txMutatedMsg{status: "Transaction added."}
	}
}

func (m TransactionsModel) updateCmd() tea.Cmd {
	desc := strings.TrimSpace(m.formDesc)
	patch := transaction.Patch{Description: &desc}

	if d, err := gateway.ParseDate(strings.TrimSpace(m.formDate)); err == nil {
		patch.Date = &d
	}

	if id, err := uuid.Parse(m.formCategory); err == nil {
		patch.CategoryID = &id
	}

	if mag, err := decimal.NewFromString(strings.TrimSpace(m.formAmount)); err == nil {
		patch.SetAmount(transaction.Kind(m.formKind), mag)
	}

	id := m.editID
	store := m.transactions

	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		if err := store.Update(ctx, id, patch); err != nil {
			return txMutatedMsg{err: err}
		}

		return txMutatedMsg{status: "Transaction updated."}
	}
}

func (m TransactionsModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return nil
	}

	id := m.visible[idx].ID
	store := m.transactions

	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		if err := store.Delete(ctx, id); err != nil {
			return txMutatedMsg{err: err}
		}

		return txMutatedMsg{status: "Transaction deleted."}
	}
}

type txExportedMsg struct {
	path string
	err  error
}

func (m TransactionsModel) exportCmd() tea.Cmd {
	visible := m.visible
	categories := m.categories.Items()
	wallets := m.wallets.Items()

	return func() tea.Msg {
		path, err := export.WriteFile(".", visible, categories, wallets)
		return txExportedMsg{path: path, err: err}
	}
}
