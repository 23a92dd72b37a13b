package view

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"hamrotrack/internal/category"
	"hamrotrack/internal/money"
	"hamrotrack/internal/report"
	"hamrotrack/internal/resolve"
	"hamrotrack/internal/transaction"
	"hamrotrack/internal/wallet"
)

const recentCount = 5

type DashboardModel struct {
	CommonModel
	wallets      *wallet.Store
	categories   *category.Store
	transactions *transaction.Store

	walletIdx int
	loading   bool
	err       error
}

func NewDashboardModel(wallets *wallet.Store, categories *category.Store, transactions *transaction.Store) DashboardModel {
	return DashboardModel{
		wallets:      wallets,
		categories:   categories,
		transactions: transactions,
		walletIdx:    -1, // all wallets
		loading:      true,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	return "Esc: back | w: cycle wallet | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "w":
			return m.cycleWallet()
		}
	}

	return m, nil
}

func (m DashboardModel) cycleWallet() (tea.Model, tea.Cmd) {
	wallets := m.wallets.Items()
	if len(wallets) == 0 {
		return m, nil
	}

	m.walletIdx = (m.walletIdx + 1) % (len(wallets) + 1)

	if m.walletIdx == len(wallets) {
		m.wallets.Select(uuid.Nil) // wraps back to all wallets
		m.walletIdx = -1
	} else {
		m.wallets.Select(wallets[m.walletIdx].ID)
	}

	m.loading = true

	return m, m.loadTransactionsCmd()
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	wallets := m.wallets.Items()
	categories := m.categories.Items()
	txs := m.transactions.Items()

	currency := resolve.DefaultCurrency
	walletLabel := "All wallets"

	if w, ok := m.wallets.Selected(); ok {
		currency = w.Currency
		walletLabel = fmt.Sprintf("%s (%s)", w.Name, money.Format(w.Balance, w.Currency))
	}

	summary := report.Balance(txs, currency)

	var b strings.Builder

	b.WriteString(activeStyle(walletLabel) + "\n\n")
	b.WriteString(fmt.Sprintf("Income:  %s\n", summary.FormatIncome()))
	b.WriteString(fmt.Sprintf("Expense: %s\n", summary.FormatExpense()))
	b.WriteString(fmt.Sprintf("Net:     %s\n\n", summary.FormatNet()))

	b.WriteString("Expenses by category\n")

	slices := report.ExpenseByCategory(txs, categories)
	if len(slices) == 0 {
		b.WriteString(faint("  nothing yet") + "\n")
	}

	for _, s := range slices {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render("■")
		b.WriteString(fmt.Sprintf("  %s %-20s %s\n", swatch, s.Name, money.Format(s.Value, currency)))
	}

	b.WriteString("\nRecent transactions\n")

	recent := m.transactions.Recent(recentCount)
	if len(recent) == 0 {
		b.WriteString(faint("  nothing yet") + "\n")
	}

	for _, t := range recent {
		b.WriteString(fmt.Sprintf("  %s  %-10s  %-24s %s\n",
			FormatDate(t.Date),
			resolve.CategoryName(categories, t.CategoryID),
			t.Description,
			money.Format(t.Amount, resolve.WalletCurrency(wallets, t.WalletID)),
		))
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

// Messages

type dashboardLoadedMsg struct {
	err error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		if err := m.wallets.Fetch(ctx); err != nil {
			return dashboardLoadedMsg{err: err}
		}

		if err := m.categories.Fetch(ctx); err != nil {
			return dashboardLoadedMsg{err: err}
		}

		return dashboardLoadedMsg{err: m.fetchScopedTransactions(ctx)}
	}
}

func (m DashboardModel) loadTransactionsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		return dashboardLoadedMsg{err: m.fetchScopedTransactions(ctx)}
	}
}

func (m DashboardModel) fetchScopedTransactions(ctx context.Context) error {
	if w, ok := m.wallets.Selected(); ok {
		id := w.ID
		return m.transactions.Fetch(ctx, &id)
	}

	return m.transactions.Fetch(ctx, nil)
}
