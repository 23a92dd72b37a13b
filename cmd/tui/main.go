package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"hamrotrack/cmd/tui/internal/view"
	"hamrotrack/internal/category"
	"hamrotrack/internal/config"
	"hamrotrack/internal/episode"
	"hamrotrack/internal/gateway"
	"hamrotrack/internal/notify"
	"hamrotrack/internal/show"
	"hamrotrack/internal/transaction"
	"hamrotrack/internal/wallet"
)

type model struct {
	wallets      *wallet.Store
	categories   *category.Store
	transactions *transaction.Store
	shows        *show.Store
	episodes     *episode.Store

	currentView View

	dashboardView    view.DashboardModel
	transactionsView view.TransactionsModel
	walletsView      view.WalletsModel
	categoriesView   view.CategoriesModel
	showsView        view.ShowsModel
	importView       view.ImportModel
}

type View int

const (
	ViewMenu         View = 0
	ViewDashboard    View = 1
	ViewTransactions View = 2
	ViewWallets      View = 3
	ViewCategories   View = 4
	ViewShows        View = 5
	ViewImport       View = 6
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	gw := gateway.NewREST(cfg.Gateway.URL, cfg.Gateway.AnonKey, cfg.Gateway.AccessToken, cfg.Gateway.Timeout)
	notifier := notify.Log{}

	wallets := wallet.NewStore(gw, notifier)
	categories := category.NewStore(gw, notifier)
	transactions := transaction.NewStore(gw, notifier)
	shows := show.NewStore(gw)
	episodes := episode.NewStore(gw, notifier)

	return model{
		wallets:      wallets,
		categories:   categories,
		transactions: transactions,
		shows:        shows,
		episodes:     episodes,
		currentView:  ViewMenu,

		dashboardView:    view.NewDashboardModel(wallets, categories, transactions),
		transactionsView: view.NewTransactionsModel(transactions, wallets, categories),
		walletsView:      view.NewWalletsModel(wallets),
		categoriesView:   view.NewCategoriesModel(categories),
		showsView:        view.NewShowsModel(shows, episodes),
		importView:       view.NewImportModel(transactions, wallets),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.wallets, m.categories, m.transactions)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.transactions, m.wallets, m.categories)

				return m, m.transactionsView.Init()
			case "3":
				m.currentView = ViewWallets
				m.walletsView = view.NewWalletsModel(m.wallets)

				return m, m.walletsView.Init()
			case "4":
				m.currentView = ViewCategories
				m.categoriesView = view.NewCategoriesModel(m.categories)

				return m, m.categoriesView.Init()
			case "5":
				m.currentView = ViewShows
				m.showsView = view.NewShowsModel(m.shows, m.episodes)

				return m, m.showsView.Init()
			case "6":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.transactions, m.wallets)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewWallets:
		var newModel tea.Model
		newModel, cmd = m.walletsView.Update(msg)
		m.walletsView = newModel.(view.WalletsModel)
	case ViewCategories:
		var newModel tea.Model
		newModel, cmd = m.categoriesView.Update(msg)
		m.categoriesView = newModel.(view.CategoriesModel)
	case ViewShows:
		var newModel tea.Model
		newModel, cmd = m.showsView.Update(msg)
		m.showsView = newModel.(view.ShowsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"hamrotrack\n\n" +
				"1. Dashboard\n" +
				"2. Transactions\n" +
				"3. Wallets\n" +
				"4. Categories\n" +
				"5. Shows\n" +
				"6. Import Statement\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewWallets:
		return m.walletsView.View()
	case ViewCategories:
		return m.categoriesView.View()
	case ViewShows:
		return m.showsView.View()
	case ViewImport:
		return m.importView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
