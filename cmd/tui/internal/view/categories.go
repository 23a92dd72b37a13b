package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"hamrotrack/internal/category"
)

type categoryState int

const (
	categoryStateBrowse categoryState = iota
	categoryStateAdd
	categoryStateEdit
)

type CategoriesModel struct {
	CommonModel
	categories *category.Store

	state categoryState
	table table.Model
	form  *huh.Form
	items []category.Category

	loading bool
	err     error
	status  string

	// Form field bindings
	formName  string
	formColor string
	editID    uuid.UUID
}

func NewCategoriesModel(categories *category.Store) CategoriesModel {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Color", Width: 10},
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

	return CategoriesModel{
		categories: categories,
		table:      t,
		loading:    true,
	}
}

func (m CategoriesModel) Title() string { return "Categories" }

func (m CategoriesModel) ShortHelp() string {
	if m.state != categoryStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | e: edit | x: delete | r: refresh"
}

func (m CategoriesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case categoryLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.refreshTable()

		return m, nil

	case categoryMutatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		m.state = categoryStateBrowse
		m.form = nil
		m.table.Focus()
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case categoryStateBrowse:
		return m.updateBrowse(msg)
	case categoryStateAdd, categoryStateEdit:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m CategoriesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CategoriesModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formColor = ""

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
				Key("color").
				Title("Color (optional)").
				Placeholder(category.FallbackColor).
				Value(&m.formColor),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = categoryStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m CategoriesModel) enterEditMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return m, nil
	}

	m.editID = m.items[idx].ID
	m.formName = m.items[idx].Name
	m.formColor = m.items[idx].Color

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
				Key("color").
				Title("Color").
				Value(&m.formColor),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = categoryStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m CategoriesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = categoryStateBrowse
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

	if m.state == categoryStateEdit {
		return m, m.updateCmd()
	}

	return m, m.createCmd()
}

func (m CategoriesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading categories...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.state != categoryStateBrowse && m.form != nil {
		title := "Add Category"
		if m.state == categoryStateEdit {
			title = "Edit Category"
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

func (m *CategoriesModel) refreshTable() {
	m.items = m.categories.Items()

	rows := make([]table.Row, 0, len(m.items))
	for _, c := range m.items {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("■ " + c.Color)
		rows = append(rows, table.Row{c.Name, swatch})
	}

	m.table.SetRows(rows)
}

// Messages

type categoryLoadedMsg struct {
	err error
}

func (m CategoriesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		return categoryLoadedMsg{err: m.categories.Fetch(ctx)}
	}
}

type categoryMutatedMsg struct {
	status string
	err    error
}

func (m CategoriesModel) createCmd() tea.Cmd {
	params := category.CreateParams{
		Name:  strings.TrimSpace(m.formName),
		Color: strings.TrimSpace(m.formColor),
	}

	store := m.categories

	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		if err := store.Create(ctx, params); err != nil {
			return categoryMutatedMsg{err: err}
		}

		return categoryMutatedMsg{status: "Category created."}
	}
}

func (m CategoriesModel) updateCmd() tea.Cmd {
	name := strings.TrimSpace(m.formName)
	color := strings.TrimSpace(m.formColor)

	patch := category.Patch{Name: &name}
	if color != "" {
		patch.Color = &color
	}

	id := m.editID
	store := m.categories

	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		if err := store.Update(ctx, id, patch); err != nil {
			return categoryMutatedMsg{err: err}
		}

		return categoryMutatedMsg{status: "Category updated."}
	}
}

func (m CategoriesModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	id := m.items[idx].ID
	store := m.categories

	return func() tea.Msg {
		ctx, cancel := GwCtx()
		defer cancel()

		if err := store.Delete(ctx, id); err != nil {
			return categoryMutatedMsg{err: err}
		}

		return categoryMutatedMsg{status: "Category deleted."}
	}
}
