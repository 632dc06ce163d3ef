package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/lingqianapp/lingqian/pkg/i18n"
	"github.com/lingqianapp/lingqian/pkg/sign"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseOpts holds the command-line flags for the browse command.
type browseOpts struct {
	lang string
	data string
}

// newBrowseCmd creates the interactive sign browser command.
func newBrowseCmd() *cobra.Command {
	var opts browseOpts

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the sign set interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.lang, "lang", "l", "", "sign language: zh (default), en")
	cmd.Flags().StringVar(&opts.data, "data", "", "directory of sign data files")

	return cmd
}

func runBrowse(cmd *cobra.Command, opts *browseOpts) error {
	lang, err := i18n.Parse(opts.lang)
	if err != nil {
		return err
	}
	store, err := openStore(opts.data)
	if err != nil {
		return err
	}

	model := NewSignListModel(store.Signs(lang), lang)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}

	if m, ok := final.(SignListModel); ok && m.Selected != nil {
		printNewline()
		printSign(*m.Selected, lang)
	}
	return nil
}

// =============================================================================
// SignListModel - Interactive sign browsing
// =============================================================================

// SignListModel is the bubbletea model for browsing the sign set.
type SignListModel struct {
	Signs    []sign.Record
	Lang     i18n.Language
	Cursor   int
	Selected *sign.Record
	Height   int
	Offset   int
}

// NewSignListModel creates a sign list model over signs.
func NewSignListModel(signs []sign.Record, lang i18n.Language) SignListModel {
	return SignListModel{
		Signs:  signs,
		Lang:   lang,
		Height: 15,
	}
}

func (m SignListModel) Init() tea.Cmd {
	return nil
}

func (m SignListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Signs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			rec := m.Signs[m.Cursor]
			m.Selected = &rec
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m SignListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(i18n.Text(nil, m.Lang, i18n.KeyCardTitle)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Signs) {
		end = len(m.Signs)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Signs[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		summary := r.SummaryText
		if summary == "" {
			summary = i18n.Text(nil, m.Lang, i18n.KeyNoData)
		}

		rows = append(rows, []string{cursor, r.ID, r.LuckIndex, sign.Theme(r.Rating()), summary})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Sign", "Luck", "Theme", "Summary").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Signs) {
				return lipgloss.NewStyle()
			}

			base := lipgloss.NewStyle()
			if col == 2 {
				base = base.Foreground(colorYellow)
			}
			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Signs))))

	return b.String()
}
