// Package browse is the interactive application browser: a scrollable list
// of tracked applications with a full-record detail view.
package browse

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/RichLyon/JobAppTracker/internal/model"
)

// Lines per application item in the list view (title + subtitle + blank separator).
const itemHeight = 3

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")) // bright blue

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("39"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	itemTitleStyle = lipgloss.NewStyle().
			Bold(true)

	itemSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedItemTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")). // bright white
				Background(lipgloss.Color("24"))  // dark blue bg

	selectedItemSubtitleStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("252")).
					Background(lipgloss.Color("24"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(16)

	detailValueStyle = lipgloss.NewStyle()

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15"))

	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	statusStyles = map[string]lipgloss.Style{
		model.StatusApplied:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		model.StatusInterviewing: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		model.StatusRejected:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		model.StatusOffer:        lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
		model.StatusAccepted:     lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
		model.StatusDeclined:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
)

type browseModel struct {
	apps     []model.Application
	viewport viewport.Model
	cursor   int
	width    int
	height   int
	ready    bool

	view           viewState
	detailApp      model.Application
	detailViewport viewport.Model
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		if m.view == viewDetail {
			m.detailViewport.Width = m.width - 4
			m.detailViewport.Height = m.height - 4
			m.detailViewport.SetContent(m.renderDetail())
		}
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetailView(msg)
		}
		return m.updateListView(msg)
	}

	return m, nil
}

func (m browseModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil
	case "enter":
		return m.openDetailView()
	}

	// Forward other keys (pgup/pgdn/home/end) to the viewport.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m browseModel) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	case "o":
		if m.detailApp.ApplicationURL != "" {
			openURL(m.detailApp.ApplicationURL)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *browseModel) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, max(len(m.apps)-1, 0))
	m.viewport.SetContent(renderApps(m.apps, m.cursor))
	m.ensureCursorVisible()
}

func (m *browseModel) ensureCursorVisible() {
	cursorTop := m.cursor * itemHeight
	cursorBottom := cursorTop + itemHeight - 1

	if cursorTop < m.viewport.YOffset {
		m.viewport.SetYOffset(cursorTop)
	} else if cursorBottom >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(cursorBottom - m.viewport.Height + 1)
	}
}

func (m browseModel) openDetailView() (tea.Model, tea.Cmd) {
	if len(m.apps) == 0 {
		return m, nil
	}

	m.view = viewDetail
	m.detailApp = m.apps[m.cursor]
	m.detailViewport = viewport.New(m.width-4, m.height-4)
	m.detailViewport.SetContent(m.renderDetail())
	return m, nil
}

func (m *browseModel) recalcLayout() {
	paneWidth := max(m.width-2, 20)

	// Header (1 line) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	paneHeight := max(m.height-4, 5)

	if !m.ready {
		m.viewport = viewport.New(paneWidth, paneHeight)
		m.ready = true
	} else {
		m.viewport.Width = paneWidth
		m.viewport.Height = paneHeight
	}

	m.viewport.SetContent(renderApps(m.apps, m.cursor))
}

func (m browseModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.view == viewDetail {
		return m.viewDetail()
	}

	return m.viewList()
}

func (m browseModel) viewList() string {
	header := headerStyle.Render(fmt.Sprintf(" Applications (%d)", len(m.apps)))
	pane := borderStyle.Width(m.viewport.Width).Render(m.viewport.View())

	statusText := fmt.Sprintf(" %d applications    ↑/↓ cursor  Enter detail  q quit", len(m.apps))
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return header + "\n" + pane + "\n" + statusBar
}

func (m browseModel) viewDetail() string {
	title := detailTitleStyle.Render(fmt.Sprintf(" %s at %s", m.detailApp.Position, m.detailApp.CompanyName))

	border := borderStyle.Width(m.width - 2)
	content := border.Render(m.detailViewport.View())

	statusText := " esc/backspace back  ↑/↓ scroll  q quit"
	if m.detailApp.ApplicationURL != "" {
		statusText = " o open URL " + statusText
	}
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return title + "\n" + content + "\n" + statusBar
}

func (m browseModel) renderDetail() string {
	app := m.detailApp
	var b strings.Builder

	addField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(detailValueStyle.Render(value))
		b.WriteByte('\n')
	}

	addField("Company", app.CompanyName)
	addField("Position", app.Position)
	addField("Date Applied", app.DateApplied)
	addField("Status", statusStyle(app.Status).Render(app.Status))

	b.WriteByte('\n')
	addField("Salary", app.SalaryInfo)
	addField("Contact", app.ContactInfo)
	addField("Resume", app.ResumePath)
	addField("Cover Letter", app.CoverLetterPath)
	addField("URL", app.ApplicationURL)

	wrapWidth := max(m.width-8, 20)
	if app.Notes != "" {
		b.WriteByte('\n')
		b.WriteString(divider("Notes", wrapWidth) + "\n")
		b.WriteString(bodyStyle.Render(wordWrap(app.Notes, wrapWidth)) + "\n")
	}
	if app.JobDescription != "" {
		b.WriteByte('\n')
		b.WriteString(divider("Job Description", wrapWidth) + "\n")
		b.WriteString(bodyStyle.Render(wordWrap(app.JobDescription, wrapWidth)) + "\n")
	}

	b.WriteByte('\n')
	addField("Created", app.CreatedAt)
	addField("Updated", app.UpdatedAt)

	return b.String()
}

func divider(label string, width int) string {
	fill := strings.Repeat("─", max(width-len(label), 3))
	return dividerStyle.Render(label + fill)
}

func statusStyle(status string) lipgloss.Style {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return detailValueStyle
}

func renderApps(apps []model.Application, cursor int) string {
	if len(apps) == 0 {
		return itemSubtitleStyle.Render(" No applications tracked yet.")
	}

	var b strings.Builder
	for i, app := range apps {
		title := fmt.Sprintf(" #%d %s at %s", app.ID, app.Position, app.CompanyName)
		subtitle := fmt.Sprintf("    %s · %s", app.DateApplied, app.Status)

		if i == cursor {
			b.WriteString(selectedItemTitleStyle.Render(title) + "\n")
			b.WriteString(selectedItemSubtitleStyle.Render(subtitle) + "\n")
		} else {
			b.WriteString(itemTitleStyle.Render(title) + "\n")
			b.WriteString(itemSubtitleStyle.Render(subtitle) + "\n")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func wordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openURL opens url in the default system browser, fire-and-forget.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

// Run launches the browser over apps, already sorted by the caller.
func Run(apps []model.Application) error {
	m := browseModel{apps: apps}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
