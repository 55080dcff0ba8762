package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/promptstudio/internal/keybinds"
	"github.com/studiowebux/promptstudio/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// View renders the TUI
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	switch m.mode {
	case ModeHelp:
		return m.renderHelp()
	case ModeCompare:
		return m.renderCompare()
	case ModeVariations, ModeDraftEdit:
		return m.renderVariations()
	default:
		return m.renderMain()
	}
}

// promptListHeight returns how many prompt rows fit in the left panel
func (m *Model) promptListHeight() int {
	h := m.height - 6
	if h < 1 {
		return 1
	}
	return h
}

// renderMain renders the library browser: prompt panel on the left, image
// panel on the right
func (m *Model) renderMain() string {
	sidebarWidth := m.width * 40 / 100
	if sidebarWidth < 30 {
		sidebarWidth = m.width / 2
	}
	mainWidth := m.width - sidebarWidth - 4

	sidebar := m.renderLeftPanel(sidebarWidth - 2)
	main := m.renderRightPanel(mainWidth - 2)

	sidebarBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGreen).
		Width(sidebarWidth).
		Height(m.height - 2).
		Render(sidebar)

	mainBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Width(mainWidth).
		Height(m.height - 2).
		Render(main)

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebarBox, mainBox)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

func (m *Model) renderLeftPanel(width int) string {
	tab := m.store.Navigation().GetLeftTab()

	var b strings.Builder
	b.WriteString(m.renderTabs(leftTabs, tab))
	b.WriteString("\n\n")

	switch tab {
	case "sessions":
		b.WriteString(m.renderProfiles(width))
	case "context":
		b.WriteString(m.renderContextPool(width))
	default:
		b.WriteString(m.renderPromptList(width))
	}

	return b.String()
}

func (m *Model) renderRightPanel(width int) string {
	tab := m.store.Navigation().GetRightTab()

	var b strings.Builder
	b.WriteString(m.renderTabs(rightTabs, tab))
	b.WriteString("\n\n")

	switch tab {
	case "drafts":
		b.WriteString(m.renderDraftList(width))
	case "info":
		b.WriteString(m.renderPromptInfo(width))
	default:
		b.WriteString(m.renderImagePanel(width))
	}

	return b.String()
}

func (m *Model) renderTabs(tabs []string, active string) string {
	parts := make([]string, len(tabs))
	for i, tab := range tabs {
		if tab == active {
			parts[i] = styleTitle.Render("[" + tab + "]")
		} else {
			parts[i] = styleSubtle.Render(" " + tab + " ")
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderPromptList(width int) string {
	if len(m.visible) == 0 {
		if m.store.Navigation().GetPromptFilter() != "" {
			return styleSubtle.Render("No prompts match the filter")
		}
		return styleSubtle.Render("Library is empty. Use 'promptstudio gen' or press v on a prompt.")
	}

	var b strings.Builder
	height := m.promptListHeight()

	end := m.promptOffset + height
	if end > len(m.visible) {
		end = len(m.visible)
	}

	for i := m.promptOffset; i < end; i++ {
		prompt := m.prompts[m.visible[i]]
		line := truncate(prompt.Title, width-6)
		if m.store.Selection().IsPromptSelected(prompt.ID) {
			line = "* " + line
		} else {
			line = "  " + line
		}

		if i == m.promptIndex {
			b.WriteString(styleSelected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.store.Navigation().GetPromptFilter() != "" {
		b.WriteString("\n")
		b.WriteString(styleSubtle.Render(fmt.Sprintf("filter: %s (%d/%d)",
			m.store.Navigation().GetPromptFilter(), len(m.visible), len(m.prompts))))
	}

	return b.String()
}

func (m *Model) renderProfiles(width int) string {
	var b strings.Builder
	active := m.sessionMgr.GetActiveProfile()

	for _, profile := range m.sessionMgr.GetProfiles() {
		line := truncate(profile.Name+"  "+profile.BackendURL, width-4)
		if profile.Name == active.Name {
			b.WriteString(styleSuccess.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) renderContextPool(width int) string {
	ids := m.store.Workflow().GetContextImageIDs()
	if len(ids) == 0 {
		return styleSubtle.Render("Context pool is empty. Press a on an image to add it.")
	}

	var b strings.Builder
	for i, id := range ids {
		b.WriteString(fmt.Sprintf("%2d. %s\n", i+1, truncate(id, width-6)))
	}
	return b.String()
}

func (m *Model) renderImagePanel(width int) string {
	if len(m.images) == 0 {
		return styleSubtle.Render("No images for this prompt yet")
	}

	idx := m.store.Navigation().GetImageIndex()
	if idx >= len(m.images) {
		idx = len(m.images) - 1
	}

	var b strings.Builder

	if m.store.Navigation().GetViewMode() == types.ViewGrid {
		for i, image := range m.images {
			marker := "  "
			if i == idx {
				marker = "> "
			}
			line := fmt.Sprintf("%s[%d] %s", marker, image.Seq, truncate(image.FilePath, width-12))
			if m.store.Selection().IsSelected(image.ID) {
				line += styleWarning.Render(" *")
			}
			if m.store.Workflow().HasContextImage(image.ID) {
				line += styleSuccess.Render(" ctx")
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		image := m.images[idx]
		b.WriteString(styleTitle.Render(fmt.Sprintf("Image %d/%d", idx+1, len(m.images))))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("file: %s\n", image.FilePath))
		if image.Seed != 0 {
			b.WriteString(fmt.Sprintf("seed: %d\n", image.Seed))
		}
		b.WriteString(fmt.Sprintf("created: %s\n", image.CreatedAt.Format("2006-01-02 15:04")))
		if m.store.Selection().IsSelected(image.ID) {
			b.WriteString(styleWarning.Render("selected\n"))
		}
		if m.store.Workflow().HasContextImage(image.ID) {
			b.WriteString(styleSuccess.Render("in context pool\n"))
		}
	}

	if count := m.store.Workflow().PendingCount(); count > 0 {
		b.WriteString("\n")
		b.WriteString(styleWarning.Render(fmt.Sprintf("%d generation(s) in flight...", count)))
	}

	return b.String()
}

func (m *Model) renderDraftList(width int) string {
	drafts := m.store.Workflow().GetDrafts()
	if len(drafts) == 0 {
		return styleSubtle.Render("No drafts. Press v on a prompt to propose variations.")
	}

	var b strings.Builder
	for i, draft := range drafts {
		marker := "  "
		if i == m.draftIndex {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", marker, styleSubtle.Render(string(draft.Type)), truncate(draft.Text, width-16)))
	}
	return b.String()
}

func (m *Model) renderPromptInfo(width int) string {
	prompt := m.selectedPrompt()
	if prompt == nil {
		return styleSubtle.Render("No prompt selected")
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render(prompt.Title))
	b.WriteString("\n\n")
	b.WriteString(wrap(prompt.Text, width))
	b.WriteString("\n")
	if len(prompt.Tags) > 0 {
		b.WriteString("\n" + styleSubtle.Render("tags: "+strings.Join(prompt.Tags, ", ")))
	}
	b.WriteString("\n" + styleSubtle.Render(fmt.Sprintf("images: %d", len(m.images))))
	return b.String()
}

// renderVariations renders the draft review screen of the generation workflow
func (m *Model) renderVariations() string {
	drafts := m.store.Workflow().GetDrafts()

	var b strings.Builder
	b.WriteString(styleTitle.Render("Variations: " + m.store.Workflow().GetTitle()))
	b.WriteString("\n")
	b.WriteString(styleSubtle.Render("base: " + truncate(m.store.Workflow().GetBasePrompt(), m.width-10)))
	b.WriteString("\n\n")

	for i, draft := range drafts {
		marker := "  "
		if i == m.draftIndex {
			marker = "> "
		}

		line := fmt.Sprintf("%s[%s] %s", marker, draft.Type, truncate(draft.Text, m.width-20))
		if i == m.draftIndex {
			b.WriteString(styleSelected.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")

		if m.store.Workflow().GetShowPreview() && i == m.draftIndex {
			b.WriteString(styleSubtle.Render("    mood: " + draft.Mood))
			b.WriteString("\n")
			if len(draft.RecommendedContextIDs) > 0 {
				b.WriteString(styleSubtle.Render("    context: " + strings.Join(draft.RecommendedContextIDs, ", ")))
				b.WriteString("\n")
				b.WriteString(styleSubtle.Render("    " + wrap(draft.ContextReasoning, m.width-8)))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	if m.mode == ModeDraftEdit {
		b.WriteString(styleWarning.Render("edit: ") + m.editInput + styleSelected.Render(" "))
		b.WriteString("\n")
		b.WriteString(styleSubtle.Render("enter save · esc cancel"))
	} else {
		b.WriteString(styleSubtle.Render("e edit · y duplicate · D remove · P preview · enter generate · esc discard"))
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return b.String()
}

// renderCompare renders the side-by-side compare view
func (m *Model) renderCompare() string {
	pair := m.store.Selection().GetComparePair()
	if pair == nil {
		return styleSubtle.Render("No compare pair set")
	}

	half := (m.width - 6) / 2
	left := m.renderCompareSide(pair[0], half)
	right := m.renderCompareSide(pair[1], half)

	leftBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(half + 2).
		Height(m.height - 3).
		Render(left)
	rightBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(half + 2).
		Height(m.height - 3).
		Render(right)

	body := lipgloss.JoinHorizontal(lipgloss.Top, leftBox, rightBox)
	footer := styleSubtle.Render("esc/q back")

	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (m *Model) renderCompareSide(id string, width int) string {
	for _, image := range m.images {
		if image.ID == id {
			var b strings.Builder
			b.WriteString(styleTitle.Render(fmt.Sprintf("Image %d", image.Seq)))
			b.WriteString("\n\n")
			b.WriteString(truncate(image.FilePath, width) + "\n")
			if image.Seed != 0 {
				b.WriteString(fmt.Sprintf("seed: %d\n", image.Seed))
			}
			return b.String()
		}
	}
	return styleSubtle.Render(truncate(id, width))
}

// renderHelp renders the scrollable help viewer
func (m *Model) renderHelp() string {
	title := styleTitle.Render("Keybindings")
	footer := styleSubtle.Render("esc/q close · j/k scroll")
	return lipgloss.JoinVertical(lipgloss.Left, title, m.helpView.View(), footer)
}

// renderHelpContent builds the help text from the live registry so custom
// overrides show up
func (m *Model) renderHelpContent() string {
	var b strings.Builder

	sections := []struct {
		title   string
		context keybinds.Context
	}{
		{"Library", keybinds.ContextLibrary},
		{"Variations", keybinds.ContextVariations},
		{"Compare", keybinds.ContextCompare},
	}

	for _, section := range sections {
		b.WriteString(styleTitle.Render(section.title))
		b.WriteString("\n")

		bindings := m.registry.ListBindings(section.context)
		sort.Slice(bindings, func(i, j int) bool { return bindings[i].Key < bindings[j].Key })
		for _, binding := range bindings {
			b.WriteString(fmt.Sprintf("  %-12s %s\n", binding.Key, binding.Action))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderStatusBar renders the one-line footer
func (m *Model) renderStatusBar() string {
	var parts []string

	if m.mode == ModeFilter {
		parts = append(parts, styleWarning.Render("/"+m.filterInput))
	}

	if target, deadline, ok := m.dispatcher.PendingDelete(); ok {
		remaining := time.Until(deadline).Round(time.Second)
		parts = append(parts, styleError.Render(fmt.Sprintf("delete %s? (%s)", truncate(target, 12), remaining)))
	}

	if mode := m.store.Selection().GetMode(); mode != types.SelectNone {
		parts = append(parts, styleWarning.Render(fmt.Sprintf("[%s: %d]", mode, m.store.Selection().SelectionCount())))
	}

	if m.errorMsg != "" {
		parts = append(parts, styleError.Render(truncate(m.errorMsg, 60)))
	} else if m.statusMsg != "" {
		parts = append(parts, m.statusMsg)
	}

	profile := m.sessionMgr.GetActiveProfile()
	parts = append(parts, styleSubtle.Render(profile.Name))

	return strings.Join(parts, "  ")
}

func truncate(s string, max int) string {
	if max <= 3 {
		return s
	}
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	var b strings.Builder
	lineLen := 0
	for _, word := range words {
		if lineLen > 0 && lineLen+len(word)+1 > width {
			b.WriteString("\n")
			lineLen = 0
		} else if lineLen > 0 {
			b.WriteString(" ")
			lineLen++
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}
