package tui

// Layout proportions for the three zones
const (
	SidebarWidth = 24

	// Root level: [Sidebar | Movies | Inspector]
	RootInspectorPercent = 40 // of the width right of the sidebar

	// Drilled in: [Parent | Active | Inspector]
	ParentColumnPercent    = 25
	InspectorColumnPercent = 35

	MinColumnWidth = 15

	// Vertical layout: pager line + status/help line
	ChromeHeight = 2
)

// columnLayout holds calculated zone widths for the View
type columnLayout struct {
	sidebarWidth   int // 0 when a parent column takes its place
	parentWidth    int // 0 at the root
	activeWidth    int
	inspectorWidth int // 0 when hidden
}

// calculateColumnLayout computes zone widths from stack depth and inspector visibility
func (m Model) calculateColumnLayout(availableWidth int) columnLayout {
	layout := columnLayout{}

	applyMin := func(width int) int {
		return max(width, MinColumnWidth)
	}

	if m.ColumnStack.Len() <= 1 {
		layout.sidebarWidth = SidebarWidth
		rest := availableWidth - layout.sidebarWidth
		if m.ShowInspector {
			layout.inspectorWidth = applyMin(rest * RootInspectorPercent / 100)
		}
		layout.activeWidth = applyMin(rest - layout.inspectorWidth)
		return layout
	}

	layout.parentWidth = applyMin(availableWidth * ParentColumnPercent / 100)
	if m.ShowInspector {
		layout.inspectorWidth = applyMin(availableWidth * InspectorColumnPercent / 100)
	}
	layout.activeWidth = applyMin(availableWidth - layout.parentWidth - layout.inspectorWidth)
	return layout
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := m.Height - ChromeHeight
	m.Omnibar.SetSize(m.Width, m.Height)

	layout := m.calculateColumnLayout(m.Width)

	if layout.sidebarWidth > 0 {
		m.Sidebar.SetSize(layout.sidebarWidth, contentHeight)
	}
	if parent := m.ColumnStack.Parent(); parent != nil {
		parent.SetSize(layout.parentWidth, contentHeight)
	}
	if top := m.ColumnStack.Top(); top != nil {
		top.SetSize(layout.activeWidth, contentHeight)
	}
	if layout.inspectorWidth > 0 {
		m.Inspector.SetSize(layout.inspectorWidth, contentHeight)
	}
}
