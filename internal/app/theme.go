package app

import "charm.land/lipgloss/v2"

var (
	headerStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("63")).Padding(0, 1)
	headerLinkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("63"))
	titleStyle          = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	helpStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	loadingStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	itemStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236")).Bold(true)
	emptyStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	buttonStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Padding(0, 1)
	buttonDisabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("235")).Padding(0, 1)
	labelStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true)
	postFrameStyle      = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(lipgloss.Color("238"))
	postIDStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true)
)
