package main

import "github.com/charmbracelet/lipgloss"

var slotColors = map[SlotType]string{
	SlotViews:           "#9BE39B",
	SlotActors:          "#FFF59D",
	SlotCommands:        "#7FB8F5",
	SlotAggregates:      "#F5E26B",
	SlotEvents:          "#FFB347",
	SlotExternalSystems: "#F7A8C8",
	SlotPolicies:        "#C9A8E8",
}

var domainColors = map[DomainType]string{
	DomainCore:       "#8E44AD",
	DomainSupporting: "#2E86C1",
	DomainGeneric:    "#7F8C8D",
}

const (
	contextColor    = "#16A085"
	flowColor       = "#BDC3C7"
	hotspotColor    = "#E74C3C"
	connectionColor = "#ECF0F1"
	selectedColor   = "#F1C40F"
	pendingColor    = "#1ABC9C"
	previewColor    = "#95A5A6"
)

var (
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ECF0F1")).Background(lipgloss.Color("#34495E"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#C0392B"))
	bufferBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#BDC3C7"))
	activeBufStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(selectedColor))
)
