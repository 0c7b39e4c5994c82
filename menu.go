package main

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// menuItem represents a single gate choice in the menu.
type menuItem struct {
	name   string
	gate   GateKind
	symbol string
}

// needsTarget reports whether the item starts target/control selection.
func (it menuItem) needsTarget() bool { return it.gate.NumControls() > 0 }

// needsParam reports whether the item starts rotation-angle input.
func (it menuItem) needsParam() bool { return it.gate.NeedsParam() }

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu defines the gate picker categories and items.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{name: "Hadamard", gate: GateH, symbol: "H"},
			{name: "Pauli-X (NOT)", gate: GateX, symbol: "X"},
			{name: "Pauli-Y", gate: GateY, symbol: "Y"},
			{name: "Pauli-Z", gate: GateZ, symbol: "Z"},
			{name: "Phase (S)", gate: GateS, symbol: "S"},
			{name: "T Gate", gate: GateT, symbol: "T"},
		},
	},
	{
		name: "Rotation",
		items: []menuItem{
			{name: "Rotate X", gate: GateRX, symbol: "RX"},
			{name: "Rotate Y", gate: GateRY, symbol: "RY"},
			{name: "Rotate Z", gate: GateRZ, symbol: "RZ"},
		},
	},
	{
		name: "Multi Qubit",
		items: []menuItem{
			{name: "CNOT", gate: GateCX, symbol: "●─⊕"},
			{name: "Controlled-Y", gate: GateCY, symbol: "●─Y"},
			{name: "Controlled-Z", gate: GateCZ, symbol: "●─●"},
			{name: "SWAP", gate: GateSwap, symbol: "×─×"},
			{name: "Toffoli (CCX)", gate: GateCCX, symbol: "●─●─⊕"},
		},
	},
	{
		name: "Measurement",
		items: []menuItem{
			{name: "Measure", gate: GateMeasure, symbol: "M"},
		},
	},
}

// allMenuItems returns every item across categories, in menu order.
func allMenuItems() []menuItem {
	var items []menuItem
	for _, cat := range gateMenu {
		items = append(items, cat.items...)
	}
	return items
}

// menuSource adapts the flattened item list for fuzzy matching on both the
// display name and the gate name.
type menuSource []menuItem

func (s menuSource) String(i int) string { return s[i].name + " " + s[i].gate.String() }
func (s menuSource) Len() int            { return len(s) }

// filterMenuItems returns items fuzzy-matching the query, best match first.
func filterMenuItems(query string) []menuItem {
	items := allMenuItems()
	if strings.TrimSpace(query) == "" {
		return items
	}
	matches := fuzzy.FindFrom(query, menuSource(items))
	filtered := make([]menuItem, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, items[match.Index])
	}
	return filtered
}

// visibleMenuItems returns the items the menu currently shows.
func (m Model) visibleMenuItems() []menuItem {
	if m.menuFiltering {
		return filterMenuItems(m.menuFilter)
	}
	return gateMenu[m.menuCat].items
}

// renderMenu renders the floating gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString("\n")

	if m.menuFiltering {
		fmt.Fprintf(&sb, "Search: %s_\n", m.menuFilter)
	} else {
		// Category tabs
		for i, cat := range gateMenu {
			name := " " + cat.name + " "
			if i == m.menuCat {
				sb.WriteString(activeGateStyle.Render(name))
			} else {
				sb.WriteString(dimStyle.Render(name))
			}
			if i < len(gateMenu)-1 {
				sb.WriteString(dimStyle.Render("│"))
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	items := m.visibleMenuItems()
	for i, item := range items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-16s", item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-16s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.needsTarget() {
			sb.WriteString(dimStyle.Render(" →controls"))
		}
		if item.needsParam() {
			sb.WriteString(dimStyle.Render(" (angle)"))
		}
		sb.WriteString("\n")
	}
	if len(items) == 0 {
		sb.WriteString(dimStyle.Render("   no matching gates\n"))
	}
	if m.menuFiltering {
		sb.WriteString(dimStyle.Render(" ↑↓ Select  ⏎ Ok  Esc ✕"))
	} else {
		sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  / Search  ? Info  ⏎ Ok  Esc ✕"))
	}

	return menuBorderStyle.Render(sb.String())
}

// renderGateInfo renders the gate reference overlay for the selected item.
func (m Model) renderGateInfo() string {
	items := m.visibleMenuItems()
	if m.menuItem >= len(items) {
		return ""
	}
	item := items[m.menuItem]
	info, ok := gateInfoTable[item.gate]
	if !ok {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s — %s", item.gate, item.name)))
	sb.WriteString("\n\n")
	sb.WriteString(info.description)
	sb.WriteString("\n\n")
	for _, ex := range info.examples {
		sb.WriteString(dimStyle.Render("  " + ex))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("Esc ✕"))
	return menuBorderStyle.Render(sb.String())
}
