package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/vankamp/pkg/graph"
	"github.com/matzehuels/vankamp/pkg/pipeline"
)

var (
	colorTeal  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	// StyleTitle renders headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)
	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
	// StyleValue renders data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	styleNumber      = lipgloss.NewStyle().Foreground(colorTeal)
	styleGood        = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarn        = lipgloss.NewStyle().Foreground(colorAmber)
	styleBad         = lipgloss.NewStyle().Foreground(colorRed)
	styleInfo        = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorTeal)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// uiOut receives all status output.
var uiOut io.Writer = os.Stdout

func printLine(parts ...string) {
	fmt.Fprintln(uiOut, strings.Join(parts, " "))
}

func printSuccess(format string, args ...any) {
	printLine(styleGood.Render(iconSuccess), fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printLine(styleBad.Render(iconError), fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printLine(styleWarn.Render(iconWarning), styleWarn.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printLine(styleInfo.Render(iconInfo), fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	printLine(" ", StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	printLine(" ", StyleDim.Render(iconArrow), StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	printLine(styleKey.Render(key), StyleValue.Render(value))
}

// printStats prints the drawing size on one line, tagged cached or fresh.
func printStats(st pipeline.Stats, cached bool) {
	count := func(n int, noun string) string {
		return styleNumber.Render(strconv.Itoa(n)) + StyleDim.Render(" "+noun)
	}
	parts := []string{count(st.VertexCount, "vertices"), count(st.EdgeCount, "edges")}
	if st.CellCount > 0 {
		parts = append(parts, count(st.CellCount, "cells"))
	}
	if cached {
		parts = append(parts, styleGood.Render("cached"))
	} else {
		parts = append(parts, styleInfo.Render("fresh"))
	}
	printLine(" ", strings.Join(parts, StyleDim.Render(" · ")))
}

// printRefineStats prints the cost change, move counts and crossings of a
// refinement. A cost that went down is shown in green, a remaining crossing
// in red.
func printRefineStats(st *graph.Stats) {
	cost := fmt.Sprintf("%.4f %s %.4f", st.InitialCost, iconArrow, st.FinalCost)
	if st.InitialCost > 0 {
		delta := 100 * (st.FinalCost - st.InitialCost) / st.InitialCost
		style := styleInfo
		if delta < 0 {
			style = styleGood
		}
		cost += " " + style.Render(fmt.Sprintf("(%+.1f%%)", delta))
	}
	printKeyValue("cost", cost)
	printKeyValue("moves", fmt.Sprintf("%d accepted, %d rejected, %d non-converged",
		st.Accepted, st.Rejected, st.NonConverged))
	if st.Skipped > 0 {
		printKeyValue("skipped", strconv.Itoa(st.Skipped))
	}
	crossings := strconv.Itoa(st.Crossings)
	if st.Crossings > 0 {
		crossings = styleBad.Render(crossings)
	}
	printKeyValue("crossings", crossings)
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	printLine(StyleDim.Render(description+":"), styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(uiOut)
}
