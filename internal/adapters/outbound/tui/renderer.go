package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/tscoverage/tscoverage/internal/domain"
)

var (
	cyan    = lipgloss.Color("6")
	green   = lipgloss.Color("2")
	yellow  = lipgloss.Color("3")
	magenta = lipgloss.Color("5")
	red     = lipgloss.Color("1")
	faint   = lipgloss.Color("8")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(cyan)
	sectionStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(faint)

	tierColors = map[domain.Tier]lipgloss.Color{
		domain.TierExcellent: green,
		domain.TierGood:      yellow,
		domain.TierFair:      magenta,
		domain.TierLow:       red,
	}
)

const barWidth = 20

// RenderReport formats a summary as the terminal coverage report.
func RenderReport(summary domain.AnalysisSummary, targetDir string, extensions []string) string {
	return render(summary, targetDir, extensions, "")
}

// RenderResult formats a full analysis result, including the commit the
// analyzed tree was at when known.
func RenderResult(result *domain.AnalysisResult) string {
	return render(result.Summary, result.Config.TargetDirectory, result.Config.SupportedExtensions, result.CommitHash)
}

func render(summary domain.AnalysisSummary, targetDir string, extensions []string, commit string) string {
	var b strings.Builder

	renderHeader(&b, targetDir, extensions, commit)
	renderOverall(&b, summary)
	renderFrameworks(&b, summary)

	b.WriteString("\n")
	return b.String()
}

func renderHeader(b *strings.Builder, targetDir string, extensions []string, commit string) {
	title := "TypeScript File Analysis"
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n")
	fmt.Fprintf(b, "Directory: %s\n", targetDir)
	fmt.Fprintf(b, "File types: %s\n", strings.Join(extensions, ", "))
	if commit != "" {
		fmt.Fprintf(b, "Commit: %s\n", dimStyle.Render(shortHash(commit)))
	}
	b.WriteString("\n")
}

func renderOverall(b *strings.Builder, s domain.AnalysisSummary) {
	b.WriteString(sectionStyle.Render("Results:") + "\n")
	fmt.Fprintf(b, "- Total files: %d\n", s.TotalFiles)
	fmt.Fprintf(b, "- TypeScript files: %d (%s%%)\n", s.TypeScriptFiles, domain.Percentage(s.TypeScriptFiles, s.TotalFiles))
	fmt.Fprintf(b, "- JavaScript files: %d (%s%%)\n", s.JavaScriptFiles, domain.Percentage(s.JavaScriptFiles, s.TotalFiles))
	fmt.Fprintf(b, "- Total lines: %s\n", comma(s.TotalLines))

	if s.TotalLines > 0 {
		fmt.Fprintf(b, "- TypeScript lines: %s (%s%%)\n", comma(s.TypeScriptLines), domain.Percentage(s.TypeScriptLines, s.TotalLines))
		fmt.Fprintf(b, "- JavaScript lines: %s (%s%%)\n", comma(s.JavaScriptLines), domain.Percentage(s.JavaScriptLines, s.TotalLines))
	}

	b.WriteString(coverageLine("Overall Files Coverage", s.FilesCoverage()) + "\n")
	b.WriteString(coverageLine("Overall Lines Coverage", s.LinesCoverage()) + "\n")
}

func renderFrameworks(b *strings.Builder, s domain.AnalysisSummary) {
	if s.PlainJSTS.TotalFiles > 0 {
		b.WriteString("\n" + sectionStyle.Render("Plain JavaScript/TypeScript Files:") + "\n")
		renderBucket(b, "Plain JS/TS", s.PlainJSTS, s.FrameworkStats)
	}

	if s.Vue.TotalFiles == 0 && s.React.TotalFiles == 0 {
		return
	}

	b.WriteString("\n" + sectionStyle.Render("Framework Breakdown:") + "\n")
	if s.Vue.TotalFiles > 0 {
		b.WriteString("\n" + sectionStyle.Render("Vue.js Files:") + "\n")
		renderBucket(b, "Vue", s.Vue, s.FrameworkStats)
	}
	if s.React.TotalFiles > 0 {
		b.WriteString("\n" + sectionStyle.Render("React Files:") + "\n")
		renderBucket(b, "React", s.React, s.FrameworkStats)
	}
}

func renderBucket(b *strings.Builder, name string, st, overall domain.FrameworkStats) {
	fmt.Fprintf(b, "- Total %s files: %d (%s%% of all files)\n", name, st.TotalFiles, domain.Percentage(st.TotalFiles, overall.TotalFiles))
	fmt.Fprintf(b, "- %s with TypeScript: %d (%s%%)\n", name, st.TypeScriptFiles, domain.Percentage(st.TypeScriptFiles, st.TotalFiles))
	fmt.Fprintf(b, "- %s with JavaScript: %d (%s%%)\n", name, st.JavaScriptFiles, domain.Percentage(st.JavaScriptFiles, st.TotalFiles))
	fmt.Fprintf(b, "- Total %s lines: %s (%s%% of all lines)\n", name, comma(st.TotalLines), domain.Percentage(st.TotalLines, overall.TotalLines))

	if st.TotalLines > 0 {
		fmt.Fprintf(b, "- %s TypeScript lines: %s (%s%%)\n", name, comma(st.TypeScriptLines), domain.Percentage(st.TypeScriptLines, st.TotalLines))
		fmt.Fprintf(b, "- %s JavaScript lines: %s (%s%%)\n", name, comma(st.JavaScriptLines), domain.Percentage(st.JavaScriptLines, st.TotalLines))
	}

	b.WriteString(coverageLine(name+" Files Coverage", st.FilesCoverage()) + "\n")
	b.WriteString(coverageLine(name+" Lines Coverage", st.LinesCoverage()) + "\n")
}

// coverageLine renders "📊 <label>: <pct>%" with the percentage colored by
// tier, followed by a bar of the same color.
func coverageLine(label, pct string) string {
	color := tierColor(domain.TierForPercentage(pct))
	value := lipgloss.NewStyle().Bold(true).Foreground(color).Render(pct + "%")
	return labelStyle.Render("📊 "+label+":") + " " + value + "  " + coloredBar(pct, color, barWidth)
}

func coloredBar(pct string, color lipgloss.Color, width int) string {
	v := domain.ParsePercentage(pct)
	filled := max(0, min(int(math.Round(v*float64(width)/100)), width))
	empty := width - filled

	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func tierColor(t domain.Tier) lipgloss.Color {
	if c, ok := tierColors[t]; ok {
		return c
	}
	return red
}

func comma(n int) string {
	return humanize.Comma(int64(n))
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
