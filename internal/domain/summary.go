package domain

// Summarize aggregates records overall and per framework bucket.
// It is total over empty input.
func Summarize(records []FileRecord) AnalysisSummary {
	return AnalysisSummary{
		FrameworkStats: aggregate(records, func(FileRecord) bool { return true }),
		Vue:            aggregate(records, inFramework(FrameworkVue)),
		React:          aggregate(records, inFramework(FrameworkReact)),
		PlainJSTS:      aggregate(records, inFramework(FrameworkNone)),
	}
}

func inFramework(fw Framework) func(FileRecord) bool {
	return func(r FileRecord) bool { return r.Framework == fw }
}

func aggregate(records []FileRecord, keep func(FileRecord) bool) FrameworkStats {
	var s FrameworkStats
	for _, r := range records {
		if !keep(r) {
			continue
		}
		s.TotalFiles++
		s.TotalLines += r.TotalLines
		s.TypeScriptLines += r.TypeScriptLines
		s.JavaScriptLines += r.JavaScriptLines
		if r.IsTypeScriptFile {
			s.TypeScriptFiles++
		}
	}
	s.JavaScriptFiles = s.TotalFiles - s.TypeScriptFiles
	return s
}

// FilesCoverage is the TypeScript share of files, formatted like Percentage.
func (s FrameworkStats) FilesCoverage() string {
	return Percentage(s.TypeScriptFiles, s.TotalFiles)
}

// LinesCoverage is the TypeScript share of lines, formatted like Percentage.
func (s FrameworkStats) LinesCoverage() string {
	return Percentage(s.TypeScriptLines, s.TotalLines)
}
