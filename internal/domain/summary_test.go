package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tscoverage/tscoverage/internal/domain"
)

func sampleRecords() []domain.FileRecord {
	return []domain.FileRecord{
		domain.NewFileRecord("/p/a.ts", 10, true, 100),
		domain.NewFileRecord("/p/b.js", 20, false, 200),
		domain.NewFileRecord("/p/App.vue", 30, true, 300),
		domain.NewFileRecord("/p/Old.vue", 5, false, 50),
		domain.NewFileRecord("/p/Button.tsx", 8, true, 80),
		domain.NewFileRecord("/p/Legacy.jsx", 12, false, 120),
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := domain.Summarize(nil)
	assert.Equal(t, domain.AnalysisSummary{}, s)
	assert.Equal(t, "0.0", s.FilesCoverage())
	assert.Equal(t, "0.0", s.Vue.LinesCoverage())
}

func TestSummarize_Overall(t *testing.T) {
	s := domain.Summarize(sampleRecords())
	assert.Equal(t, 6, s.TotalFiles)
	assert.Equal(t, 85, s.TotalLines)
	assert.Equal(t, 3, s.TypeScriptFiles)
	assert.Equal(t, 3, s.JavaScriptFiles)
	assert.Equal(t, 48, s.TypeScriptLines)
	assert.Equal(t, 37, s.JavaScriptLines)
}

func TestSummarize_Buckets(t *testing.T) {
	s := domain.Summarize(sampleRecords())

	assert.Equal(t, domain.FrameworkStats{
		TotalFiles: 2, TotalLines: 30,
		TypeScriptFiles: 1, JavaScriptFiles: 1,
		TypeScriptLines: 10, JavaScriptLines: 20,
	}, s.PlainJSTS)

	assert.Equal(t, domain.FrameworkStats{
		TotalFiles: 2, TotalLines: 35,
		TypeScriptFiles: 1, JavaScriptFiles: 1,
		TypeScriptLines: 30, JavaScriptLines: 5,
	}, s.Vue)

	assert.Equal(t, domain.FrameworkStats{
		TotalFiles: 2, TotalLines: 20,
		TypeScriptFiles: 1, JavaScriptFiles: 1,
		TypeScriptLines: 8, JavaScriptLines: 12,
	}, s.React)
}

func TestSummarize_Invariants(t *testing.T) {
	s := domain.Summarize(sampleRecords())

	for _, st := range []domain.FrameworkStats{s.FrameworkStats, s.Vue, s.React, s.PlainJSTS} {
		assert.Equal(t, st.TotalFiles, st.TypeScriptFiles+st.JavaScriptFiles)
		assert.Equal(t, st.TotalLines, st.TypeScriptLines+st.JavaScriptLines)
	}
	assert.Equal(t, s.TotalFiles, s.Vue.TotalFiles+s.React.TotalFiles+s.PlainJSTS.TotalFiles)
	assert.Equal(t, s.TotalLines, s.Vue.TotalLines+s.React.TotalLines+s.PlainJSTS.TotalLines)
}

func TestSummarize_SingleTypeScriptFile(t *testing.T) {
	s := domain.Summarize([]domain.FileRecord{domain.NewFileRecord("/p/x.ts", 5, true, 42)})
	assert.Equal(t, 1, s.TotalFiles)
	assert.Equal(t, 1, s.TypeScriptFiles)
	assert.Equal(t, 5, s.TotalLines)
	assert.Equal(t, 5, s.TypeScriptLines)
	assert.Equal(t, 0, s.JavaScriptLines)
	assert.Equal(t, "100.0", s.FilesCoverage())
}

func TestSummarize_Deterministic(t *testing.T) {
	assert.Equal(t, domain.Summarize(sampleRecords()), domain.Summarize(sampleRecords()))
}
