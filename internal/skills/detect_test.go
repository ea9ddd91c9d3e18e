package skills

import (
	"testing"

	"github.com/jonathan/hiresense/internal/catalog"
	"github.com/stretchr/testify/assert"
)

func TestCombinedText(t *testing.T) {
	assert.Equal(t, "python dev sql, git data scientist", CombinedText("Python Dev", "SQL, Git", "Data Scientist"))
	assert.Equal(t, "  ", CombinedText("", "", ""))
}

func TestDetect_EmptyText(t *testing.T) {
	det := Detect("", catalog.Default())
	assert.Zero(t, det.Len())
	assert.False(t, det.Has("python"))
}

func TestDetect_CountsOccurrences(t *testing.T) {
	det := Detect("python and python and python, docker docker", catalog.Default())

	assert.Equal(t, 3, det.Counts["python"])
	assert.Equal(t, 2, det.Counts["docker"])
	assert.True(t, det.Has("Docker"))
	assert.False(t, det.Has("java"))
}

func TestDetect_SubstringSemantics(t *testing.T) {
	// "r" is a catalog keyword and matches inside longer words
	det := Detect("car", catalog.Default())
	assert.True(t, det.Has("r"))
	assert.Equal(t, 1, det.Counts["r"])

	// every occurrence counts
	det = Detect("career", catalog.Default())
	assert.Equal(t, 2, det.Counts["r"])

	// "java" is found inside "javascript"
	det = Detect("javascript", catalog.Default())
	assert.True(t, det.Has("java"))
	assert.True(t, det.Has("javascript"))
}

func TestDetect_CatalogOrder(t *testing.T) {
	det := Detect("sql then docker then python", catalog.Default())

	// "r" comes from "docker"
	assert.Equal(t, []string{"python", "r", "docker", "sql"}, det.Keywords)
}

func TestDetect_SharedKeywordsReportedOnce(t *testing.T) {
	det := Detect("swift", catalog.Default())
	assert.Equal(t, []string{"swift"}, det.Keywords)
}
