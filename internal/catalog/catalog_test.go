package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	c := Default()
	require.NotNil(t, c)

	require.Len(t, c.Categories, 7)
	assert.Equal(t, "Programming Languages", c.Categories[0].Name)
	assert.Equal(t, "Soft Skills", c.Categories[6].Name)
	assert.Same(t, c, Default())
}

func TestKeywords_DeclarationOrderWithoutDuplicates(t *testing.T) {
	keywords := Default().Keywords()

	assert.Equal(t, "python", keywords[0])
	assert.Equal(t, "lua", keywords[17])
	assert.Equal(t, "html", keywords[18])

	seen := make(map[string]bool)
	for _, kw := range keywords {
		assert.False(t, seen[kw], "duplicate keyword %q", kw)
		seen[kw] = true
	}
	// swift and kotlin are listed again under Mobile Development
	assert.True(t, seen["swift"])
	assert.True(t, seen["xamarin"])
}

func TestCategoryOf(t *testing.T) {
	c := Default()

	tests := []struct {
		keyword string
		want    string
	}{
		{"python", "Programming Languages"},
		{"swift", "Programming Languages"},
		{"kotlin", "Programming Languages"},
		{"flutter", "Mobile Development"},
		{"docker", "Cloud & DevOps"},
		{"Pandas", "Data Science & ML"},
		{"communication", "Soft Skills"},
		{"data structures", GeneralCategory},
		{"", GeneralCategory},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.want, c.CategoryOf(tt.keyword))
		})
	}
}

func TestResolveRole(t *testing.T) {
	c := Default()

	tests := []struct {
		goal string
		want string
	}{
		{"Software Engineer", "software engineer"},
		{"Senior Data Scientist at a startup", "data scientist"},
		{"FRONTEND DEVELOPER", "frontend developer"},
		{"Machine Learning Engineer", "machine learning engineer"},
		{"devops engineer", "devops engineer"},
		{"Astronaut", DefaultRole},
		{"", DefaultRole},
	}

	for _, tt := range tests {
		t.Run(tt.goal, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ResolveRole(tt.goal).Keyword)
		})
	}
}

func TestResolveRole_FirstDeclaredMatchWins(t *testing.T) {
	role := Default().ResolveRole("web developer turned software engineer")
	assert.Equal(t, "software engineer", role.Keyword)
}

func TestRoleKeywords_ExcludesDefault(t *testing.T) {
	keywords := Default().RoleKeywords()
	assert.Len(t, keywords, 7)
	assert.NotContains(t, keywords, DefaultRole)
	assert.Equal(t, "software engineer", keywords[0])
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"malformed json", `{`, "failed to parse catalog"},
		{"no categories", `{"roles": [{"keyword": "default"}]}`, "no categories"},
		{"empty category", `{"categories": [{"name": "X", "keywords": []}], "roles": [{"keyword": "default"}]}`, "has no keywords"},
		{"missing default role", `{"categories": [{"name": "X", "keywords": ["go"]}], "roles": []}`, `no "default" role`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile_NormalizesCase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `{
		"categories": [{"name": "Languages", "keywords": ["Go", " Rust "]}],
		"roles": [
			{"keyword": "Gopher", "required": ["Go"], "nice_to_have": ["Rust"]},
			{"keyword": "default", "required": ["go"]}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "rust"}, c.Keywords())
	role := c.ResolveRole("Senior Gopher")
	assert.Equal(t, "gopher", role.Keyword)
	assert.Equal(t, []string{"go"}, role.Required)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalog file")
}
