// Integration tests running against a real SurrealDB container.
package graph

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/khajiev13/cv-agent-fiilterer/internal/db"
	"github.com/khajiev13/cv-agent-fiilterer/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealdb.go"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testEngine    *Engine
	testDB        *db.Client
	testContainer testcontainers.Container
)

// TestMain starts one SurrealDB container shared by all tests here.
func TestMain(m *testing.M) {
	flagShort := false
	for _, arg := range os.Args[1:] {
		if arg == "-test.short" || arg == "-test.short=true" {
			flagShort = true
		}
	}
	if flagShort {
		os.Exit(m.Run())
	}

	// Disable ryuk (cleanup container) as it can cause issues in some environments
	os.Setenv("TESTCONTAINERS_RYUK_DISABLED", "true")

	ctx := context.Background()

	var err error
	testContainer, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "surrealdb/surrealdb:v3.0.0-beta.1",
			ExposedPorts: []string{"8000/tcp"},
			Cmd:          []string{"start", "--log", "info", "--user", "root", "--pass", "root"},
			WaitingFor:   wait.ForLog("Started web server").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		log.Fatalf("Failed to start SurrealDB container: %v", err)
	}

	host, err := testContainer.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to get container host: %v", err)
	}
	// Workaround: testcontainers may return "null" as host in some environments
	if host == "" || host == "null" {
		host = "localhost"
	}
	mappedPort, err := testContainer.MappedPort(ctx, "8000")
	if err != nil {
		log.Fatalf("Failed to get mapped port: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	testDB, err = db.NewClient(ctx, db.Config{
		URL:       fmt.Sprintf("ws://%s:%s/rpc", host, mappedPort.Port()),
		Namespace: "test",
		Database:  "test",
		Username:  "root",
		Password:  "root",
		AuthLevel: "root",
	}, logger)
	if err != nil {
		log.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := testDB.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	testEngine = NewEngine(testDB, logger)

	code := m.Run()

	_ = testDB.Close(ctx)
	_ = testContainer.Terminate(ctx)

	os.Exit(code)
}

func skipShort(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
}

func wipe(t *testing.T, ctx context.Context) {
	t.Helper()
	require.NoError(t, testDB.WipeData(ctx))
}

func countRows(t *testing.T, ctx context.Context, query string, vars map[string]any) int {
	t.Helper()
	results, err := surrealdb.Query[[]struct {
		C int `json:"c"`
	}](ctx, testDB.DB(), query, vars)
	require.NoError(t, err)
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return 0
	}
	return (*results)[0].Result[0].C
}

func sampleCandidate(id string) models.CandidateRecord {
	return models.CandidateRecord{
		ID:          id,
		Name:        "Jane Doe",
		JobTitle:    "Backend Engineer",
		Description: "Backend engineer with distributed-systems background",
		CVFileName:  id + ".pdf",
		Skills: []models.SkillEntry{
			{Name: "Go", AlternativeNames: []string{"Golang"}, Level: models.LevelExpert, Years: 6},
			{Name: "PostgreSQL", Level: models.LevelIntermediate, Years: 3},
		},
		Experiences: []models.ExperienceEntry{
			{JobTitle: "Backend Engineer", CompanyName: "Acme Corp", Years: 3, Description: "Billing pipeline"},
		},
		Education: []models.EducationEntry{
			{University: "TU Munich", Degree: models.DegreeMaster, FieldOfStudy: "Computer Science", GraduationYear: 2019},
		},
		LocationCity: "Berlin",
	}
}

func TestUpsertCandidateIdempotent(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	wipe(t, ctx)

	rec := sampleCandidate("idem_test_pdf")
	require.NoError(t, testEngine.UpsertCandidate(ctx, rec))

	firstSkills := countRows(t, ctx, `SELECT count() AS c FROM has_skill GROUP ALL`, nil)
	firstNodes := countRows(t, ctx, `SELECT count() AS c FROM skill GROUP ALL`, nil)
	require.Greater(t, firstSkills, 0)

	// Re-processing the same document must not duplicate anything.
	require.NoError(t, testEngine.UpsertCandidate(ctx, rec))

	assert.Equal(t, 1, countRows(t, ctx, `SELECT count() AS c FROM candidate GROUP ALL`, nil))
	assert.Equal(t, firstSkills, countRows(t, ctx, `SELECT count() AS c FROM has_skill GROUP ALL`, nil))
	assert.Equal(t, firstNodes, countRows(t, ctx, `SELECT count() AS c FROM skill GROUP ALL`, nil))
	assert.Equal(t, 1, countRows(t, ctx, `SELECT count() AS c FROM has_experience GROUP ALL`, nil))
	assert.Equal(t, 1, countRows(t, ctx, `SELECT count() AS c FROM worked_at GROUP ALL`, nil))
	assert.Equal(t, 1, countRows(t, ctx, `SELECT count() AS c FROM has_education GROUP ALL`, nil))
	assert.Equal(t, 1, countRows(t, ctx, `SELECT count() AS c FROM lives_in GROUP ALL`, nil))
}

func TestUpsertCandidateSharesNodes(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	wipe(t, ctx)

	a := sampleCandidate("share_a_pdf")
	b := sampleCandidate("share_b_pdf")
	b.Name = "John Roe"

	require.NoError(t, testEngine.UpsertCandidate(ctx, a))
	require.NoError(t, testEngine.UpsertCandidate(ctx, b))

	// Both candidates point at the same canonical skill node.
	assert.Equal(t, 1, countRows(t, ctx,
		`SELECT count() AS c FROM skill WHERE id = skill:go GROUP ALL`, nil))
	assert.Equal(t, 2, countRows(t, ctx,
		`SELECT count() AS c FROM has_skill WHERE out = skill:go GROUP ALL`, nil))
	assert.Equal(t, 1, countRows(t, ctx,
		`SELECT count() AS c FROM company GROUP ALL`, nil))
}

func TestUpsertCandidateReplacesEdges(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	wipe(t, ctx)

	rec := sampleCandidate("replace_test_pdf")
	require.NoError(t, testEngine.UpsertCandidate(ctx, rec))

	// The revised extraction drops PostgreSQL and adds Rust.
	rec.Skills = []models.SkillEntry{
		{Name: "Go", Level: models.LevelExpert, Years: 7},
		{Name: "Rust", Level: models.LevelBeginner, Years: 1},
	}
	require.NoError(t, testEngine.UpsertCandidate(ctx, rec))

	assert.Equal(t, 0, countRows(t, ctx,
		`SELECT count() AS c FROM has_skill WHERE out = skill:postgresql GROUP ALL`, nil),
		"stale edge must be gone")
	assert.Equal(t, 1, countRows(t, ctx,
		`SELECT count() AS c FROM has_skill WHERE out = skill:rust GROUP ALL`, nil))
	// The orphaned canonical node survives; other candidates may use it.
	assert.Equal(t, 1, countRows(t, ctx,
		`SELECT count() AS c FROM skill WHERE id = skill:postgresql GROUP ALL`, nil))
}

func TestAlternateNameFanOut(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	wipe(t, ctx)

	rec := sampleCandidate("alt_test_pdf")
	require.NoError(t, testEngine.UpsertCandidate(ctx, rec))

	assert.Equal(t, 1, countRows(t, ctx,
		`SELECT count() AS c FROM alternative_of WHERE in = skill:golang AND out = skill:go GROUP ALL`, nil))
	// The alternate exists as a first-class node.
	assert.Equal(t, 1, countRows(t, ctx,
		`SELECT count() AS c FROM skill WHERE id = skill:golang GROUP ALL`, nil))
}

func TestDeleteCandidatePreservesSharedNodes(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	wipe(t, ctx)

	rec := sampleCandidate("del_test_pdf")
	rec.CVSourcePath = "/tmp/del_test.pdf"
	require.NoError(t, testEngine.UpsertCandidate(ctx, rec))

	path, err := testEngine.DeleteCandidate(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/del_test.pdf", path)

	assert.Equal(t, 0, countRows(t, ctx, `SELECT count() AS c FROM candidate GROUP ALL`, nil))
	assert.Equal(t, 0, countRows(t, ctx, `SELECT count() AS c FROM has_skill GROUP ALL`, nil),
		"relation rows cascade with the record")
	assert.Greater(t, countRows(t, ctx, `SELECT count() AS c FROM skill GROUP ALL`, nil), 0,
		"canonical nodes survive")

	_, err = testEngine.DeleteCandidate(ctx, rec.ID)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestRegisterUploadLifecycle(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	wipe(t, ctx)

	storageName := "jane_cv_1a2b3c4d.pdf"
	require.NoError(t, testEngine.RegisterUpload(ctx, storageName, "Jane CV.pdf", "/uploads/"+storageName))

	pending, err := testEngine.ListUnextracted(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.False(t, pending[0].Extracted)

	rec := sampleCandidate(models.CandidateID(storageName))
	require.NoError(t, testEngine.UpsertCandidate(ctx, rec))

	pending, err = testEngine.ListUnextracted(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending, "processing flips the extracted flag")

	row, err := testEngine.GetCandidate(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.True(t, row.Extracted)
	assert.Equal(t, "Jane Doe", row.Name)
}

func TestUpsertRoleLifecycle(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	wipe(t, ctx)

	rec := models.RoleRecord{
		ID:                "backend_engineer_berlin",
		JobTitle:          "Backend Engineer",
		AlternativeTitles: []string{"Server Engineer"},
		DegreeRequirement: models.DegreeBachelor,
		RequiredSkills: []models.SkillRequirement{
			{Name: "Go", Importance: models.ImportanceRequired, MinimumYears: 3},
			{Name: "Kubernetes", Importance: models.ImportanceNiceToHave},
		},
		FieldsOfStudy: []models.FieldRequirement{
			{Name: "Computer Science", Importance: models.ImportancePreferred},
		},
		Keywords:     []string{"backend"},
		LocationCity: "Berlin",
	}

	created, err := testEngine.UpsertRole(ctx, rec)
	require.NoError(t, err)
	assert.True(t, created)

	assert.Equal(t, 2, countRows(t, ctx, `SELECT count() AS c FROM requires_skill GROUP ALL`, nil))

	// Edit: Kubernetes requirement dropped, Go importance relaxed.
	rec.RequiredSkills = []models.SkillRequirement{
		{Name: "Go", Importance: models.ImportancePreferred, MinimumYears: 2},
	}
	created, err = testEngine.UpsertRole(ctx, rec)
	require.NoError(t, err)
	assert.False(t, created, "second upsert updates in place")

	assert.Equal(t, 1, countRows(t, ctx, `SELECT count() AS c FROM role GROUP ALL`, nil))
	assert.Equal(t, 1, countRows(t, ctx, `SELECT count() AS c FROM requires_skill GROUP ALL`, nil))
	assert.Equal(t, 0, countRows(t, ctx,
		`SELECT count() AS c FROM requires_skill WHERE out = skill:kubernetes GROUP ALL`, nil))

	roles, err := testEngine.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "Backend Engineer", roles[0].JobTitle)
}

func TestDeleteRole(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	wipe(t, ctx)

	rec := models.RoleRecord{
		ID:       "to_delete",
		JobTitle: "Data Engineer",
		RequiredSkills: []models.SkillRequirement{
			{Name: "Python", Importance: models.ImportanceRequired},
		},
	}
	_, err := testEngine.UpsertRole(ctx, rec)
	require.NoError(t, err)

	deleted, err := testEngine.DeleteRole(ctx, "to_delete")
	require.NoError(t, err)
	assert.True(t, deleted)

	assert.Equal(t, 0, countRows(t, ctx, `SELECT count() AS c FROM role GROUP ALL`, nil))
	assert.Equal(t, 0, countRows(t, ctx, `SELECT count() AS c FROM requires_skill GROUP ALL`, nil))
	assert.Equal(t, 1, countRows(t, ctx, `SELECT count() AS c FROM skill GROUP ALL`, nil),
		"shared skill node survives role deletion")

	deleted, err = testEngine.DeleteRole(ctx, "to_delete")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteAllCandidates(t *testing.T) {
	skipShort(t)
	ctx := context.Background()
	wipe(t, ctx)

	a := sampleCandidate("bulk_a_pdf")
	a.CVSourcePath = "/uploads/a.pdf"
	b := sampleCandidate("bulk_b_pdf")
	b.CVSourcePath = "/uploads/b.pdf"
	require.NoError(t, testEngine.UpsertCandidate(ctx, a))
	require.NoError(t, testEngine.UpsertCandidate(ctx, b))

	paths, err := testEngine.DeleteAllCandidates(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/uploads/a.pdf", "/uploads/b.pdf"}, paths)
	assert.Equal(t, 0, countRows(t, ctx, `SELECT count() AS c FROM candidate GROUP ALL`, nil))
}
