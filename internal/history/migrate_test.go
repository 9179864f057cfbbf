package history

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janus-clew/clew/schema"
)

func TestMigrationsMatchBackendDialects(t *testing.T) {
	cases := []struct {
		dir     string
		backend schema.DatabaseBackend
		runKey  string
	}{
		{"sqlite", schema.SQLiteBackend, "INTEGER PRIMARY KEY AUTOINCREMENT"},
		{"mysql", schema.MySQLBackend, "BIGINT AUTO_INCREMENT PRIMARY KEY"},
		{"postgres", schema.PostgreSQLBackend, "BIGSERIAL PRIMARY KEY"},
	}

	for _, tc := range cases {
		t.Run(tc.dir, func(t *testing.T) {
			names, err := fs.Glob(migrationsFS, "migrations/"+tc.dir+"/*.sql")
			require.NoError(t, err)
			// Two versions, each with an up and a down.
			assert.Len(t, names, 4)

			runs, err := fs.ReadFile(migrationsFS, "migrations/"+tc.dir+"/000001_create_analysis_runs.up.sql")
			require.NoError(t, err)
			assert.Contains(t, string(runs), analysisRunsTable)
			// The run_id key must be auto-generated in the dialect's own
			// syntax, the same way the lazy table creation declares it.
			assert.Contains(t, string(runs), tc.runKey)
			assert.Contains(t, getCreateRunsQuery(tc.backend), tc.runKey)

			scores, err := fs.ReadFile(migrationsFS, "migrations/"+tc.dir+"/000002_create_project_scores.up.sql")
			require.NoError(t, err)
			assert.Contains(t, string(scores), projectScoresTable)
			assert.Contains(t, string(scores), "PRIMARY KEY (run_id, project_path)")
		})
	}
}
