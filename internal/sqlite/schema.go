package sqlite

// Schema DDL for the run store. CREATE TABLE IF NOT EXISTS keeps the
// store reusable across invocations.
const (
	createRuns = `CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    scenario TEXT NOT NULL,
    digest TEXT NOT NULL,
    steps INTEGER NOT NULL,
    total_cash REAL NOT NULL,
    total_tax REAL NOT NULL,
    fitness REAL NOT NULL,
    created_at TEXT NOT NULL
);`

	createRunsDigestIndex = `CREATE INDEX IF NOT EXISTS runs_digest ON runs(digest);`

	createLiabilities = `CREATE TABLE IF NOT EXISTS liabilities (
    run_id TEXT NOT NULL,
    entity TEXT NOT NULL,
    amount REAL NOT NULL,
    PRIMARY KEY (run_id, entity),
    FOREIGN KEY (run_id) REFERENCES runs(run_id)
);`
)

// schemaDDL lists the statements executed on Open, in order.
var schemaDDL = []string{
	createRuns,
	createRunsDigestIndex,
	createLiabilities,
}
