package ledger

type migration struct {
	id   int
	name string
	sql  string
}

var migrations = []migration{
	{
		id:   1,
		name: "initial_schema",
		sql: `
			CREATE TABLE runs (
				id TEXT PRIMARY KEY,
				seed INTEGER NOT NULL,
				options_json TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'running',
				error_detail TEXT,
				started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				finished_at DATETIME
			);
			CREATE INDEX idx_runs_status ON runs(status);
			CREATE INDEX idx_runs_seed ON runs(seed);

			CREATE TABLE run_stages (
				run_id TEXT NOT NULL,
				stage TEXT NOT NULL,
				started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (run_id, stage),
				FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
			);

			CREATE TABLE run_degradations (
				run_id TEXT NOT NULL,
				stage TEXT NOT NULL,
				detail TEXT NOT NULL,
				recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
			);
			CREATE INDEX idx_degradations_run ON run_degradations(run_id);
		`,
	},
}
