// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

/*
Command coursepath is the batch CLI for the recommendation engine.

It reads the same configuration as the server (config file, .env and
environment) and talks to the catalog database directly:

	coursepath seed --driver sqlite3 --db ./demo.db
	coursepath recommend 1 --db ./demo.db --driver sqlite3
	coursepath recommend 3 --interests drawing --difficulty 1
	coursepath score 2 --k 5
	coursepath courses --department CS --limit 10
	coursepath token advisor1 --role advisor

Every command prints JSON on stdout; logs go to stderr. Runs started by
recommend and score are written to agent_logs unless --no-run-log is set.
*/
package main
