// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

/*
Package services provides suture.Service wrappers for Coursepath components.

Each wrapper implements suture.Service (Serve(ctx) error) and fmt.Stringer:

  - HTTPServerService runs an *http.Server and shuts it down gracefully when
    the context is canceled.
  - CatalogRefreshService reloads the catalog snapshot on a ticker so the
    cache never serves data older than the refresh interval.
  - ReportsGCService runs BadgerDB value log garbage collection periodically.

Wrappers return ctx.Err() on shutdown and a wrapped error on failure, which
suture uses to decide whether to restart them.
*/
package services
