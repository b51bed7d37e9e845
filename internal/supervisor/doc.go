// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

/*
Package supervisor provides process supervision for Coursepath using suture v4.

Services are organized into three layers so that a crash in one does not
stop the others:

	RootSupervisor ("coursepath")
	├── DataSupervisor ("data-layer")
	│   ├── CatalogRefreshService
	│   └── ReportsGCService (when reports are persisted to disk)
	├── MessagingSupervisor ("messaging-layer")
	│   └── events.Service (run event router)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Supervisor events are
logged through sutureslog into the zerolog-backed slog logger:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	errCh := tree.ServeBackground(ctx)

Cancel ctx to stop every service; UnstoppedServiceReport lists services
that did not return within the shutdown timeout.
*/
package supervisor
