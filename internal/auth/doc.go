// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

/*
Package auth guards the API with optional HS256 bearer tokens.

With AUTH_MODE=none every request passes. With AUTH_MODE=jwt each /api
request must carry "Authorization: Bearer <token>" signed with JWT_SECRET;
the validated claims are stored in the request context.

Tokens are issued out of band, for example with "coursepath token".
*/
package auth
