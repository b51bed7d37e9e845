// Coursepath - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursepath

/*
Package cache provides a thread-safe in-memory TTL cache.

It holds the catalog snapshot (active courses and prerequisite edges) that
the database provider serves between refreshes. Entries expire lazily on
Get; Cleanup removes all expired entries and is called by the catalog
refresh service.

Example:

	c := cache.New(5 * time.Minute)
	c.Set(cache.KeyCourses, courses)
	if v, ok := c.Get(cache.KeyCourses); ok {
	    courses := v.([]recommend.Course)
	}
*/
package cache
