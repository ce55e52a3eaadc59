/*
Package graph is the authoritative in-memory model of a funnel: steps keyed by id and the
directed connections between them.

The Store rejects any connection that would create a cycle at insertion time, so the
graph it holds is always acyclic. It mutates in place and is not safe for concurrent use;
callers serialise access (the editor runs on a single UI thread, network hosts go through
package session).
*/
package graph
