/*
Package session keeps live funnel editors for network hosts.

Each session owns one funnelfy.Editor. Access is serialized per session with a
reference-counted mutex, optionally backed by a distributed lock so several replicas can
share a session store. Saving goes through the editor's save request, so the Ctrl/Cmd+S
shortcut and an explicit Save persist the same way.
*/
package session
