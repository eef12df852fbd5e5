// Package session manages live document sessions on behalf of the host
// front-end.
//
// A session owns a parsed notebook, the registry of editor widgets the
// host has rendered for it, and the extension runner bound to that
// registry. Opening a session fires the extension-load hook once;
// re-running passes after host re-renders is an explicit host-requested
// operation.
//
// Sessions live in memory only and die with the process — persistence is
// a host concern and deliberately out of scope.
package session
