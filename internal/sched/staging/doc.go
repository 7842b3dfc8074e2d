// Package staging holds the uncommitted queue edits of one edit session
// and resolves queues against the committed snapshot.
//
// The store keeps at most one staged change per queue path: an Add (a
// full blueprint for a new queue), an Update (the cumulative set of
// pending modifications), or a Delete (a tombstone). Edits layer on top
// of the trie without mutating it; every read resolves fresh, returning
// independent copies ("copy-on-read"). One Store is one edit session —
// hosts running concurrent sessions give each its own Store.
package staging
