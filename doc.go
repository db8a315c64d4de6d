/*
Package nametable maintains a reverse lookup from a display name to the entity
that owns it, derived from a per-entity name store purely by consuming the
store's change log.

We implement:

1. Names, immutable string-backed keys attached to entities.

2. A name store, a sparse map of entity → name that appends a change event on
every insert, remove and in-place overwrite.

3. A change log with any number of independent read cursors.

4. The name table, a map of name → entity that callers query.

5. Bookkeeping, a system run once per dispatcher step that drains the change
log and brings the name table up to date.

# Technical Details

**Entities.**
An entity is an index plus a generation. Indexes are reused after deletion; the
generation is bumped every time, so a stale entity never matches a live one.

**Working sets.**
Each step, bookkeeping collects the indexes touched since its previous run into
two roaring bitmaps: “removed” and “inserted”. A modification lands in both.
Several changes to one entity within a step collapse into a single write of its
end-of-step name.

**Removal pass.**
Removal looks entries up by the entity's current name (plus any names it was
displaced from during the step), so it only works for entities that still have
a name. An entity whose name is removed outright leaves its old entry behind.
Eviction goes by name text alone and does not check which entity the entry
points to.

**Collisions.**
When two entities claim one name, the later write wins and a warning is logged.
Uniqueness is the caller's responsibility.

## Snapshot encoding

**Buckets**: “entities” and “names”, both keyed by big-endian uint32 index.

**Entity record**: msgpack of {generation, alive}.

**Name record**: msgpack of {generation, text, xxhash64 of text}.
*/
package nametable
