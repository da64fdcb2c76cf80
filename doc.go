/*

Plotv is a lightweight versioned object store for generated plots.  A
writer session saves any number of named plot artifacts into a single
container file, grouped under a time-bucketed dir together with an
optional comment and tag.  The plotv command lists dirs and exports a
dir's plots to files.

Vocabulary:

- container: the single persistent file holding all dirs; append-only
- dir: a named compartment holding one writer session's plots and
  metadata; keyed by a time bucket
- key: a dir's name; wall-clock time truncated to the hour, formatted
  as a sortable string
- cycle: one of possibly several stored versions of an object sharing
  the same name within a dir; writing a name again appends a new
  cycle, it never replaces an old one
- latest: the highest cycle of a name; the default read target
- comment: free-text description of what changed in a dir's session;
  stored as an object under the reserved name "comment"
- tag: optional marker flagging a dir as noteworthy; stored under the
  reserved name "tag"; an empty tag message still counts as tagged
- reserved names: "comment" and "tag"; excluded from plot enumeration
- id: the argument of `plotv get`; either a literal dir key or a
  1-based index into list order

*/

package plotv
