// Package catalog holds the displayable state of catalog queries.
//
// A [ResultView] owns two slots: the current list of entries and the current
// single entry. Each Load call replaces its slot wholesale on success and
// leaves it untouched on failure, recording the error separately so the
// previous results stay visible.
//
// Every slot carries a generation counter. A call takes a new generation when
// it starts; if another call on the same slot starts before it finishes, its
// result is dropped with [shared.ErrSuperseded]. The last issued call wins,
// regardless of the order in which responses arrive.
package catalog
