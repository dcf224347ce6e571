// Package fetch implements the fetch-on-mount page contract shared by every
// view: a mounted Controller moves to LOADING, runs its fetch on a goroutine,
// then settles in READY with data or FAILED with an error message and an
// error toast. Each trigger bumps a generation counter; a result that belongs
// to an older generation, or that arrives after Unmount, is dropped.
package fetch
