/*
Package store keeps an ordered list of key-identified values in memory
and in a single file on disk.

	s, err := store.OpenRecords("configs/help.txt", store.WithSuppressErrors(true))
	if err != nil {
		return err
	}
	added, err := s.Add(store.NewRecord("list", "usage: list"))

Every Add and Remove rewrites the whole file (atomically, via
atomicfile) and then reloads it, so after a mutation the in-memory
values are what the file holds. A failed write leaves the previous file
in place and the reload brings memory back in line with it.

Reload decodes into a new list and only replaces the current values on
success. In suppress errors mode read and decode failures are logged and
swallowed; the store keeps its values. Failure to probe the file when
opening it is always returned.

The file format is recfile, one block per value.

A Store is not safe for concurrent use. Callers sharing a store between
goroutines, or a file between processes, must serialize access.
*/
package store
