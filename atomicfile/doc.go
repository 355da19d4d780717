/*
Package atomicfile replaces a file as a whole or not at all.

Data is written to a temporary file created next to the destination. Close
syncs it and renames it over the destination. If any Write fails, or the
writer is abandoned with RemoveIfNotClosed, the temporary file is deleted and
the destination is left untouched.

A store snapshot is written like this:

	func saveSnapshot(path string, d []byte) error {
		f, err := atomicfile.New(path)
		if err != nil {
			return err
		}
		defer f.RemoveIfNotClosed()

		if _, err = f.Write(d); err != nil {
			return err
		}
		return f.Close()
	}

WriteFile does the same in one call.
*/
package atomicfile
