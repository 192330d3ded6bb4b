// Package archive bundles storage objects into a single zip file.
//
// Build allocates a private scratch directory, downloads every key into
// "files/<basename>" and appends it to "download.zip" in the same directory.
// A failed download aborts the whole build and removes the scratch directory
// before the error is returned, so no partial archive survives.
//
// On success the caller owns the Archive and must call Cleanup once the zip
// has been served. WithArchive scopes that for callers that can work inside a
// callback:
//
//	err := archive.WithArchive(ctx, builder, "12345", keys, func(a *archive.Archive) error {
//		return serve(a.Path)
//	})
//
// Keys sharing a basename are not disambiguated: the scratch copy is
// overwritten and the zip carries one entry per key in order, so extraction
// keeps the last one.
package archive
