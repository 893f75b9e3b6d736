package packager

// FileRecord describes one file that was added to the archive.
type FileRecord struct {
	// Arch is the architecture the file was built for.
	Arch string
	// Folder is the logical archive folder (OneCryptoBin, OneCryptoLoaders, BuildInfo).
	Folder string
	// Name is the display name of the file inside its folder.
	Name string
	// SourcePath is the absolute path the file was read from.
	SourcePath string
	// ArchivePath is the entry path inside the archive: <target>/<arch>/<folder>/<name>.
	ArchivePath string
	// Size is the uncompressed size in bytes.
	Size int64
}

// Result summarizes one packaging invocation.
type Result struct {
	// ArchivePath is the path of the created zip archive.
	ArchivePath string
	// FolderSizes accumulates uncompressed bytes per archive folder.
	FolderSizes map[string]int64
	// Files lists every file added, in archive order.
	Files []FileRecord
	// Missing lists absolute source paths that did not exist at packaging time.
	Missing []string
	// TotalUncompressed is the sum of all source file sizes.
	TotalUncompressed int64
	// CompressedSize is the byte size of the finished archive on storage.
	CompressedSize int64
	// SHA256 is the hex digest of the finished archive bytes.
	SHA256 string
	// AddedCount is the number of files written into the archive.
	AddedCount int
	// MissingCount is the number of resolved sources that were absent.
	MissingCount int
}
