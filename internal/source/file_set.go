package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns every File loaded during one pipeline invocation. Spans refer
// to files by FileID, so tokens and AST nodes can be copied freely as long as
// the FileSet outlives them.
type FileSet struct {
	files   []File
	index   map[string]FileID // path -> latest id
	baseDir string
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// NewFileSetWithBase creates a FileSet whose relative paths are reported
// against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// BaseDir returns the directory relative paths are computed against,
// falling back to the working directory.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Len returns the number of files in the set.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Add stores already-normalised content, computes LineIdx and Hash, and
// returns a fresh FileID. Adding the same path twice creates a new version.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	hash := sha256.Sum256(content)
	lineIdx := buildLineIndex(content)
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s is too large: %w", path, err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: lineIdx,
		Hash:    hash,
		Flags:   flags,
	})
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, strips a leading BOM and folds CRLF to LF
// before calling Add. Nothing else is rewritten: raw tokens of the loaded
// file reproduce File.Content exactly.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := normalizeContent(content)
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds in-memory source (tests, -e) verbatim with the
// FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file for id, or nil if id is unknown.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	if f == nil {
		return LineCol{Line: 1, Col: 1}, LineCol{Line: 1, Col: 1}
	}
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Text returns the source text denoted by span. Out-of-range spans are
// clamped to the file content.
func (fileSet *FileSet) Text(span Span) string {
	f := fileSet.Get(span.File)
	if f == nil {
		return ""
	}
	return f.Slice(span)
}

// Slice returns the text of span inside f, clamped to the content bounds.
func (f *File) Slice(span Span) string {
	n := uint32(len(f.Content)) // #nosec G115 -- bounded in Add
	start, end := min(span.Start, n), min(span.End, n)
	if end < start {
		end = start
	}
	return string(f.Content[start:end])
}

// GetLine returns the text of line lineNum (1-based) without its newline.
// Missing lines yield "".
func (f *File) GetLine(lineNum uint32) string {
	start, end, ok := f.lineBounds(int(lineNum))
	if !ok {
		return ""
	}
	return string(f.Content[start:end])
}

// lineBounds returns the byte range of line n. LineIdx holds newline
// offsets, so line n starts after LineIdx[n-2] and stops at LineIdx[n-1].
func (f *File) lineBounds(n int) (start, end int, ok bool) {
	if n < 1 || n > len(f.LineIdx)+1 {
		return 0, 0, false
	}
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end = len(f.Content)
	if n <= len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	return start, end, start <= end
}

// FormatPath renders the file path according to mode:
// "absolute", "relative", "basename" or "auto". Unknown modes keep Path.
func (f *File) FormatPath(mode, baseDir string) string {
	var (
		out string
		err error
	)
	switch mode {
	case "absolute":
		out, err = AbsolutePath(f.Path)
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		out, err = RelativePath(f.Path, baseDir)
	case "basename":
		out = BaseName(f.Path)
	case "auto":
		// короткие и относительные пути показываем как есть
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			out = BaseName(f.Path)
		}
	}
	if err != nil || out == "" {
		return f.Path
	}
	return out
}
