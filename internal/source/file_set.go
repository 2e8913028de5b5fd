package source

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// FileSet owns every file of one compilation run. Files are appended and
// never mutated, so AST text (substrings of File.Text) stays valid for the
// lifetime of the set.
type FileSet struct {
	files   []File
	index   map[string]FileID // path -> id
	baseDir string
}

// LoadOptions controls normalisation applied by LoadWith.
type LoadOptions struct {
	// NFC composes the content into Unicode normalisation form C.
	NFC bool
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// NewFileSetWithBase creates a FileSet whose relative paths are computed from baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// SetBaseDir sets the directory used for relative path display.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.baseDir = dir
}

// BaseDir returns the base directory, falling back to the working directory.
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

// Add stores a file from normalized bytes, computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	hash := sha256.Sum256(content)
	lineIdx := buildLineIndex(content)
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		Text:    string(content),
		LineIdx: lineIdx,
		Hash:    hash,
		Flags:   flags,
	})
	// индекс всегда указывает на последнюю версию файла
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, normalizes CRLF/BOM, and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	return fileSet.LoadWith(path, LoadOptions{})
}

// LoadWith is Load with extra normalisation.
func (fileSet *FileSet) LoadWith(path string, opts LoadOptions) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags, err := Normalize(content, opts)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return fileSet.Add(path, content, flags), nil
}

// Normalize checks UTF-8, strips a BOM, folds CRLF to LF and optionally
// composes NFC. LoadWith and AddVirtualWith both go through it.
func Normalize(content []byte, opts LoadOptions) ([]byte, FileFlags, error) {
	if !utf8.Valid(content) {
		return nil, 0, errors.New("content is not valid UTF-8")
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	if opts.NFC && !norm.NFC.IsNormal(content) {
		content = norm.NFC.Bytes(content)
		flags |= FileNormalizedNFC
	}
	return content, flags, nil
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// AddVirtualWith is AddVirtual for raw input (stdin): content goes through
// Normalize first.
func (fileSet *FileSet) AddVirtualWith(name string, content []byte, opts LoadOptions) (FileID, error) {
	content, flags, err := Normalize(content, opts)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return fileSet.Add(name, content, flags|FileVirtual), nil
}

// Get returns the file metadata for the given ID, or nil if it is unknown.
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

// GetByPath returns the latest *File loaded under path.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fileSet.index[normalizePath(path)]; ok {
		return &fileSet.files[id], true
	}
	return nil, false
}

// Point resolves a byte offset of file id into a Point.
func (fileSet *FileSet) Point(id FileID, off uint32) Point {
	f := &fileSet.files[id]
	return f.pointAt(off)
}

// Location converts a span into a pair of points.
func (fileSet *FileSet) Location(span Span) Location {
	f := &fileSet.files[span.File]
	return Location{Start: f.pointAt(span.Start), End: f.pointAt(span.End)}
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	loc := fileSet.Location(span)
	return LineCol{Line: loc.Start.Line, Col: loc.Start.Col}, LineCol{Line: loc.End.Line, Col: loc.End.Col}
}

func (f *File) pointAt(off uint32) Point {
	limit := mustU32(len(f.Content))
	if off > limit {
		off = limit
	}
	line, lineStart := lineOf(f.LineIdx, off)
	col := 1 + mustU32(utf8.RuneCount(f.Content[lineStart:off]))
	return Point{File: f.ID, Off: off, Line: line, Col: col}
}

// Slice returns the source text covered by span.
func (f *File) Slice(span Span) string {
	if span.End > mustU32(len(f.Text)) || span.Start > span.End {
		return ""
	}
	return f.Text[span.Start:span.End]
}

// GetLine returns the text of line lineNum (1-based) without its newline.
// Missing lines yield "".
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lenLineIdx := mustU32(len(f.LineIdx))
	lenContent := mustU32(len(f.Content))

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}

	if (lineNum - 1) < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}

	if start > lenContent {
		return ""
	}
	end = min(end, lenContent)
	return f.Text[start:end]
}

// FormatPath formats the file path for display.
// mode: "absolute", "relative", "basename", "auto"
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
		return f.Path

	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
		return f.Path

	case "basename":
		return BaseName(f.Path)

	case "auto":
		// короткие и относительные пути как есть, остальное — basename
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return BaseName(f.Path)

	default:
		return f.Path
	}
}
