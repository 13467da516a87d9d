package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns the scripts loaded during one invocation. Every Add creates a
// new version; spans keep pointing at the version they were produced from.
type FileSet struct {
	files   []File
	latest  map[string]FileID // path -> последняя версия
	baseDir string
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{latest: make(map[string]FileID)}
}

// BaseDir is the directory relative paths are computed against. It falls
// back to the working directory when unset.
func (s *FileSet) BaseDir() string {
	if s.baseDir != "" {
		return s.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// SetBaseDir overrides the directory used by BaseDir.
func (s *FileSet) SetBaseDir(dir string) {
	s.baseDir = dir
}

// Add stores already normalized content and returns the new version's ID.
func (s *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(s.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	id := FileID(n)
	p := normalizePath(path)
	s.files = append(s.files, File{
		ID:      id,
		Path:    p,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	s.latest[p] = id
	return id
}

// Load reads a script from disk. A UTF-8 BOM is dropped and CRLF is folded
// to LF; both are recorded in the file flags.
func (s *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var flags FileFlags
	content, hadBOM := removeBOM(raw)
	if hadBOM {
		flags |= FileHadBOM
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return s.Add(path, content, flags), nil
}

// AddVirtual adds in-memory content (inline text, tests) flagged FileVirtual.
func (s *FileSet) AddVirtual(name string, content []byte) FileID {
	return s.Add(name, content, FileVirtual)
}

// Get returns the file version with the given ID.
func (s *FileSet) Get(id FileID) *File {
	return &s.files[id]
}

// Len reports how many file versions the set holds.
func (s *FileSet) Len() int {
	return len(s.files)
}

// GetLatest returns the newest version registered under path.
func (s *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := s.latest[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into 1-based line and column positions.
func (s *FileSet) Resolve(span Span) (start, end LineCol) {
	idx := s.files[span.File].LineIdx
	return toLineCol(idx, span.Start), toLineCol(idx, span.End)
}

// GetLine returns the 1-based line without its terminator, or "" when out of range.
func (f *File) GetLine(lineNum uint32) string {
	start, end, ok := f.lineBounds(lineNum)
	if !ok {
		return ""
	}
	return string(f.Content[start:end])
}

func (f *File) lineBounds(lineNum uint32) (start, end int, ok bool) {
	if lineNum == 0 {
		return 0, 0, false
	}
	line := int(lineNum) - 1 // 0-based
	if line > len(f.LineIdx) {
		return 0, 0, false
	}
	if line > 0 {
		start = int(f.LineIdx[line-1]) + 1
	}
	end = len(f.Content)
	if line < len(f.LineIdx) {
		end = int(f.LineIdx[line])
	}
	if start > len(f.Content) {
		return 0, 0, false
	}
	return start, min(end, len(f.Content)), true
}

// FormatPath renders the path for diagnostics.
// mode: "absolute", "relative", "basename", "auto"; virtual files keep their name.
func (f *File) FormatPath(mode, baseDir string) string {
	if f.Flags&FileVirtual != 0 {
		return f.Path
	}
	switch mode {
	case "absolute":
		abs, err := filepath.Abs(f.Path)
		if err != nil {
			return f.Path
		}
		return filepath.ToSlash(abs)
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		rel, err := RelativePath(f.Path, baseDir)
		if err != nil {
			return f.Path
		}
		return rel
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		// длинные абсолютные пути сокращаем до имени файла
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return filepath.Base(f.Path)
		}
		return f.Path
	default:
		return f.Path
	}
}
