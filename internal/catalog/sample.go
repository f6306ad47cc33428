package catalog

// SampleKind identifies which synthesized sample file an experiment offers.
type SampleKind int

const (
	SampleNone SampleKind = iota
	SampleWordFile
	SampleMovies
	SampleNewFile
)

const (
	wordFileContent = "Hello world this is a test\nAnother line with words\n"
	moviesContent   = "1,Movie A,100\n2,Movie B,90\n3,Movie C,110\n"
	newFileContent  = "Hello, this is a sample text file for Hadoop operations.\n"
)

// ParseSampleKind maps a sample filename to its kind. Unknown names map to SampleNone.
func ParseSampleKind(filename string) SampleKind {
	switch filename {
	case "wordfile.txt":
		return SampleWordFile
	case "movies.txt":
		return SampleMovies
	case "newfile.txt":
		return SampleNewFile
	default:
		return SampleNone
	}
}

func (k SampleKind) String() string {
	switch k {
	case SampleWordFile:
		return "wordfile.txt"
	case SampleMovies:
		return "movies.txt"
	case SampleNewFile:
		return "newfile.txt"
	default:
		return "none"
	}
}

// SampleContent returns the literal content for kind. The second result is false
// for SampleNone. Each call returns a new slice.
func SampleContent(kind SampleKind) ([]byte, bool) {
	switch kind {
	case SampleWordFile:
		return []byte(wordFileContent), true
	case SampleMovies:
		return []byte(moviesContent), true
	case SampleNewFile:
		return []byte(newFileContent), true
	default:
		return nil, false
	}
}
