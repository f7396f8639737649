package ports

// ProblemStore reads and rewrites problem files in place.
type ProblemStore interface {
	Read(path string) (string, error)
	Write(path string, content string) error
}
