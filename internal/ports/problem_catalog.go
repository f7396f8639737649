package ports

import "github.com/aalvaropc/blanks/internal/domain"

// ProblemCatalog lists the problem files available for a language.
type ProblemCatalog interface {
	ListProblems(language string) ([]domain.ProblemRef, error)
}
