package usecase

import (
	"strings"

	"github.com/aalvaropc/blanks/internal/domain"
	"github.com/aalvaropc/blanks/internal/ports"
)

type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

// Execute creates a workspace at root seeded for language (python when empty).
func (uc *InitWorkspace) Execute(root, language string, force bool) error {
	if strings.TrimSpace(language) == "" {
		language = domain.DefaultSettings().Language
	}
	return uc.initializer.Init(domain.WorkspaceSpec{Root: root, Language: language}, force)
}
