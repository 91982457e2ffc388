package services

import (
	"errors"
	"os"

	"github.com/tastemaker/taste/internal/domain"
	"github.com/tastemaker/taste/internal/ports"
)

// CheckService reads source files and runs the rule checker over them.
type CheckService struct {
	Checker ports.RuleChecker
	Logger  ports.Logger
}

// Run checks the given files. Unreadable files are skipped with a warning
// rather than failing the whole run.
func (s *CheckService) Run(paths []string) (domain.CheckReport, error) {
	if s.Checker == nil || s.Logger == nil {
		return domain.CheckReport{}, errors.New("services.CheckService dependencies not satisfied")
	}

	files := make([]domain.FileInput, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			s.Logger.Warn("skipping unreadable file", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}
		files = append(files, domain.FileInput{Path: path, Content: string(content)})
	}

	return s.Checker.Check(files)
}
