package bank

import (
	"fmt"
	"os"
	"path/filepath"
)

// ValidationError represents a validation issue found in a bank file.
type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidateFile reads a bank file and returns all errors found.
func ValidateFile(path string) []ValidationError {
	file, err := decodeFile(path)
	if err != nil {
		return []ValidationError{{Message: err.Error()}}
	}
	return Validate(file)
}

// Validate checks a decoded bank file.
func Validate(file *BankFile) []ValidationError {
	var errs []ValidationError

	if file.Version == "" {
		errs = append(errs, ValidationError{
			Path: "version", Message: "version is required",
		})
	}
	if len(file.Groups) == 0 && len(file.Tests) == 0 {
		errs = append(errs, ValidationError{
			Path: "groups", Message: "at least one group or test is required",
		})
	}

	for i, t := range file.Tests {
		errs = append(errs, validateTest(fmt.Sprintf("tests[%d]", i), t)...)
	}
	for i, g := range file.Groups {
		errs = append(errs, validateGroup(fmt.Sprintf("groups[%d]", i), g)...)
	}
	return errs
}

func validateGroup(path string, g GroupDef) []ValidationError {
	var errs []ValidationError
	if g.Label == "" {
		errs = append(errs, ValidationError{
			Path: path + ".label", Message: "group label is required",
		})
	}
	for i, t := range g.Tests {
		errs = append(errs, validateTest(fmt.Sprintf("%s.tests[%d]", path, i), t)...)
	}
	for i, nested := range g.Groups {
		errs = append(errs, validateGroup(fmt.Sprintf("%s.groups[%d]", path, i), nested)...)
	}
	return errs
}

func validateTest(path string, t TestDef) []ValidationError {
	var errs []ValidationError
	if t.Label == "" {
		errs = append(errs, ValidationError{
			Path: path + ".label", Message: "test label is required",
		})
	}
	for i, a := range t.Assertions {
		p := fmt.Sprintf("%s.assertions[%d]", path, i)
		if a.Label == "" {
			errs = append(errs, ValidationError{
				Path: p + ".label", Message: "assertion label is required",
			})
		}
		if _, err := ParseKind(a.Kind); err != nil {
			errs = append(errs, ValidationError{
				Path: p + ".kind", Message: err.Error(),
			})
		}
	}
	return errs
}

// FileReport holds the validation errors of one file.
type FileReport struct {
	Path   string
	Errors []ValidationError
}

// ValidatePath validates a file, or every bank file in a
// directory in name order.
func ValidatePath(path string) ([]FileReport, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat bank path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []FileReport{{Path: path, Errors: ValidateFile(path)}}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read bank directory %s: %w", path, err)
	}
	var reports []FileReport
	for _, entry := range entries {
		if entry.IsDir() || !isBankFile(entry.Name()) {
			continue
		}
		file := filepath.Join(path, entry.Name())
		reports = append(reports, FileReport{Path: file, Errors: ValidateFile(file)})
	}
	return reports, nil
}
