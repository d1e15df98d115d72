package steps

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"text/template"

	"github.com/datachef/datachef/internal/recipe"
)

// Reporter renders a report from a template and a context. The context
// arrives with dataset and figure references already dereferenced into
// live objects. An optional compiler turns the rendered artifact into
// its final form; a missing compiler is not fatal.
type Reporter struct {
	Base
}

// NewReporter creates a report step.
func NewReporter() *Reporter {
	return &Reporter{NewBase("Reporter", map[string]any{
		"template": "",
		"filename": "",
		"context":  map[string]any{},
		"compiler": "",
	})}
}

// Render executes the template with the report context and writes the
// result to the report filename.
func (r *Reporter) Render() error {
	templateFile := r.stringProp("template")
	if templateFile == "" {
		return errors.New("no template to render report from")
	}
	filename := r.stringProp("filename")
	if filename == "" {
		return errors.New("no filename to render report to")
	}
	context, _ := r.props["context"].(map[string]any)

	tmpl, err := template.New(filepath.Base(templateFile)).ParseFiles(templateFile)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}
	if dir := filepath.Dir(filename); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	out, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer out.Close()
	if err := tmpl.Execute(out, context); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// Compile runs the configured compiler over the rendered report. When
// the compiler is not installed, ErrCompilerUnavailable is returned and
// the uncompiled artifact remains valid.
func (r *Reporter) Compile() error {
	compiler := r.stringProp("compiler")
	if compiler == "" {
		compiler = "pdflatex"
	}
	path, err := exec.LookPath(compiler)
	if err != nil {
		return fmt.Errorf("%w: %s", recipe.ErrCompilerUnavailable, compiler)
	}
	filename := r.stringProp("filename")
	cmd := exec.Command(path, filepath.Base(filename))
	cmd.Dir = filepath.Dir(filename)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to compile report %s: %w\n%s", filename, err, output)
	}
	return nil
}
