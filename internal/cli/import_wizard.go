package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/huh"

	"github.com/danivilar/atelier/internal/cli/formatter"
	"github.com/danivilar/atelier/internal/importer"
)

// runImportWizard shows the detected column mapping over a preview of
// the file and lets the user correct it before conversion.
func runImportWizard(out io.Writer, table *importer.Table, detected importer.ColumnMapping) (importer.ColumnMapping, error) {
	preview := importer.BuildPreview(table)

	fmt.Fprintln(out, formatter.Header(fmt.Sprintf("Import preview (%d rows)", preview.TotalRows)))
	fmt.Fprint(out, formatter.RenderTable(preview.Headers, preview.Rows))
	fmt.Fprintln(out)

	mapping := detected
	none := "(none)"
	options := make([]huh.Option[string], 0, len(table.Headers)+1)
	for _, h := range table.Headers {
		options = append(options, huh.NewOption(h, h))
	}
	optionalColumns := append(options, huh.NewOption(none, ""))

	confirmed := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Date column").
				Options(options...).
				Value(&mapping.Date),
			huh.NewSelect[string]().
				Title("Amount column").
				Options(options...).
				Value(&mapping.Amount),
			huh.NewSelect[string]().
				Title("Description column").
				Options(optionalColumns...).
				Value(&mapping.Description),
			huh.NewSelect[string]().
				Title("Category column").
				Options(optionalColumns...).
				Value(&mapping.Category),
			huh.NewConfirm().
				Title("Import with this mapping?").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return importer.ColumnMapping{}, err
	}
	if !confirmed {
		return importer.ColumnMapping{}, fmt.Errorf("import cancelled")
	}
	if !mapping.Complete() {
		return importer.ColumnMapping{}, fmt.Errorf("date and amount columns are required")
	}
	return mapping, nil
}
