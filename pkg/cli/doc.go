/*
Package cli provides helpers shared by the sheetport commands.

Command results are printed through a Formatter chosen with --output:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Values implementing Tabular render as aligned columns in text mode and as
records in CSV mode.

Exporting several types reports progress on stderr:

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Start(len(types))

Commands that must stop on SIGINT/SIGTERM use SetupSignalHandler.
*/
package cli
