package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/rsscheck/internal/errors"
)

var (
	genDocDir    string
	genDocFormat string
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate reference documentation for the CLI",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE:   runGenDoc,
}

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "dir", "d", "", "output directory")
	genDocCmd.Flags().StringVar(&genDocFormat, "format", "markdown", "markdown or man")
	rootCmd.AddCommand(genDocCmd)
}

func runGenDoc(cmd *cobra.Command, _ []string) error {
	if genDocDir == "" {
		return errors.NewUserError(errors.New("output directory is required"), "Pass --dir")
	}
	if err := os.MkdirAll(genDocDir, 0o755); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating output directory"), "")
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	var err error
	switch genDocFormat {
	case "markdown":
		err = doc.GenMarkdownTreeCustom(root, genDocDir, docFrontMatter, docLink)
	case "man":
		err = doc.GenManTree(root, &doc.GenManHeader{Title: "RSSCHECK", Section: "1"}, genDocDir)
	default:
		return errors.NewUserError(errors.Newf("unknown doc format %q", genDocFormat), "Use markdown or man")
	}
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "generating docs"), "")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Documentation generated in %s\n", genDocDir)
	return nil
}

// rsscheck_config_get.md -> "rsscheck config get"
func docTitle(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return strings.ReplaceAll(base, "_", " ")
}

func docFrontMatter(filename string) string {
	title := docTitle(filename)
	return fmt.Sprintf("---\ntitle: %q\ndescription: %q\n---\n", title, "Reference for "+title)
}

func docLink(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return "/docs/cli/" + strings.ToLower(base) + "/"
}
