package main

import (
	"github.com/spf13/cobra"
)

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Manage news articles",
}

var newsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Crawl the configured news source once",
	Long: `Crawl NEWS_IMPORT_LIST_URL and store new articles as unpublished drafts.
Articles whose source URL is already stored are skipped.`,
	RunE: runNewsImport,
}

func init() {
	newsCmd.AddCommand(newsImportCmd)
}

func runNewsImport(cmd *cobra.Command, _ []string) error {
	c, _, err := openContainer()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	res, err := c.Usecases.News.Import(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("%d article(s) found, %d new draft(s) stored\n", res.Found, res.Inserted)
	return nil
}
