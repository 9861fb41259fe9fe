package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lesson-shelf/internal/integrity"
)

var checkJSON bool

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Run the integrity suite over a lessons directory",
	Long: `Check parses every markdown document under the directory and reports
structural problems: unparseable documents, empty tagged code fences, broken
image URLs, malformed identifier metadata, and same-folder documents whose
heading structure has drifted apart.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, err := lessonsDir(args)
		if err != nil {
			fmt.Printf("Error resolving lessons directory: %v\n", err)
			os.Exit(1)
		}

		checker := integrity.NewChecker()
		report, err := checker.CheckDir(context.Background(), dir)
		if err != nil {
			fmt.Printf("Error running checks: %v\n", err)
			os.Exit(1)
		}

		if checkJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(report); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
		} else {
			for _, issue := range report.Issues {
				if issue.Block >= 0 {
					fmt.Printf("%s: [%s] block %d: %s\n", issue.RelPath, issue.Check, issue.Block, issue.Message)
				} else {
					fmt.Printf("%s: [%s] %s\n", issue.RelPath, issue.Check, issue.Message)
				}
			}
			fmt.Printf("checked %d documents, %d issues\n", report.CheckedDocuments, len(report.Issues))
		}

		if !report.OK() {
			os.Exit(1)
		}
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output the report as JSON")
	rootCmd.AddCommand(checkCmd)
}
