package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lesson-shelf/internal/markdown"
)

var listJSON bool

// listedLesson is one document in the list output.
type listedLesson struct {
	RelPath string `json:"rel_path"`
	Title   string `json:"title"`
	Variant string `json:"variant,omitempty"`
	Blocks  int    `json:"blocks"`
}

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List the lesson documents in a directory",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, err := lessonsDir(args)
		if err != nil {
			fmt.Printf("Error resolving lessons directory: %v\n", err)
			os.Exit(1)
		}

		parser := markdown.NewParser()
		var lessons []listedLesson

		err = filepath.Walk(dir, func(path string, info os.FileInfo, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if info.IsDir() {
				if strings.HasPrefix(info.Name(), ".") && path != dir {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".md" {
				return nil
			}

			relPath, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			relPath = filepath.ToSlash(relPath)

			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			doc, err := parser.Parse(content, filepath.Base(path))
			if err != nil {
				// Unparseable documents still belong in the inventory
				lessons = append(lessons, listedLesson{RelPath: relPath, Title: "(unparseable)"})
				return nil
			}

			lessons = append(lessons, listedLesson{
				RelPath: relPath,
				Title:   doc.Title,
				Variant: doc.Variant,
				Blocks:  len(doc.Blocks),
			})
			return nil
		})
		if err != nil {
			fmt.Printf("Error listing lessons: %v\n", err)
			os.Exit(1)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(lessons); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}

		for _, lesson := range lessons {
			line := fmt.Sprintf("%s\t%s", lesson.RelPath, lesson.Title)
			if lesson.Variant != "" {
				line += fmt.Sprintf(" (variant %s)", lesson.Variant)
			}
			fmt.Println(line)
		}
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output the inventory as JSON")
	rootCmd.AddCommand(listCmd)
}
