package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/3-lines-studio/stitch/internal/adapters/cli"
	"github.com/3-lines-studio/stitch/internal/adapters/fs"
	"github.com/3-lines-studio/stitch/internal/templates"
	"github.com/3-lines-studio/stitch/internal/usecase"
)

func main() {
	output := cli.NewOutput()
	template := "minimal"
	var projectDir string

	if len(os.Args) < 2 {
		printUsage(output)
		os.Exit(1)
	}

	if os.Args[1] == "--help" || os.Args[1] == "-h" {
		printUsage(output)
		os.Exit(0)
	}

	argIdx := 1
	for argIdx < len(os.Args) {
		arg := os.Args[argIdx]

		if arg == "--template" {
			if argIdx+1 >= len(os.Args) {
				output.PrintHeader("Stitch Init")
				output.PrintError("--template requires a value")
				os.Exit(1)
			}
			template = os.Args[argIdx+1]
			argIdx += 2
			continue
		}

		if projectDir == "" && !isFlag(arg) {
			projectDir = arg
		}
		argIdx++
	}

	if projectDir == "" {
		printUsage(output)
		os.Exit(1)
	}

	absProjectDir, err := filepath.Abs(projectDir)
	if err != nil {
		output.PrintHeader("Stitch Init")
		output.PrintError("Failed to resolve project directory: %v", err)
		os.Exit(1)
	}

	result := usecase.NewInitService(fs.NewOSFileSystem(), output).InitProject(usecase.InitInput{
		ProjectDir: absProjectDir,
		Template:   template,
	})
	if result.Error != nil {
		output.PrintError("%v", result.Error)
		os.Exit(1)
	}

	fmt.Println()
	output.PrintStep("", "Next steps:")
	fmt.Println()
	fmt.Printf("  cd %s\n", projectDir)
	fmt.Printf("  stitch-dev\n")
	fmt.Printf("  stitch-build\n")
	fmt.Println()
}

func isFlag(arg string) bool {
	return len(arg) > 0 && arg[0] == '-'
}

func printUsage(output *cli.Output) {
	output.PrintHeader("Stitch Init")
	fmt.Println("Usage: stitch-init [options] <project-dir>")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Printf("  --template <name>  Template to use (%s). Default: minimal\n", strings.Join(templates.ValidTemplates, ", "))
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  stitch-init mysite")
	fmt.Println("  stitch-init --template landing mysite")
}
