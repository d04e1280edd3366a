package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v3"

	"github.com/algoprep/grader/gradesrvc"
	"github.com/algoprep/grader/sandbox"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelWarn,
		TimeFormat: time.Kitchen,
	})))

	cmd := &cli.Command{
		Name:  "gradecli",
		Usage: "grade a local solution file against a set of test cases",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "lang", Usage: "target language (python3, javascript, java)", Required: true},
			&cli.StringFlag{Name: "file", Usage: "path to the solution source file", Required: true},
			&cli.StringFlag{Name: "tests", Usage: "path to a JSON file with test cases", Required: true},
			&cli.StringFlag{Name: "problem", Usage: "problem id (enables problem-specific strategies)"},
			&cli.StringFlag{Name: "sandbox-url", Usage: "sandbox backend URL", Sources: cli.EnvVars("SANDBOX_URL")},
			&cli.StringFlag{Name: "sandbox-token", Usage: "sandbox auth token", Sources: cli.EnvVars("SANDBOX_AUTH_TOKEN")},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, failStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	source, err := os.ReadFile(cmd.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read solution file: %w", err)
	}

	testsRaw, err := os.ReadFile(cmd.String("tests"))
	if err != nil {
		return fmt.Errorf("failed to read tests file: %w", err)
	}
	var testCases []gradesrvc.RawTestCase
	if err := json.Unmarshal(testsRaw, &testCases); err != nil {
		return fmt.Errorf("failed to parse tests file: %w", err)
	}

	sandboxURL := cmd.String("sandbox-url")
	if sandboxURL == "" {
		return fmt.Errorf("sandbox URL is required (flag --sandbox-url or env SANDBOX_URL)")
	}

	sandboxClient := sandbox.NewClient(sandboxURL, cmd.String("sandbox-token"))
	gradeSrvc := gradesrvc.NewGradeService(sandboxClient, nil)

	results, warnings, err := gradeSrvc.Grade(ctx, gradesrvc.GradeRequest{
		Language:  cmd.String("lang"),
		Code:      string(source),
		ProblemID: cmd.String("problem"),
		TestCases: testCases,
	})
	if err != nil {
		return err
	}

	for _, warning := range warnings {
		fmt.Println(dimStyle.Render("warning: " + warning))
	}

	passed := 0
	for i, res := range results {
		verdict := failStyle.Render("FAIL")
		if res.Passed {
			verdict = passStyle.Render("PASS")
			passed++
		}
		fmt.Printf("%s  #%d  %s\n", verdict, i+1, res.Input)
		if !res.Passed {
			fmt.Printf("      expected: %s\n", compact(res.Expected))
			fmt.Printf("      actual:   %s\n", compact(res.Actual))
			if res.Hint != "" {
				fmt.Println(dimStyle.Render("      hint: " + res.Hint))
			}
			if res.Stderr != "" {
				fmt.Println(dimStyle.Render("      stderr: " + res.Stderr))
			}
		}
	}
	fmt.Printf("\n%d/%d test cases passed\n", passed, len(results))
	if passed != len(results) {
		os.Exit(1)
	}
	return nil
}

func compact(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}
