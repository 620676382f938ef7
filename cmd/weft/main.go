package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/weftlabs/weft/pkg/log"
	"github.com/weftlabs/weft/pkg/pipeline"
	"github.com/weftlabs/weft/pkg/transform"
)

func main() {
	logger := log.WithModule("cli")

	cmd := &cli.Command{
		Name:                  "weft",
		Usage:                 "Apply a transformation pipeline to a JSON payload",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "pipeline",
				Aliases:  []string{"f"},
				Usage:    "Path to the pipeline definition JSON file",
				Required: true,
				Sources:  cli.EnvVars("WEFT_PIPELINE"),
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Path to the input payload JSON file (defaults to stdin)",
				Sources: cli.EnvVars("WEFT_INPUT"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			raw, err := os.ReadFile(command.String("pipeline"))
			if err != nil {
				return fmt.Errorf("failed to read pipeline definition: %w", err)
			}

			definition, err := pipeline.ParseDefinition(raw)
			if err != nil {
				return fmt.Errorf("failed to parse pipeline definition: %w", err)
			}

			compiled, err := definition.Compile()
			if err != nil {
				return fmt.Errorf("failed to compile pipeline: %w", err)
			}

			data, err := readInput(command.String("input"))
			if err != nil {
				return fmt.Errorf("failed to read input payload: %w", err)
			}

			executor := transform.NewExecutor(logger)
			runner := pipeline.NewRunner(executor, logger)

			result := runner.Apply(ctx, data, compiled)

			encoded, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}

			fmt.Println(string(encoded))

			if !result.Success {
				os.Exit(1)
			}

			return nil
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		logger.Error("Failed to run command", "error", err)
		os.Exit(1)
	}
}

func readInput(path string) (any, error) {
	var raw []byte

	var err error

	if path == "" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}

	if err != nil {
		return nil, err
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}

	return data, nil
}
