package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"aamva-parser/document"
	"aamva-parser/document/aamva"
)

// parseLicencePayload unescapes scanner text and parses it
func parseLicencePayload(raw string) aamva.Record {
	payload := document.UnescapeNewlines(raw)
	elements := aamva.Tokenize(payload)
	slog.Debug("Tokenized licence payload", "elements", len(elements))

	record := aamva.Assemble(elements)
	if invalid := record.InvalidFields(); len(invalid) > 0 {
		slog.Warn("licence payload has fields that failed normalization", "fields", invalid)
	}
	return record
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" {
		slog.Info("No input file provided; reading from stdin")
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return raw, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}
	return raw, nil
}

// runCli parses one payload from path (or stdin) and writes the record to out
func runCli(path string, formatName string, stdin io.Reader, out io.Writer) error {
	format, err := document.ParseOutputFormat(formatName)
	if err != nil {
		return err
	}

	raw, err := readInput(path, stdin)
	if err != nil {
		return err
	}

	text, err := document.DecodePayload(raw)
	if err != nil {
		return err
	}

	record := parseLicencePayload(text)
	RecordParse(SOURCE_CLI, record)

	encoded, err := document.Encode(record, format)
	if err != nil {
		return err
	}

	if _, err := out.Write(encoded); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if format == document.FORMAT_JSON {
		if _, err := io.WriteString(out, "\n"); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
